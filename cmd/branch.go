package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brickster241/mygit/utils/constants"
)

var branchCreateCmd = &cobra.Command{
	Use:   "branch-create <name>",
	Short: "Create a branch at HEAD and switch to it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo := openRepo(cmd, true)
		defer repo.Close()
		if err := repo.CreateBranch(args[0]); err != nil {
			repo.Close()
			DieErr(err)
		}
		fmt.Printf("Switched to a new branch '%s'\n", args[0])
	},
}

var branchRemoveCmd = &cobra.Command{
	Use:   "branch-remove <name>",
	Short: "Delete a branch",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo := openRepo(cmd, true)
		defer repo.Close()
		if err := repo.RemoveBranch(args[0]); err != nil {
			repo.Close()
			DieErr(err)
		}
		fmt.Printf("Deleted branch %s\n", args[0])
	},
}

var showBranchesCmd = &cobra.Command{
	Use:   "show-branches",
	Short: "List branches, marking the current one",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		repo := openRepo(cmd, false)
		if repo.Head().Detached() {
			fmt.Printf("* %s(HEAD detached at %s)%s\n", constants.GreenColor, repo.Head().Commit.Short(), constants.ResetColor)
		}
		for _, name := range repo.ListBranches() {
			if name == repo.CurrentBranch() {
				fmt.Printf("* %s%s%s\n", constants.GreenColor, name, constants.ResetColor)
				continue
			}
			fmt.Printf("  %s\n", name)
		}
	},
}

var mergeCmd = &cobra.Command{
	Use:   "merge <branch>",
	Short: "Merge a branch into the current one, keeping the current version of files changed on both",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo := openRepo(cmd, true)
		defer repo.Close()
		hash, err := repo.Merge(args[0])
		if err != nil {
			repo.Close()
			DieErr(err)
		}
		fmt.Printf("Merged '%s' into '%s' as %s\n", args[0], repo.CurrentBranch(), hash.Short())
	},
}

//nolint:gochecknoinits
func init() {
	rootCmd.AddCommand(branchCreateCmd)
	rootCmd.AddCommand(branchRemoveCmd)
	rootCmd.AddCommand(showBranchesCmd)
	rootCmd.AddCommand(mergeCmd)
}
