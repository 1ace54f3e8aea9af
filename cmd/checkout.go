package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout (<branch> | <commit> | -- <path>...)",
	Short: "Switch branches, detach HEAD at a commit, or restore files from HEAD",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo := openRepo(cmd, true)
		defer repo.Close()

		// checkout -- <path>...
		if cmd.ArgsLenAtDash() == 0 {
			for _, p := range args {
				if err := repo.CheckoutFile(repo.Path(p)); err != nil {
					repo.Close()
					DieErr(err)
				}
			}
			return
		}
		if len(args) != 1 {
			repo.Close()
			DieFmt("usage: mygit %s", cmd.Use)
		}

		if err := repo.Checkout(args[0]); err != nil {
			repo.Close()
			DieErr(err)
		}
		head := repo.Head()
		if head.Detached() {
			fmt.Printf("HEAD is now at %s\n", head.Commit.Short())
		} else {
			fmt.Printf("Switched to branch '%s'\n", head.Branch)
		}
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset <commit-ish>",
	Short: "Move the current branch to a commit and overwrite the working tree and index with it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo := openRepo(cmd, true)
		defer repo.Close()
		if err := repo.Reset(args[0]); err != nil {
			repo.Close()
			DieErr(err)
		}
		fmt.Printf("HEAD is now at %s\n", repo.Head().Commit.Short())
	},
}

//nolint:gochecknoinits
func init() {
	rootCmd.AddCommand(checkoutCmd)
	rootCmd.AddCommand(resetCmd)
}
