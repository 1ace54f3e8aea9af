package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/brickster241/mygit/utils/constants"
)

var commitCmd = &cobra.Command{
	Use:   "commit (-m <message> | <message>)",
	Short: "Record the staged changes as a new commit on the current branch",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		message := Must(cmd.Flags().GetString("message"))
		if len(args) == 1 {
			if message != "" {
				DieFmt("usage: %s", cmd.Use)
			}
			message = args[0]
		}
		if message == "" {
			DieFmt("usage: %s", cmd.Use)
		}

		repo := openRepo(cmd, true)
		defer repo.Close()
		hash, err := repo.Commit(message)
		if err != nil {
			repo.Close()
			DieErr(err)
		}
		fmt.Printf("[%s %s] %s\n", repo.CurrentBranch(), hash.Short(), strings.Split(message, "\n")[0])
	},
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the commit history of HEAD, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		repo := openRepo(cmd, false)
		entries := Must(repo.Log())
		for _, e := range entries {
			fmt.Printf("%scommit %s%s\n", constants.YellowColor, e.Hash, constants.ResetColor)
			if len(e.Commit.Parents) > 1 {
				parents := make([]string, 0, len(e.Commit.Parents))
				for _, p := range e.Commit.Parents {
					parents = append(parents, p.Short())
				}
				fmt.Printf("Merge: %s\n", strings.Join(parents, " "))
			}
			fmt.Printf("Author: %s\n", e.Commit.Author)
			fmt.Printf("Date:   %s\n\n", e.Commit.Timestamp.Format(time.RFC1123Z))
			for _, line := range strings.Split(e.Commit.Message, "\n") {
				fmt.Printf("    %s\n", line)
			}
			fmt.Println()
		}
	},
}

//nolint:gochecknoinits
func init() {
	commitCmd.Flags().StringP("message", "m", "", "commit message")
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(logCmd)
}
