package main

import (
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <path>...",
	Short: "Stage file contents in the index",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo := openRepo(cmd, true)
		defer repo.Close()
		for _, p := range args {
			if err := repo.Add(repo.Path(p)); err != nil {
				repo.Close()
				DieErr(err)
			}
		}
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <path>...",
	Short: "Remove files from the index",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo := openRepo(cmd, true)
		defer repo.Close()
		for _, p := range args {
			if err := repo.Remove(repo.Path(p)); err != nil {
				repo.Close()
				DieErr(err)
			}
		}
	},
}

//nolint:gochecknoinits
func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(rmCmd)
}
