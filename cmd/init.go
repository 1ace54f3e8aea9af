package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/brickster241/mygit/porcelain"
	"github.com/brickster241/mygit/utils/constants"
	"github.com/brickster241/mygit/utils/logging"
)

var initCmd = &cobra.Command{
	Use:   "init [<directory>]",
	Short: "Create an empty repository with an initial commit on master",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := startDir()
		if len(args) == 1 {
			dir = filepath.Join(dir, args[0])
			if err := os.MkdirAll(dir, constants.DefaultDirPerm); err != nil {
				DieErr(err)
			}
		}

		logger := logging.Default().WithField(logging.CommandFieldKey, cmd.Name())
		repo := Must(porcelain.InitRepo(osfs.New(dir), porcelain.WithLogger(logger)))
		fmt.Printf("Initialized empty repository in %s on branch %s\n",
			filepath.Join(dir, constants.ControlDir), repo.CurrentBranch())
	},
}

//nolint:gochecknoinits
func init() {
	rootCmd.AddCommand(initCmd)
}
