package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brickster241/mygit/utils"
	"github.com/brickster241/mygit/utils/constants"
	"github.com/brickster241/mygit/utils/types"
)

var shortCodes = map[types.StatusType]string{
	types.StagedStatus:     "A ",
	types.CommittedStatus:  "  ",
	types.NotStagedStatus:  " M",
	types.NotTrackedStatus: "??",
	types.DeletedStatus:    "D ",
	types.MissingStatus:    " D",
}

var statusSections = []struct {
	status types.StatusType
	title  string
	color  string
}{
	{types.StagedStatus, "Changes to be committed:", constants.GreenColor},
	{types.DeletedStatus, "Removals to be committed:", constants.GreenColor},
	{types.NotStagedStatus, "Changes not staged for commit:", constants.RedColor},
	{types.MissingStatus, "Deleted but not removed from the index:", constants.RedColor},
	{types.NotTrackedStatus, "Untracked files:", constants.RedColor},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the working tree status",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		repo := openRepo(cmd, false)
		status, ok, err := repo.Status()
		if err != nil {
			DieErr(err)
		}
		if !ok {
			fmt.Printf("HEAD detached at %s\n", repo.Head().Commit.Short())
			return
		}

		if Must(cmd.Flags().GetBool("short")) {
			for _, p := range utils.SortedKeys(status.Files) {
				if st := status.Files[p]; st != types.CommittedStatus {
					fmt.Printf("%s %s\n", shortCodes[st], p)
				}
			}
			return
		}

		fmt.Printf("On branch %s%s%s\n", constants.BoldColor, status.Branch, constants.ResetColor)
		for _, section := range statusSections {
			paths := status.Bucket(section.status)
			if len(paths) == 0 {
				continue
			}
			fmt.Printf("\n%s\n", section.title)
			for _, p := range paths {
				fmt.Printf("\t%s%s%s\n", section.color, p, constants.ResetColor)
			}
		}
		if status.IsClean() {
			fmt.Println("nothing to commit, working tree clean")
		}
	},
}

//nolint:gochecknoinits
func init() {
	statusCmd.Flags().BoolP("short", "s", false, "give the output in the short format")
	rootCmd.AddCommand(statusCmd)
}
