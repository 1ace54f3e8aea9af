package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config (get <key> | set <key> <value>)",
	Short: "Get and set repository options stored in .mygit/config",
	Args:  cobra.RangeArgs(2, 3),
	Run: func(cmd *cobra.Command, args []string) {
		switch {
		case args[0] == "get" && len(args) == 2:
			repo := openRepo(cmd, false)
			fmt.Println(Must(repo.GetConfig(args[1])))
		case args[0] == "set" && len(args) == 3:
			repo := openRepo(cmd, true)
			defer repo.Close()
			if err := repo.SetConfig(args[1], args[2]); err != nil {
				repo.Close()
				DieErr(err)
			}
		default:
			DieFmt("usage: mygit %s", cmd.Use)
		}
	},
}

var catFileCmd = &cobra.Command{
	Use:   "cat-file (-p | -t | -s) <object>",
	Short: "Show the type, size or content of a stored object",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pp := Must(cmd.Flags().GetBool("pretty"))
		size := Must(cmd.Flags().GetBool("size"))
		ty := Must(cmd.Flags().GetBool("type"))

		repo := openRepo(cmd, false)
		switch {
		case pp && !size && !ty:
			fmt.Print(Must(repo.PrettyPrint(args[0])))
		case size && !pp && !ty:
			_, payload, err := repo.CatFile(args[0])
			if err != nil {
				DieErr(err)
			}
			fmt.Println(len(payload))
		case ty && !pp && !size:
			objType, _, err := repo.CatFile(args[0])
			if err != nil {
				DieErr(err)
			}
			fmt.Println(objType)
		default:
			DieFmt("usage: mygit %s", cmd.Use)
		}
	},
}

var hashObjectCmd = &cobra.Command{
	Use:   "hash-object [-w] <file>",
	Short: "Compute the blob hash of a file, optionally writing the blob",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		write := Must(cmd.Flags().GetBool("write"))
		repo := openRepo(cmd, write)
		defer repo.Close()
		hash, err := repo.HashObject(repo.Path(args[0]), write)
		if err != nil {
			repo.Close()
			DieErr(err)
		}
		fmt.Println(hash)
	},
}

var lsTreeCmd = &cobra.Command{
	Use:   "ls-tree [<commit-ish>]",
	Short: "List every file of a commit's tree",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rev := ""
		if len(args) == 1 {
			rev = args[0]
		}
		repo := openRepo(cmd, false)
		for _, e := range Must(repo.LsTree(rev)) {
			fmt.Printf("blob %s\t%s\n", e.Hash, e.Path)
		}
	},
}

//nolint:gochecknoinits
func init() {
	catFileCmd.Flags().BoolP("pretty", "p", false, "pretty-print the contents of <object> based on its type")
	catFileCmd.Flags().BoolP("size", "s", false, "show the object size")
	catFileCmd.Flags().BoolP("type", "t", false, "show the object type")
	hashObjectCmd.Flags().BoolP("write", "w", false, "actually write the object into the object store")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(catFileCmd)
	rootCmd.AddCommand(hashObjectCmd)
	rootCmd.AddCommand(lsTreeCmd)
}
