package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/brickster241/mygit/plumbing"
	"github.com/brickster241/mygit/porcelain"
	"github.com/brickster241/mygit/utils"
	"github.com/brickster241/mygit/utils/logging"
)

// Exit codes
const (
	exitFailure = 1
	exitCorrupt = 3
	exitIO      = 4
	exitLocked  = 5
)

var rootCmd = &cobra.Command{
	Use:           "mygit",
	Short:         "A local content-addressed version control engine",
	Long:          `mygit tracks the files of a working tree in a content-addressed object store under .mygit, with branches, a staging index, checkout, reset and merge.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := logging.SetLevel(viper.GetString("log-level")); err != nil {
			DieErr(err)
		}
		if format := viper.GetString("log-format"); format != "" {
			if err := logging.SetOutputFormat(format); err != nil {
				DieErr(err)
			}
		}
		if err := logging.SetOutputs(viper.GetStringSlice("log-output"), 0, 0); err != nil {
			DieErr(err)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		DieErr(err)
	}
}

//nolint:gochecknoinits
func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().String("log-level", "warn", "set logging level (trace, debug, info, warn, error, none)")
	rootCmd.PersistentFlags().String("log-format", "", "set logging output format (text, json)")
	rootCmd.PersistentFlags().StringSlice("log-output", []string{}, "set logging output(s): - for stdout, = for stderr, or a file path")
	rootCmd.PersistentFlags().StringP("dir", "C", ".", "run as if mygit was started in this directory")

	for _, name := range []string{"log-level", "log-format", "log-output", "dir"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

func initConfig() {
	viper.SetEnvPrefix("MYGIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

func Die(msg string, code int) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(code)
}

func DieFmt(msg string, args ...interface{}) {
	Die(fmt.Sprintf(msg, args...), exitFailure)
}

// DieErr reports err by kind and exits with the matching code.
func DieErr(err error) {
	switch {
	case errors.Is(err, plumbing.ErrCorruptRepository), errors.Is(err, plumbing.ErrDeserialization):
		Die("fatal: "+err.Error(), exitCorrupt)
	case errors.Is(err, plumbing.ErrIOFailure):
		Die("fatal: "+err.Error(), exitIO)
	case errors.Is(err, plumbing.ErrLocked):
		Die("fatal: "+err.Error(), exitLocked)
	default:
		Die("error: "+err.Error(), exitFailure)
	}
}

// startDir is the absolute directory the command runs in.
func startDir() string {
	dir, err := filepath.Abs(viper.GetString("dir"))
	if err != nil {
		DieErr(err)
	}
	return dir
}

// session is a loaded repository plus what a command needs to translate user paths.
type session struct {
	*porcelain.Repository
	root string
	cwd  string
	lock *flock.Flock
}

// openRepo discovers and loads the repository around the start directory. Mutating commands pass
// lock to hold the repository lock until Close.
func openRepo(cmd *cobra.Command, lock bool) *session {
	cwd := startDir()
	root, err := utils.FindRepoRoot(cwd)
	if errors.Is(err, utils.ErrNoRepository) {
		DieErr(plumbing.ErrNotARepository)
	}
	if err != nil {
		DieErr(err)
	}

	s := &session{root: root, cwd: cwd}
	if lock {
		if s.lock, err = porcelain.LockRepo(root); err != nil {
			DieErr(err)
		}
	}

	logger := logging.Default().WithField(logging.CommandFieldKey, cmd.Name())
	s.Repository, err = porcelain.OpenRepo(osfs.New(root), porcelain.WithLogger(logger))
	if err != nil {
		s.Close()
		DieErr(err)
	}
	return s
}

func (s *session) Close() {
	if s.lock != nil {
		_ = s.lock.Unlock()
	}
}

// Path turns a user supplied path into its repository relative form.
func (s *session) Path(p string) string {
	rel, err := utils.RepoRelativePath(s.root, s.cwd, p)
	if err != nil {
		s.Close()
		DieErr(err)
	}
	return rel
}

// Must exits on err, else returns v.
func Must[T any](v T, err error) T {
	if err != nil {
		DieErr(err)
	}
	return v
}
