package constants

const (
	DefaultFilePerm = 0o644 // rw-r--r--
	DefaultDirPerm  = 0o755 // rwxr-xr-x
	ResetColor      = "\033[0m"
	BoldColor       = "\033[1m"
	GreenColor      = "\033[32m"
	RedColor        = "\033[31m"
	YellowColor     = "\033[33m"

	ControlDir  = ".mygit"   // relative to the working tree root
	ObjectsDir  = "objects"  // relative to ControlDir
	BranchesDir = "branches" // relative to ControlDir
	IndexFile   = "index"
	HeadFile    = "HEAD"
	ConfigFile  = "config"
	LockFile    = "lock"

	MasterBranch         = "master"
	InitialCommitMessage = "Initial commit"
	DefaultUserName      = "mygit"
	DefaultUserEmail     = "mygit@localhost"

	ObjectCacheSize = 1024 // decoded objects kept in memory per command

	Config = `[user]
name  = %s
email = %s
` // Default .mygit/config content
)

// Define the necessary directory structure, relative to ControlDir
var Dir_paths = []string{
	ObjectsDir,
	BranchesDir,
}
