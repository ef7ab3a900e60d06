// Package misc keeps build time information.
package misc

// Set with -ldflags "-X countdown/misc.version=... -X countdown/misc.gitHash=...".
var (
	version = "dev"
	gitHash = "unknown"
)

const appName = "countdown"

// AssetVersion is the version of client script and stylesheet bundle the
// generated markup refers to. It moves independently of program version and
// only changes when assets do.
var AssetVersion = "0.0.1"

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
