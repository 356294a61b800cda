// Package version reports the ionctl build version. The values are set at
// link time, e.g. -ldflags "-X github.com/ionenergy/ionctl/pkg/version.version=v1.2.0".
package version

//nolint:gochecknoglobals // Overridden by -ldflags.
var (
	version = "dev"
	commit  = "none"
)

// GetVersion returns the release version.
func GetVersion() string {
	return version
}

// GetCommit returns the source commit of the build.
func GetCommit() string {
	return commit
}
