package version

import "fmt"

const Name = "httpmsg"

// Set at build time with -ldflags "-X httpmsg/internal/version.Version=...".
var (
	Version   = "dev"
	BuildDate = "unknown"
	Commit    = "unknown"
)

func GetVersion() string {
	return fmt.Sprintf("%s %s (commit: %s, built: %s)", Name, Version, Commit, BuildDate)
}

func GetShortVersion() string {
	return Version
}

// ServerSoftware is the product token reported to requests as
// SERVER_SOFTWARE.
func ServerSoftware() string {
	if Version == "" {
		return Name
	}
	return Name + "/" + Version
}
