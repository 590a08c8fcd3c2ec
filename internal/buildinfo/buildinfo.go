// Package buildinfo carries the firmware version stamped in at link time:
//
//	go build -ldflags "-X points/internal/buildinfo.Version=v2.1"
package buildinfo

var (
	Version = "dev"
	Commit  = "unknown"
)

const shortCommit = 7

// Short returns the version, else the abbreviated commit, else "dev".
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		if len(Commit) > shortCommit {
			return Commit[:shortCommit]
		}
		return Commit
	}
	return "dev"
}

// BootLine is the version row of the boot banner, cut to cols characters.
func BootLine(cols int) string {
	s := "Version " + Short()
	if cols > 0 && len(s) > cols {
		s = s[:cols]
	}
	return s
}
