package version

// Set at link time:
//
//	go build -ldflags "-X github.com/jypelle/monoscope/internal/version.Release=1.2.0 -X github.com/jypelle/monoscope/internal/version.Commit=abc123"
var (
	Release = "0.1.0"
	Commit  = ""
)

// String returns the release, followed by the short commit when known.
func String() string {
	if Commit == "" {
		return Release
	}
	commit := Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return Release + " (" + commit + ")"
}
