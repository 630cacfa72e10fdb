package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestInfo(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})

	tests := []struct {
		name    string
		version string
		commit  string
		date    string
		want    string
	}{
		{"bare", "1.2.3", "", "", "specgraph 1.2.3\n"},
		{"commit", "1.2.3", "abc123", "", "specgraph 1.2.3\ncommit: abc123\n"},
		{"full", "0.1.0-dev", "abc123", "2024-01-15", "specgraph 0.1.0-dev\ncommit: abc123\nbuilt:  2024-01-15\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, GitCommit, BuildDate = tt.version, tt.commit, tt.date
			if got := Info(false); got != tt.want {
				t.Fatalf("Info = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestColoredWithoutColor(t *testing.T) {
	origVersion, origNoColor := Version, color.NoColor
	t.Cleanup(func() { Version, color.NoColor = origVersion, origNoColor })

	color.NoColor = true
	Version = "2.0.1-rc1"
	if got := Colored(); got != "2.0.1-rc1" {
		t.Fatalf("Colored = %q", got)
	}
	Version = "custom"
	if got := Colored(); got != "custom" {
		t.Fatalf("Colored = %q", got)
	}
}
