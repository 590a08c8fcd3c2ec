package buildinfo

import "testing"

func TestShortAndBootLine(t *testing.T) {
	oldV, oldC := Version, Commit
	defer func() { Version, Commit = oldV, oldC }()

	Version, Commit = "dev", "unknown"
	if got := BootLine(20); got != "Version dev" {
		t.Fatalf("BootLine(20) = %q, want %q", got, "Version dev")
	}

	Commit = "0123456789abcdef"
	if got := Short(); got != "0123456" {
		t.Fatalf("Short() = %q, want %q", got, "0123456")
	}

	Version = "v2.0.0-rc.1+build.20261018"
	if got := BootLine(20); len(got) != 20 || got[:10] != "Version v2" {
		t.Fatalf("BootLine(20) = %q, want 20 chars", got)
	}
}
