package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	origCommit := Commit
	defer func() { Commit = origCommit }()

	Commit = "unknown"
	if Info() != Version {
		t.Errorf("Expected bare version, got %s", Info())
	}

	Commit = "abcdef1234567890"
	info := Info()
	if !strings.Contains(info, "abcdef1") {
		t.Errorf("Expected short commit in info, got %s", info)
	}
}

func TestFull(t *testing.T) {
	full := Full()
	if !strings.Contains(full, Version) {
		t.Errorf("Expected version in full output, got %s", full)
	}
	if !strings.Contains(full, "Commit:") {
		t.Errorf("Expected commit line in full output, got %s", full)
	}
}
