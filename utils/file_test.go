package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"go.viam.com/test"
)

func TestRemoveFileNoError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	test.That(t, os.WriteFile(path, []byte("{}"), 0o600), test.ShouldBeNil)

	RemoveFileNoError(path)
	_, err := os.Stat(path)
	test.That(t, os.IsNotExist(err), test.ShouldBeTrue)

	// removing a missing file is fine
	RemoveFileNoError(path)
}

func TestPlatformHomeDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("HOME is not consulted on windows")
	}
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	test.That(t, PlatformHomeDir(), test.ShouldEqual, dir)
}
