package utils

import (
	"os"
	"runtime"
)

const (
	// ConfigEnvVar is the environment variable that can be set to name a config file when the
	// --config flag is not given.
	ConfigEnvVar = "ROTATIONTOOL_CONFIG"

	// StateEnvVar is the environment variable that can be set to override the configured state
	// file when the --state flag is not given.
	StateEnvVar = "ROTATIONTOOL_STATE"
)

// PlatformHomeDir wraps Getenv("HOME"), except on windows, where it prefers os.UserHomeDir.
func PlatformHomeDir() string {
	if runtime.GOOS == "windows" {
		homedir, _ := os.UserHomeDir() //nolint:errcheck
		if homedir != "" {
			return homedir
		}
	}
	return os.Getenv("HOME")
}
