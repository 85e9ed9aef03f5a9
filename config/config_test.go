package config

import (
	"path/filepath"
	"strings"
	"testing"

	"go.viam.com/test"

	"go.viam.com/rotationtool/logging"
	"go.viam.com/rotationtool/rotation"
	"go.viam.com/rotationtool/testutils"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	test.That(t, cfg.Validate(""), test.ShouldBeNil)
	test.That(t, cfg.StateFile, test.ShouldEqual, filepath.Join(RotationDotDir, "state.json"))
	test.That(t, cfg.ConverterOptions(), test.ShouldResemble, rotation.DefaultOptions())
	test.That(t, cfg.Level(), test.ShouldEqual, logging.INFO)
}

func TestRead(t *testing.T) {
	t.Setenv("ROTATIONTOOL_TEST_DIR", "/tmp/rotations")
	path := testutils.WriteTempFile(t, "config.json", `{
		"state_file": "$ROTATIONTOOL_TEST_DIR/state.json",
		"quaternion_input": "strict",
		"log_level": "DEBUG"
	}`)

	cfg, err := Read(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.StateFile, test.ShouldEqual, "/tmp/rotations/state.json")
	test.That(t, cfg.LogFile, test.ShouldEqual, Default().LogFile)
	test.That(t, cfg.Level(), test.ShouldEqual, logging.DEBUG)

	opts := cfg.ConverterOptions()
	test.That(t, opts.QuaternionInput, test.ShouldEqual, rotation.StrictQuaternion)
	test.That(t, opts.RankTolerance, test.ShouldEqual, 1e-4)
	test.That(t, opts.UnitTolerance, test.ShouldEqual, 1e-3)
}

func TestReadRelativePaths(t *testing.T) {
	path := testutils.WriteTempFile(t, "config.json", `{"state_file": "state.json", "log_file": "logs/tool.log"}`)
	cfg, err := Read(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.StateFile, test.ShouldEqual, filepath.Join(filepath.Dir(path), "state.json"))
	test.That(t, cfg.LogFile, test.ShouldEqual, filepath.Join(filepath.Dir(path), "logs", "tool.log"))
}

func TestReadErrors(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.json"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "failed to read config")

	_, err = FromReader("bad.json", strings.NewReader("{"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "failed to decode config")

	for key, contents := range map[string]string{
		"state_file":       `{"state_file": ""}`,
		"rank_tolerance":   `{"rank_tolerance": 0}`,
		"unit_tolerance":   `{"unit_tolerance": -1}`,
		"quaternion_input": `{"quaternion_input": "clamp"}`,
		"log_level":        `{"log_level": "verbose"}`,
	} {
		t.Run(key, func(t *testing.T) {
			_, err := FromReader("config.json", strings.NewReader(contents))
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, err.Error(), test.ShouldContainSubstring, key)
		})
	}
}
