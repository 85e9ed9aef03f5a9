// Package config defines the configuration file of the rotation tool.
package config

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"go.viam.com/rotationtool/logging"
	"go.viam.com/rotationtool/rotation"
	rutils "go.viam.com/rotationtool/utils"
)

// RotationDotDir is the directory for the tool's state and logs.
var RotationDotDir string

func init() {
	RotationDotDir = filepath.Join(rutils.PlatformHomeDir(), ".rotationtool")
}

// Config is the tool configuration.
type Config struct {
	// StateFile is where the edited rotation is persisted between runs. A relative path is
	// resolved against the directory of the config file.
	StateFile string `json:"state_file"`
	// LogFile receives the logs of the interactive editor, which owns the terminal while it runs.
	LogFile         string  `json:"log_file"`
	RankTolerance   float64 `json:"rank_tolerance"`
	QuaternionInput string  `json:"quaternion_input"`
	UnitTolerance   float64 `json:"unit_tolerance"`
	LogLevel        string  `json:"log_level"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	opts := rotation.DefaultOptions()
	return &Config{
		StateFile:       filepath.Join(RotationDotDir, "state.json"),
		LogFile:         filepath.Join(RotationDotDir, "rotationtool.log"),
		RankTolerance:   opts.RankTolerance,
		QuaternionInput: string(opts.QuaternionInput),
		UnitTolerance:   opts.UnitTolerance,
		LogLevel:        "info",
	}
}

// Read reads a config from the given file. Environment variables in the file are expanded.
func Read(filePath string) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config")
	}
	return FromReader(filePath, bytes.NewReader(buf))
}

// FromReader reads a config from the given reader and specifies
// where, if applicable, the file the reader originated from.
func FromReader(originalPath string, r io.Reader) (*Config, error) {
	cfg := Default()
	if err := json.NewDecoder(r).Decode(cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to decode config %q", originalPath)
	}
	if originalPath != "" {
		dir := filepath.Dir(originalPath)
		if cfg.StateFile != "" && !filepath.IsAbs(cfg.StateFile) {
			cfg.StateFile = filepath.Join(dir, cfg.StateFile)
		}
		if cfg.LogFile != "" && !filepath.IsAbs(cfg.LogFile) {
			cfg.LogFile = filepath.Join(dir, cfg.LogFile)
		}
	}
	if err := cfg.Validate(originalPath); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures all parts of the config are valid.
func (c *Config) Validate(path string) error {
	if c.StateFile == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "state_file")
	}
	if c.RankTolerance <= 0 {
		return utils.NewConfigValidationError(path,
			errors.Errorf("rank_tolerance must be positive, got %v", c.RankTolerance))
	}
	if c.UnitTolerance <= 0 {
		return utils.NewConfigValidationError(path,
			errors.Errorf("unit_tolerance must be positive, got %v", c.UnitTolerance))
	}
	switch rotation.QuaternionInputPolicy(c.QuaternionInput) {
	case rotation.NormalizeQuaternion, rotation.StrictQuaternion:
	default:
		return utils.NewConfigValidationError(path,
			errors.Errorf("quaternion_input must be %q or %q, got %q",
				rotation.NormalizeQuaternion, rotation.StrictQuaternion, c.QuaternionInput))
	}
	if _, err := logging.LevelFromString(c.LogLevel); err != nil {
		return utils.NewConfigValidationError(path, errors.Wrap(err, "log_level"))
	}
	return nil
}

// ConverterOptions returns the converter settings of the config.
func (c *Config) ConverterOptions() rotation.Options {
	return rotation.Options{
		RankTolerance:   c.RankTolerance,
		QuaternionInput: rotation.QuaternionInputPolicy(c.QuaternionInput),
		UnitTolerance:   c.UnitTolerance,
	}
}

// Level returns the configured log level, falling back to info if it does not parse.
func (c *Config) Level() logging.Level {
	level, err := logging.LevelFromString(c.LogLevel)
	if err != nil {
		return logging.INFO
	}
	return level
}
