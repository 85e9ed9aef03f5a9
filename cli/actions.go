package cli

import (
	"encoding/json"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.viam.com/utils"

	"go.viam.com/rotationtool/config"
	"go.viam.com/rotationtool/editor"
	"go.viam.com/rotationtool/logging"
	"go.viam.com/rotationtool/rotation"
	rutils "go.viam.com/rotationtool/utils"
)

// newScreen opens the terminal for the editor.
var newScreen = tcell.NewScreen

// loadConfig reads the config named by the global flags, or the defaults if none is given.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := c.String(generalFlagConfig); path != "" {
		var err error
		if cfg, err = config.Read(path); err != nil {
			return nil, err
		}
	}
	if path := c.String(generalFlagState); path != "" {
		cfg.StateFile = path
	}
	return cfg, nil
}

func newLogger(c *cli.Context, cfg *config.Config, appender logging.Appender) logging.Logger {
	logger := logging.NewBlankLogger("rotationtool")
	logger.AddAppender(appender)
	logger.SetLevel(cfg.Level())
	if c.Bool(generalFlagDebug) {
		logger.SetLevel(logging.DEBUG)
	}
	return logger
}

// EditAction runs the interactive editor on the saved rotation and saves the result on exit.
func EditAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	// the editor owns the terminal, so logs go to a file
	appender, closer, err := logging.NewFileAppender(cfg.LogFile)
	if err != nil {
		return errors.Wrap(err, "failed to open log file")
	}
	defer utils.UncheckedErrorFunc(closer.Close)
	logger := newLogger(c, cfg, appender)
	defer utils.UncheckedErrorFunc(logger.Sync)

	store := rotation.NewStore(cfg.StateFile, logger.Sublogger("store"))
	state, err := store.Load()
	if err != nil {
		logger.Warnw("starting from identity", "error", err)
		warningf(c.App.ErrWriter, "%v; starting from identity", err)
	}

	screen, err := newScreen()
	if err != nil {
		return errors.Wrap(err, "failed to open terminal")
	}
	conv := rotation.NewConverter(logger.Sublogger("converter"), cfg.ConverterOptions())
	final, err := editor.New(screen, conv, state, logger.Sublogger("editor")).Run(c.Context)
	if err != nil {
		return err
	}
	if err := store.Save(final); err != nil {
		return errors.Wrapf(err, "failed to save state to %q", store.Path())
	}
	logger.Infow("saved state", "path", store.Path(), "sync", final.Sync())
	return nil
}

// ConvertAction converts the rotation given as arguments and prints every representation.
func ConvertAction(c *cli.Context) error {
	from, err := rotation.ParseRepresentation(c.String(convertFlagFrom))
	if err != nil {
		return err
	}
	values := c.Args().Slice()
	if want := rotation.FieldCount(from); len(values) != want {
		return errors.Errorf("%s takes %d values, got %d", from, want, len(values))
	}
	if c.Bool(convertFlagDegrees) {
		if from != rotation.AngleAxis {
			return errors.Errorf("--%s only applies to angle-axis input", convertFlagDegrees)
		}
		deg, err := strconv.ParseFloat(values[0], 64)
		if err != nil {
			return errors.Errorf("invalid angle %q", values[0])
		}
		values[0] = strconv.FormatFloat(rutils.DegToRad(deg), 'g', -1, 64)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger := newLogger(c, cfg, logging.NewWriterAppender(c.App.ErrWriter))
	defer utils.UncheckedErrorFunc(logger.Sync)

	state := rotation.NewState()
	for i, v := range values {
		if err := state.Set(from, i, v); err != nil {
			return err
		}
	}
	derived, err := rotation.NewConverter(logger, cfg.ConverterOptions()).Derive(state, from)
	if err != nil {
		return err
	}

	if c.Bool(convertFlagJSON) {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(derived.Record())
	}
	printf(c.App.Writer, "%s", stateTable(derived))
	return nil
}

// StateShowAction prints the saved rotation.
func StateShowAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger := newLogger(c, cfg, logging.NewWriterAppender(c.App.ErrWriter))
	defer utils.UncheckedErrorFunc(logger.Sync)

	store := rotation.NewStore(cfg.StateFile, logger)
	state, err := store.Load()
	if err != nil {
		return err
	}
	printf(c.App.Writer, "State file: %s", store.Path())
	printf(c.App.Writer, "%s", stateTable(state))
	return nil
}

// StateResetAction overwrites the saved rotation with the identity.
func StateResetAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger := newLogger(c, cfg, logging.NewWriterAppender(c.App.ErrWriter))
	defer utils.UncheckedErrorFunc(logger.Sync)

	store := rotation.NewStore(cfg.StateFile, logger)
	if err := store.Save(rotation.NewState()); err != nil {
		return errors.Wrapf(err, "failed to save state to %q", store.Path())
	}
	infof(c.App.Writer, "Reset state in %s", store.Path())
	return nil
}
