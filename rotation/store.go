package rotation

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/rotationtool/logging"
	rutils "go.viam.com/rotationtool/utils"
)

// Store persists a State as a flat JSON record on disk.
type Store struct {
	path   string
	logger logging.Logger
}

// NewStore returns a Store backed by the file at path.
func NewStore(path string, logger logging.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Path returns the location of the state file.
func (st *Store) Path() string {
	return st.path
}

// Load reads the persisted state. A missing file yields the default state and no error. A file
// that cannot be read or parsed yields the default state along with the error, so callers can
// report it and carry on.
func (st *Store) Load() (State, error) {
	rd, err := os.ReadFile(st.path)
	if err != nil {
		if os.IsNotExist(err) {
			st.logger.Debugw("no saved state, starting from identity", "path", st.path)
			return NewState(), nil
		}
		return NewState(), errors.Wrap(err, "failed to read saved state")
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(rd, &raw); err != nil {
		return NewState(), errors.Wrapf(err, "failed to parse saved state %q", st.path)
	}
	s, unused, err := DecodeRecord(raw)
	if err != nil {
		return NewState(), errors.Wrapf(err, "failed to decode saved state %q", st.path)
	}
	if len(unused) > 0 {
		st.logger.Debugw("ignoring unknown keys in saved state", "path", st.path, "keys", unused)
	}
	return s, nil
}

// Save writes the state, replacing any previous file atomically.
func (st *Store) Save(s State) (err error) {
	dir := filepath.Dir(st.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	md, err := json.MarshalIndent(s.Record(), "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(st.path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			rutils.RemoveFileNoError(tmp.Name())
		}
	}()
	if _, err := tmp.Write(md); err != nil {
		return multierr.Combine(err, tmp.Close())
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	//nolint:gosec
	if err := os.Chmod(tmp.Name(), 0o640); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), st.path); err != nil {
		return err
	}
	st.logger.Debugw("saved state", "path", st.path)
	return nil
}
