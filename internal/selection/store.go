package selection

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/envforge/schema"
	"pkt.systems/pslog"
)

// Store persists the single "currently selected environment" record.
type Store struct {
	path string
	log  pslog.Logger
}

// NewStore constructs a store backed by the given file path.
func NewStore(path string) (*Store, error) {
	return NewStoreWithLogger(path, nil)
}

// NewStoreWithLogger constructs a store with logging.
func NewStoreWithLogger(path string, logger pslog.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("selection file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	if logger != nil {
		logger = logger.With("selection_file", path)
	}
	return &Store{path: path, log: logger}, nil
}

// Load reads the persisted selection. A missing, unreadable or malformed file
// is recovered into "no selection"; it never surfaces as an error.
func (s *Store) Load() (schema.Selection, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) && s.log != nil {
			s.log.Warn("selection load failed", "err", err)
		}
		return schema.Selection{}, false
	}
	var sel schema.Selection
	if err := json.Unmarshal(data, &sel); err != nil {
		if s.log != nil {
			s.log.Warn("selection load failed", "err", err)
		}
		return schema.Selection{}, false
	}
	if !sel.Kind.Valid() || sel.Name == "" {
		if s.log != nil {
			s.log.Warn("selection record malformed", "kind", sel.Kind, "name", sel.Name)
		}
		return schema.Selection{}, false
	}
	return sel, true
}

// Save overwrites the selection record. The write goes through a temp file
// and a rename so a concurrent reader never observes a partial record.
func (s *Store) Save(sel schema.Selection) error {
	data, err := json.MarshalIndent(sel, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "selection-*.json")
	if err != nil {
		if s.log != nil {
			s.log.Warn("selection save failed", "err", err)
		}
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		if s.log != nil {
			s.log.Warn("selection save failed", "err", err)
		}
		return err
	}
	if s.log != nil {
		s.log.Debug("selection save ok", "kind", sel.Kind, "name", sel.Name)
	}
	return nil
}
