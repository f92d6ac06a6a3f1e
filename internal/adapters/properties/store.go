// Package properties persists the pipeline run state as a Java-style
// key=value properties file.
package properties

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/magiconair/properties"
	"go.trai.ch/rollout/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	dirPerm  = 0o750
	filePerm = 0o644
)

// Store implements ports.StateStore.
type Store struct {
	mu sync.Mutex
}

// New creates a Store.
func New() *Store {
	return &Store{}
}

// Load reads the run state at path. A missing file yields an empty state.
func (s *Store) Load(path string) (domain.RunState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, _, err := s.read(path)
	if err != nil {
		return nil, err
	}
	return domain.RunState(p.Map()), nil
}

// Merge writes values into the file at path. Existing keys are overwritten,
// other keys and their comments are kept. The file is left untouched when the
// merged content is identical to what is on disk.
func (s *Store) Merge(path string, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, current, err := s.read(path)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		if _, _, err := p.Set(k, values[k]); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrStateWriteFailed.Error()), "key", k)
		}
	}

	var buf bytes.Buffer
	if _, err := p.WriteComment(&buf, "# ", properties.UTF8); err != nil {
		return zerr.Wrap(err, domain.ErrStateWriteFailed.Error())
	}

	if current != nil && xxhash.Sum64(current) == xxhash.Sum64(buf.Bytes()) {
		return nil
	}

	if err := atomicWriteFile(path, buf.Bytes()); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStateWriteFailed.Error()), "path", path)
	}
	return nil
}

// read loads the file and returns the parsed properties and the raw bytes.
// Raw bytes are nil when the file does not exist.
func (s *Store) read(path string) (*properties.Properties, []byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if errors.Is(err, fs.ErrNotExist) {
		p := properties.NewProperties()
		p.DisableExpansion = true
		return p, nil, nil
	}
	if err != nil {
		return nil, nil, zerr.With(zerr.Wrap(err, domain.ErrStateReadFailed.Error()), "path", path)
	}

	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := loader.LoadBytes(data)
	if err != nil {
		return nil, nil, zerr.With(zerr.Wrap(err, domain.ErrStateReadFailed.Error()), "path", path)
	}
	return p, data, nil
}

// atomicWriteFile writes data to a temp file next to path and renames it into place.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, ".env-*.properties")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
