// Package storage persists the aggregate store document. The document is
// one JSON file rewritten via write-to-temp-then-atomic-rename, so a
// crash mid-write never corrupts the previous committed state. Mutations
// are serialized across processes with a create-only lock file beside the
// store; contention fails fast rather than blocking.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/manav03panchal/habitual/internal/errors"
	"github.com/manav03panchal/habitual/internal/logging"
	"github.com/manav03panchal/habitual/internal/model"
)

const (
	// AppName is the application name used for data directories.
	AppName = "habitual"

	// EnvStorePath overrides the store location for this invocation.
	EnvStorePath = "HABITUAL_STORE"
)

// DefaultPath returns the default store path following the XDG spec.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, AppName, "store.json")
}

// ResolvePath picks the store path: explicit override, then environment,
// then the XDG default.
func ResolvePath(override string) string {
	if p := strings.TrimSpace(override); p != "" {
		return p
	}
	if p := strings.TrimSpace(os.Getenv(EnvStorePath)); p != "" {
		return p
	}
	return DefaultPath()
}

// Read loads and validates the store. A missing file yields a fresh
// empty store; an unreadable or structurally invalid file is an IOError.
func Read(path string) (*model.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewStore(), nil
		}
		return nil, errors.NewIOError("store IO error", err)
	}

	var s model.Store
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.NewIOError("store corrupted", errors.ErrStoreCorrupted)
	}
	s.Normalize()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return errors.NewIOErrorWithOp("mkdir", "store IO error", err)
	}
	return nil
}

// write validates the store and commits it atomically: marshal, write to
// a temp file in the same directory, fsync, then rename over the store.
func write(path string, s *model.Store) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := ensureParentDir(path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.NewIOError("store IO error", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".store-*.tmp")
	if err != nil {
		return errors.NewIOErrorWithOp("create temp file", "store IO error", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.NewIOErrorWithOp("write", "store IO error", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.NewIOErrorWithOp("sync", "store IO error", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewIOErrorWithOp("close", "store IO error", err)
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		return errors.NewIOErrorWithOp("chmod", "store IO error", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.NewIOErrorWithOp("rename", "store IO error", err)
	}

	success = true
	return nil
}

// FileLock is a cross-process advisory lock implemented as a create-only
// file beside the store. Acquisition fails fast when the file already
// exists; an abandoned lock must be removed manually.
type FileLock struct {
	path string
}

// NewFileLock creates a lock for the store at path.
func NewFileLock(storePath string) *FileLock {
	return &FileLock{path: storePath + ".lock"}
}

// Path returns the lock file location.
func (l *FileLock) Path() string {
	return l.path
}

// Acquire creates the lock file. Returns an IOError wrapping
// ErrStoreLocked if another process holds it.
func (l *FileLock) Acquire() error {
	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if os.IsExist(err) {
			return errors.NewIOError("store is locked", errors.ErrStoreLocked)
		}
		return errors.NewIOErrorWithOp("lock", "store IO error", err)
	}
	return f.Close()
}

// Release removes the lock file. Safe to call unconditionally.
func (l *FileLock) Release() {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		logging.Logger().Warn("failed to remove lock file",
			"path", l.path, "error", err)
	}
}

// Update runs a mutation transactionally: acquire the lock, read, mutate
// an in-memory copy, validate, atomically rewrite, release. Any error
// leaves the on-disk file untouched. The mutator's result is returned to
// the caller on success.
func Update[R any](path string, mutator func(*model.Store) (R, error)) (R, error) {
	var zero R

	if err := ensureParentDir(path); err != nil {
		return zero, err
	}

	lock := NewFileLock(path)
	if err := lock.Acquire(); err != nil {
		return zero, err
	}
	defer lock.Release()

	s, err := Read(path)
	if err != nil {
		return zero, err
	}

	out, err := mutator(s)
	if err != nil {
		return zero, err
	}

	if err := write(path, s); err != nil {
		return zero, err
	}
	return out, nil
}
