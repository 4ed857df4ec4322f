package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"syscall"

	"github.com/spf13/afero"
)

// Permission constants for installed files and directories.
const (
	DirPerm  os.FileMode = 0755
	FilePerm os.FileMode = 0644
)

// Store is the filesystem capability set the installer depends on.
type Store interface {
	ReadFile(path string) ([]byte, error)
	// WriteFile creates or truncates path.
	WriteFile(path string, data []byte) error
	Exists(path string) (bool, error)
	// Remove deletes a single file.
	Remove(path string) error
	MkdirAll(path string) error
}

// AferoStore implements Store on top of an afero filesystem.
type AferoStore struct {
	fs afero.Afero
}

// New returns a Store backed by fsys.
func New(fsys afero.Fs) *AferoStore {
	return &AferoStore{fs: afero.Afero{Fs: fsys}}
}

// OS returns a Store backed by the host filesystem.
func OS() *AferoStore {
	return New(afero.NewOsFs())
}

// Fs returns the underlying afero filesystem.
func (s *AferoStore) Fs() afero.Fs {
	return s.fs.Fs
}

// ReadFile returns the contents of path.
func (s *AferoStore) ReadFile(path string) ([]byte, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}

// WriteFile writes data to path, replacing any existing content.
func (s *AferoStore) WriteFile(path string, data []byte) error {
	if err := s.fs.WriteFile(path, data, filePerm()); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	return nil
}

// Exists reports whether path exists. A missing path is not an error, nor is
// a path whose parent is a regular file.
func (s *AferoStore) Exists(path string) (bool, error) {
	ok, err := s.fs.Exists(path)
	if errors.Is(err, syscall.ENOTDIR) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
	return ok, nil
}

// Remove deletes path. Removing a missing path is not an error.
func (s *AferoStore) Remove(path string) error {
	err := s.fs.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

// MkdirAll creates path and any missing parents.
func (s *AferoStore) MkdirAll(path string) error {
	if err := s.fs.MkdirAll(path, DirPerm); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}

// filePerm returns the mode for new files. Windows ignores Unix permission
// bits, so any value works there.
func filePerm() os.FileMode {
	if runtime.GOOS == "windows" {
		return 0666
	}
	return FilePerm
}
