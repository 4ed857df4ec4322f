// Package storage exposes the five filesystem primitives the installer needs
// (read, write, exists, remove, mkdir -p) behind the Store interface. The
// default implementation wraps an afero.Fs, so tests run against an
// in-memory filesystem and the CLI against the real disk.
package storage
