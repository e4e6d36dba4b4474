package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/katcli/kat/internal/application/ports"
	"github.com/katcli/kat/internal/domain/entities"
)

// Ensure interface compliance
var _ ports.FileSystem = (*OS)(nil)

// OS is the operating system's filesystem.
type OS struct{}

// NewOS creates the OS filesystem adapter.
func NewOS() *OS {
	return &OS{}
}

// Canonicalize makes path absolute, resolves symlinks and confirms it
// exists. This is the only step allowed to fail a selection outright.
func (o *OS) Canonicalize(path string) (ports.CanonicalPath, error) {
	if path == "" {
		path = "."
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return ports.CanonicalPath{}, &entities.PathNotFoundError{Path: path, Cause: err}
	}

	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return ports.CanonicalPath{}, &entities.PathNotFoundError{Path: path, Cause: err}
	}

	info, err := os.Stat(real)
	if err != nil {
		return ports.CanonicalPath{}, &entities.PathNotFoundError{Path: path, Cause: err}
	}

	return ports.CanonicalPath{
		Path:  real,
		Given: abs,
		IsDir: info.IsDir(),
	}, nil
}

// Stat implements ports.FileSystem.
func (o *OS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}
