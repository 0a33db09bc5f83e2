package fsutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
)

// WriteFileAtomic writes data to a temporary file next to path, fsyncs it and
// renames it over path, so readers never see a half written file. When path is
// a symlink, its target is replaced and the link is kept.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	target, err := filepath.EvalSymlinks(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		target = path
	case err != nil:
		return goerr.Wrap(err, "failed to resolve file path", goerr.V("path", path))
	}

	f, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return goerr.Wrap(err, "failed to create temporary file", goerr.V("path", target))
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return goerr.Wrap(err, "failed to write temporary file", goerr.V("path", tmp))
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return goerr.Wrap(err, "failed to sync temporary file", goerr.V("path", tmp))
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return goerr.Wrap(err, "failed to close temporary file", goerr.V("path", tmp))
	}
	// CreateTemp always uses 0600
	if err := os.Chmod(tmp, perm); err != nil {
		os.Remove(tmp)
		return goerr.Wrap(err, "failed to set file mode", goerr.V("path", tmp))
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return goerr.Wrap(err, "failed to replace file", goerr.V("path", target))
	}
	return nil
}
