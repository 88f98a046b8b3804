package storage

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Store persists uploads in a single flat directory. The directory is
// the only state the service owns: all metadata is recovered from
// filesystem attributes and the filename itself.
type Store struct {
	fs  afero.Fs
	dir string
}

func New(fs afero.Fs, dir string) *Store {
	return &Store{fs: fs, dir: dir}
}

// Init creates the upload directory if it does not exist.
func (s *Store) Init() error {
	return s.fs.MkdirAll(s.dir, 0o755)
}

// Dir returns the upload directory path.
func (s *Store) Dir() string {
	return s.dir
}

// path confines name to the upload directory: embedded separators and
// traversal sequences are stripped before joining.
func (s *Store) path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

// Save streams r into a file called name and returns the byte count.
func (s *Store) Save(name string, r io.Reader) (int64, error) {
	f, err := s.fs.Create(s.path(name))
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return io.Copy(f, r)
}

// Open returns the named file and its metadata for serving.
func (s *Store) Open(name string) (afero.File, os.FileInfo, error) {
	f, err := s.fs.Open(s.path(name))
	if err != nil {
		return nil, nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return f, fi, nil
}

// Remove deletes the named file. A file that is already gone counts as
// success, which keeps explicit deletes and the retention sweeper
// race-free with each other.
func (s *Store) Remove(name string) error {
	if err := s.fs.Remove(s.path(name)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// List returns the regular files currently in the upload directory.
// Subdirectories and anything with type bits set are skipped.
func (s *Store) List() ([]os.FileInfo, error) {
	infos, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, err
	}

	files := make([]os.FileInfo, 0, len(infos))
	for _, fi := range infos {
		if fi.Mode().IsRegular() {
			files = append(files, fi)
		}
	}
	return files, nil
}
