package blobstore

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	ifs "github.com/hupe1980/datapack/internal/fs"
)

const stagingSuffix = ".tmp"

// LocalStore implements BlobStore using the local file system.
type LocalStore struct {
	root string
	fsys ifs.FileSystem
}

// NewLocalStore creates a new LocalStore rooted at the given directory.
func NewLocalStore(root string) *LocalStore {
	return NewLocalStoreFS(root, ifs.Default)
}

// NewLocalStoreFS creates a LocalStore on top of a custom FileSystem.
func NewLocalStoreFS(root string, fsys ifs.FileSystem) *LocalStore {
	if fsys == nil {
		fsys = ifs.Default
	}
	return &LocalStore{root: root, fsys: fsys}
}

// Root returns the directory blob names are resolved against.
func (s *LocalStore) Root() string { return s.root }

func (s *LocalStore) path(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(name))
}

// Open opens a blob for reading. Directories are reported as ErrNotFound.
func (s *LocalStore) Open(_ context.Context, name string) (Blob, error) {
	p := s.path(name)
	f, err := s.fsys.OpenFile(p, os.O_RDONLY, 0)
	if err != nil {
		if errors.Is(err, syscall.ENOTDIR) {
			// A path component is a regular file.
			return nil, &fs.PathError{Op: "open", Path: p, Err: ErrNotFound}
		}
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, &fs.PathError{Op: "open", Path: p, Err: ErrNotFound}
	}
	return f, nil
}

// Create creates a blob that is staged next to its final name and renamed
// into place on Close. Parent directories are created as needed.
func (s *LocalStore) Create(_ context.Context, name string) (WritableBlob, error) {
	final := s.path(name)
	if err := s.fsys.MkdirAll(filepath.Dir(final), 0o755); err != nil {
		return nil, err
	}
	staging := final + stagingSuffix
	f, err := s.fsys.OpenFile(staging, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	return &localWritableBlob{f: f, fsys: s.fsys, staging: staging, final: final}, nil
}

// Put writes a blob atomically.
func (s *LocalStore) Put(ctx context.Context, name string, data []byte) error {
	w, err := s.Create(ctx, name)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		_ = Abort(w)
		return err
	}
	if err := w.Sync(); err != nil {
		_ = Abort(w)
		return err
	}
	return w.Close()
}

// Delete removes a blob.
func (s *LocalStore) Delete(_ context.Context, name string) error {
	err := s.fsys.Remove(s.path(name))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

// List returns all regular files below root whose slash name starts with prefix.
func (s *LocalStore) List(_ context.Context, prefix string) ([]string, error) {
	// Only the directory holding the prefix needs walking.
	dir := ""
	if i := strings.LastIndex(prefix, "/"); i >= 0 {
		dir = prefix[:i]
	}

	var names []string
	stack := []string{dir}
	for len(stack) > 0 {
		rel := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := s.fsys.ReadDir(s.path(rel))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		for _, e := range entries {
			name := path.Join(rel, e.Name())
			if e.IsDir() {
				stack = append(stack, name)
				continue
			}
			if strings.HasSuffix(name, stagingSuffix) {
				continue
			}
			if strings.HasPrefix(name, prefix) {
				names = append(names, name)
			}
		}
	}

	sort.Strings(names)
	return names, nil
}

type localWritableBlob struct {
	f       ifs.File
	fsys    ifs.FileSystem
	staging string
	final   string
	closed  bool
}

func (w *localWritableBlob) Write(p []byte) (int, error) {
	if w.closed {
		return 0, io.ErrClosedPipe
	}
	return w.f.Write(p)
}

func (w *localWritableBlob) Sync() error {
	return w.f.Sync()
}

func (w *localWritableBlob) Close() error {
	if w.closed {
		return io.ErrClosedPipe
	}
	w.closed = true
	if err := w.f.Close(); err != nil {
		_ = w.fsys.Remove(w.staging)
		return err
	}
	if err := w.fsys.Rename(w.staging, w.final); err != nil {
		_ = w.fsys.Remove(w.staging)
		return err
	}
	return nil
}

// Abort discards the staged file.
func (w *localWritableBlob) Abort() error {
	if w.closed {
		return nil
	}
	w.closed = true
	_ = w.f.Close()
	return w.fsys.Remove(w.staging)
}
