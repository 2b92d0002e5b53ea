package datapack

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"

	ifs "github.com/hupe1980/datapack/internal/fs"
)

// Zip archives the regular files below dir into a binary in-memory dataset.
// Entry names are slash-separated paths relative to dir. The extension
// defaults to "zip" unless WithExtension is given.
func Zip(dir string, optFns ...Option) (*Dataset, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	err := filepath.WalkDir(dir, func(p string, e fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !e.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		info, err := e.Info()
		if err != nil {
			return err
		}

		hdr, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		hdr.Method = zip.Deflate

		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return err
		}
		return copyFile(w, p)
	})
	if err != nil {
		return nil, fmt.Errorf("zip %s: %w", dir, err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip %s: %w", dir, err)
	}

	opts := applyOptions(optFns)
	ext := "zip"
	if opts.extSet {
		ext = opts.ext
	}
	return FromBytes(buf.Bytes(), ext, optFns...), nil
}

func copyFile(dst io.Writer, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(dst, f)
	return err
}

// Unzip reads the whole dataset as a zip archive and extracts it into dir.
// An existing dir is removed first. Entries that would land outside of dir
// fail with ErrPathInvalid before anything is removed.
//
// The archive is buffered in memory.
func (d *Dataset) Unzip(ctx context.Context, dir string) error {
	data, err := d.Content(ctx)
	if err != nil {
		return err
	}

	// Readers that flag insecure names still return the archive.
	zr, openErr := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if zr == nil {
		return fmt.Errorf("unzip %s: %w", d.Location(), openErr)
	}

	for _, f := range zr.File {
		if !filepath.IsLocal(filepath.FromSlash(f.Name)) || strings.Contains(f.Name, `\`) {
			return fmt.Errorf("unzip entry %q: %w", f.Name, ErrPathInvalid)
		}
	}
	if openErr != nil {
		return fmt.Errorf("unzip %s: %w", d.Location(), openErr)
	}

	fsys := ifs.Default
	if err := fsys.RemoveAll(dir); err != nil {
		return err
	}
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	for _, f := range zr.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := extract(fsys, f, filepath.Join(dir, filepath.FromSlash(f.Name))); err != nil {
			return fmt.Errorf("unzip entry %q: %w", f.Name, err)
		}
	}

	d.opts.logger.DebugContext(ctx, "archive extracted", "dir", dir, "entries", len(zr.File))
	return nil
}

func extract(fsys ifs.FileSystem, f *zip.File, target string) error {
	if f.FileInfo().IsDir() {
		return fsys.MkdirAll(target, 0o755)
	}
	if err := fsys.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := fsys.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
