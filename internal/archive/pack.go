// Unless explicitly stated otherwise all files in this repository are licensed under the Apache-2 License.

package archive

import (
	// stdlib
	"archive/tar"
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	// 3p
	"github.com/klauspost/compress/gzip"
)

// pack writes the contents of dir to an archive at dest in the given
// repack format. Directory entries are recorded too, so empty directories
// survive the round trip.
func pack(dir, dest, format string) error {
	if _, err := Ext(format); err != nil {
		return err
	}
	if format == FormatTgz {
		return packTarGz(dir, dest)
	}
	return packZip(dir, dest)
}

func packZip(dir, dest string) error {
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	zw := zip.NewWriter(out)

	err = walkRelative(dir, func(rel string, d fs.DirEntry) error {
		if d.IsDir() {
			_, err := zw.Create(rel + "/")
			return err
		}
		entry, err := zw.Create(rel)
		if err != nil {
			return err
		}
		return copyInto(entry, filepath.Join(dir, filepath.FromSlash(rel)))
	})
	if err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

func packTarGz(dir, dest string) error {
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	err = walkRelative(dir, func(rel string, d fs.DirEntry) error {
		info, err := d.Info()
		if err != nil {
			return err
		}
		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = rel
		if d.IsDir() {
			header.Name += "/"
		}
		if err := tw.WriteHeader(header); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		return copyInto(tw, filepath.Join(dir, filepath.FromSlash(rel)))
	})
	if err != nil {
		tw.Close()
		gz.Close()
		return err
	}
	if err := tw.Close(); err != nil {
		gz.Close()
		return err
	}
	return gz.Close()
}

// walkRelative visits every entry under dir except dir itself, handing the
// callback slash-separated paths relative to dir.
func walkRelative(dir string, fn func(rel string, d fs.DirEntry) error) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		return fn(filepath.ToSlash(rel), d)
	})
}

func copyInto(w io.Writer, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	_, err = io.Copy(w, src)
	return err
}
