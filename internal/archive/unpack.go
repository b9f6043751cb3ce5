// Unless explicitly stated otherwise all files in this repository are licensed under the Apache-2 License.

package archive

import (
	// stdlib
	"archive/tar"
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	// 3p
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// macosxDir is metadata cruft some zip tools add; it is never substituted
// or repacked.
const macosxDir = "__MACOSX"

// unpack extracts an archive into dir, choosing the extractor by suffix.
func unpack(source, dir string) error {
	switch suffix(source) {
	case ".zip":
		return unpackZip(source, dir)
	case ".tar.gz", ".tgz":
		return unpackTarGz(source, dir)
	case ".gz", ".gzip":
		return unpackGzip(source, dir)
	case ".zst":
		return unpackZstd(source, dir)
	default:
		return fmt.Errorf("unsupported archive suffix on %s", source)
	}
}

// entryPath resolves an archive entry name inside dir, rejecting entries
// that would escape it.
func entryPath(dir, name string) (string, error) {
	path := filepath.Join(dir, filepath.FromSlash(name))
	if path != dir && !strings.HasPrefix(path, dir+string(os.PathSeparator)) {
		return "", fmt.Errorf("entry %q escapes extraction directory", name)
	}
	return path, nil
}

func unpackZip(source, dir string) error {
	reader, err := zip.OpenReader(source)
	if err != nil {
		return err
	}
	defer reader.Close()

	for _, entry := range reader.File {
		if entry.Name == macosxDir || strings.HasPrefix(entry.Name, macosxDir+"/") {
			continue
		}
		path, err := entryPath(dir, entry.Name)
		if err != nil {
			return err
		}
		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(path, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := writeZipEntry(entry, path); err != nil {
			return err
		}
	}
	return nil
}

func writeZipEntry(entry *zip.File, path string) error {
	src, err := entry.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

func unpackTarGz(source, dir string) error {
	file, err := os.Open(source)
	if err != nil {
		return err
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if header.Name == macosxDir || strings.HasPrefix(header.Name, macosxDir+"/") {
			continue
		}
		path, err := entryPath(dir, header.Name)
		if err != nil {
			return err
		}
		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(path, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			if err := writeTarEntry(tr, path); err != nil {
				return err
			}
		}
	}
}

func writeTarEntry(tr *tar.Reader, path string) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, tr)
	return err
}

// unpackGzip extracts a single-member gzip file. The member is named after
// the source file with the compression suffix stripped.
func unpackGzip(source, dir string) error {
	file, err := os.Open(source)
	if err != nil {
		return err
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return err
	}
	defer gz.Close()

	return writeMember(gz, dir, source)
}

// unpackZstd extracts a single-member zstd file.
func unpackZstd(source, dir string) error {
	file, err := os.Open(source)
	if err != nil {
		return err
	}
	defer file.Close()

	zr, err := zstd.NewReader(file)
	if err != nil {
		return err
	}
	defer zr.Close()

	return writeMember(zr.IOReadCloser(), dir, source)
}

func writeMember(r io.Reader, dir, source string) error {
	name := filepath.Base(source)
	name = name[:len(name)-len(suffix(name))]
	if name == "" {
		name = "member"
	}

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, r)
	return err
}
