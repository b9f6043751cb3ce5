// Unless explicitly stated otherwise all files in this repository are licensed under the Apache-2 License.

package archive_test

import (
	// stdlib
	stdzip "archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	// 3p
	"github.com/klauspost/compress/gzip"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	// project
	"github.com/treescrub/treescrub/internal/archive"
)

func testLogger() *log.Entry {
	logger := log.New()
	logger.SetOutput(os.Stderr)
	return log.NewEntry(logger)
}

// writeZip builds a zip at path from entry name to content; a nil content
// marks a directory entry.
func writeZip(t *testing.T, path string, entries map[string][]byte) {
	t.Helper()
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	zw := stdzip.NewWriter(file)
	for name, content := range entries {
		if content == nil {
			_, err := zw.Create(name + "/")
			require.NoError(t, err)
			continue
		}
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

// readZip returns the zip's entries as name to content; directory entries
// map to nil.
func readZip(t *testing.T, path string) map[string][]byte {
	t.Helper()
	reader, err := stdzip.OpenReader(path)
	require.NoError(t, err)
	defer reader.Close()

	entries := make(map[string][]byte)
	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() {
			entries[entry.Name] = nil
			continue
		}
		rc, err := entry.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		entries[entry.Name] = data
	}
	return entries
}

func TestProcess(t *testing.T) {
	t.Parallel()

	t.Run("zip round trip preserves structure and applies the callback", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		source := filepath.Join(dir, "data.zip")
		dest := filepath.Join(dir, "out.zip")
		writeZip(t, source, map[string][]byte{
			"note.txt":       []byte("Bob is here"),
			"sub":            nil,
			"sub/deep.txt":   []byte("deep"),
			"__MACOSX/._cru": []byte("cruft"),
		})

		var scratchSeen string
		err := archive.Process(context.Background(), testLogger(), source, dest, archive.FormatZip, func(scratch string) error {
			scratchSeen = scratch
			// Rewrite one file in place, engine-style.
			return os.WriteFile(filepath.Join(scratch, "note.txt"), []byte("P1 is here"), 0o644)
		})
		require.NoError(t, err)

		entries := readZip(t, dest)
		assert.Equal(t, []byte("P1 is here"), entries["note.txt"])
		assert.Equal(t, []byte("deep"), entries["sub/deep.txt"])
		assert.Contains(t, entries, "sub/")
		assert.NotContains(t, entries, "__MACOSX/._cru")

		// Scratch state is released before Process returns.
		_, statErr := os.Stat(scratchSeen)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("corrupt archive fails with an archive error and no scratch leak", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		source := filepath.Join(dir, "broken.zip")
		require.NoError(t, os.WriteFile(source, []byte("this is not a zip"), 0o644))

		err := archive.Process(context.Background(), testLogger(), source, filepath.Join(dir, "out.zip"), archive.FormatZip, func(string) error {
			t.Fatal("callback must not run for a corrupt archive")
			return nil
		})

		var archiveErr *archive.Error
		require.ErrorAs(t, err, &archiveErr)
		assert.Equal(t, "unpack", archiveErr.Op)
		assert.Equal(t, source, archiveErr.Path)
	})

	t.Run("entry escaping the scratch directory is rejected", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		source := filepath.Join(dir, "slip.zip")
		writeZip(t, source, map[string][]byte{
			"../escaped.txt": []byte("evil"),
		})

		err := archive.Process(context.Background(), testLogger(), source, filepath.Join(dir, "out.zip"), archive.FormatZip, func(string) error {
			return nil
		})

		var archiveErr *archive.Error
		require.ErrorAs(t, err, &archiveErr)
		assert.NoFileExists(t, filepath.Join(filepath.Dir(dir), "escaped.txt"))
	})

	t.Run("single member gzip repacks as the configured format", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		source := filepath.Join(dir, "note.txt.gz")
		file, err := os.Create(source)
		require.NoError(t, err)
		gz := gzip.NewWriter(file)
		_, err = gz.Write([]byte("Bob is here"))
		require.NoError(t, err)
		require.NoError(t, gz.Close())
		require.NoError(t, file.Close())

		dest := filepath.Join(dir, "note.txt.zip")
		err = archive.Process(context.Background(), testLogger(), source, dest, archive.FormatZip, func(scratch string) error {
			data, err := os.ReadFile(filepath.Join(scratch, "note.txt"))
			require.NoError(t, err)
			assert.Equal(t, "Bob is here", string(data))
			return nil
		})
		require.NoError(t, err)

		entries := readZip(t, dest)
		assert.Contains(t, entries, "note.txt")
	})

	t.Run("tgz repack is readable", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		source := filepath.Join(dir, "data.zip")
		writeZip(t, source, map[string][]byte{"a.txt": []byte("x")})

		dest := filepath.Join(dir, "data.tar.gz")
		err := archive.Process(context.Background(), testLogger(), source, dest, archive.FormatTgz, func(string) error { return nil })
		require.NoError(t, err)
		assert.FileExists(t, dest)
	})
}

func TestFormats(t *testing.T) {
	t.Parallel()

	t.Run("archive detection by suffix", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{"a.zip", "a.ZIP", "a.gz", "a.gzip", "a.tgz", "a.tar.gz", "a.zst"} {
			assert.True(t, archive.IsArchive(name), name)
		}
		for _, name := range []string{"a.txt", "gz", "a.tar", "archive"} {
			assert.False(t, archive.IsArchive(name), name)
		}
	})

	t.Run("suffix replacement follows the repack format", func(t *testing.T) {
		t.Parallel()

		name, err := archive.ReplaceSuffix("logs.tgz", archive.FormatZip)
		require.NoError(t, err)
		assert.Equal(t, "logs.zip", name)

		name, err = archive.ReplaceSuffix("data.zip", archive.FormatTgz)
		require.NoError(t, err)
		assert.Equal(t, "data.tar.gz", name)

		_, err = archive.ReplaceSuffix("data.zip", "rar")
		assert.Error(t, err)
	})
}
