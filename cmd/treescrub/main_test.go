// Unless explicitly stated otherwise all files in this repository are licensed under the Apache-2 License.

package main

import (
	// stdlib
	"os"
	"path/filepath"
	"strings"
	"testing"

	// 3p
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	t.Run("substitutes a tree end to end", func(t *testing.T) {
		dir := t.TempDir()
		mappingFile := filepath.Join(dir, "mapping.csv")
		require.NoError(t, os.WriteFile(mappingFile, []byte("key,replacement\nBob,P1\n"), 0o644))

		source := filepath.Join(dir, "input")
		require.NoError(t, os.MkdirAll(source, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(source, "Bob.txt"), []byte("Bob was here"), 0o644))
		target := filepath.Join(dir, "out")

		cmd := newRootCmd()
		cmd.SetArgs([]string{"-m", mappingFile, "-t", target, source})
		require.NoError(t, cmd.Execute())

		data, err := os.ReadFile(filepath.Join(target, "input", "P1.txt"))
		require.NoError(t, err)
		assert.Equal(t, "P1 was here", string(data))
	})

	t.Run("scrub-dates adds a timestamp pass", func(t *testing.T) {
		dir := t.TempDir()
		mappingFile := filepath.Join(dir, "mapping.csv")
		require.NoError(t, os.WriteFile(mappingFile, []byte("key,replacement\nBob,P1\n"), 0o644))

		source := filepath.Join(dir, "note.txt")
		require.NoError(t, os.WriteFile(source, []byte("Bob wrote this on 2021-06-15"), 0o644))
		target := filepath.Join(dir, "out")

		cmd := newRootCmd()
		cmd.SetArgs([]string{"-m", mappingFile, "-t", target, "--scrub-dates", source})
		require.NoError(t, cmd.Execute())

		data, err := os.ReadFile(filepath.Join(target, "note.txt"))
		require.NoError(t, err)
		assert.Equal(t, "P1 wrote this on 1970-01-01", string(data))
	})

	t.Run("dynamic mode mints pseudonyms and records the table", func(t *testing.T) {
		dir := t.TempDir()
		source := filepath.Join(dir, "chat.txt")
		require.NoError(t, os.WriteFile(source, []byte("user7 met user9, then user7 left"), 0o644))
		target := filepath.Join(dir, "out")
		table := filepath.Join(dir, "table.csv")

		cmd := newRootCmd()
		cmd.SetArgs([]string{"--dynamic", "--pattern", `user\d+`, "--table", table, "-t", target, source})
		require.NoError(t, cmd.Execute())

		data, err := os.ReadFile(filepath.Join(target, "chat.txt"))
		require.NoError(t, err)
		assert.NotContains(t, string(data), "user7")
		assert.NotContains(t, string(data), "user9")

		tableData, err := os.ReadFile(table)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(tableData)), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "original,pseudonym", lines[0])
		assert.True(t, strings.HasPrefix(lines[1], "user7,"))
		assert.True(t, strings.HasPrefix(lines[2], "user9,"))
	})

	t.Run("latin1 flag registers the legacy codec", func(t *testing.T) {
		dir := t.TempDir()
		mappingFile := filepath.Join(dir, "mapping.csv")
		require.NoError(t, os.WriteFile(mappingFile, []byte("key,replacement\ncafé,coffee\n"), 0o644))

		source := filepath.Join(dir, "menu.l1")
		require.NoError(t, os.WriteFile(source, []byte("one caf\xe9 please"), 0o644))
		target := filepath.Join(dir, "out")

		cmd := newRootCmd()
		cmd.SetArgs([]string{"-m", mappingFile, "-t", target, "--latin1", ".l1", source})
		require.NoError(t, cmd.Execute())

		data, err := os.ReadFile(filepath.Join(target, "menu.l1"))
		require.NoError(t, err)
		assert.Equal(t, "one coffee please", string(data))
	})

	t.Run("dynamic mode without a pattern fails", func(t *testing.T) {
		cmd := newRootCmd()
		cmd.SetArgs([]string{"--dynamic", t.TempDir()})
		assert.Error(t, cmd.Execute())
	})

	t.Run("table flag without dynamic mode fails", func(t *testing.T) {
		dir := t.TempDir()
		mappingFile := filepath.Join(dir, "mapping.csv")
		require.NoError(t, os.WriteFile(mappingFile, []byte("key,replacement\nBob,P1\n"), 0o644))

		cmd := newRootCmd()
		cmd.SetArgs([]string{"-m", mappingFile, "--table", filepath.Join(dir, "t.csv"), dir})
		assert.Error(t, cmd.Execute())
	})

	t.Run("neither mapping nor dynamic fails", func(t *testing.T) {
		cmd := newRootCmd()
		cmd.SetArgs([]string{t.TempDir()})
		assert.Error(t, cmd.Execute())
	})

	t.Run("missing mapping file fails", func(t *testing.T) {
		cmd := newRootCmd()
		cmd.SetArgs([]string{"-m", filepath.Join(t.TempDir(), "absent.csv"), t.TempDir()})
		assert.Error(t, cmd.Execute())
	})

	t.Run("unsupported archive format fails", func(t *testing.T) {
		dir := t.TempDir()
		mappingFile := filepath.Join(dir, "mapping.csv")
		require.NoError(t, os.WriteFile(mappingFile, []byte("key,replacement\nBob,P1\n"), 0o644))

		cmd := newRootCmd()
		cmd.SetArgs([]string{"-m", mappingFile, "--archive-format", "rar", dir})
		assert.Error(t, cmd.Execute())
	})
}
