// Unless explicitly stated otherwise all files in this repository are licensed under the Apache-2 License.

// Package walker drives the substitution engine over a file-system tree. It
// mirrors the source structure into the destination, renames every matched
// path segment, substitutes the content of supported text files, and
// delegates archives to the archive package. A walk is single-threaded and
// depth-first; per-entry failures are logged and skipped so one bad entry
// never aborts its siblings.
package walker

import (
	// stdlib
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	// 3p
	log "github.com/sirupsen/logrus"

	// project
	"github.com/treescrub/treescrub/internal/archive"
	"github.com/treescrub/treescrub/internal/content"
	"github.com/treescrub/treescrub/internal/mapping"
	"github.com/treescrub/treescrub/internal/scrub"
)

// maxDepth caps traversal depth. The containment check on canonical paths
// already rejects a target nested inside the source, but a symlink created
// mid-walk could defeat it; past this depth the walk fails instead of
// looping.
const maxDepth = 256

// Walker applies compiled substitution rules to a tree. The rules and codec
// registry are read-only after construction, so one Walker may serve
// concurrent Substitute calls on disjoint trees.
type Walker struct {
	rules    scrub.Applier
	registry *content.Registry
	opts     mapping.Options
	logger   *log.Entry
}

// New creates a Walker. Rules is usually a compiled rule set, or a
// scrub.Chain when several substitution passes are stacked.
func New(rules scrub.Applier, registry *content.Registry, opts mapping.Options, logger *log.Entry) *Walker {
	return &Walker{
		rules:    rules,
		registry: registry,
		opts:     opts,
		logger:   logger,
	}
}

// Substitute processes source into target. Source may be a file, a
// directory, or an archive. An empty target selects overwrite mode: the
// source itself is replaced by the processed result. Otherwise target names
// a directory, created if absent, which must not be nested inside source.
func (w *Walker) Substitute(ctx context.Context, source, target string) error {
	source = filepath.Clean(source)
	if _, err := os.Lstat(source); err != nil {
		return fmt.Errorf("source path: %w", err)
	}

	overwrite := target == ""
	targetDir := filepath.Clean(target)
	if overwrite {
		targetDir = filepath.Dir(source)
	} else {
		if err := validateTarget(source, targetDir); err != nil {
			return err
		}
		if err := os.MkdirAll(targetDir, 0o755); err != nil {
			return fmt.Errorf("creating target directory: %w", err)
		}
	}

	return w.walk(ctx, source, targetDir, overwrite, 0)
}

// validateTarget rejects a target nested inside the source. Both paths are
// resolved to a canonical absolute form first so a symlinked target cannot
// sidestep the comparison.
func validateTarget(source, target string) error {
	src, err := canonical(source)
	if err != nil {
		return fmt.Errorf("resolving source path: %w", err)
	}
	dst, err := canonical(target)
	if err != nil {
		return fmt.Errorf("resolving target path: %w", err)
	}
	if dst == src || strings.HasPrefix(dst, src+string(os.PathSeparator)) {
		return fmt.Errorf("%s under %s: %w", target, source, ErrTargetInsideSource)
	}
	return nil
}

// canonical resolves a path to its absolute, symlink-free form. Components
// that do not exist yet (a target about to be created) are resolved against
// their deepest existing ancestor.
func canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	remainder := ""
	for current := abs; ; {
		resolved, err := filepath.EvalSymlinks(current)
		if err == nil {
			return filepath.Join(resolved, remainder), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(current)
		if parent == current {
			return abs, nil
		}
		remainder = filepath.Join(filepath.Base(current), remainder)
		current = parent
	}
}

func (w *Walker) walk(ctx context.Context, source, targetDir string, overwrite bool, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth > maxDepth {
		return fmt.Errorf("%s: %w", source, ErrMaxDepth)
	}

	info, err := os.Lstat(source)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return w.processDir(ctx, source, targetDir, overwrite, depth)
	}
	return w.processFile(ctx, source, targetDir, overwrite, depth)
}

// processDir renames or mirrors one directory, then walks its children.
// A failing child is logged and skipped; its siblings still run.
func (w *Walker) processDir(ctx context.Context, source, targetDir string, overwrite bool, depth int) error {
	dest := w.destPath(source, targetDir, overwrite)

	if overwrite {
		if dest != source {
			if err := os.Rename(source, dest); err != nil {
				return err
			}
		}
		source = dest
	} else {
		if err := os.MkdirAll(dest, 0o755); err != nil {
			return err
		}
	}

	entries, err := os.ReadDir(source)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		child := filepath.Join(source, entry.Name())
		if err := w.walk(ctx, child, dest, overwrite, depth+1); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			w.logger.WithError(err).WithField("path", child).Warning("Skipping entry")
		}
	}
	return nil
}

func (w *Walker) processFile(ctx context.Context, source, targetDir string, overwrite bool, depth int) error {
	name := filepath.Base(source)

	if archive.IsArchive(name) {
		return w.processArchive(ctx, source, targetDir, overwrite, depth)
	}
	if codec, ok := w.registry.Lookup(filepath.Ext(name)); ok {
		return w.processText(codec, source, targetDir, overwrite)
	}
	return w.processOther(source, targetDir, overwrite)
}

// processText substitutes the content and name of one supported text file.
// The whole output is computed, then written to a temporary file and renamed
// into place, so a mid-write failure never leaves a half-substituted file.
func (w *Walker) processText(codec content.Codec, source, targetDir string, overwrite bool) error {
	dest := w.destPath(source, targetDir, overwrite)

	lines, err := w.readLines(codec, source)
	if err != nil {
		return err
	}
	for i, line := range lines {
		lines[i] = w.rules.Apply(line)
	}

	if err := w.writeLines(codec, dest, lines); err != nil {
		return err
	}
	if overwrite && dest != source {
		return os.Remove(source)
	}
	return nil
}

func (w *Walker) readLines(codec content.Codec, source string) ([]string, error) {
	file, err := os.Open(source)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return codec.Decode(file)
}

func (w *Walker) writeLines(codec content.Codec, dest string, lines []string) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".treescrub-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := codec.Encode(tmp, lines); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dest)
}

// processArchive unpacks one archive, recurses the engine into the scratch
// tree in place, and repacks it under the matched name in the configured
// format.
func (w *Walker) processArchive(ctx context.Context, source, targetDir string, overwrite bool, depth int) error {
	name, err := archive.ReplaceSuffix(w.rules.Apply(filepath.Base(source)), w.opts.Format())
	if err != nil {
		return err
	}
	dest := disambiguate(filepath.Join(targetDir, name), source, overwrite)

	err = archive.Process(ctx, w.logger, source, dest, w.opts.Format(), func(scratch string) error {
		// Inside the scratch tree everything is processed in place,
		// regardless of the outer copy-vs-overwrite mode.
		entries, err := os.ReadDir(scratch)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			child := filepath.Join(scratch, entry.Name())
			if err := w.walk(ctx, child, scratch, true, depth+1); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				w.logger.WithError(err).WithField("path", child).Warning("Skipping archive entry")
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if overwrite && dest != source {
		return os.Remove(source)
	}
	return nil
}

// processOther moves or byte-copies a file the engine cannot decode. Only
// the name is substituted; the content passes through untouched.
func (w *Walker) processOther(source, targetDir string, overwrite bool) error {
	dest := w.destPath(source, targetDir, overwrite)
	if dest == source {
		return nil
	}
	if overwrite {
		return os.Rename(source, dest)
	}
	return copyFile(source, dest)
}

// destPath computes the destination path for one entry by substituting its
// base name, then disambiguating a copy that would land on its own source.
func (w *Walker) destPath(source, targetDir string, overwrite bool) string {
	dest := filepath.Join(targetDir, w.rules.Apply(filepath.Base(source)))
	return disambiguate(dest, source, overwrite)
}

// disambiguate appends a ".copy" marker before the extension when a
// copy-mode destination would clobber its identical source.
func disambiguate(dest, source string, overwrite bool) string {
	if overwrite || dest != source {
		return dest
	}
	ext := filepath.Ext(dest)
	return strings.TrimSuffix(dest, ext) + ".copy" + ext
}

func copyFile(source, dest string) error {
	info, err := os.Stat(source)
	if err != nil {
		return err
	}
	src, err := os.Open(source)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}
