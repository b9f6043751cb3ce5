// Unless explicitly stated otherwise all files in this repository are licensed under the Apache-2 License.

package pseudonym

import (
	// stdlib
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// WriteTable dumps the translation table to a two-column CSV file with an
// `original,pseudonym` header. An existing file at that path is backed up
// first with a timestamp suffix instead of being overwritten; the mapping
// back to real identifiers is the one artifact this tool must never lose.
func (r *Registry) WriteTable(path string) error {
	entries := r.Table()
	if len(entries) == 0 {
		r.logger.Info("No pseudonyms recorded, nothing to write")
		return nil
	}

	if err := backupExisting(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating translation table: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"original", "pseudonym"}); err != nil {
		return err
	}
	for _, entry := range entries {
		if err := writer.Write([]string{entry.Original, entry.Pseudonym}); err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	r.logger.WithField("count", len(entries)).Infof("Wrote translation table to %s", path)
	return nil
}

// backupExisting moves a previous table out of the way, picking a timestamped
// name that does not collide with an earlier backup.
func backupExisting(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)

	stamp := time.Now().Format("2006-01-02-150405")
	backup := fmt.Sprintf("%s--%s%s", base, stamp, ext)
	for i := 2; ; i++ {
		if _, err := os.Stat(backup); err != nil {
			break
		}
		backup = fmt.Sprintf("%s--%s-%d%s", base, stamp, i, ext)
	}
	return os.Rename(path, backup)
}
