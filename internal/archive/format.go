// Unless explicitly stated otherwise all files in this repository are licensed under the Apache-2 License.

package archive

import (
	// stdlib
	"fmt"
	"strings"
)

// Repack formats understood by Pack.
const (
	FormatZip = "zip"
	FormatTgz = "tgz"
)

// archiveSuffixes lists the recognized archive name endings, longest first
// so compound suffixes win over their tails.
var archiveSuffixes = []string{".tar.gz", ".tgz", ".zip", ".gzip", ".gz", ".zst"}

// IsArchive reports whether a file name carries a supported archive suffix.
// Detection is by extension only; content sniffing happens when the archive
// is opened.
func IsArchive(name string) bool {
	return suffix(name) != ""
}

// suffix returns the matching archive suffix of a name, or "".
func suffix(name string) string {
	lower := strings.ToLower(name)
	for _, s := range archiveSuffixes {
		if strings.HasSuffix(lower, s) {
			return s
		}
	}
	return ""
}

// Ext returns the file extension produced by repacking with a format.
func Ext(format string) (string, error) {
	switch format {
	case FormatZip:
		return ".zip", nil
	case FormatTgz:
		return ".tar.gz", nil
	default:
		return "", fmt.Errorf("unsupported archive format %q", format)
	}
}

// ReplaceSuffix swaps an archive name's suffix for the one produced by the
// repack format, so `logs.tgz` repacked as zip becomes `logs.zip`.
func ReplaceSuffix(name, format string) (string, error) {
	ext, err := Ext(format)
	if err != nil {
		return "", err
	}
	s := suffix(name)
	return name[:len(name)-len(s)] + ext, nil
}
