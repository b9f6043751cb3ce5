// Unless explicitly stated otherwise all files in this repository are licensed under the Apache-2 License.

package archive

import "fmt"

// Error is returned when an archive cannot be unpacked or repacked. The
// walker reports it and skips the offending entry; sibling entries are still
// processed.
type Error struct {
	Path string
	Op   string
	Err  error
}

// Error describes which archive operation failed and on what path.
func (e *Error) Error() string {
	return fmt.Sprintf("archive %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}
