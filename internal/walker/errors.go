// Unless explicitly stated otherwise all files in this repository are licensed under the Apache-2 License.

package walker

import "errors"

var (
	// ErrTargetInsideSource is returned when the destination directory is a
	// descendant of the source path, which would make the walk copy its own
	// output forever.
	ErrTargetInsideSource = errors.New("target path is inside the source path")

	// ErrMaxDepth is returned when a walk descends past the defensive
	// recursion cap.
	ErrMaxDepth = errors.New("maximum traversal depth exceeded")
)
