// Unless explicitly stated otherwise all files in this repository are licensed under the Apache-2 License.

package mapping

import "errors"

var (
	// ErrEmptyMapping is returned when a mapping has no pairs to compile.
	ErrEmptyMapping = errors.New("mapping contains no pairs")

	// ErrFuncWithoutPattern is returned when a replacement function is
	// supplied without a unifying pattern to drive it.
	ErrFuncWithoutPattern = errors.New("a replacement function requires a unifying pattern")

	// ErrBoundaryConflict is returned when word-boundary mode is requested
	// for a regex key that already carries its own anchors.
	ErrBoundaryConflict = errors.New("regex key is already anchored and cannot be wrapped in word boundaries")
)
