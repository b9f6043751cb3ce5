// Unless explicitly stated otherwise all files in this repository are licensed under the Apache-2 License.

// Package content decodes and encodes text files for the substitution
// engine. Codecs are dispatched by file extension; an extension without a
// registered codec means the file is copied byte for byte without decoding.
package content

import "io"

// Codec decodes a file into an ordered sequence of lines and encodes the
// (possibly modified) sequence back. Lines keep their terminators, so a
// decode followed by an encode of unmodified input reproduces the original
// bytes exactly. The engine's no-op guarantee depends on that round-trip.
//
//go:generate mockgen -package=mocks -source=$GOFILE -destination=mocks/mock_$GOFILE
type Codec interface {
	Decode(r io.Reader) ([]string, error)
	Encode(w io.Writer, lines []string) error
}
