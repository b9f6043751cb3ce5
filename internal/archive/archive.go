// Unless explicitly stated otherwise all files in this repository are licensed under the Apache-2 License.

// Package archive unpacks supported archives into a scratch directory, lets
// the substitution engine run over the extracted tree, and repacks the
// result. Archives nested inside archives are handled by the engine
// recursing back into this package; depth is bounded only by disk and the
// walker's recursion cap.
package archive

import (
	// stdlib
	"context"
	"os"

	// 3p
	log "github.com/sirupsen/logrus"
)

// Process extracts source into an exclusively-owned scratch directory, runs
// the engine callback over it in place, and repacks the result to dest in
// the given format. The scratch directory is always released before Process
// returns, on failure paths included.
func Process(ctx context.Context, logger *log.Entry, source, dest, format string, run func(scratch string) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	scratch, err := os.MkdirTemp("", "treescrub-*")
	if err != nil {
		return &Error{Path: source, Op: "scratch", Err: err}
	}
	defer os.RemoveAll(scratch)

	if err := unpack(source, scratch); err != nil {
		return &Error{Path: source, Op: "unpack", Err: err}
	}
	logger.WithField("archive", source).Debug("Unpacked archive")

	if err := run(scratch); err != nil {
		return err
	}

	if err := pack(scratch, dest, format); err != nil {
		return &Error{Path: dest, Op: "repack", Err: err}
	}
	logger.WithField("archive", dest).Debug("Repacked archive")

	return nil
}
