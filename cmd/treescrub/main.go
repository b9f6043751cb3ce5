// Unless explicitly stated otherwise all files in this repository are licensed under the Apache-2 License.

package main

import (
	// stdlib
	"errors"
	"fmt"
	"os"

	// 3p
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	// project
	"github.com/treescrub/treescrub/internal/archive"
	"github.com/treescrub/treescrub/internal/content"
	"github.com/treescrub/treescrub/internal/dates"
	"github.com/treescrub/treescrub/internal/environment"
	"github.com/treescrub/treescrub/internal/mapping"
	"github.com/treescrub/treescrub/internal/pseudonym"
	"github.com/treescrub/treescrub/internal/scrub"
	"github.com/treescrub/treescrub/internal/walker"
)

var (
	mappingPath    string
	targetDir      string
	pattern        string
	ignoreCase     bool
	wordBoundaries bool
	archiveFormat  string
	logLevel       string
	scrubDates     bool
	dynamic        bool
	tablePath      string
	latin1Exts     []string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "treescrub -m mapping.csv [flags] SOURCE...",
		Short:        "Bulk pattern-driven string substitution across file trees and archives",
		Long:         `treescrub replaces every occurrence of the keywords in a mapping file across file contents, file names and directory names, recursing into zip and compressed archives. Without a target directory the sources are rewritten in place; with one, a substituted copy is produced.`,
		Args:         cobra.MinimumNArgs(1),
		RunE:         runTreescrub,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&mappingPath, "mapping", "m", "", "Path to the two-column CSV mapping file")
	rootCmd.Flags().StringVarP(&targetDir, "target", "t", "", "Destination directory, created if absent; empty rewrites sources in place")
	rootCmd.Flags().StringVar(&pattern, "pattern", "", "Unifying regex matching every mapping key, scanned in a single pass")
	rootCmd.Flags().BoolVar(&ignoreCase, "ignore-case", false, "Match keys case-insensitively")
	rootCmd.Flags().BoolVar(&wordBoundaries, "word-boundaries", false, "Only match keys flanked by non-word characters")
	rootCmd.Flags().StringVar(&archiveFormat, "archive-format", mapping.DefaultArchiveFormat, "Repack format for processed archives (zip, tgz)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error). Overrides TREESCRUB_LOG_LEVEL")
	rootCmd.Flags().BoolVar(&scrubDates, "scrub-dates", false, "Also rewrite timestamp-shaped strings to fixed epoch values")
	rootCmd.Flags().BoolVar(&dynamic, "dynamic", false, "Mint a pseudonym for every string matched by --pattern instead of reading a mapping file")
	rootCmd.Flags().StringVar(&tablePath, "table", "", "CSV file recording the minted pseudonyms (dynamic mode)")
	rootCmd.Flags().StringSliceVar(&latin1Exts, "latin1", nil, "File extensions decoded as ISO 8859-1 instead of UTF-8")

	rootCmd.MarkFlagsOneRequired("mapping", "dynamic")
	rootCmd.MarkFlagsMutuallyExclusive("mapping", "dynamic")
	return rootCmd
}

func runTreescrub(cmd *cobra.Command, args []string) error {
	logger, err := setupLogger()
	if err != nil {
		return err
	}

	opts := mapping.Options{
		IgnoreCase:     ignoreCase,
		WordBoundaries: wordBoundaries,
		ArchiveFormat:  archiveFormat,
	}
	if _, err := archive.Ext(opts.Format()); err != nil {
		return err
	}
	if tablePath != "" && !dynamic {
		return errors.New("--table only applies in --dynamic mode")
	}

	var registry *pseudonym.Registry
	var rules *scrub.RuleSet
	if dynamic {
		if pattern == "" {
			return errors.New("--dynamic requires --pattern to select what to pseudonymize")
		}
		registry = pseudonym.New(nil, logger)
		rules, err = mapping.CompileFunc(registry.ReplaceFunc(), pattern, opts, nil)
	} else {
		var pairs mapping.Mapping
		pairs, err = mapping.LoadCSV(mappingPath)
		if err != nil {
			return err
		}
		rules, err = mapping.Compile(pairs, pattern, opts)
	}
	if err != nil {
		return fmt.Errorf("compiling mapping: %w", err)
	}
	logger.WithField("rules", rules.Len()).Info("Compiled mapping")

	applier := scrub.Applier(rules)
	if scrubDates {
		applier = scrub.Chain{rules, dates.NewReplacer()}
	}

	codecs := content.NewRegistry()
	for _, ext := range latin1Exts {
		codecs.Register(ext, content.Latin1Codec{})
	}

	// The compiled rule set is read-only, so independent top-level sources
	// can run in parallel against the same Walker.
	w := walker.New(applier, codecs, opts, logger)
	eg, ctx := errgroup.WithContext(cmd.Context())
	for _, source := range args {
		source := source
		eg.Go(func() error {
			if err := w.Substitute(ctx, source, targetDir); err != nil {
				logger.WithError(err).Errorf("Failed to process %s", source)
				return err
			}
			logger.Infof("Finished processing %s", source)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	if registry != nil && tablePath != "" {
		return registry.WriteTable(tablePath)
	}
	return nil
}

func setupLogger() (*log.Entry, error) {
	log.SetFormatter(&log.JSONFormatter{})

	level := logLevel
	if level == "" {
		level = environment.Get(environment.LogLevel)
	}
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		log.SetLevel(parsed)
	}
	if environment.Enabled(environment.Debug) {
		log.SetLevel(log.DebugLevel)
	}

	return log.WithFields(log.Fields{"service": "treescrub"}), nil
}
