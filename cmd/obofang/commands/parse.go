package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Sumatoshi-tech/obofang/internal/progress"
	"github.com/Sumatoshi-tech/obofang/internal/report"
	"github.com/Sumatoshi-tech/obofang/pkg/config"
	"github.com/Sumatoshi-tech/obofang/pkg/obo"
	"github.com/Sumatoshi-tech/obofang/pkg/observability"
	"github.com/Sumatoshi-tech/obofang/pkg/persist"
)

// Sentinel errors for parse command usage.
var (
	// ErrInvalidJobs is returned for a non-positive --jobs value.
	ErrInvalidJobs = errors.New("jobs must be positive")
	// ErrExportCollision is returned when two inputs would export to the same file.
	ErrExportCollision = errors.New("export name collision")
)

// ParseCommand holds the flags of `obofang parse`.
type ParseCommand struct {
	format        string
	export        string
	metricsFile   string
	jobs          int
	definitions   bool
	xrefs         bool
	intersections bool
	nameFromID    bool
	noSynonyms    bool
	silent        bool
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	pc := &ParseCommand{}

	cmd := &cobra.Command{
		Use:   "parse <file>...",
		Short: "Parse ontology files and print a summary",
		Long: `Parse one or more OBO files. Compression (gzip, zstd, lz4) is detected
from the file content. With several files, --jobs parses them concurrently.`,
		Args: cobra.MinimumNArgs(1),
		RunE: pc.run,
	}

	cmd.Flags().BoolVar(&pc.definitions, "definitions", false, "keep term definitions")
	cmd.Flags().BoolVar(&pc.xrefs, "xrefs", false, "keep cross-references")
	cmd.Flags().BoolVar(&pc.intersections, "intersections", false, "keep intersection_of values")
	cmd.Flags().BoolVar(&pc.nameFromID, "name-from-id", false, "use the id as the initial name of every term")
	cmd.Flags().BoolVar(&pc.noSynonyms, "no-synonyms", false, "skip synonym lines")
	cmd.Flags().StringVarP(&pc.format, "format", "f", config.FormatText, "output format: text, json, yaml")
	cmd.Flags().StringVarP(&pc.export, "export", "o", "",
		"write a snapshot to this file (.json or .yaml); a directory when parsing several files")
	cmd.Flags().StringVar(&pc.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")
	cmd.Flags().BoolVar(&pc.silent, "silent", false, "disable progress output")
	cmd.Flags().IntVarP(&pc.jobs, "jobs", "j", 1, "files parsed concurrently")

	return cmd
}

// applyFlags overlays explicitly set flags on the loaded configuration.
func (pc *ParseCommand) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	overlay := func(name string, dst *bool, value bool) {
		if flags.Changed(name) {
			*dst = value
		}
	}

	overlay("definitions", &cfg.Parser.KeepDefinitions, pc.definitions)
	overlay("xrefs", &cfg.Parser.KeepXrefs, pc.xrefs)
	overlay("intersections", &cfg.Parser.KeepIntersections, pc.intersections)
	overlay("name-from-id", &cfg.Parser.NameFromID, pc.nameFromID)
	overlay("no-synonyms", &cfg.Parser.IgnoreSynonyms, pc.noSynonyms)

	if flags.Changed("format") {
		cfg.Output.Format = strings.ToLower(pc.format)
	}

	if flags.Changed("metrics-file") {
		cfg.Telemetry.MetricsFile = pc.metricsFile
	}
}

func (pc *ParseCommand) run(cmd *cobra.Command, files []string) (err error) {
	if pc.jobs <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidJobs, pc.jobs)
	}

	mode := observability.ModeCLI
	if len(files) > 1 {
		mode = observability.ModeBatch
	}

	sess, err := setup(cmd, mode, func(cfg *config.Config) { pc.applyFlags(cmd, cfg) })
	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, sess.shutdown(cmd.Context()))
	}()

	results, err := pc.parseAll(cmd.Context(), cmd.ErrOrStderr(), sess, files)
	if err != nil {
		return err
	}

	if pc.export != "" {
		err = pc.exportAll(results)
		if err != nil {
			return err
		}
	}

	return pc.render(cmd.OutOrStdout(), sess, results)
}

// parseAll parses files in argument order, up to pc.jobs at a time. The
// in-place progress bar is drawn only when files are parsed one at a time.
func (pc *ParseCommand) parseAll(
	ctx context.Context, stderr io.Writer, sess *session, files []string,
) ([]*obo.ResultSet, error) {
	results := make([]*obo.ResultSet, len(files))
	showBar := !pc.silent && (pc.jobs == 1 || len(files) == 1)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(pc.jobs)

	for i, path := range files {
		group.Go(func() error {
			var bar *progress.Bar
			if showBar {
				bar = progress.NewBar(stderr, progress.Options{Label: filepath.Base(path), NoColor: sess.noColor})
			}

			rs, err := sess.parseFile(groupCtx, path, bar)
			if err != nil {
				return err
			}

			if !pc.silent && !showBar {
				fmt.Fprintf(stderr, "parsed %s: %d terms\n", path, rs.Terms.Len())
			}

			results[i] = rs

			return nil
		})
	}

	err := group.Wait()
	if err != nil {
		return nil, err //nolint:wrapcheck // parseFile errors carry the path.
	}

	return results, nil
}

// parseFile parses one file, recording metrics and drawing bar if non-nil.
func (s *session) parseFile(ctx context.Context, path string, bar *progress.Bar) (*obo.ResultSet, error) {
	parserCfg := obo.Config{
		Flags:            s.cfg.ParserFlags(),
		ProgressInterval: s.cfg.Parser.ProgressInterval,
		Logger:           s.logger(),
		Tracer:           s.providers.Tracer,
	}

	if bar != nil {
		parserCfg.Observer = bar
	}

	start := time.Now()

	rs, err := obo.ParseFile(ctx, path, parserCfg)
	if err != nil {
		s.metrics.RecordFailure(ctx, time.Since(start))

		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if bar != nil {
		bar.Finish()
	}

	s.metrics.RecordSuccess(ctx, rs.Compression, rs.Stats)

	return rs, nil
}

func (pc *ParseCommand) exportAll(results []*obo.ResultSet) error {
	if len(results) == 1 {
		return exportOne(pc.export, results[0])
	}

	targets := make([]string, len(results))
	owners := make(map[string]string, len(results))

	for i, rs := range results {
		name := strings.TrimSuffix(filepath.Base(rs.Path), filepath.Ext(rs.Path)) + ".json"
		if owner, taken := owners[name]; taken {
			return fmt.Errorf("%w: %s and %s both export to %s", ErrExportCollision, owner, rs.Path, name)
		}

		owners[name] = rs.Path
		targets[i] = filepath.Join(pc.export, name)
	}

	err := os.MkdirAll(pc.export, 0o750)
	if err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	for i, rs := range results {
		err = exportOne(targets[i], rs)
		if err != nil {
			return err
		}
	}

	return nil
}

func exportOne(path string, rs *obo.ResultSet) error {
	err := persist.Export(path, rs)
	if err != nil {
		return fmt.Errorf("export %s: %w", rs.Path, err)
	}

	return nil
}

func (pc *ParseCommand) render(out io.Writer, sess *session, results []*obo.ResultSet) error {
	if sess.cfg.Output.Format == config.FormatText {
		reportCfg := report.Config{TopNamespaces: sess.cfg.Output.TopNamespaces, NoColor: sess.noColor}

		for _, rs := range results {
			err := report.WriteResult(out, rs, reportCfg)
			if err != nil {
				return fmt.Errorf("render %s: %w", rs.Path, err)
			}
		}

		return nil
	}

	codec, err := persist.CodecFor(sess.cfg.Output.Format)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	snapshots := make([]*persist.Snapshot, len(results))
	for i, rs := range results {
		snapshots[i] = persist.NewSnapshot(rs)
	}

	var payload any = snapshots
	if len(snapshots) == 1 {
		payload = snapshots[0]
	}

	err = codec.Encode(out, payload)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	return nil
}
