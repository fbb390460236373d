package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Sumatoshi-tech/obofang/internal/ontodiff"
	"github.com/Sumatoshi-tech/obofang/internal/report"
	"github.com/Sumatoshi-tech/obofang/pkg/config"
	"github.com/Sumatoshi-tech/obofang/pkg/obo"
	"github.com/Sumatoshi-tech/obofang/pkg/observability"
	"github.com/Sumatoshi-tech/obofang/pkg/persist"
)

// ErrDifferent is returned by `diff --exit-code` when the ontologies differ.
var ErrDifferent = errors.New("ontologies differ")

// DiffCommand holds the flags of `obofang diff`.
type DiffCommand struct {
	format      string
	definitions bool
	exitCode    bool
}

// NewDiffCommand creates the diff command.
func NewDiffCommand() *cobra.Command {
	dc := &DiffCommand{}

	cmd := &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Compare two ontology files",
		Long: `Report terms added, removed, obsoleted, renamed or moved between two
releases of an ontology, and changes to their parent edges.`,
		Args: cobra.ExactArgs(2),
		RunE: dc.run,
	}

	cmd.Flags().StringVarP(&dc.format, "format", "f", config.FormatText, "output format: text, json, yaml")
	cmd.Flags().BoolVar(&dc.definitions, "definitions", true, "compare term definitions")
	cmd.Flags().BoolVar(&dc.exitCode, "exit-code", false, "fail when the ontologies differ")

	return cmd
}

func (dc *DiffCommand) run(cmd *cobra.Command, args []string) (err error) {
	sess, err := setup(cmd, observability.ModeCLI, func(cfg *config.Config) {
		cfg.Parser.KeepDefinitions = dc.definitions
		if cmd.Flags().Changed("format") {
			cfg.Output.Format = strings.ToLower(dc.format)
		}
	})
	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, sess.shutdown(cmd.Context()))
	}()

	var sides [2]*obo.ResultSet

	group, ctx := errgroup.WithContext(cmd.Context())

	for i, path := range args {
		group.Go(func() error {
			rs, parseErr := sess.parseFile(ctx, path, nil)
			sides[i] = rs

			return parseErr
		})
	}

	err = group.Wait()
	if err != nil {
		return err //nolint:wrapcheck // parseFile errors carry the path.
	}

	diff := ontodiff.Compare(sides[0], sides[1])

	err = dc.render(cmd, sess, args, diff)
	if err != nil {
		return err
	}

	if dc.exitCode && !diff.Empty() {
		return ErrDifferent
	}

	return nil
}

func (dc *DiffCommand) render(cmd *cobra.Command, sess *session, args []string, diff *ontodiff.Diff) error {
	out := cmd.OutOrStdout()

	if sess.cfg.Output.Format == config.FormatText {
		return report.WriteDiff(out, args[0], args[1], diff, report.Config{NoColor: sess.noColor}) //nolint:wrapcheck // already wrapped.
	}

	codec, err := persist.CodecFor(sess.cfg.Output.Format)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	err = codec.Encode(out, diff)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	return nil
}
