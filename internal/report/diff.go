package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/obofang/internal/ontodiff"
	"github.com/Sumatoshi-tech/obofang/pkg/units"
)

// WriteDiff renders diff between the files at olderPath and newerPath.
func WriteDiff(w io.Writer, olderPath, newerPath string, diff *ontodiff.Diff, cfg Config) error {
	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)
	heading := newHeading(cfg)

	if cfg.NoColor {
		added.DisableColor()
		removed.DisableColor()
	} else {
		added.EnableColor()
		removed.EnableColor()
	}

	var out strings.Builder

	fmt.Fprintf(&out, "%s %s\n%s %s\n\n", removed.Sprint("---"), olderPath, added.Sprint("+++"), newerPath)

	if diff.Empty() {
		out.WriteString("no differences\n")

		return write(w, out.String())
	}

	summary := newTable()
	summary.AppendRows([]table.Row{
		{"added", units.Count(len(diff.Added))},
		{"removed", units.Count(len(diff.Removed))},
		{"merged", units.Count(len(diff.Merged))},
		{"changed", units.Count(diff.Changed())},
	})
	fmt.Fprintf(&out, "%s\n\n", summary.Render())

	idList := func(title string, ids []string, mark string, c *color.Color) {
		if len(ids) == 0 {
			return
		}

		fmt.Fprintf(&out, "%s\n", heading.Sprint(title))

		for _, id := range ids {
			fmt.Fprintf(&out, "  %s %s\n", c.Sprint(mark), id)
		}

		out.WriteByte('\n')
	}

	changeList := func(title string, changes []ontodiff.TextChange) {
		if len(changes) == 0 {
			return
		}

		fmt.Fprintf(&out, "%s\n", heading.Sprint(title))

		for _, change := range changes {
			fmt.Fprintf(&out, "  %s: %s\n", change.ID, change.Inline)
		}

		out.WriteByte('\n')
	}

	idList("Added terms", diff.Added, "+", added)
	idList("Removed terms", diff.Removed, "-", removed)
	idList("Obsoleted terms", diff.Obsoleted, "~", removed)

	if len(diff.Merged) > 0 {
		fmt.Fprintf(&out, "%s\n", heading.Sprint("Merged terms"))

		for _, merge := range diff.Merged {
			fmt.Fprintf(&out, "  %s -> %s\n", merge.ID, merge.Into)
		}

		out.WriteByte('\n')
	}

	changeList("Renamed", diff.Renamed)
	changeList("Moved namespace", diff.Moved)
	changeList("Definitions", diff.Redefined)

	if len(diff.Reparented) > 0 {
		fmt.Fprintf(&out, "%s\n", heading.Sprint("Parents"))

		for _, change := range diff.Reparented {
			fmt.Fprintf(&out, "  %s\n", change.ID)

			for _, edge := range change.Added {
				fmt.Fprintf(&out, "    %s %s %s\n", added.Sprint("+"), edge.Relation, edge.Target)
			}

			for _, edge := range change.Removed {
				fmt.Fprintf(&out, "    %s %s %s\n", removed.Sprint("-"), edge.Relation, edge.Target)
			}
		}

		out.WriteByte('\n')
	}

	return write(w, out.String())
}

func write(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}
