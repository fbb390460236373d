// Package report renders parse results and ontology diffs for terminals.
package report

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Sumatoshi-tech/obofang/pkg/obo"
	"github.com/Sumatoshi-tech/obofang/pkg/units"
)

// noNamespace labels terms without a namespace line.
const noNamespace = "(none)"

// Config controls rendering.
type Config struct {
	// TopNamespaces limits the namespace table; zero shows all.
	TopNamespaces int
	// NoColor disables ANSI colors.
	NoColor bool
}

// NamespaceCount aggregates the terms of one namespace.
type NamespaceCount struct {
	Name      string
	Terms     int
	Obsolete  int
	Relations int
}

// CountNamespaces aggregates rs by namespace, largest first, ties by name.
func CountNamespaces(rs *obo.ResultSet) []NamespaceCount {
	byName := make(map[string]*NamespaceCount)

	for term := range rs.Terms.All() {
		name := term.NamespaceName()
		if name == "" {
			name = noNamespace
		}

		count, ok := byName[name]
		if !ok {
			count = &NamespaceCount{Name: name}
			byName[name] = count
		}

		count.Terms++
		count.Relations += len(term.Parents)

		if term.Obsolete {
			count.Obsolete++
		}
	}

	out := make([]NamespaceCount, 0, len(byName))
	for _, count := range byName {
		out = append(out, *count)
	}

	slices.SortFunc(out, func(a, b NamespaceCount) int {
		return cmp.Or(cmp.Compare(b.Terms, a.Terms), cmp.Compare(a.Name, b.Name))
	})

	return out
}

// CountRelations tallies parent edges by relation kind, in Relation order.
func CountRelations(rs *obo.ResultSet) map[obo.Relation]int {
	counts := make(map[obo.Relation]int)

	for term := range rs.Terms.All() {
		for _, edge := range term.Parents {
			counts[edge.Relation]++
		}
	}

	return counts
}

// WriteResult writes the summary, counters, relation and namespace tables.
func WriteResult(w io.Writer, rs *obo.ResultSet, cfg Config) error {
	heading := newHeading(cfg)

	_, err := fmt.Fprintf(w, "%s\n\n", rs.Summary())
	if err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	sections := []struct {
		title string
		body  string
	}{
		{"Statistics", statsTable(rs)},
		{"Relations", relationsTable(rs)},
		{"Namespaces", namespacesTable(rs, cfg.TopNamespaces)},
	}

	for _, section := range sections {
		_, err = fmt.Fprintf(w, "%s\n%s\n\n", heading.Sprint(section.title), section.body)
		if err != nil {
			return fmt.Errorf("write %s: %w", section.title, err)
		}
	}

	return nil
}

func newHeading(cfg Config) *color.Color {
	heading := color.New(color.Bold, color.FgCyan)
	if cfg.NoColor {
		heading.DisableColor()
	} else {
		heading.EnableColor()
	}

	return heading
}

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Format.Header = text.FormatDefault
	tbl.Style().Format.Footer = text.FormatDefault

	return tbl
}

func statsTable(rs *obo.ResultSet) string {
	stats := rs.Stats

	tbl := newTable()
	tbl.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	tbl.AppendRows([]table.Row{
		{"terms", units.Count(stats.Terms)},
		{"relations", units.Count(stats.Relations)},
		{"stanzas", units.Count(stats.Stanzas)},
		{"typedefs", units.Count(stats.Typedefs)},
		{"dropped", units.Count(stats.Dropped)},
		{"duplicates", units.Count(stats.Duplicates)},
		{"skipped", units.Count(stats.Skipped)},
		{"lines", units.Count(stats.Lines)},
		{"bytes", units.Bytes(stats.Bytes)},
		{"elapsed", stats.Elapsed.String()},
		{"throughput", units.Throughput(stats.Bytes, stats.Elapsed)},
	})

	return tbl.Render()
}

func relationsTable(rs *obo.ResultSet) string {
	counts := CountRelations(rs)

	tbl := newTable()
	tbl.AppendHeader(table.Row{"relation", "edges"})
	tbl.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})

	for rel := obo.RelationIsA; rel <= obo.RelationUnknown; rel++ {
		if counts[rel] > 0 {
			tbl.AppendRow(table.Row{rel.String(), units.Count(counts[rel])})
		}
	}

	return tbl.Render()
}

func namespacesTable(rs *obo.ResultSet, top int) string {
	counts := CountNamespaces(rs)
	total := len(counts)

	if top > 0 && len(counts) > top {
		counts = counts[:top]
	}

	tbl := newTable()
	tbl.AppendHeader(table.Row{"namespace", "terms", "obsolete", "relations"})
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	for _, count := range counts {
		tbl.AppendRow(table.Row{
			count.Name, units.Count(count.Terms), units.Count(count.Obsolete), units.Count(count.Relations),
		})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d namespaces", total)})

	return tbl.Render()
}
