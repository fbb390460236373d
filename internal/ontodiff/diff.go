// Package ontodiff compares two parsed ontologies term by term.
package ontodiff

import (
	"slices"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/Sumatoshi-tech/obofang/pkg/obo"
)

// Markers delimiting removed and inserted runs in TextChange.Inline.
const (
	delOpen  = "[-"
	delClose = "-]"
	insOpen  = "{+"
	insClose = "+}"
)

// TextChange is a changed string attribute of one term.
type TextChange struct {
	ID  string `json:"id"  yaml:"id"`
	Old string `json:"old" yaml:"old"`
	New string `json:"new" yaml:"new"`
	// Inline marks the edit in place, e.g. "mito[-chondrion-]{+chondrial+} inheritance".
	Inline string `json:"inline" yaml:"inline"`
	// Inserted and Deleted count changed characters.
	Inserted int `json:"inserted" yaml:"inserted"`
	Deleted  int `json:"deleted"  yaml:"deleted"`
}

// Edge is a parent edge rendered as strings so edges from two parses compare.
type Edge struct {
	Relation string `json:"relation" yaml:"relation"`
	Target   string `json:"target"   yaml:"target"`
}

// ParentChange lists the parent edges gained and lost by one term.
type ParentChange struct {
	ID      string `json:"id"                yaml:"id"`
	Added   []Edge `json:"added,omitempty"   yaml:"added,omitempty"`
	Removed []Edge `json:"removed,omitempty" yaml:"removed,omitempty"`
}

// Merge records a term that disappeared because another term absorbed it
// and now lists its id as an alt_id.
type Merge struct {
	ID   string `json:"id"   yaml:"id"`
	Into string `json:"into" yaml:"into"`
}

// Diff is the difference from an old result set to a new one. Every list is
// sorted by term id.
type Diff struct {
	Added      []string       `json:"added,omitempty"       yaml:"added,omitempty"`
	Removed    []string       `json:"removed,omitempty"     yaml:"removed,omitempty"`
	Merged     []Merge        `json:"merged,omitempty"      yaml:"merged,omitempty"`
	Obsoleted  []string       `json:"obsoleted,omitempty"   yaml:"obsoleted,omitempty"`
	Renamed    []TextChange   `json:"renamed,omitempty"     yaml:"renamed,omitempty"`
	Redefined  []TextChange   `json:"redefined,omitempty"   yaml:"redefined,omitempty"`
	Moved      []TextChange   `json:"moved,omitempty"       yaml:"moved,omitempty"`
	Reparented []ParentChange `json:"reparented,omitempty"  yaml:"reparented,omitempty"`
}

// Empty reports whether the two sides were equivalent.
func (d *Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Merged) == 0 && len(d.Obsoleted) == 0 &&
		len(d.Renamed) == 0 && len(d.Redefined) == 0 && len(d.Moved) == 0 && len(d.Reparented) == 0
}

// Changed returns the number of terms present on both sides that differ.
func (d *Diff) Changed() int {
	ids := make(map[string]struct{})

	for _, id := range d.Obsoleted {
		ids[id] = struct{}{}
	}

	for _, group := range [][]TextChange{d.Renamed, d.Redefined, d.Moved} {
		for _, change := range group {
			ids[change.ID] = struct{}{}
		}
	}

	for _, change := range d.Reparented {
		ids[change.ID] = struct{}{}
	}

	return len(ids)
}

// Compare computes the diff from older to newer. Terms are matched by id
// text; definitions only differ when both parses kept them. A vanished id
// that a newer term carries as alt_id counts as merged, not removed.
func Compare(older, newer *obo.ResultSet) *Diff {
	dmp := diffmatchpatch.New()
	diff := &Diff{}

	absorbed := make(map[string]string)

	for term := range newer.Terms.All() {
		for _, alt := range term.Alternatives {
			absorbed[alt.String()] = term.ID.String()
		}
	}

	for term := range older.Terms.All() {
		id := term.ID.String()
		if _, ok := newer.Term(id); ok {
			continue
		}

		if into, ok := absorbed[id]; ok {
			diff.Merged = append(diff.Merged, Merge{ID: id, Into: into})
		} else {
			diff.Removed = append(diff.Removed, id)
		}
	}

	for term := range newer.Terms.All() {
		id := term.ID.String()

		old, ok := older.Term(id)
		if !ok {
			diff.Added = append(diff.Added, id)

			continue
		}

		if term.Obsolete && !old.Obsolete {
			diff.Obsoleted = append(diff.Obsoleted, id)
		}

		if old.Name != term.Name {
			diff.Renamed = append(diff.Renamed, textChange(dmp, id, old.Name, term.Name))
		}

		if old.Definition != term.Definition {
			diff.Redefined = append(diff.Redefined, textChange(dmp, id, old.Definition, term.Definition))
		}

		if old.NamespaceName() != term.NamespaceName() {
			diff.Moved = append(diff.Moved, textChange(dmp, id, old.NamespaceName(), term.NamespaceName()))
		}

		if change, changed := parentChange(id, old, term); changed {
			diff.Reparented = append(diff.Reparented, change)
		}
	}

	slices.Sort(diff.Added)
	slices.Sort(diff.Removed)
	slices.Sort(diff.Obsoleted)
	slices.SortFunc(diff.Merged, func(a, b Merge) int { return strings.Compare(a.ID, b.ID) })

	byID := func(a, b TextChange) int { return strings.Compare(a.ID, b.ID) }
	slices.SortFunc(diff.Renamed, byID)
	slices.SortFunc(diff.Redefined, byID)
	slices.SortFunc(diff.Moved, byID)
	slices.SortFunc(diff.Reparented, func(a, b ParentChange) int { return strings.Compare(a.ID, b.ID) })

	return diff
}

func textChange(dmp *diffmatchpatch.DiffMatchPatch, id, older, newer string) TextChange {
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(older, newer, false))

	change := TextChange{ID: id, Old: older, New: newer}

	var inline strings.Builder

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			change.Deleted += len([]rune(d.Text))
			inline.WriteString(delOpen + d.Text + delClose)
		case diffmatchpatch.DiffInsert:
			change.Inserted += len([]rune(d.Text))
			inline.WriteString(insOpen + d.Text + insClose)
		case diffmatchpatch.DiffEqual:
			inline.WriteString(d.Text)
		}
	}

	change.Inline = inline.String()

	return change
}

func parentChange(id string, older, newer *obo.Term) (ParentChange, bool) {
	oldEdges := edgeSet(older)
	newEdges := edgeSet(newer)

	change := ParentChange{ID: id}

	for _, edge := range edges(newer) {
		if _, ok := oldEdges[edge]; !ok {
			change.Added = append(change.Added, edge)
		}
	}

	for _, edge := range edges(older) {
		if _, ok := newEdges[edge]; !ok {
			change.Removed = append(change.Removed, edge)
		}
	}

	return change, len(change.Added) > 0 || len(change.Removed) > 0
}

func edges(term *obo.Term) []Edge {
	out := make([]Edge, 0, len(term.Parents))
	for _, parent := range term.Parents {
		out = append(out, Edge{Relation: parent.Relation.String(), Target: parent.ID.String()})
	}

	return out
}

func edgeSet(term *obo.Term) map[Edge]struct{} {
	set := make(map[Edge]struct{}, len(term.Parents))
	for _, edge := range edges(term) {
		set[edge] = struct{}{}
	}

	return set
}
