package persist

import (
	"bytes"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/Sumatoshi-tech/obofang/pkg/obo"
)

// Snapshot is a flat, serializable view of a parsed ontology. Pointers are
// replaced by id strings, so a Snapshot survives a round trip through any
// Codec.
type Snapshot struct {
	Path          string         `json:"path,omitempty"           yaml:"path,omitempty"`
	Compression   string         `json:"compression,omitempty"    yaml:"compression,omitempty"`
	FormatVersion string         `json:"format_version,omitempty" yaml:"format_version,omitempty"`
	Date          string         `json:"date,omitempty"           yaml:"date,omitempty"`
	Stats         SnapshotStats  `json:"stats"                    yaml:"stats"`
	Subsets       []SubsetRecord `json:"subsets,omitempty"        yaml:"subsets,omitempty"`
	Terms         []TermRecord   `json:"terms"                    yaml:"terms"`
}

// SnapshotStats mirrors obo.Stats with the elapsed time in milliseconds.
type SnapshotStats struct {
	Terms      int   `json:"terms"       yaml:"terms"`
	Relations  int   `json:"relations"   yaml:"relations"`
	Stanzas    int   `json:"stanzas"     yaml:"stanzas"`
	Typedefs   int   `json:"typedefs"    yaml:"typedefs"`
	Dropped    int   `json:"dropped"     yaml:"dropped"`
	Duplicates int   `json:"duplicates"  yaml:"duplicates"`
	Skipped    int   `json:"skipped"     yaml:"skipped"`
	Lines      int   `json:"lines"       yaml:"lines"`
	Bytes      int64 `json:"bytes"       yaml:"bytes"`
	ElapsedMS  int64 `json:"elapsed_ms"  yaml:"elapsed_ms"`
}

// SubsetRecord is a subsetdef declaration.
type SubsetRecord struct {
	Name        string `json:"name"                  yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// EdgeRecord is one parent edge.
type EdgeRecord struct {
	Relation string `json:"relation" yaml:"relation"`
	Target   string `json:"target"   yaml:"target"`
}

// XrefRecord is one cross-reference.
type XrefRecord struct {
	Database string `json:"db" yaml:"db"`
	ID       string `json:"id" yaml:"id"`
}

// TermRecord is one term with its references flattened to strings.
type TermRecord struct {
	ID            string       `json:"id"                      yaml:"id"`
	Name          string       `json:"name"                    yaml:"name"`
	Namespace     string       `json:"namespace,omitempty"     yaml:"namespace,omitempty"`
	Obsolete      bool         `json:"obsolete,omitempty"      yaml:"obsolete,omitempty"`
	Definition    string       `json:"definition,omitempty"    yaml:"definition,omitempty"`
	Parents       []EdgeRecord `json:"parents,omitempty"       yaml:"parents,omitempty"`
	AltIDs        []string     `json:"alt_ids,omitempty"       yaml:"alt_ids,omitempty"`
	Equivalents   []string     `json:"equivalents,omitempty"   yaml:"equivalents,omitempty"`
	Synonyms      []string     `json:"synonyms,omitempty"      yaml:"synonyms,omitempty"`
	Intersections []string     `json:"intersections,omitempty" yaml:"intersections,omitempty"`
	Subsets       []string     `json:"subsets,omitempty"       yaml:"subsets,omitempty"`
	Xrefs         []XrefRecord `json:"xrefs,omitempty"         yaml:"xrefs,omitempty"`
}

// NewSnapshot flattens rs. Terms keep result set order; subsets are sorted
// by name.
func NewSnapshot(rs *obo.ResultSet) *Snapshot {
	snap := &Snapshot{
		Path:          rs.Path,
		Compression:   rs.Compression,
		FormatVersion: rs.FormatVersion,
		Date:          rs.Date,
		Stats: SnapshotStats{
			Terms:      rs.Stats.Terms,
			Relations:  rs.Stats.Relations,
			Stanzas:    rs.Stats.Stanzas,
			Typedefs:   rs.Stats.Typedefs,
			Dropped:    rs.Stats.Dropped,
			Duplicates: rs.Stats.Duplicates,
			Skipped:    rs.Stats.Skipped,
			Lines:      rs.Stats.Lines,
			Bytes:      rs.Stats.Bytes,
			ElapsedMS:  rs.Stats.Elapsed.Milliseconds(),
		},
		Terms: make([]TermRecord, 0, rs.Terms.Len()),
	}

	for _, name := range slices.Sorted(maps.Keys(rs.Subsets)) {
		subset := rs.Subsets[name]
		snap.Subsets = append(snap.Subsets, SubsetRecord{Name: subset.Name, Description: subset.Description})
	}

	for term := range rs.Terms.All() {
		snap.Terms = append(snap.Terms, newTermRecord(term))
	}

	return snap
}

func newTermRecord(term *obo.Term) TermRecord {
	record := TermRecord{
		ID:            term.ID.String(),
		Name:          term.Name,
		Namespace:     term.NamespaceName(),
		Obsolete:      term.Obsolete,
		Definition:    term.Definition,
		AltIDs:        idStrings(term.Alternatives),
		Equivalents:   idStrings(term.Equivalents),
		Synonyms:      term.Synonyms,
		Intersections: term.Intersections,
	}

	for _, edge := range term.Parents {
		record.Parents = append(record.Parents, EdgeRecord{Relation: edge.Relation.String(), Target: edge.ID.String()})
	}

	for _, subset := range term.Subsets {
		record.Subsets = append(record.Subsets, subset.Name)
	}

	for _, xref := range term.Xrefs {
		record.Xrefs = append(record.Xrefs, XrefRecord{Database: xref.Database, ID: xref.ID})
	}

	return record
}

func idStrings(ids []*obo.TermID) []string {
	if len(ids) == 0 {
		return nil
	}

	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}

	return out
}

// Export writes a snapshot of rs to path, choosing the codec by extension.
func Export(path string, rs *obo.ResultSet) error {
	return SaveState(path, CodecForPath(path), NewSnapshot(rs))
}

// LoadSnapshot reads a snapshot previously written by Export. JSON input is
// validated against the embedded schema before decoding.
func LoadSnapshot(path string) (*Snapshot, error) {
	var snap Snapshot

	codec := CodecForPath(path)
	if codec.Extension() != jsonExtension {
		err := LoadState(path, codec, &snap)
		if err != nil {
			return nil, err
		}

		return &snap, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open state file: %w", err)
	}

	err = ValidateSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	err = codec.Decode(bytes.NewReader(data), &snap)
	if err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}

	return &snap, nil
}
