package obo_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/obofang/pkg/obo"
)

const miniPath = "testdata/mini.obo"

func gzipCopy(t *testing.T, path string) string {
	t.Helper()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "mini.obo.gz")

	file, err := os.Create(out)
	require.NoError(t, err)

	writer := gzip.NewWriter(file)

	_, err = writer.Write(raw)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	require.NoError(t, file.Close())

	return out
}

func TestParseFile_Mini(t *testing.T) {
	t.Parallel()

	rs, err := obo.ParseFile(context.Background(), miniPath, obo.Config{Flags: obo.KeepDefinitions | obo.KeepXrefs})
	require.NoError(t, err)

	assert.Equal(t, miniPath, rs.Path)
	assert.Equal(t, "1.2", rs.FormatVersion)
	assert.Equal(t, "17:01:2024 12:00", rs.Date)
	assert.Equal(t, 7, rs.Terms.Len())
	assert.Equal(t, 2, rs.Stats.Typedefs)
	assert.Equal(t, 11, rs.Stats.Relations)
	assert.Len(t, rs.Subsets, 2)
	assert.Len(t, rs.Namespaces, 3)

	complexTerm := mustTerm(t, rs, "GO:0000015")
	assert.Equal(t, "cellular_component", complexTerm.NamespaceName())
	assert.Equal(t, "A multimeric enzyme complex, usually a dimer or an octamer, that catalyzes the conversion of "+
		"2-phospho-D-glycerate to phosphoenolpyruvate and water.", complexTerm.Definition)
	assert.Equal(t, []string{"enolase complex"}, complexTerm.Synonyms)
	assert.Equal(t, []obo.Xref{{Database: "Wikipedia", ID: "Enolase"}}, complexTerm.Xrefs)
	require.Len(t, complexTerm.Subsets, 1)
	assert.Equal(t, "goslim_generic", complexTerm.Subsets[0].Name)
	assert.Equal(t, []*obo.TermID{mustID(t, rs, "GO:0005829")}, complexTerm.ParentsOf(obo.RelationPartOf))

	recombination := mustID(t, rs, "GO:0006310")
	assert.Same(t, recombination, mustTerm(t, rs, "GO:0000018").ParentsOf(obo.RelationRegulates)[0])
	assert.Same(t, recombination, mustTerm(t, rs, "GO:0000020").ParentsOf(obo.RelationNegativelyRegulates)[0])
	assert.True(t, mustTerm(t, rs, "GO:0000020").Obsolete)
	assert.Equal(t, "GO:0000019", mustTerm(t, rs, "GO:0000018").Alternatives[0].String())
}

func mustID(t *testing.T, rs *obo.ResultSet, text string) *obo.TermID {
	t.Helper()

	id, ok := rs.TermID(text)
	require.True(t, ok, "id %s not interned", text)

	return id
}

func TestParseFile_GzipMatchesPlain(t *testing.T) {
	t.Parallel()

	plain, err := obo.ParseFile(context.Background(), miniPath, obo.Config{})
	require.NoError(t, err)

	observer := &recordingObserver{}

	compressedPath := gzipCopy(t, miniPath)
	compressed, err := obo.ParseFile(context.Background(), compressedPath, obo.Config{Observer: observer})
	require.NoError(t, err)

	assert.Equal(t, plain.Terms.Len(), compressed.Terms.Len())
	assert.Equal(t, plain.Stats.Relations, compressed.Stats.Relations)

	for term := range plain.Terms.All() {
		other := mustTerm(t, compressed, term.ID.String())
		assert.Equal(t, term.Name, other.Name)
	}

	info, err := os.Stat(compressedPath)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), observer.total)

	last := observer.updates[len(observer.updates)-1]
	assert.Equal(t, info.Size(), last[0])
	assert.Equal(t, int64(7), last[1])
}

func TestParseFile_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := obo.ParseFile(context.Background(), filepath.Join(t.TempDir(), "absent.obo"), obo.Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
