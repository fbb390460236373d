package commands_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/obofang/cmd/obofang/commands"
	"github.com/Sumatoshi-tech/obofang/internal/ontodiff"
	"github.com/Sumatoshi-tech/obofang/pkg/persist"
)

const ontologyV1 = `format-version: 1.2
date: 17:01:2024 12:00

[Term]
id: GO:0000001
name: mitochondrion inheritance
namespace: biological_process
def: "The distribution of mitochondria into daughter cells." []
xref: Wikipedia:Mitochondrion
is_a: GO:0048308 ! organelle inheritance

[Term]
id: GO:0000002
name: mitochondrial genome maintenance
namespace: biological_process
is_a: GO:0007005

[Typedef]
id: part_of
name: part of
`

const ontologyV2 = `format-version: 1.4

[Term]
id: GO:0000001
name: mitochondrial inheritance
namespace: biological_process
is_a: GO:0048308

[Term]
id: GO:0000006
name: zinc transporter activity
namespace: molecular_function
`

type fixture struct {
	dir    string
	config string
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "obofang.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("logging:\n  level: error\n"), 0o600))

	return fixture{dir: dir, config: cfgPath}
}

func (f fixture) write(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(f.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func (f fixture) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	root := commands.NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append(args, "--config", f.config, "--no-color"))

	err := root.Execute()

	return stdout.String(), stderr.String(), err
}

func TestParse_TextSummary(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	path := f.write(t, "go.obo", ontologyV1)

	stdout, stderr, err := f.run(t, "parse", path)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Details of parsed obo file:")
	assert.Contains(t, stdout, "filename:\t\t"+path)
	assert.Contains(t, stdout, "term definitions:\t2")
	assert.Contains(t, stdout, "biological_process")
	assert.Contains(t, stderr, "go.obo")
	assert.Contains(t, stderr, "2 terms")
}

func TestParse_JSONWithFlags(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	path := f.write(t, "go.obo", ontologyV1)

	stdout, stderr, err := f.run(t, "parse", path, "--format", "json", "--definitions", "--xrefs", "--silent")
	require.NoError(t, err)
	assert.Empty(t, stderr)

	var snap persist.Snapshot
	require.NoError(t, json.Unmarshal([]byte(stdout), &snap))

	assert.Equal(t, "none", snap.Compression)
	assert.Equal(t, 2, snap.Stats.Terms)
	assert.Equal(t, 1, snap.Stats.Typedefs)
	require.Len(t, snap.Terms, 2)
	assert.Equal(t, "The distribution of mitochondria into daughter cells.", snap.Terms[0].Definition)
	assert.Equal(t, []persist.XrefRecord{{Database: "Wikipedia", ID: "Mitochondrion"}}, snap.Terms[0].Xrefs)
}

func TestParse_ZstdInput(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	encoder, err := zstd.NewWriter(nil)
	require.NoError(t, err)

	compressed := encoder.EncodeAll([]byte(ontologyV1), nil)
	require.NoError(t, encoder.Close())

	path := f.write(t, "go.obo.zst", string(compressed))

	stdout, _, err := f.run(t, "parse", path, "--format", "yaml", "--silent")
	require.NoError(t, err)

	var snap persist.Snapshot
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &snap))

	assert.Equal(t, "zstd", snap.Compression)
	assert.Equal(t, 2, snap.Stats.Terms)
}

func TestParse_MultipleFilesConcurrently(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	first := f.write(t, "v1.obo", ontologyV1)
	second := f.write(t, "v2.obo", ontologyV2)
	exportDir := filepath.Join(f.dir, "export")

	stdout, stderr, err := f.run(t, "parse", first, second, "--jobs", "2", "--format", "json", "--export", exportDir)
	require.NoError(t, err)

	var snaps []persist.Snapshot
	require.NoError(t, json.Unmarshal([]byte(stdout), &snaps))
	require.Len(t, snaps, 2)
	assert.Equal(t, first, snaps[0].Path)
	assert.Equal(t, second, snaps[1].Path)

	assert.Contains(t, stderr, "parsed "+first+": 2 terms")

	for _, name := range []string{"v1.json", "v2.json"} {
		snap, loadErr := persist.LoadSnapshot(filepath.Join(exportDir, name))
		require.NoError(t, loadErr)
		assert.Equal(t, 2, snap.Stats.Terms)
	}
}

func TestParse_ExportRejectsNameCollision(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	require.NoError(t, os.MkdirAll(filepath.Join(f.dir, "a"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(f.dir, "b"), 0o750))

	first := f.write(t, filepath.Join("a", "go.obo"), ontologyV1)
	second := f.write(t, filepath.Join("b", "go.obo"), ontologyV2)
	exportDir := filepath.Join(f.dir, "export")

	_, _, err := f.run(t, "parse", first, second, "--silent", "--export", exportDir)
	require.ErrorIs(t, err, commands.ErrExportCollision)
	assert.Contains(t, err.Error(), "go.json")

	_, statErr := os.Stat(exportDir)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestParse_ExportSingleYAML(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	path := f.write(t, "go.obo", ontologyV1)
	exportPath := filepath.Join(f.dir, "go.yaml")

	_, _, err := f.run(t, "parse", path, "--silent", "--export", exportPath)
	require.NoError(t, err)

	raw, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "id: GO:0000001")
}

func TestParse_MetricsFile(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	path := f.write(t, "go.obo", ontologyV1)
	metricsPath := filepath.Join(f.dir, "obofang.prom")

	_, _, err := f.run(t, "parse", path, "--silent", "--metrics-file", metricsPath)
	require.NoError(t, err)

	raw, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "obofang_parse_terms_total")
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	broken := f.write(t, "broken.obo", "[Term\nid: X:1\n")

	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"no files", []string{"parse"}, "requires at least 1 arg"},
		{"missing file", []string{"parse", filepath.Join(f.dir, "absent.obo")}, "absent.obo"},
		{"unclosed stanza", []string{"parse", broken, "--silent"}, "unclosed stanza at line 1"},
		{"bad format", []string{"parse", broken, "--format", "xml"}, "invalid output format"},
		{"bad jobs", []string{"parse", broken, "--jobs", "0"}, "jobs must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := f.run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestDiff_Text(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	older := f.write(t, "v1.obo", ontologyV1)
	newer := f.write(t, "v2.obo", ontologyV2)

	stdout, _, err := f.run(t, "diff", older, newer)
	require.NoError(t, err)

	assert.Contains(t, stdout, "--- "+older)
	assert.Contains(t, stdout, "+ GO:0000006")
	assert.Contains(t, stdout, "- GO:0000002")
	assert.Contains(t, stdout, "mitochondri[-on-]{+al+} inheritance")
}

func TestDiff_JSONAndExitCode(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	older := f.write(t, "v1.obo", ontologyV1)
	newer := f.write(t, "v2.obo", ontologyV2)

	stdout, _, err := f.run(t, "diff", older, newer, "--format", "json", "--exit-code")
	require.ErrorIs(t, err, commands.ErrDifferent)

	var diff ontodiff.Diff
	require.NoError(t, json.Unmarshal([]byte(stdout), &diff))
	assert.Equal(t, []string{"GO:0000006"}, diff.Added)
	assert.Equal(t, []string{"GO:0000002"}, diff.Removed)

	_, _, err = f.run(t, "diff", older, older, "--exit-code")
	require.NoError(t, err)
}

func TestVersion(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	stdout, _, err := f.run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "obofang "))
}
