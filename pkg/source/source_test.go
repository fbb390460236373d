package source_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/obofang/pkg/source"
)

var payload = strings.Repeat("[Term]\nid: GO:0000001\nname: mitochondrion inheritance\n\n", 200)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func gzipBytes(t *testing.T, data string) []byte {
	t.Helper()

	var buf bytes.Buffer

	writer := gzip.NewWriter(&buf)

	_, err := writer.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return buf.Bytes()
}

func zstdBytes(t *testing.T, data string) []byte {
	t.Helper()

	encoder, err := zstd.NewWriter(nil)
	require.NoError(t, err)

	defer encoder.Close()

	return encoder.EncodeAll([]byte(data), nil)
}

func lz4Bytes(t *testing.T, data string) []byte {
	t.Helper()

	var buf bytes.Buffer

	writer := lz4.NewWriter(&buf)

	_, err := writer.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return buf.Bytes()
}

func TestOpen_DetectsFraming(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		file        string
		data        func(t *testing.T) []byte
		compression source.Compression
	}{
		{
			name:        "plain",
			file:        "go.obo",
			data:        func(*testing.T) []byte { return []byte(payload) },
			compression: source.CompressionNone,
		},
		{
			name:        "gzip",
			file:        "go.obo.gz",
			data:        func(t *testing.T) []byte { return gzipBytes(t, payload) },
			compression: source.CompressionGzip,
		},
		{
			name:        "zstd",
			file:        "go.obo.zst",
			data:        func(t *testing.T) []byte { return zstdBytes(t, payload) },
			compression: source.CompressionZstd,
		},
		{
			name:        "lz4",
			file:        "go.obo.lz4",
			data:        func(t *testing.T) []byte { return lz4Bytes(t, payload) },
			compression: source.CompressionLZ4,
		},
		{
			// The extension is ignored; only the content decides.
			name:        "gzip under a plain name",
			file:        "misnamed.obo",
			data:        func(t *testing.T) []byte { return gzipBytes(t, payload) },
			compression: source.CompressionGzip,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			raw := tt.data(t)
			path := writeFile(t, tt.file, raw)

			src, err := source.Open(path)
			require.NoError(t, err)

			defer src.Close()

			assert.Equal(t, tt.compression, src.Compression())
			assert.Equal(t, int64(len(raw)), src.Size())

			got, err := io.ReadAll(src)
			require.NoError(t, err)
			assert.Equal(t, payload, string(got))
			assert.Equal(t, int64(len(raw)), src.Offset())
		})
	}
}

func TestOpen_ShortPlainFile(t *testing.T) {
	t.Parallel()

	for _, content := range []string{"", "a", "abc"} {
		path := writeFile(t, "short.obo", []byte(content))

		src, err := source.Open(path)
		require.NoError(t, err)

		got, err := io.ReadAll(src)
		require.NoError(t, err)
		assert.Equal(t, content, string(got))
		assert.Equal(t, source.CompressionNone, src.Compression())
		require.NoError(t, src.Close())
	}
}

func TestOpen_Missing(t *testing.T) {
	t.Parallel()

	_, err := source.Open(filepath.Join(t.TempDir(), "absent.obo"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpen_Directory(t *testing.T) {
	t.Parallel()

	_, err := source.Open(t.TempDir())
	require.ErrorIs(t, err, source.ErrNotRegular)
}

func TestOpen_OffsetAdvances(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "go.obo", []byte(payload))

	src, err := source.Open(path)
	require.NoError(t, err)

	defer src.Close()

	buf := make([]byte, 100)

	_, err = io.ReadFull(src, buf)
	require.NoError(t, err)
	assert.Equal(t, int64(100), src.Offset())
}

func TestCompression_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "none", source.CompressionNone.String())
	assert.Equal(t, "gzip", source.CompressionGzip.String())
	assert.Equal(t, "zstd", source.CompressionZstd.String())
	assert.Equal(t, "lz4", source.CompressionLZ4.String())
	assert.Equal(t, "unknown", source.Compression(9).String())
}
