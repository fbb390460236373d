package units_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/obofang/pkg/units"
)

func TestBinarySizeConstants(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1024, units.KiB)
	assert.Equal(t, 1024*units.KiB, units.MiB)
	assert.Equal(t, 1024*units.MiB, units.GiB)
}

func TestBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{units.KiB, "1.0 KiB"},
		{3 * units.MiB / 2, "1.5 MiB"},
		{-2 * units.KiB, "-2.0 KiB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, units.Bytes(tt.in))
	}
}

func TestCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0", units.Count(0))
	assert.Equal(t, "47,912", units.Count(47912))
}

func TestThroughput(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2.0 MiB/s", units.Throughput(4*units.MiB, 2*time.Second))
	assert.Equal(t, "n/a", units.Throughput(units.MiB, 0))
}

func TestParseBytes(t *testing.T) {
	t.Parallel()

	n, err := units.ParseBytes("64KiB")
	require.NoError(t, err)
	assert.Equal(t, int64(64*units.KiB), n)

	_, err = units.ParseBytes("lots")
	require.Error(t, err)
}
