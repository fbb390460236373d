package obo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/obofang/pkg/obo"
)

func TestIDPool_InternSharesInstances(t *testing.T) {
	t.Parallel()

	pool := obo.NewIDPool()

	first, err := pool.InternString("GO:0008150")
	require.NoError(t, err)

	again, err := pool.Intern([]byte("GO:0008150"))
	require.NoError(t, err)

	other, err := pool.InternString("GO:0003674")
	require.NoError(t, err)

	assert.Same(t, first, again)
	assert.NotSame(t, first, other)
	assert.Same(t, first.Prefix, other.Prefix)
	assert.Equal(t, "GO", first.Prefix.String())
	assert.Equal(t, "0008150", first.Local)
	assert.Equal(t, "GO:0008150", first.String())
	assert.Equal(t, 2, pool.Len())
	assert.Equal(t, 1, pool.Prefixes())
}

func TestIDPool_DistinctPrefixes(t *testing.T) {
	t.Parallel()

	pool := obo.NewIDPool()

	goID, err := pool.InternString("GO:1")
	require.NoError(t, err)

	hpID, err := pool.InternString("HP:1")
	require.NoError(t, err)

	assert.NotSame(t, goID.Prefix, hpID.Prefix)
	assert.Equal(t, 2, pool.Prefixes())
}

func TestIDPool_LocalPartMayContainColons(t *testing.T) {
	t.Parallel()

	id, err := obo.NewIDPool().InternString("http:example.org:x")
	require.NoError(t, err)

	assert.Equal(t, "http", id.Prefix.String())
	assert.Equal(t, "example.org:x", id.Local)
}

func TestIDPool_RejectsMalformed(t *testing.T) {
	t.Parallel()

	pool := obo.NewIDPool()

	for _, raw := range []string{"", "GO", ":123", "GO:"} {
		_, err := pool.InternString(raw)
		assert.ErrorIs(t, err, obo.ErrMalformedTermID, "raw %q", raw)
	}

	assert.Equal(t, 0, pool.Len())
}

func TestIDPool_Lookup(t *testing.T) {
	t.Parallel()

	pool := obo.NewIDPool()

	id, err := pool.InternString("GO:42")
	require.NoError(t, err)

	found, ok := pool.Lookup("GO:42")
	require.True(t, ok)
	assert.Same(t, id, found)

	_, ok = pool.Lookup("GO:43")
	assert.False(t, ok)
}

func TestPool_CountsHits(t *testing.T) {
	t.Parallel()

	pool := obo.NewPool[obo.Namespace]()
	build := func(name string) (*obo.Namespace, error) { return &obo.Namespace{Name: name}, nil }

	first, err := pool.Intern([]byte("biological_process"), build)
	require.NoError(t, err)

	second, err := pool.Intern([]byte("biological_process"), build)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, pool.Len())
	assert.Equal(t, 1, pool.Hits())

	keys := 0
	for key, value := range pool.All() {
		assert.Equal(t, key, value.Name)

		keys++
	}

	assert.Equal(t, 1, keys)
}
