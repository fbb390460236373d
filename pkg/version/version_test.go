package version_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/obofang/pkg/version"
)

func TestString(t *testing.T) {
	t.Parallel()

	out := version.String()

	assert.Contains(t, out, "obofang ")
	assert.Contains(t, out, "commit "+version.Commit)
	assert.Contains(t, out, runtime.GOOS+"/"+runtime.GOARCH)
}

func TestResolved_NotEmpty(t *testing.T) {
	t.Parallel()

	assert.NotEmpty(t, version.Resolved())
}
