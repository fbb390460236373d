package progress_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/obofang/internal/progress"
	"github.com/Sumatoshi-tech/obofang/pkg/obo"
)

var _ obo.Observer = (*progress.Bar)(nil)

func TestBar_RendersRatio(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	bar := progress.NewBar(&out, progress.Options{Label: "go.obo", Width: 10, NoColor: true})
	bar.Init(2048)
	bar.Update(1024, 1500)

	assert.Equal(t, "\rgo.obo [█████░░░░░]  50%  1.0 KiB / 2.0 KiB  1,500 terms", out.String())
}

func TestBar_ClampsOverrun(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	bar := progress.NewBar(&out, progress.Options{Width: 4, NoColor: true})
	bar.Init(100)
	bar.Update(150, 1)

	assert.Contains(t, out.String(), "[████] 100%")
}

func TestBar_UnknownTotal(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	bar := progress.NewBar(&out, progress.Options{NoColor: true})
	bar.Init(0)
	bar.Update(512, 3)

	assert.Equal(t, "\r512 B  3 terms", out.String())
}

func TestBar_PadsShorterLine(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	bar := progress.NewBar(&out, progress.Options{NoColor: true})
	bar.Init(0)
	bar.Update(2*1024*1024, 123456)
	first := out.Len()

	out.Reset()
	bar.Update(10, 1)

	line := strings.TrimPrefix(out.String(), "\r")
	assert.Len(t, line, first-1)
}

func TestBar_Finish(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	bar := progress.NewBar(&out, progress.Options{NoColor: true})
	bar.Finish()
	assert.Empty(t, out.String())

	bar.Init(10)
	bar.Update(10, 1)
	bar.Finish()

	assert.True(t, strings.HasSuffix(out.String(), "\n"))
	assert.Contains(t, out.String(), "/s")
}
