package artfx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingFilter struct{ err error }

func (f failingFilter) Apply(context.Context, *Buffer) (*Buffer, error) { return nil, f.err }

func TestPipelineEmpty(t *testing.T) {
	src := gradientBuffer(10, 10)
	out, err := NewPipeline().Apply(context.Background(), src)
	require.NoError(t, err)
	assert.True(t, out.Equal(src))

	out.Pix[0]++
	assert.False(t, out.Equal(src))
}

func TestPipelineChain(t *testing.T) {
	src := gradientBuffer(32, 24)
	opts := Options{"seed": 9, "tileSize": 6}

	p := NewPipeline(
		StyleFilter{Style: StyleMosaic, Intensity: 100, Options: opts},
		nil,
		VignetteFilter{Intensity: 70, Options: opts},
	)
	require.Len(t, p.Filters, 2)

	got, err := p.Apply(context.Background(), src)
	require.NoError(t, err)

	step := Apply(src, StyleMosaic, 100, opts)
	want, err := Vignette(context.Background(), step, 0.7, ParseVignette(opts))
	require.NoError(t, err)
	assert.True(t, got.Equal(want))
}

func TestPipelineErrors(t *testing.T) {
	boom := assert.AnError
	_, err := NewPipeline(StyleFilter{Style: StyleComicBook, Intensity: 100}, failingFilter{boom}).
		Apply(context.Background(), gradientBuffer(8, 8))
	assert.ErrorIs(t, err, boom)

	_, err = NewPipeline().Apply(context.Background(), &Buffer{Width: 1, Height: 1})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewPipeline(StyleFilter{Style: StyleOilPainting, Intensity: 100}).Apply(ctx, gradientBuffer(8, 8))
	assert.ErrorIs(t, err, context.Canceled)
}
