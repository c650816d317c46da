package artfx

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// edgeBuffer is black on the left half and white on the right half.
func edgeBuffer(w, h int) *Buffer {
	buf := solidBuffer(w, h, 0, 0, 0, 255)
	for y := 0; y < h; y++ {
		for x := w / 2; x < w; x++ {
			buf.Set(x, y, solidBuffer(1, 1, 255, 255, 255, 255).At(0, 0))
		}
	}
	return buf
}

func TestOilPaintingFlat(t *testing.T) {
	src := solidBuffer(40, 30, 100, 150, 200, 255)
	out, err := OilPainting(context.Background(), src, 1, ParseOil(nil), rand.New(NewSource(2)))
	require.NoError(t, err)

	// Texture noise stays within half of its range around the flat color.
	for i := 0; i < len(out.Pix); i += 4 {
		require.InDelta(t, 100, float64(out.Pix[i]), 6.5)
		require.InDelta(t, 150, float64(out.Pix[i+1]), 6.5)
		require.InDelta(t, 200, float64(out.Pix[i+2]), 6.5)
		require.Equal(t, uint8(255), out.Pix[i+3])
	}
}

func TestWatercolorPigment(t *testing.T) {
	src := solidBuffer(24, 24, 100, 120, 140, 255)
	out, err := Watercolor(context.Background(), src, 1, ParseWatercolor(nil), rand.New(NewSource(2)))
	require.NoError(t, err)

	// Mean 120, channels pushed away by 1.6, plus at most 1.5 of paper grain.
	for i := 0; i < len(out.Pix); i += 4 {
		require.InDelta(t, 88, float64(out.Pix[i]), 2)
		require.InDelta(t, 120, float64(out.Pix[i+1]), 2)
		require.InDelta(t, 152, float64(out.Pix[i+2]), 2)
	}
}

func TestWatercolorEdgeDarkening(t *testing.T) {
	src := edgeBuffer(24, 8)
	soft, err := Watercolor(context.Background(), src, 1, ParseWatercolor(Options{"edgeDarkening": 0.01}), rand.New(NewSource(2)))
	require.NoError(t, err)
	hard, err := Watercolor(context.Background(), src, 1, ParseWatercolor(Options{"edgeDarkening": 1}), rand.New(NewSource(2)))
	require.NoError(t, err)

	// Right next to the edge the strong setting is clearly darker.
	assert.Less(t, int(hard.At(12, 4).R)+10, int(soft.At(12, 4).R))
	// Far from the edge both agree.
	assert.Equal(t, soft.At(23, 4), hard.At(23, 4))
}

func TestPencilSketch(t *testing.T) {
	t.Run("white paper", func(t *testing.T) {
		src := solidBuffer(16, 16, 230, 230, 230, 255)
		out := Apply(src, StylePencilSketch, 100, Options{"seed": 1})
		assert.True(t, out.Equal(solidBuffer(16, 16, 255, 255, 255, 255)))
	})

	t.Run("dark regions are hatched", func(t *testing.T) {
		src := solidBuffer(16, 16, 50, 50, 50, 255)
		out := Apply(src, StylePencilSketch, 100, Options{"seed": 1, "hatchDensity": 1})
		// lum * (1 - 0.5*0.5)
		v := clampByte(float64(Grayscale(src)[0]) * 0.75)
		assert.True(t, out.Equal(solidBuffer(16, 16, v, v, v, 255)))
	})

	t.Run("edges are drawn", func(t *testing.T) {
		src := edgeBuffer(16, 8)
		out, err := PencilSketch(context.Background(), src, 1, PencilParams{
			StrokeWidth: 1, EdgeThreshold: 50, GraphiteShading: 0.5,
		}, rand.New(NewSource(1)))
		require.NoError(t, err)
		assert.Equal(t, uint8(0), out.At(8, 3).R)
		assert.Equal(t, uint8(255), out.At(14, 3).R)
	})

	t.Run("stroke width widens lines", func(t *testing.T) {
		src := edgeBuffer(16, 8)
		p := PencilParams{StrokeWidth: 1, EdgeThreshold: 50, GraphiteShading: 0.5}
		thin, err := PencilSketch(context.Background(), src, 1, p, rand.New(NewSource(1)))
		require.NoError(t, err)
		p.StrokeWidth = 3
		wide, err := PencilSketch(context.Background(), src, 1, p, rand.New(NewSource(1)))
		require.NoError(t, err)

		assert.Equal(t, uint8(255), thin.At(10, 3).R)
		assert.Less(t, wide.At(10, 3).R, uint8(255))
	})
}

func TestComicBook(t *testing.T) {
	t.Run("posterize", func(t *testing.T) {
		src := solidBuffer(12, 12, 100, 200, 30, 255)
		out, err := ComicBook(context.Background(), src, 1, ParseComic(nil))
		require.NoError(t, err)
		assert.True(t, out.Equal(solidBuffer(12, 12, 85, 170, 0, 255)))
	})

	t.Run("ink outlines", func(t *testing.T) {
		src := edgeBuffer(16, 8)
		out, err := ComicBook(context.Background(), src, 1, ParseComic(nil))
		require.NoError(t, err)
		c := out.At(8, 4)
		assert.Equal(t, [3]uint8{0, 0, 0}, [3]uint8{c.R, c.G, c.B})
		c = out.At(14, 4)
		assert.Equal(t, [3]uint8{255, 255, 255}, [3]uint8{c.R, c.G, c.B})
	})

	t.Run("halftone", func(t *testing.T) {
		src := solidBuffer(16, 16, 128, 128, 128, 255)
		out, err := ComicBook(context.Background(), src, 1, ParseComic(Options{"halftoneDotSize": 8}))
		require.NoError(t, err)

		// Posterized to 170 inside the dot, shaded to 102 outside.
		values := map[uint8]bool{}
		for i := 0; i < len(out.Pix); i += 4 {
			values[out.Pix[i]] = true
		}
		assert.Equal(t, map[uint8]bool{170: true, 102: true}, values)
		assert.Equal(t, uint8(102), out.At(0, 0).R)
		assert.Equal(t, uint8(170), out.At(4, 4).R)
	})
}

func TestCrosshatch(t *testing.T) {
	t.Run("white source stays paper", func(t *testing.T) {
		src := solidBuffer(20, 20, 255, 255, 255, 255)
		out, err := Crosshatch(context.Background(), src, 1, ParseCrosshatch(nil), rand.New(NewSource(1)))
		require.NoError(t, err)
		assert.True(t, out.Equal(solidBuffer(20, 20, 242, 242, 242, 255)))
	})

	t.Run("dark source is hatched", func(t *testing.T) {
		src := solidBuffer(30, 30, 0, 0, 0, 255)
		out, err := Crosshatch(context.Background(), src, 1, ParseCrosshatch(nil), rand.New(NewSource(1)))
		require.NoError(t, err)

		ink := 0
		for i := 0; i < len(out.Pix); i += 4 {
			v := out.Pix[i]
			require.Truef(t, v == 242 || v == 73, "unexpected tone %d", v)
			if v == 73 {
				ink++
			}
		}
		assert.Greater(t, ink, 30*30/4)
	})

	t.Run("darker means denser", func(t *testing.T) {
		count := func(gray uint8) int {
			src := solidBuffer(40, 40, gray, gray, gray, 255)
			out, err := Crosshatch(context.Background(), src, 1, ParseCrosshatch(nil), rand.New(NewSource(1)))
			require.NoError(t, err)
			n := 0
			for i := 0; i < len(out.Pix); i += 4 {
				if out.Pix[i] < 242 {
					n++
				}
			}
			return n
		}
		assert.Less(t, count(200), count(100))
		assert.Less(t, count(100), count(10))
	})

	t.Run("alpha is composited", func(t *testing.T) {
		src := solidBuffer(4, 4, 255, 255, 255, 51)
		out, err := Crosshatch(context.Background(), src, 0.5, ParseCrosshatch(nil), rand.New(NewSource(1)))
		require.NoError(t, err)
		// ea = 0.2*0.5, a = 0.1 + 0.2*0.9
		assert.Equal(t, uint8(71), out.At(1, 1).A)
	})
}

func TestPointillism(t *testing.T) {
	src := solidBuffer(32, 32, 200, 50, 50, 255)

	out, err := Pointillism(context.Background(), src, 1, ParsePointillism(Options{"dotSize": 2}), rand.New(NewSource(6)))
	require.NoError(t, err)

	// Corners are out of reach of every dot.
	c := out.At(0, 0)
	assert.Equal(t, [4]uint8{242, 242, 242, 255}, [4]uint8{c.R, c.G, c.B, c.A})

	saturated := 0
	for i := 0; i < len(out.Pix); i += 4 {
		if out.Pix[i] > 220 && out.Pix[i+1] < 45 {
			saturated++
		}
	}
	assert.Greater(t, saturated, 0)

	half, err := Pointillism(context.Background(), src, 0.5, ParsePointillism(Options{"dotSize": 2}), rand.New(NewSource(6)))
	require.NoError(t, err)
	c = half.At(0, 0)
	assert.Equal(t, [3]uint8{221, 146, 146}, [3]uint8{c.R, c.G, c.B})
}

func TestPointillismSquareDots(t *testing.T) {
	src := solidBuffer(32, 32, 10, 200, 10, 255)
	p := ParsePointillism(Options{"dotSize": 3, "dotShape": "square", "colorVariation": 0.0001})

	out, err := Pointillism(context.Background(), src, 1, p, rand.New(NewSource(6)))
	require.NoError(t, err)

	// Hard edges: every pixel is either paper or a fully painted dot.
	for i := 0; i < len(out.Pix); i += 4 {
		r := out.Pix[i]
		require.Truef(t, r == 242 || r < 10, "pixel %d has mixed value %d", i/4, r)
	}
}
