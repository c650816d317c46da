package artfx

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// gradientBuffer returns a deterministic test pattern: diagonal color gradients with
// a few hard edges and a varying alpha channel.
func gradientBuffer(w, h int) *Buffer {
	buf := NewBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := buf.offset(x, y)
			buf.Pix[i] = uint8((x * 255) / Max(1, w-1))
			buf.Pix[i+1] = uint8((y * 255) / Max(1, h-1))
			buf.Pix[i+2] = uint8(((x + y) * 7) % 256)
			if (x/8+y/8)%2 == 0 {
				buf.Pix[i+2] = 20
			}
			buf.Pix[i+3] = uint8(200 + (x+y)%56)
		}
	}
	return buf
}

// noiseBuffer returns an opaque buffer of uniform random colors.
func noiseBuffer(w, h int, seed int64) *Buffer {
	rnd := rand.New(rand.NewSource(seed))
	buf := NewBuffer(w, h)
	rnd.Read(buf.Pix)
	for i := 3; i < len(buf.Pix); i += 4 {
		buf.Pix[i] = 255
	}
	return buf
}

// solidBuffer returns a buffer filled with a single color.
func solidBuffer(w, h int, r, g, b, a uint8) *Buffer {
	buf := NewBuffer(w, h)
	for i := 0; i < len(buf.Pix); i += 4 {
		buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2], buf.Pix[i+3] = r, g, b, a
	}
	return buf
}

func requireSameShape(t *testing.T, want, got *Buffer) {
	t.Helper()
	require.NotNil(t, got)
	require.Equal(t, want.Width, got.Width)
	require.Equal(t, want.Height, got.Height)
	require.Len(t, got.Pix, len(want.Pix))
}
