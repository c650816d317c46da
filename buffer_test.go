package artfx

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferValidate(t *testing.T) {
	assert.NoError(t, NewBuffer(3, 2).Validate())
	assert.NoError(t, NewBuffer(0, 0).Validate())
	assert.Error(t, (*Buffer)(nil).Validate())
	assert.Error(t, (&Buffer{Pix: make([]uint8, 23), Width: 3, Height: 2}).Validate())
	assert.Error(t, (&Buffer{Width: -1, Height: 2}).Validate())

	b := NewBuffer(-4, 2)
	assert.Equal(t, 0, b.Width)
	assert.True(t, b.Empty())
}

func TestBufferAccessors(t *testing.T) {
	b := NewBuffer(3, 2)
	c := color.NRGBA{R: 1, G: 2, B: 3, A: 4}
	b.Set(2, 1, c)
	assert.Equal(t, c, b.At(2, 1))
	assert.Equal(t, []uint8{1, 2, 3, 4}, b.Pix[20:24])

	clone := b.Clone()
	assert.True(t, clone.Equal(b))
	clone.Pix[0] = 9
	assert.False(t, clone.Equal(b))
	assert.Equal(t, uint8(0), b.Pix[0])

	assert.False(t, b.Equal(nil))
	assert.True(t, (*Buffer)(nil).Equal(nil))
	assert.False(t, b.Equal(NewBuffer(2, 3)))
}

func TestFromImage(t *testing.T) {
	t.Run("nrgba sub image", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 7, A: 200})
			}
		}
		sub := img.SubImage(image.Rect(1, 2, 4, 4)).(*image.NRGBA)

		b := FromImage(sub)
		require.Equal(t, 3, b.Width)
		require.Equal(t, 2, b.Height)
		assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 7, A: 200}, b.At(0, 0))
		assert.Equal(t, color.NRGBA{R: 3, G: 3, B: 7, A: 200}, b.At(2, 1))
	})

	t.Run("gray", func(t *testing.T) {
		img := image.NewGray(image.Rect(0, 0, 2, 1))
		img.Pix = []uint8{10, 250}
		b := FromImage(img)
		assert.Equal(t, []uint8{10, 10, 10, 255, 250, 250, 250, 255}, b.Pix)
	})

	t.Run("generic", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 1, 1))
		img.Set(0, 0, color.RGBA{R: 50, G: 100, B: 150, A: 255})
		b := FromImage(img)
		assert.Equal(t, []uint8{50, 100, 150, 255}, b.Pix)
	})

	t.Run("round trip", func(t *testing.T) {
		src := gradientBuffer(5, 4)
		assert.True(t, FromImage(src.NRGBA()).Equal(src))
	})
}
