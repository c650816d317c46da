package artfx

import (
	"image"

	"github.com/fogleman/gg"
)

const (
	compareMargin  = 10
	compareCaption = 20
)

// Compare lays out the two images side by side on a white sheet with a caption under
// each of them.
func Compare(before, after image.Image, beforeLabel, afterLabel string) image.Image {
	bw, bh := before.Bounds().Dx(), before.Bounds().Dy()
	aw, ah := after.Bounds().Dx(), after.Bounds().Dy()

	width := bw + aw + 3*compareMargin
	height := Max(bh, ah) + 2*compareMargin + compareCaption

	dc := gg.NewContext(width, height)
	dc.DrawRectangle(0, 0, float64(width), float64(height))
	dc.SetRGB(1, 1, 1)
	dc.Fill()

	dc.DrawImage(before, compareMargin, compareMargin)
	dc.DrawImage(after, bw+2*compareMargin, compareMargin)

	captionY := float64(Max(bh, ah)+compareMargin) + compareCaption/2
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.DrawStringAnchored(beforeLabel, float64(compareMargin)+float64(bw)/2, captionY, 0.5, 0.5)
	dc.DrawStringAnchored(afterLabel, float64(bw+2*compareMargin)+float64(aw)/2, captionY, 0.5, 0.5)

	return dc.Image()
}
