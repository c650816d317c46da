package artfx

import (
	"context"
	"math"
)

// halftoneShade darkens pixels lying outside the halftone dot.
const halftoneShade = 0.6

// ComicParams configures the comic-book effect.
type ComicParams struct {
	InkOutlineStrength float64 // lowers the edge threshold as it grows, default 0.7
	ColorLevels        int     // posterization levels per channel, at least 2, default 4
	HalftoneDotSize    int     // halftone cell size, 0 disables, default 0
	EdgeThreshold      float64 // default 60
}

// ParseComic reads the comic-book parameters from options.
func ParseComic(o Options) ComicParams {
	return ComicParams{
		InkOutlineStrength: o.Float("inkOutlineStrength", 0.7),
		ColorLevels:        Max(2, o.Int("colorLevels", 4)),
		HalftoneDotSize:    o.Int("halftoneDotSize", 0),
		EdgeThreshold:      o.Float("edgeThreshold", 60),
	}
}

// ComicBook posterizes every channel to ColorLevels even steps, optionally screens the
// result with a luminance-modulated dot pattern and inks Sobel edges in pure black.
func ComicBook(ctx context.Context, src *Buffer, intensity float64, p ComicParams) (*Buffer, error) {
	width, height := src.Width, src.Height
	gray := Grayscale(src)
	edges := Sobel(gray, width, height)
	dst := NewBuffer(width, height)

	step := 255 / float64(Max(2, p.ColorLevels)-1)
	inkThreshold := p.EdgeThreshold * (1.1 - p.InkOutlineStrength)
	posterize := func(v uint8) float64 {
		return math.Round(float64(v)/step) * step
	}

	err := eachRow(ctx, height, func(y int) {
		for x := 0; x < width; x++ {
			pi := y*width + x
			i := pi * 4
			dst.Pix[i+3] = src.Pix[i+3]

			if edges[pi] > inkThreshold {
				dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2] = 0, 0, 0
				continue
			}

			r, g, b := posterize(src.Pix[i]), posterize(src.Pix[i+1]), posterize(src.Pix[i+2])
			if dot := p.HalftoneDotSize; dot > 0 {
				lum := float64(gray[pi]) / 255
				radius := float64(dot) / 2
				dx := float64(x%dot) - radius
				dy := float64(y%dot) - radius
				if dx*dx+dy*dy > (lum*radius)*(lum*radius) {
					r *= halftoneShade
					g *= halftoneShade
					b *= halftoneShade
				}
			}
			dst.Pix[i] = clampByte(r)
			dst.Pix[i+1] = clampByte(g)
			dst.Pix[i+2] = clampByte(b)
		}
	})
	if err != nil {
		return nil, err
	}
	return Blend(src, dst, intensity), nil
}
