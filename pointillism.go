package artfx

import (
	"context"
	"math"
	"math/rand"
)

// pointillismSaturation is the fixed saturation boost applied to every dot color.
const pointillismSaturation = 1.3

// PointillismParams configures the pointillism effect.
type PointillismParams struct {
	DotSize              int     // dot radius in pixels, at least 1, default 4
	Density              float64 // in [0.1, 1], default 0.6
	ColorVariation       float64 // random per-dot tint, default 0.2
	DotShape             string  // "circle" (anti-aliased) or "square", default "circle"
	BackgroundBrightness float64 // paper brightness in [0, 1], default 0.95
}

// ParsePointillism reads the pointillism parameters from options.
func ParsePointillism(o Options) PointillismParams {
	shape := o.String("dotShape", "circle")
	if shape != "square" {
		shape = "circle"
	}
	return PointillismParams{
		DotSize:              Max(1, o.Int("dotSize", 4)),
		Density:              Clamp(o.Float("density", 0.6), 0.1, 1),
		ColorVariation:       o.Float("colorVariation", 0.2),
		DotShape:             shape,
		BackgroundBrightness: o.Float("backgroundBrightness", 0.95),
	}
}

// Pointillism paints saturated dots on a jittered grid over a light background.
//
// This effect composites incrementally: the background is blended toward the paper
// tone by intensity, then every dot is blended into that canvas by intensity (times its
// anti-aliasing coverage) as it is painted.
func Pointillism(ctx context.Context, src *Buffer, intensity float64, p PointillismParams, rnd *rand.Rand) (*Buffer, error) {
	width, height := src.Width, src.Height
	size := p.DotSize

	paper := NewBuffer(width, height)
	bg := uint8(math.Floor(255 * Clamp(p.BackgroundBrightness, 0, 1)))
	for i := 0; i < len(paper.Pix); i += 4 {
		paper.Pix[i], paper.Pix[i+1], paper.Pix[i+2] = bg, bg, bg
	}
	canvas := Blend(src, paper, intensity)

	spacing := Max(size+1, int(math.Floor(float64(size)/p.Density)))
	jitter := float64(spacing) * 0.25

	for y := size; y < height-size; y += spacing {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for x := size; x < width-size; x += spacing {
			dx := int(math.Floor(float64(x) + (rnd.Float64()-0.5)*jitter))
			dy := int(math.Floor(float64(y) + (rnd.Float64()-0.5)*jitter))
			if dx < size || dx >= width-size || dy < size || dy >= height-size {
				continue
			}

			c := src.At(dx, dy)
			r, g, b := float64(c.R), float64(c.G), float64(c.B)
			if p.ColorVariation > 0 {
				v := (rnd.Float64() - 0.5) * 50 * p.ColorVariation
				r = Clamp(r+v, 0, 255)
				g = Clamp(g+v, 0, 255)
				b = Clamp(b+v, 0, 255)
			}
			r, g, b = saturate(r, g, b, pointillismSaturation)
			color := [3]float64{Clamp(r, 0, 255), Clamp(g, 0, 255), Clamp(b, 0, 255)}

			if p.DotShape == "square" {
				paintSquare(canvas, dx, dy, size, color, intensity)
			} else {
				paintDisc(canvas, dx, dy, size, color, intensity)
			}
		}
	}
	return canvas, nil
}

// paintDisc blends a disc of the given radius into dst. Coverage falls off linearly over
// the outermost pixel ring.
func paintDisc(dst *Buffer, cx, cy, radius int, c [3]float64, intensity float64) {
	rad := float64(radius)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d := math.Hypot(float64(dx), float64(dy))
			x, y := cx+dx, cy+dy
			if d > rad || x < 0 || x >= dst.Width || y < 0 || y >= dst.Height {
				continue
			}
			alpha := 1.0
			if d > rad-1 {
				alpha = rad - d
			}
			blendPixel(dst, x, y, c, alpha*intensity)
		}
	}
}

// paintSquare blends a hard-edged square of half-size radius into dst.
func paintSquare(dst *Buffer, cx, cy, radius int, c [3]float64, intensity float64) {
	for y := Max(0, cy-radius); y <= Min(dst.Height-1, cy+radius); y++ {
		for x := Max(0, cx-radius); x <= Min(dst.Width-1, cx+radius); x++ {
			blendPixel(dst, x, y, c, intensity)
		}
	}
}

func blendPixel(dst *Buffer, x, y int, c [3]float64, t float64) {
	i := dst.offset(x, y)
	for ch := 0; ch < 3; ch++ {
		dst.Pix[i+ch] = clampByte(lerp(float64(dst.Pix[i+ch]), c[ch], t))
	}
}
