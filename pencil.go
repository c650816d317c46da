package artfx

import (
	"context"
	"math/rand"
)

// PencilParams configures the pencil-sketch effect.
type PencilParams struct {
	StrokeWidth     int     // edge line width in pixels, default 1
	HatchDensity    float64 // probability of hatching a dark flat pixel, default 0.3
	EdgeThreshold   float64 // Sobel magnitude above which a pixel is an edge, default 50
	GraphiteShading float64 // default 0.5
}

// ParsePencil reads the pencil-sketch parameters from options.
func ParsePencil(o Options) PencilParams {
	return PencilParams{
		StrokeWidth:     o.Int("strokeWidth", 1),
		HatchDensity:    o.Float("hatchDensity", 0.3),
		EdgeThreshold:   o.Float("edgeThreshold", 50),
		GraphiteShading: o.Float("graphiteShading", 0.5),
	}
}

// PencilSketch draws graphite lines along Sobel edges on white paper. Flat regions stay
// white except dark ones, which are randomly hatched with probability HatchDensity.
func PencilSketch(ctx context.Context, src *Buffer, intensity float64, p PencilParams, rnd *rand.Rand) (*Buffer, error) {
	width, height := src.Width, src.Height
	gray := Grayscale(src)
	edges := dilate(Sobel(gray, width, height), width, height, p.StrokeWidth-1)
	dst := NewBuffer(width, height)

	err := eachRow(ctx, height, func(y int) {
		for x := 0; x < width; x++ {
			pi := y*width + x
			value := 255.0

			if e := edges[pi]; e > p.EdgeThreshold {
				value = Max(0, 255-e*(1+p.GraphiteShading))
			} else if lum := float64(gray[pi]); lum < 128 && rnd.Float64() < p.HatchDensity {
				value = lum * (1 - p.GraphiteShading*0.5)
			}

			i := pi * 4
			v := clampByte(value)
			dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2] = v, v, v
			dst.Pix[i+3] = src.Pix[i+3]
		}
	})
	if err != nil {
		return nil, err
	}
	return Blend(src, dst, intensity), nil
}
