package artfx

import (
	"context"
	"math"
	"math/rand"
)

const (
	// watercolorEdgeDelta is the luminance deviation from the 3x3 mean that marks a
	// pixel for edge darkening.
	watercolorEdgeDelta = 10
	// watercolorPaperRange is the peak-to-peak paper noise at PaperTexture 1.
	watercolorPaperRange = 30
)

// WatercolorParams configures the watercolor effect.
type WatercolorParams struct {
	BleedAmount    float64 // widens the averaging radius, default 0.5
	PigmentDensity float64 // saturation boost, default 0.6
	EdgeDarkening  float64 // default 0.3
	PaperTexture   float64 // default 0.1
}

// ParseWatercolor reads the watercolor parameters from options.
func ParseWatercolor(o Options) WatercolorParams {
	return WatercolorParams{
		BleedAmount:    o.Float("bleedAmount", 0.5),
		PigmentDensity: o.Float("pigmentDensity", 0.6),
		EdgeDarkening:  o.Float("edgeDarkening", 0.3),
		PaperTexture:   o.Float("paperTexture", 0.1),
	}
}

// Watercolor bleeds colors with a box average of radius 3+5*BleedAmount, boosts
// pigment saturation, darkens pixels sitting on luminance edges and finally adds paper
// grain noise.
func Watercolor(ctx context.Context, src *Buffer, intensity float64, p WatercolorParams, rnd *rand.Rand) (*Buffer, error) {
	width, height := src.Width, src.Height
	dst := NewBuffer(width, height)
	sums := newIntegralImage(src)
	radius := int(math.Floor(3 + p.BleedAmount*5))
	darken := 1 - p.EdgeDarkening*0.5

	lum := make([]float64, width*height)
	for i := range lum {
		lum[i] = mean3(float64(src.Pix[i*4]), float64(src.Pix[i*4+1]), float64(src.Pix[i*4+2]))
	}

	err := eachRow(ctx, height, func(y int) {
		for x := 0; x < width; x++ {
			i := src.offset(x, y)
			r, g, b, _ := sums.mean(x-radius, y-radius, x+radius, y+radius)
			r, g, b = saturate(r, g, b, 1+p.PigmentDensity)

			if p.EdgeDarkening > 0 {
				var local float64
				var n int
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := x+dx, y+dy
						if nx >= 0 && nx < width && ny >= 0 && ny < height {
							local += lum[ny*width+nx]
							n++
						}
					}
				}
				if math.Abs(lum[y*width+x]-local/float64(n)) > watercolorEdgeDelta {
					r *= darken
					g *= darken
					b *= darken
				}
			}

			if p.PaperTexture > 0 {
				grain := (rnd.Float64() - 0.5) * watercolorPaperRange * p.PaperTexture
				r += grain
				g += grain
				b += grain
			}

			dst.Pix[i] = clampByte(r)
			dst.Pix[i+1] = clampByte(g)
			dst.Pix[i+2] = clampByte(b)
			dst.Pix[i+3] = src.Pix[i+3]
		}
	})
	if err != nil {
		return nil, err
	}
	return Blend(src, dst, intensity), nil
}
