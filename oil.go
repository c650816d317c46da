package artfx

import (
	"context"
	"math/rand"
)

// oilTextureRange is the peak-to-peak amplitude of the per-stroke texture noise at
// TextureStrength 1.
const oilTextureRange = 40

// OilParams configures the oil-painting effect.
type OilParams struct {
	BrushSize       int     // stroke width in pixels, default 5
	StrokeLength    int     // stroke length in pixels, default 15
	TextureStrength float64 // default 0.3
	ColorSmearing   float64 // carry-over from the previous stroke in the row, default 0.5
}

// ParseOil reads the oil-painting parameters from options.
func ParseOil(o Options) OilParams {
	return OilParams{
		BrushSize:       o.Int("brushSize", 5),
		StrokeLength:    o.Int("strokeLength", 15),
		TextureStrength: o.Float("textureStrength", 0.3),
		ColorSmearing:   o.Float("colorSmearing", 0.5),
	}
}

// OilPainting covers the image with brush strokes laid on a grid of 0.75*BrushSize.
// Each stroke has a random orientation, takes the average color under it plus texture
// noise, and is smeared toward the previous stroke of the same row.
func OilPainting(ctx context.Context, src *Buffer, intensity float64, p OilParams, rnd *rand.Rand) (*Buffer, error) {
	width, height := src.Width, src.Height
	canvas := src.Clone()
	sums := newIntegralImage(src)
	step := Max(1, int(float64(p.BrushSize)*0.75))

	for y := 0; y < height; y += step {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var last [3]float64
		first := true
		for x := 0; x < width; x += step {
			sw, sh := p.StrokeLength, p.BrushSize
			if rnd.Float64() <= 0.5 {
				sw, sh = p.BrushSize, p.StrokeLength
			}
			hw, hh := sw/2, sh/2

			r, g, b, n := sums.mean(x-hw, y-hh, x+hw, y+hh)
			if n == 0 {
				continue
			}

			tex := [3]float64{
				Clamp(r+(rnd.Float64()-0.5)*oilTextureRange*p.TextureStrength, 0, 255),
				Clamp(g+(rnd.Float64()-0.5)*oilTextureRange*p.TextureStrength, 0, 255),
				Clamp(b+(rnd.Float64()-0.5)*oilTextureRange*p.TextureStrength, 0, 255),
			}

			paint := tex
			if !first {
				for c := range paint {
					paint[c] = lerp(tex[c], last[c], p.ColorSmearing)
				}
			}
			first = false
			last = tex

			for ty := Max(0, y-hh); ty <= Min(height-1, y+hh); ty++ {
				for tx := Max(0, x-hw); tx <= Min(width-1, x+hw); tx++ {
					i := canvas.offset(tx, ty)
					canvas.Pix[i] = clampByte(paint[0])
					canvas.Pix[i+1] = clampByte(paint[1])
					canvas.Pix[i+2] = clampByte(paint[2])
				}
			}
		}
	}
	return Blend(src, canvas, intensity), nil
}
