package artfx

import (
	"context"
	"math/rand"
)

// MosaicParams configures the mosaic effect.
type MosaicParams struct {
	TileSize       int      // default 10
	GroutThickness int      // inset of the tile interior, default 1
	ColorVariation float64  // random per-tile tint, default 0 (off)
	GroutColor     [3]uint8 // default (0, 0, 0)
}

// ParseMosaic reads the mosaic parameters from options.
func ParseMosaic(o Options) MosaicParams {
	return MosaicParams{
		TileSize:       o.Int("tileSize", 10),
		GroutThickness: o.Int("groutThickness", 1),
		ColorVariation: o.Float("colorVariation", 0),
		GroutColor:     o.Color("groutColor", [3]uint8{0, 0, 0}),
	}
}

// Mosaic splits the image into square tiles. The interior of each tile, inset by the
// grout thickness, is filled with its average color; the inset band is grout.
func Mosaic(ctx context.Context, src *Buffer, intensity float64, p MosaicParams, rnd *rand.Rand) (*Buffer, error) {
	width, height := src.Width, src.Height
	tile, grout := p.TileSize, p.GroutThickness
	dst := NewBuffer(width, height)
	sums := newIntegralImage(src)

	for ty := 0; ty < height; ty += tile {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for tx := 0; tx < width; tx += tile {
			r, g, b, n := sums.mean(tx+grout, ty+grout, tx+tile-grout-1, ty+tile-grout-1)
			if n == 0 {
				r, g, b = 0, 0, 0
			}
			if p.ColorVariation > 0 {
				v := (rnd.Float64() - 0.5) * 50 * p.ColorVariation
				r = Clamp(r+v, 0, 255)
				g = Clamp(g+v, 0, 255)
				b = Clamp(b+v, 0, 255)
			}

			for dy := 0; dy < tile && ty+dy < height; dy++ {
				for dx := 0; dx < tile && tx+dx < width; dx++ {
					i := dst.offset(tx+dx, ty+dy)
					if dy < grout || dy >= tile-grout || dx < grout || dx >= tile-grout {
						dst.Pix[i] = p.GroutColor[0]
						dst.Pix[i+1] = p.GroutColor[1]
						dst.Pix[i+2] = p.GroutColor[2]
					} else {
						dst.Pix[i] = clampByte(r)
						dst.Pix[i+1] = clampByte(g)
						dst.Pix[i+2] = clampByte(b)
					}
					dst.Pix[i+3] = src.Pix[i+3]
				}
			}
		}
	}
	return Blend(src, dst, intensity), nil
}
