package artfx

import (
	"context"
	"math"
	"math/rand"

	"go.uber.org/zap"
)

// upsampleEdgeThreshold is the summed RGB difference inside a 2x2 source neighbourhood
// above which upsampling switches from bilinear to nearest neighbour.
const upsampleEdgeThreshold = 30

// minCellSize is the smallest cell size the effect renders with. Smaller values are
// raised to it.
const minCellSize = 4

// StainedGlassParams configures the stained-glass effect.
type StainedGlassParams struct {
	CellSize        float64  // target cell size in pixels, at least 4, default 20
	BorderThickness int      // lead line half-width (Chebyshev), default 2
	BorderColor     [3]uint8 // default (10, 10, 10)
	LightRefraction float64  // strength of the sinusoidal tint shift, default 0.1
	PreferSpeed     bool     // force the block tier
	Thresholds      Thresholds
}

// ParseStainedGlass reads the stained-glass parameters from options.
func ParseStainedGlass(o Options) StainedGlassParams {
	return StainedGlassParams{
		CellSize:        Max(minCellSize, o.Float("cellSize", 20)),
		BorderThickness: o.Int("borderThickness", 2),
		BorderColor:     o.Color("borderColor", [3]uint8{10, 10, 10}),
		LightRefraction: o.Float("lightRefraction", 0.1),
		PreferSpeed:     o.Bool("preferSpeed", false),
		Thresholds: Thresholds{
			BlockAbove:      o.Int("blockAbove", DefaultThresholds.BlockAbove),
			DownsampleAbove: o.Int("downsampleAbove", DefaultThresholds.DownsampleAbove),
		},
	}
}

// StainedGlass tessellates the image into Voronoi cells filled with their seed color and
// separated by lead lines. The execution tier is chosen by SelectStrategy.
//
// Empty and single-pixel buffers are returned unchanged (as a copy).
func StainedGlass(ctx context.Context, src *Buffer, intensity float64, p StainedGlassParams, rnd *rand.Rand) (*Buffer, error) {
	if src.Width*src.Height < 2 {
		Logger().Debug("stained glass passthrough",
			zap.Int("width", src.Width), zap.Int("height", src.Height))
		return src.Clone(), nil
	}
	p.CellSize = Max(minCellSize, p.CellSize)

	strategy := SelectStrategy(src.Width, src.Height, p.PreferSpeed, p.Thresholds)
	Logger().Debug("stained glass tier selected",
		zap.Stringer("strategy", strategy),
		zap.Int("width", src.Width),
		zap.Int("height", src.Height),
	)

	var (
		effect *Buffer
		err    error
	)
	switch strategy {
	case StrategyBlock:
		effect, err = stainedGlassBlocks(ctx, src, p)
	case StrategyDownsample:
		effect, err = stainedGlassDownsampled(ctx, src, p, rnd)
	default:
		effect, err = stainedGlassExact(ctx, src, p, rnd)
	}
	if err != nil {
		return nil, err
	}
	return Blend(src, effect, intensity), nil
}

// stainedGlassExact renders the full-resolution Voronoi tessellation without blending.
func stainedGlassExact(ctx context.Context, src *Buffer, p StainedGlassParams, rnd *rand.Rand) (*Buffer, error) {
	seeds := GenerateSeeds(src, p.CellSize, rnd)
	if len(seeds) == 0 {
		return src.Clone(), nil
	}

	cm, err := ComputeVoronoi(ctx, seeds, src.Width, src.Height)
	if err != nil {
		return nil, err
	}
	border := BorderMask(cm, p.BorderThickness)

	dst := NewBuffer(src.Width, src.Height)
	err = eachRow(ctx, src.Height, func(y int) {
		for x := 0; x < src.Width; x++ {
			pi := y*src.Width + x
			i := pi * 4
			cell := cm.Cells[pi]
			if cell == Unassigned {
				copy(dst.Pix[i:i+4], src.Pix[i:i+4])
				continue
			}

			if border[pi] {
				dst.Pix[i] = p.BorderColor[0]
				dst.Pix[i+1] = p.BorderColor[1]
				dst.Pix[i+2] = p.BorderColor[2]
			} else {
				s := seeds[cell]
				r, g, b := float64(s.R), float64(s.G), float64(s.B)
				if p.LightRefraction > 0 {
					nd := Min(1, float64(cm.Dist[pi])/p.CellSize)
					shift := math.Sin(nd*math.Pi) * 20 * p.LightRefraction
					r += shift
					g -= shift
					b += shift * 0.5
				}
				dst.Pix[i] = clampByte(r)
				dst.Pix[i+1] = clampByte(g)
				dst.Pix[i+2] = clampByte(b)
			}
			dst.Pix[i+3] = src.Pix[i+3]
		}
	})
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// stainedGlassDownsampled runs the exact tier at half resolution and scales it back.
func stainedGlassDownsampled(ctx context.Context, src *Buffer, p StainedGlassParams, rnd *rand.Rand) (*Buffer, error) {
	const factor = 2
	sw := int(math.Ceil(float64(src.Width) / factor))
	sh := int(math.Ceil(float64(src.Height) / factor))

	small := Downsample(src, sw, sh)
	sp := p
	sp.CellSize = Max(5, math.Floor(p.CellSize/factor))

	effect, err := stainedGlassExact(ctx, small, sp, rnd)
	if err != nil {
		return nil, err
	}
	return UpsampleEdgeAware(effect, src.Width, src.Height), nil
}

// stainedGlassBlocks is the O(w*h) approximation: square blocks of the cell size, each
// filled with the color at its center and outlined along its own edges.
func stainedGlassBlocks(ctx context.Context, src *Buffer, p StainedGlassParams) (*Buffer, error) {
	blockSize := Max(8, int(math.Floor(p.CellSize)))
	width, height := src.Width, src.Height
	dst := NewBuffer(width, height)

	for by := 0; by < height; by += blockSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for bx := 0; bx < width; bx += blockSize {
			cx := int(Min(float64(bx)+float64(blockSize)/2, float64(width-1)))
			cy := int(Min(float64(by)+float64(blockSize)/2, float64(height-1)))
			center := src.At(cx, cy)

			for y := by; y < Min(by+blockSize, height); y++ {
				for x := bx; x < Min(bx+blockSize, width); x++ {
					i := dst.offset(x, y)
					edge := x == bx || x == bx+blockSize-1 || y == by || y == by+blockSize-1
					if edge && p.BorderThickness > 0 {
						dst.Pix[i] = p.BorderColor[0]
						dst.Pix[i+1] = p.BorderColor[1]
						dst.Pix[i+2] = p.BorderColor[2]
					} else {
						dst.Pix[i] = center.R
						dst.Pix[i+1] = center.G
						dst.Pix[i+2] = center.B
					}
					dst.Pix[i+3] = src.Pix[i+3]
				}
			}
		}
	}
	return dst, nil
}

// BorderMask flags every pixel that has a neighbour with a different cell within the
// given Chebyshev distance. Neighbours outside the raster are ignored.
func BorderMask(cm *CellMap, thickness int) []bool {
	width, height := cm.Width, cm.Height
	mask := make([]bool, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cur := cm.Cells[y*width+x]
		scan:
			for dy := -thickness; dy <= thickness; dy++ {
				ny := y + dy
				if ny < 0 || ny >= height {
					continue
				}
				for dx := -thickness; dx <= thickness; dx++ {
					nx := x + dx
					if (dx == 0 && dy == 0) || nx < 0 || nx >= width {
						continue
					}
					if cm.Cells[ny*width+nx] != cur {
						mask[y*width+x] = true
						break scan
					}
				}
			}
		}
	}
	return mask
}

// Downsample box-filters src to newWidth x newHeight, averaging all four channels over
// the source pixels each destination pixel covers.
func Downsample(src *Buffer, newWidth, newHeight int) *Buffer {
	dst := NewBuffer(newWidth, newHeight)
	scaleX := float64(src.Width) / float64(newWidth)
	scaleY := float64(src.Height) / float64(newHeight)

	for y := 0; y < newHeight; y++ {
		startY := int(math.Floor(float64(y) * scaleY))
		endY := Min(src.Height, int(math.Ceil(float64(y+1)*scaleY)))
		for x := 0; x < newWidth; x++ {
			startX := int(math.Floor(float64(x) * scaleX))
			endX := Min(src.Width, int(math.Ceil(float64(x+1)*scaleX)))

			var sum [4]float64
			count := 0
			for sy := startY; sy < endY; sy++ {
				for sx := startX; sx < endX; sx++ {
					i := src.offset(sx, sy)
					for c := 0; c < 4; c++ {
						sum[c] += float64(src.Pix[i+c])
					}
					count++
				}
			}

			i := dst.offset(x, y)
			if count == 0 {
				dst.Pix[i+3] = 255
				continue
			}
			for c := 0; c < 4; c++ {
				dst.Pix[i+c] = clampByte(sum[c] / float64(count))
			}
		}
	}
	return dst
}

// UpsampleEdgeAware scales src up to newWidth x newHeight. Smooth regions are
// interpolated bilinearly; where the 2x2 source neighbourhood differs by more than
// upsampleEdgeThreshold the nearest sample is copied, so cell borders stay crisp.
func UpsampleEdgeAware(src *Buffer, newWidth, newHeight int) *Buffer {
	dst := NewBuffer(newWidth, newHeight)
	if src.Empty() {
		return dst
	}

	var scaleX, scaleY float64
	if newWidth > 1 {
		scaleX = float64(src.Width-1) / float64(newWidth-1)
	}
	if newHeight > 1 {
		scaleY = float64(src.Height-1) / float64(newHeight-1)
	}

	for y := 0; y < newHeight; y++ {
		srcY := float64(y) * scaleY
		y1 := int(srcY)
		y2 := Min(src.Height-1, y1+1)
		dy := srcY - float64(y1)

		for x := 0; x < newWidth; x++ {
			srcX := float64(x) * scaleX
			x1 := int(srcX)
			x2 := Min(src.Width-1, x1+1)
			dx := srcX - float64(x1)

			i1 := src.offset(x1, y1)
			i2 := src.offset(x2, y1)
			i3 := src.offset(x1, y2)
			i4 := src.offset(x2, y2)
			ni := dst.offset(x, y)

			diff := Max(rgbDiff(src.Pix, i1, i2), rgbDiff(src.Pix, i1, i3), rgbDiff(src.Pix, i1, i4))
			if diff > upsampleEdgeThreshold {
				nearest := i4
				switch {
				case dx < 0.5 && dy < 0.5:
					nearest = i1
				case dx >= 0.5 && dy < 0.5:
					nearest = i2
				case dx < 0.5 && dy >= 0.5:
					nearest = i3
				}
				copy(dst.Pix[ni:ni+4], src.Pix[nearest:nearest+4])
				continue
			}

			for c := 0; c < 4; c++ {
				top := lerp(float64(src.Pix[i1+c]), float64(src.Pix[i2+c]), dx)
				bottom := lerp(float64(src.Pix[i3+c]), float64(src.Pix[i4+c]), dx)
				dst.Pix[ni+c] = clampByte(lerp(top, bottom, dy))
			}
		}
	}
	return dst
}

func rgbDiff(pix []uint8, a, b int) int {
	d := 0
	for c := 0; c < 3; c++ {
		v := int(pix[a+c]) - int(pix[b+c])
		if v < 0 {
			v = -v
		}
		d += v
	}
	return d
}
