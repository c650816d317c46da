package artfx

import (
	"context"

	"golang.org/x/exp/constraints"
)

// Luminance weights (ITU-R BT.601).
const (
	lumR = 0.299
	lumG = 0.587
	lumB = 0.114
)

// Grayscale returns the per-pixel luminance plane of the buffer, truncated to 8 bits.
func Grayscale(src *Buffer) []uint8 {
	gray := make([]uint8, src.Width*src.Height)
	for i, j := 0, 0; j < len(gray); i, j = i+4, j+1 {
		gray[j] = uint8(float64(src.Pix[i])*lumR + float64(src.Pix[i+1])*lumG + float64(src.Pix[i+2])*lumB)
	}
	return gray
}

// mean3 is the unweighted channel mean used by the painterly effects as a cheap
// luminance estimate.
func mean3(r, g, b float64) float64 {
	return (r + g + b) / 3
}

// saturate pushes a color away from its channel mean by factor.
func saturate(r, g, b, factor float64) (float64, float64, float64) {
	avg := mean3(r, g, b)
	return avg + (r-avg)*factor, avg + (g-avg)*factor, avg + (b-avg)*factor
}

// Min returns the smallest value between two numbers.
func Min[T constraints.Ordered](values ...T) T {
	var acc T = values[0]

	for _, v := range values {
		if v < acc {
			acc = v
		}
	}
	return acc
}

// Max returns the biggest value between two numbers.
func Max[T constraints.Ordered](values ...T) T {
	var acc T = values[0]

	for _, v := range values {
		if v > acc {
			acc = v
		}
	}
	return acc
}

// Clamp limits v to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// integralImage is a summed-area table over the RGB channels, so the sum of any
// axis-aligned window is four lookups regardless of its size.
type integralImage struct {
	sum    []float64
	width  int
	height int
}

func newIntegralImage(src *Buffer) *integralImage {
	w, h := src.Width, src.Height
	iw := w + 1
	ii := &integralImage{
		sum:    make([]float64, iw*(h+1)*3),
		width:  w,
		height: h,
	}
	for y := 1; y <= h; y++ {
		for x := 1; x <= w; x++ {
			si := src.offset(x-1, y-1)
			for ch := 0; ch < 3; ch++ {
				idx := (y*iw+x)*3 + ch
				idxUp := ((y-1)*iw+x)*3 + ch
				idxLeft := (y*iw+(x-1))*3 + ch
				idxDiag := ((y-1)*iw+(x-1))*3 + ch

				ii.sum[idx] = float64(src.Pix[si+ch]) +
					ii.sum[idxUp] +
					ii.sum[idxLeft] -
					ii.sum[idxDiag]
			}
		}
	}
	return ii
}

// mean returns the RGB average over the window [x0, x1] x [y0, y1] clipped to the image,
// together with the number of pixels covered.
func (ii *integralImage) mean(x0, y0, x1, y1 int) (r, g, b float64, n int) {
	x0 = Max(0, x0)
	y0 = Max(0, y0)
	x1 = Min(ii.width-1, x1)
	y1 = Min(ii.height-1, y1)
	if x1 < x0 || y1 < y0 {
		return 0, 0, 0, 0
	}

	iw := ii.width + 1
	n = (x1 - x0 + 1) * (y1 - y0 + 1)
	var out [3]float64
	for ch := 0; ch < 3; ch++ {
		br := ((y1+1)*iw+x1+1)*3 + ch
		bl := ((y1+1)*iw+x0)*3 + ch
		tr := (y0*iw+x1+1)*3 + ch
		tl := (y0*iw+x0)*3 + ch
		out[ch] = (ii.sum[br] - ii.sum[bl] - ii.sum[tr] + ii.sum[tl]) / float64(n)
	}
	return out[0], out[1], out[2], n
}

// eachRow calls fn for every row index in [0, height), checking for cancellation every
// few rows so long passes can be abandoned between rows.
func eachRow(ctx context.Context, height int, fn func(y int)) error {
	for y := 0; y < height; y++ {
		if y&7 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		fn(y)
	}
	return ctx.Err()
}
