package artfx

import "math"

type kernel [3][3]float64

var (
	kernelX = kernel{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}

	kernelY = kernel{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// Sobel returns the gradient magnitude of a luminance plane of size width x height.
// Samples outside the plane are clamped to the nearest edge pixel, so the outermost
// rows and columns get a magnitude too.
func Sobel(gray []uint8, width, height int) []float64 {
	magnitudes := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sumX, sumY float64
			for ky := 0; ky < 3; ky++ {
				sy := Clamp(y+ky-1, 0, height-1)
				for kx := 0; kx < 3; kx++ {
					sx := Clamp(x+kx-1, 0, width-1)
					px := float64(gray[sy*width+sx])
					sumX += px * kernelX[ky][kx]
					sumY += px * kernelY[ky][kx]
				}
			}
			magnitudes[y*width+x] = math.Sqrt(sumX*sumX + sumY*sumY)
		}
	}
	return magnitudes
}

// dilate replaces every magnitude with the maximum found within the given Chebyshev
// radius. A radius below one returns the input unchanged.
func dilate(mag []float64, width, height, radius int) []float64 {
	if radius < 1 {
		return mag
	}
	out := make([]float64, len(mag))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			best := 0.0
			for dy := -radius; dy <= radius; dy++ {
				ny := y + dy
				if ny < 0 || ny >= height {
					continue
				}
				for dx := -radius; dx <= radius; dx++ {
					nx := x + dx
					if nx >= 0 && nx < width && mag[ny*width+nx] > best {
						best = mag[ny*width+nx]
					}
				}
			}
			out[y*width+x] = best
		}
	}
	return out
}
