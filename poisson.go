package artfx

import (
	"math"
	"math/rand"

	"go.uber.org/zap"
)

const (
	// poissonAttempts is the number of candidates tried around an active point before
	// the point is retired.
	poissonAttempts = 30
	// seedSpacing scales the target cell size into the minimum seed separation.
	seedSpacing = 0.7
)

// SeedPoint is a Voronoi generator: a position in pixel space and the color sampled
// from the source buffer at its floored coordinate.
type SeedPoint struct {
	X, Y    float64
	R, G, B uint8
}

// GenerateSeeds distributes seed points over the buffer with Poisson-disk sampling:
// every pair of returned points is at least 0.7*cellSize apart. Rejection only inspects
// the 5x5 block of acceleration-grid cells around a candidate, which keeps the
// sampler close to linear in the number of points.
//
// A zero-area buffer yields no seeds.
func GenerateSeeds(src *Buffer, cellSize float64, rnd *rand.Rand) []SeedPoint {
	width, height := src.Width, src.Height
	if width <= 0 || height <= 0 || cellSize <= 0 {
		return nil
	}

	minDistance := cellSize * seedSpacing
	gridCellSize := minDistance / math.Sqrt2
	gridWidth := int(math.Ceil(float64(width) / gridCellSize))
	gridHeight := int(math.Ceil(float64(height) / gridCellSize))

	// Each grid cell is smaller than minDistance along its diagonal, so it can hold at
	// most one accepted point.
	grid := make([]int32, gridWidth*gridHeight)
	for i := range grid {
		grid[i] = -1
	}

	var (
		points []SeedPoint
		active []int
	)

	valid := func(x, y float64) bool {
		if x < 0 || x >= float64(width) || y < 0 || y >= float64(height) {
			return false
		}
		gx := int(x / gridCellSize)
		gy := int(y / gridCellSize)

		for dy := -2; dy <= 2; dy++ {
			ny := gy + dy
			if ny < 0 || ny >= gridHeight {
				continue
			}
			for dx := -2; dx <= 2; dx++ {
				nx := gx + dx
				if nx < 0 || nx >= gridWidth {
					continue
				}
				if idx := grid[ny*gridWidth+nx]; idx != -1 {
					p := points[idx]
					if math.Hypot(x-p.X, y-p.Y) < minDistance {
						return false
					}
				}
			}
		}
		return true
	}

	add := func(x, y float64) {
		c := src.At(int(x), int(y))
		points = append(points, SeedPoint{X: x, Y: y, R: c.R, G: c.G, B: c.B})
		idx := len(points) - 1
		grid[int(y/gridCellSize)*gridWidth+int(x/gridCellSize)] = int32(idx)
		active = append(active, idx)
	}

	add(rnd.Float64()*float64(width), rnd.Float64()*float64(height))

	for len(active) > 0 {
		k := rnd.Intn(len(active))
		p := points[active[k]]
		found := false

		for i := 0; i < poissonAttempts; i++ {
			angle := rnd.Float64() * 2 * math.Pi
			radius := minDistance + rnd.Float64()*minDistance
			x := p.X + radius*math.Cos(angle)
			y := p.Y + radius*math.Sin(angle)

			if valid(x, y) {
				add(x, y)
				found = true
			}
		}

		if !found {
			// Swap-remove, the next pick is random anyway.
			active[k] = active[len(active)-1]
			active = active[:len(active)-1]
		}
	}

	Logger().Debug("poisson seeds generated",
		zap.Int("seeds", len(points)),
		zap.Float64("minDistance", minDistance),
		zap.Int("width", width),
		zap.Int("height", height),
	)
	return points
}
