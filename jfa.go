package artfx

import (
	"context"
	"math"
)

// Unassigned marks a pixel without a nearest seed. It only survives ComputeVoronoi when
// no seed lies inside the raster.
const Unassigned int32 = -1

// CellMap holds, for every pixel in row-major order, the index of its nearest seed and
// the Euclidean distance to that seed.
type CellMap struct {
	Cells  []int32
	Dist   []float32
	Width  int
	Height int
}

// ComputeVoronoi assigns every pixel to an (approximately) nearest seed with the Jump
// Flooding Algorithm: log2(max(w, h)) passes with halving step sizes, each pass
// comparing a pixel against the 9 positions at offset ±step. Distances are always
// measured to the neighbour's seed, never to the neighbour pixel.
//
// The total cost is O(w*h*log(max(w, h))). Like every JFA variant the result may
// differ from the exact Voronoi diagram in rare configurations.
func ComputeVoronoi(ctx context.Context, seeds []SeedPoint, width, height int) (*CellMap, error) {
	n := width * height
	cm := &CellMap{
		Cells:  make([]int32, n),
		Dist:   make([]float32, n),
		Width:  width,
		Height: height,
	}
	inf := float32(math.Inf(1))
	for i := range cm.Cells {
		cm.Cells[i] = Unassigned
		cm.Dist[i] = inf
	}
	if n == 0 {
		return cm, nil
	}

	for i, s := range seeds {
		x, y := int(math.Floor(s.X)), int(math.Floor(s.Y))
		if x >= 0 && x < width && y >= 0 && y < height {
			cm.Cells[y*width+x] = int32(i)
			cm.Dist[y*width+x] = 0
		}
	}

	for _, step := range jumpSteps(Max(width, height)) {
		err := eachRow(ctx, height, func(y int) {
			for x := 0; x < width; x++ {
				cm.relax(seeds, x, y, step)
			}
		})
		if err != nil {
			return nil, err
		}
	}
	return cm, nil
}

// relax updates pixel (x, y) from the 3x3 neighbourhood at the given step.
func (cm *CellMap) relax(seeds []SeedPoint, x, y, step int) {
	cur := y*cm.Width + x
	for dy := -1; dy <= 1; dy++ {
		ny := y + dy*step
		if ny < 0 || ny >= cm.Height {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			nx := x + dx*step
			if nx < 0 || nx >= cm.Width {
				continue
			}
			cell := cm.Cells[ny*cm.Width+nx]
			if cell == Unassigned {
				continue
			}
			s := seeds[cell]
			d := float32(math.Hypot(float64(x)-s.X, float64(y)-s.Y))
			if d < cm.Dist[cur] {
				cm.Dist[cur] = d
				cm.Cells[cur] = cell
			}
		}
	}
}

// jumpSteps returns the halving step sequence ending in 1. The first step is half the
// smallest power of two covering size, so the steps sum to at least size-1 and a single
// seed can reach every pixel.
func jumpSteps(size int) []int {
	p := 1
	for p < size {
		p <<= 1
	}
	step := p / 2
	if step < 1 {
		step = 1
	}
	var steps []int
	for ; step >= 1; step /= 2 {
		steps = append(steps, step)
	}
	return steps
}

// Covered reports whether every pixel has a cell assigned.
func (cm *CellMap) Covered() bool {
	for _, c := range cm.Cells {
		if c == Unassigned {
			return false
		}
	}
	return true
}
