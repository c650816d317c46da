package artfx

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrngReproducible(t *testing.T) {
	a := rand.New(NewSource(42))
	b := rand.New(NewSource(42))
	c := rand.New(NewSource(43))

	diverged := false
	for i := 0; i < 100; i++ {
		va, vb, vc := a.Int63(), b.Int63(), c.Int63()
		require.Equal(t, va, vb)
		require.GreaterOrEqual(t, va, int64(0))
		if va != vc {
			diverged = true
		}
	}
	assert.True(t, diverged)
}

func TestPrngSeed(t *testing.T) {
	for _, seed := range []int64{0, -1, 0x7fffffff, -0x7fffffff, 1 << 40} {
		p := NewSource(seed).(*prng)
		assert.Greater(t, p.state, int64(0), "seed %d", seed)
		assert.Less(t, p.state, p.m, "seed %d", seed)
		p.next()
		assert.Greater(t, p.state, int64(0))
	}
}

func TestPrngDistribution(t *testing.T) {
	r := rand.New(NewSource(7))
	var buckets [10]int
	for i := 0; i < 10000; i++ {
		f := r.Float64()
		require.True(t, f >= 0 && f < 1)
		buckets[int(f*10)]++
	}
	for _, n := range buckets {
		assert.InDelta(t, 1000, n, 150)
	}
}

func TestPrngLowBit(t *testing.T) {
	r := rand.New(NewSource(11))
	odd := 0
	for i := 0; i < 1000; i++ {
		if r.Int63()&1 == 1 {
			odd++
		}
	}
	assert.InDelta(t, 500, odd, 100)
}

func TestRandFor(t *testing.T) {
	a := randFor(Options{"seed": 5})
	b := randFor(Options{"seed": "5"})
	assert.Equal(t, a.Int63(), b.Int63())

	for _, seed := range []interface{}{-7, int64(-7), int64(4e9), "4e9", 4e9, uint64(1 << 62)} {
		x, y := randFor(Options{"seed": seed}), randFor(Options{"seed": seed})
		assert.Equalf(t, x.Int63(), y.Int63(), "seed %v", seed)
	}

	c := randFor(Options{"seed": int64(3e9)})
	d := randFor(Options{"seed": int64(4e9)})
	assert.NotEqual(t, c.Int63(), d.Int63())
	assert.Equal(t, randFor(Options{"seed": "4e9"}).Int63(), randFor(Options{"seed": int64(4e9)}).Int63())
}

func TestSeedOf(t *testing.T) {
	tests := []struct {
		seed interface{}
		want int64
	}{
		{nil, 0},
		{"abc", 0},
		{0, 0},
		{-7, -7},
		{int64(-7), -7},
		{"-7", -7},
		{int64(4e9), 4e9},
		{3.9e9, 3.9e9},
		{int64(1) << 62, 1 << 62},
		{1e30, math.MaxInt64},
		{-1e30, math.MinInt64},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, seedOf(Options{"seed": tt.seed}), "seed %v", tt.seed)
	}
}
