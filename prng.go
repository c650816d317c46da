package artfx

import (
	"math"
	"math/rand"
	"time"
)

// prng is a Park-Miller minimal standard generator using Carta's multiplication
// without division. It is small, fast and fully reproducible from its seed.
type prng struct {
	a     int64
	m     int64
	state int64
}

// NewSource returns a Park-Miller rand.Source seeded with seed.
func NewSource(seed int64) rand.Source {
	p := &prng{a: 16807, m: 0x7fffffff}
	p.Seed(seed)
	return p
}

// Seed implements rand.Source. The generator state must stay inside [1, m-1].
func (p *prng) Seed(seed int64) {
	s := seed % p.m
	if s < 0 {
		s += p.m
	}
	if s == 0 {
		s = 1
	}
	p.state = s
}

func (p *prng) next() int64 {
	lo := p.a * (p.state & 0xffff)
	hi := p.a * (p.state >> 16)
	lo += (hi & 0x7fff) << 16

	if lo > p.m {
		lo &= p.m
		lo++
	}
	lo += hi >> 15
	if lo > p.m {
		lo &= p.m
		lo++
	}
	p.state = lo
	return lo
}

// Int63 implements rand.Source by joining two 31 bit draws and the low bit of a third.
func (p *prng) Int63() int64 {
	return p.next()<<32 | p.next()<<1 | p.next()&1
}

// newRand returns a generator for one effect invocation. A zero seed means
// "not reproducible" and seeds from the clock.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(NewSource(seed))
}

// randFor builds the generator for an invocation from its options.
func randFor(opts Options) *rand.Rand {
	return newRand(seedOf(opts))
}

// seedOf reads the "seed" option. Unlike the other numeric options any non-zero value
// is kept as is, negative ones included. Floats beyond the int64 range saturate.
func seedOf(opts Options) int64 {
	switch v := opts["seed"].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case uint64:
		return int64(v)
	}
	f, ok := opts.number("seed")
	switch {
	case !ok:
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}
