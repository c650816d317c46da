package artfx

// Strategy is the execution tier of the stained-glass effect.
type Strategy int

const (
	// StrategyExact runs Poisson seeding and Jump Flooding at full resolution.
	StrategyExact Strategy = iota
	// StrategyDownsample runs the exact tier at half the linear resolution and
	// upsamples the result with edge-aware interpolation.
	StrategyDownsample
	// StrategyBlock fills square blocks with their center color and outlines them.
	// There is no Voronoi computation at all.
	StrategyBlock
)

func (s Strategy) String() string {
	switch s {
	case StrategyExact:
		return "exact"
	case StrategyDownsample:
		return "downsample"
	case StrategyBlock:
		return "block"
	}
	return "unknown"
}

// Thresholds are the pixel counts above which the cheaper tiers take over. They encode
// a performance policy and can be overridden per invocation.
type Thresholds struct {
	// BlockAbove selects StrategyBlock when width*height exceeds it.
	BlockAbove int
	// DownsampleAbove selects StrategyDownsample when width*height exceeds it.
	DownsampleAbove int
}

// DefaultThresholds switch to the block tier above 1080p and to the downsample tier
// above 720p.
var DefaultThresholds = Thresholds{
	BlockAbove:      1920 * 1080,
	DownsampleAbove: 1280 * 720,
}

// SelectStrategy picks the stained-glass tier for an image. The choice depends only on
// its arguments.
func SelectStrategy(width, height int, preferSpeed bool, t Thresholds) Strategy {
	pixels := width * height
	switch {
	case pixels > t.BlockAbove || preferSpeed:
		return StrategyBlock
	case pixels > t.DownsampleAbove:
		return StrategyDownsample
	}
	return StrategyExact
}
