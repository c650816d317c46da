package artfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectStrategy(t *testing.T) {
	tests := []struct {
		width, height int
		preferSpeed   bool
		want          Strategy
	}{
		{1921, 1080, false, StrategyBlock},
		{1920, 1080, false, StrategyDownsample},
		{1280, 721, false, StrategyDownsample},
		{1280, 720, false, StrategyExact},
		{800, 600, false, StrategyExact},
		{800, 600, true, StrategyBlock},
		{0, 0, false, StrategyExact},
	}
	for _, tt := range tests {
		got := SelectStrategy(tt.width, tt.height, tt.preferSpeed, DefaultThresholds)
		assert.Equalf(t, tt.want, got, "%dx%d preferSpeed=%v", tt.width, tt.height, tt.preferSpeed)

		// Same arguments, same answer.
		assert.Equal(t, got, SelectStrategy(tt.width, tt.height, tt.preferSpeed, DefaultThresholds))
	}
}

func TestSelectStrategyThresholds(t *testing.T) {
	th := Thresholds{BlockAbove: 1000, DownsampleAbove: 100}
	assert.Equal(t, StrategyExact, SelectStrategy(10, 10, false, th))
	assert.Equal(t, StrategyDownsample, SelectStrategy(10, 11, false, th))
	assert.Equal(t, StrategyBlock, SelectStrategy(40, 40, false, th))

	p := ParseStainedGlass(Options{"blockAbove": 1000, "downsampleAbove": "100"})
	assert.Equal(t, th, p.Thresholds)
}

func TestStrategyString(t *testing.T) {
	assert.Equal(t, "exact", StrategyExact.String())
	assert.Equal(t, "downsample", StrategyDownsample.String())
	assert.Equal(t, "block", StrategyBlock.String())
	assert.Equal(t, "unknown", Strategy(42).String())
}
