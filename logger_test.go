package artfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	Apply(gradientBuffer(4, 4), Style("sepia"), 100, nil)
	Apply(gradientBuffer(24, 24), StyleStainedGlass, 100, Options{"seed": 1})

	assert.Equal(t, 1, logs.FilterMessage("unknown style, passing through").Len())
	assert.Equal(t, 1, logs.FilterMessage("stained glass tier selected").Len())
	assert.Equal(t, 1, logs.FilterMessage("poisson seeds generated").Len())

	SetLogger(nil)
	assert.NotNil(t, Logger())
}
