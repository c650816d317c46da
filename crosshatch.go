package artfx

import (
	"context"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// hatchLayer is one family of parallel lines, switched on once the pixel darkness
// exceeds threshold.
type hatchLayer struct {
	threshold float64
	angles    []float64
}

// hatchLayers lists the line families from the lightest tone to the darkest: the four
// base angles first, then the intermediate angles for the deepest shadows.
var hatchLayers = []hatchLayer{
	{0.1, []float64{0}},
	{0.3, []float64{math.Pi / 2}},
	{0.5, []float64{math.Pi / 4}},
	{0.7, []float64{3 * math.Pi / 4}},
	{0.85, []float64{math.Pi / 8, 3 * math.Pi / 8}},
	{0.95, []float64{5 * math.Pi / 8, 7 * math.Pi / 8}},
}

// CrosshatchParams configures the crosshatch effect.
type CrosshatchParams struct {
	LineSpacing         float64 // distance between parallel lines, default 6
	LineThickness       float64 // default 1
	AngleVariation      float64 // max per-pixel angle jitter in radians, default 0.1
	HatchDarkness       float64 // ink strength relative to the paper, default 0.7
	BackgroundLightness float64 // paper brightness in [0, 1], default 0.95
}

// ParseCrosshatch reads the crosshatch parameters from options.
func ParseCrosshatch(o Options) CrosshatchParams {
	return CrosshatchParams{
		LineSpacing:         Max(1, o.Float("lineSpacing", 6)),
		LineThickness:       Max(1, o.Float("lineThickness", 1)),
		AngleVariation:      o.Float("angleVariation", 0.1),
		HatchDarkness:       o.Float("hatchDarkness", 0.7),
		BackgroundLightness: o.Float("backgroundLightness", 0.95),
	}
}

// Crosshatch renders the image as ink hatching on near-white paper. Darker source
// pixels switch on more line families, so shadows get denser cross-hatching.
//
// Unlike the other effects, alpha is composited too (see BlendOver).
func Crosshatch(ctx context.Context, src *Buffer, intensity float64, p CrosshatchParams, rnd *rand.Rand) (*Buffer, error) {
	width, height := src.Width, src.Height
	gray := Grayscale(src)
	paper := 255 * p.BackgroundLightness
	ink := paper * (1 - p.HatchDarkness)
	half := p.LineThickness / 2
	dst := NewBuffer(width, height)

	onLine := func(x, y int, angle float64) bool {
		a := angle + (rnd.Float64()-0.5)*2*p.AngleVariation
		dir := mgl64.Vec2{math.Cos(a), math.Sin(a)}
		projected := dir.Dot(mgl64.Vec2{float64(x), float64(y)})
		return math.Abs(math.Mod(projected, p.LineSpacing)) < half
	}

	err := eachRow(ctx, height, func(y int) {
		for x := 0; x < width; x++ {
			pi := y*width + x
			darkness := (255 - float64(gray[pi])) / 255
			value := paper

			for _, layer := range hatchLayers {
				if darkness <= layer.threshold {
					break
				}
				for _, angle := range layer.angles {
					if onLine(x, y, angle) {
						value = Min(value, ink)
					}
				}
			}

			i := pi * 4
			v := clampByte(value)
			dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2] = v, v, v
			dst.Pix[i+3] = src.Pix[i+3]
		}
	})
	if err != nil {
		return nil, err
	}
	return BlendOver(src, dst, intensity), nil
}
