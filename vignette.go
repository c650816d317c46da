package artfx

import (
	"context"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// VignetteShape selects the distance metric of the vignette.
type VignetteShape string

const (
	VignetteCircular   VignetteShape = "circular"
	VignetteElliptical VignetteShape = "elliptical"
	VignetteSquare     VignetteShape = "square"
)

// VignetteParams configures the vignette. Size, Softness, CenterX and CenterY are
// percentages.
type VignetteParams struct {
	Shape    VignetteShape
	Size     float64 // inner radius as a percentage of the max distance, default 50
	Softness float64 // width of the falloff band, default 50
	CenterX  float64 // default 50
	CenterY  float64 // default 50
	Color    [3]uint8
}

// ParseVignette reads the vignette parameters. Both the short keys (shape, size,
// softness, centerX, centerY, color) and the vignette-prefixed ones are accepted.
func ParseVignette(o Options) VignetteParams {
	shape := VignetteShape(o.alias("shape", "shape", "vignetteShape").String("shape", string(VignetteCircular)))
	switch shape {
	case VignetteCircular, VignetteElliptical, VignetteSquare:
	default:
		shape = VignetteCircular
	}
	return VignetteParams{
		Shape:    shape,
		Size:     o.alias("v", "size", "vignetteSize").Float("v", 50),
		Softness: o.alias("v", "softness", "vignetteSoftness").Float("v", 50),
		CenterX:  o.alias("v", "centerX", "vignetteX").Float("v", 50),
		CenterY:  o.alias("v", "centerY", "vignetteY").Float("v", 50),
		Color:    o.alias("v", "color", "vignetteColor").Color("v", [3]uint8{0, 0, 0}),
	}
}

// Vignette fades the image toward Color with growing distance from the center. Inside
// the inner radius nothing changes, beyond the outer radius the color fully replaces
// the pixel, and in between the falloff follows a smoothstep.
func Vignette(ctx context.Context, src *Buffer, intensity float64, p VignetteParams) (*Buffer, error) {
	width, height := src.Width, src.Height
	if src.Empty() {
		return src.Clone(), nil
	}
	center := mgl64.Vec2{p.CenterX / 100 * float64(width), p.CenterY / 100 * float64(height)}
	aspect := float64(width) / float64(height)

	var maxDistance float64
	switch p.Shape {
	case VignetteCircular:
		maxDistance = math.Hypot(
			Max(center.X(), float64(width)-center.X()),
			Max(center.Y(), float64(height)-center.Y()),
		)
	default:
		maxDistance = float64(Max(width, height))
	}
	inner := maxDistance * p.Size / 100
	outer := inner + (maxDistance-inner)*p.Softness/100

	dst := NewBuffer(width, height)
	err := eachRow(ctx, height, func(y int) {
		for x := 0; x < width; x++ {
			d := mgl64.Vec2{float64(x), float64(y)}.Sub(center)

			var dist float64
			switch p.Shape {
			case VignetteElliptical:
				dist = mgl64.Vec2{d.X() / aspect, d.Y()}.Len()
			case VignetteSquare:
				dist = Max(math.Abs(d.X()), math.Abs(d.Y()))
			default:
				dist = d.Len()
			}

			f := falloff(dist, inner, outer)
			i := src.offset(x, y)
			for c := 0; c < 3; c++ {
				dst.Pix[i+c] = clampByte(lerp(float64(src.Pix[i+c]), float64(p.Color[c]), f))
			}
			dst.Pix[i+3] = src.Pix[i+3]
		}
	})
	if err != nil {
		return nil, err
	}
	return Blend(src, dst, intensity), nil
}

// falloff maps a distance to [0, 1]: 0 up to inner, 1 from outer on, smoothstep between.
func falloff(dist, inner, outer float64) float64 {
	switch {
	case dist <= inner:
		return 0
	case dist >= outer:
		return 1
	}
	t := (dist - inner) / (outer - inner)
	return t * t * (3 - 2*t)
}
