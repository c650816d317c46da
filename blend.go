package artfx

import "math"

// clampByte converts v to an 8-bit sample: NaN maps to 0, values saturate at 0 and 255,
// everything else rounds half to even.
func clampByte(v float64) uint8 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(math.RoundToEven(v))
}

// lerp moves from a toward b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Blend returns a new buffer where every RGB sample is
//
//	original + (computed - original) * intensity
//
// and alpha is copied from original. Intensity is not range checked: values outside
// [0, 1] extrapolate and saturate at the 8-bit limits.
func Blend(original, computed *Buffer, intensity float64) *Buffer {
	dst := NewBuffer(original.Width, original.Height)
	src, eff := original.Pix, computed.Pix
	for i := 0; i+3 < len(src); i += 4 {
		dst.Pix[i] = clampByte(lerp(float64(src[i]), float64(eff[i]), intensity))
		dst.Pix[i+1] = clampByte(lerp(float64(src[i+1]), float64(eff[i+1]), intensity))
		dst.Pix[i+2] = clampByte(lerp(float64(src[i+2]), float64(eff[i+2]), intensity))
		dst.Pix[i+3] = src[i+3]
	}
	return dst
}

// BlendOver works like Blend for RGB, but composites alpha as well: the effect alpha,
// weighted by intensity, is laid over the original alpha.
//
//	a = ea*intensity + oa*(1 - ea*intensity)
func BlendOver(original, computed *Buffer, intensity float64) *Buffer {
	dst := Blend(original, computed, intensity)
	src, eff := original.Pix, computed.Pix
	for i := 3; i < len(src); i += 4 {
		ea := float64(eff[i]) / 255 * intensity
		oa := float64(src[i]) / 255
		dst.Pix[i] = clampByte((ea + oa*(1-ea)) * 255)
	}
	return dst
}
