package artfx

import (
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Options is the flat key/value configuration handed to an effect. Values may be any Go
// numeric type, numeric strings, booleans or colors. No key is ever required: a missing,
// unparsable or non-positive number falls back to the documented default of the field.
type Options map[string]interface{}

// Float returns the option as a float64, or def when it is missing, not numeric,
// not finite or not positive.
func (o Options) Float(key string, def float64) float64 {
	v, ok := o.number(key)
	if !ok || v <= 0 {
		return def
	}
	return v
}

// Int is the integer counterpart of Float. Fractions are truncated.
func (o Options) Int(key string, def int) int {
	v, ok := o.number(key)
	if !ok || v <= 0 {
		return def
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	n := int(v)
	if n <= 0 {
		return def
	}
	return n
}

// Bool returns the option as a boolean. Numbers are true when non-zero and strings are
// parsed with strconv.ParseBool.
func (o Options) Bool(key string, def bool) bool {
	raw, ok := o[key]
	if !ok || raw == nil {
		return def
	}
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return def
		}
		return b
	}
	if f, ok := toFloat(raw); ok {
		return f != 0
	}
	return def
}

// String returns a non-empty string option, or def.
func (o Options) String(key string, def string) string {
	if v, ok := o[key].(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

// Color parses an RGB triple. Accepted forms are [3]uint8, []int, []float64,
// []interface{} of numbers, color.Color, and "#rrggbb"/"#rgb" or "r,g,b" strings.
func (o Options) Color(key string, def [3]uint8) [3]uint8 {
	raw, ok := o[key]
	if !ok || raw == nil {
		return def
	}
	switch v := raw.(type) {
	case [3]uint8:
		return v
	case color.Color:
		c := color.NRGBAModel.Convert(v).(color.NRGBA)
		return [3]uint8{c.R, c.G, c.B}
	case string:
		if c, ok := parseColor(v); ok {
			return c
		}
		return def
	case []int:
		return triple(len(v), func(i int) (float64, bool) { return float64(v[i]), true }, def)
	case []float64:
		return triple(len(v), func(i int) (float64, bool) { return v[i], true }, def)
	case []uint8:
		return triple(len(v), func(i int) (float64, bool) { return float64(v[i]), true }, def)
	case []interface{}:
		return triple(len(v), func(i int) (float64, bool) { return toFloat(v[i]) }, def)
	}
	return def
}

// With returns a copy of the options with the given overrides applied.
func (o Options) With(overrides Options) Options {
	out := make(Options, len(o)+len(overrides))
	for k, v := range o {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// first returns the value of the first key present, so that aliased option names can
// share one default.
func (o Options) first(keys ...string) (interface{}, bool) {
	for _, k := range keys {
		if v, ok := o[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// alias folds the first present key of keys into a single-key Options view.
func (o Options) alias(name string, keys ...string) Options {
	if v, ok := o.first(keys...); ok {
		return Options{name: v}
	}
	return Options{}
}

func (o Options) number(key string) (float64, bool) {
	raw, ok := o[key]
	if !ok || raw == nil {
		return 0, false
	}
	return toFloat(raw)
}

func toFloat(raw interface{}) (float64, bool) {
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case string:
		p, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = p
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func triple(n int, at func(i int) (float64, bool), def [3]uint8) [3]uint8 {
	if n < 3 {
		return def
	}
	var c [3]uint8
	for i := 0; i < 3; i++ {
		f, ok := at(i)
		if !ok || math.IsNaN(f) {
			return def
		}
		c[i] = clampByte(f)
	}
	return c
}

func parseColor(s string) ([3]uint8, bool) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		if len(parts) != 3 {
			return [3]uint8{}, false
		}
		var c [3]uint8
		for i, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return [3]uint8{}, false
			}
			c[i] = clampByte(f)
		}
		return c, true
	}

	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return [3]uint8{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return [3]uint8{}, false
	}
	return [3]uint8{uint8(v >> 16), uint8(v >> 8), uint8(v)}, true
}
