package artfx

import (
	"context"
	"math/rand"
	"sort"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Style identifies one of the artistic effects.
type Style string

const (
	StyleOilPainting  Style = "oil_painting"
	StyleWatercolor   Style = "watercolor"
	StylePencilSketch Style = "pencil_sketch"
	StyleMosaic       Style = "mosaic"
	StyleStainedGlass Style = "stained_glass"
	StyleComicBook    Style = "comic_book"
	StyleCrosshatch   Style = "crosshatch"
	StylePointillism  Style = "pointillism"
)

// effectFunc is the common shape of every style once its options are parsed.
type effectFunc func(ctx context.Context, src *Buffer, intensity float64, opts Options, rnd *rand.Rand) (*Buffer, error)

var effects = map[Style]effectFunc{
	StyleOilPainting: func(ctx context.Context, src *Buffer, i float64, o Options, rnd *rand.Rand) (*Buffer, error) {
		return OilPainting(ctx, src, i, ParseOil(o), rnd)
	},
	StyleWatercolor: func(ctx context.Context, src *Buffer, i float64, o Options, rnd *rand.Rand) (*Buffer, error) {
		return Watercolor(ctx, src, i, ParseWatercolor(o), rnd)
	},
	StylePencilSketch: func(ctx context.Context, src *Buffer, i float64, o Options, rnd *rand.Rand) (*Buffer, error) {
		return PencilSketch(ctx, src, i, ParsePencil(o), rnd)
	},
	StyleMosaic: func(ctx context.Context, src *Buffer, i float64, o Options, rnd *rand.Rand) (*Buffer, error) {
		return Mosaic(ctx, src, i, ParseMosaic(o), rnd)
	},
	StyleStainedGlass: func(ctx context.Context, src *Buffer, i float64, o Options, rnd *rand.Rand) (*Buffer, error) {
		return StainedGlass(ctx, src, i, ParseStainedGlass(o), rnd)
	},
	StyleComicBook: func(ctx context.Context, src *Buffer, i float64, o Options, _ *rand.Rand) (*Buffer, error) {
		return ComicBook(ctx, src, i, ParseComic(o))
	},
	StyleCrosshatch: func(ctx context.Context, src *Buffer, i float64, o Options, rnd *rand.Rand) (*Buffer, error) {
		return Crosshatch(ctx, src, i, ParseCrosshatch(o), rnd)
	},
	StylePointillism: func(ctx context.Context, src *Buffer, i float64, o Options, rnd *rand.Rand) (*Buffer, error) {
		return Pointillism(ctx, src, i, ParsePointillism(o), rnd)
	},
}

// Styles returns the supported style identifiers in lexical order.
func Styles() []Style {
	styles := lo.Keys(effects)
	sort.Slice(styles, func(i, j int) bool { return styles[i] < styles[j] })
	return styles
}

// Valid reports whether s names a supported style.
func (s Style) Valid() bool {
	_, ok := effects[s]
	return ok
}

// Apply runs the named style over buf. intensityPercent is in [0, 100]; values outside
// that range extrapolate and are saturated by the 8-bit clamp. An unknown style returns
// an unchanged copy of buf.
//
// Apply never fails; use ApplyContext for cancellation and input validation.
func Apply(buf *Buffer, style Style, intensityPercent float64, opts Options) *Buffer {
	out, err := ApplyContext(context.Background(), buf, style, intensityPercent, opts)
	if err != nil {
		if buf == nil {
			return nil
		}
		Logger().Warn("effect failed, returning input", zap.String("style", string(style)), zap.Error(err))
		return buf.Clone()
	}
	return out
}

// ApplyContext is Apply with cooperative cancellation. It returns ctx.Err() when the
// context is cancelled mid-computation and the Validate error for a malformed buffer.
func ApplyContext(ctx context.Context, buf *Buffer, style Style, intensityPercent float64, opts Options) (*Buffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if buf.Empty() {
		return buf.Clone(), nil
	}

	effect, ok := effects[style]
	if !ok {
		Logger().Warn("unknown style, passing through", zap.String("style", string(style)))
		return buf.Clone(), nil
	}
	if opts == nil {
		opts = Options{}
	}
	return effect(ctx, buf, intensityPercent/100, opts, randFor(opts))
}
