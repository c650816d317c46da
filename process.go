package artfx

import (
	"context"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Processor : type with processing options
type Processor struct {
	Style     Style
	Intensity float64 // percent, [0, 100]
	Options   Options
	// Vignette is the vignette intensity in percent. Zero disables the vignette stage.
	Vignette float64
	// Compare renders a before/after sheet instead of the bare result.
	Compare bool
	// MaxSize downscales the source so neither side exceeds it. Zero keeps the
	// original resolution.
	MaxSize int
}

// Pipeline builds the filter chain configured by the processor.
func (p *Processor) Pipeline() *Pipeline {
	var vignette Filter
	if p.Vignette > 0 {
		vignette = VignetteFilter{Intensity: p.Vignette, Options: p.Options}
	}
	return NewPipeline(
		StyleFilter{Style: p.Style, Intensity: p.Intensity, Options: p.Options},
		vignette,
	)
}

// Image runs the pipeline over an already decoded image.
func (p *Processor) Image(ctx context.Context, src image.Image) (image.Image, error) {
	if p.MaxSize > 0 {
		b := src.Bounds()
		if b.Dx() > p.MaxSize || b.Dy() > p.MaxSize {
			src = imaging.Fit(src, p.MaxSize, p.MaxSize, imaging.Lanczos)
		}
	}

	buf := FromImage(src)
	out, err := p.Pipeline().Apply(ctx, buf)
	if err != nil {
		return nil, errors.Wrapf(err, "apply %s", p.Style)
	}

	if p.Compare {
		return Compare(buf.NRGBA(), out.NRGBA(), "original", string(p.Style)), nil
	}
	return out.NRGBA(), nil
}

// Process decodes the image read from r, applies the configured effects and encodes the
// result into w in the requested format.
func (p *Processor) Process(ctx context.Context, r io.Reader, w io.Writer, format imaging.Format) error {
	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return errors.Wrap(err, "decode image")
	}
	Logger().With(zap.String("style", string(p.Style))).Debug("image decoded",
		zap.Int("width", src.Bounds().Dx()),
		zap.Int("height", src.Bounds().Dy()),
	)

	dst, err := p.Image(ctx, src)
	if err != nil {
		return err
	}
	if err := imaging.Encode(w, dst, format); err != nil {
		return errors.Wrap(err, "encode image")
	}
	return nil
}
