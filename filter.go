package artfx

import (
	"context"

	"go.uber.org/zap"
)

// Filter is a single processing stage.
type Filter interface {
	// Apply returns a new buffer and never writes into src.
	Apply(ctx context.Context, src *Buffer) (*Buffer, error)
}

// Pipeline applies a list of filters in order, each one reading the previous output.
type Pipeline struct {
	Filters []Filter
}

// NewPipeline creates a new pipeline initialized with the given list of filters.
// Nil filters are skipped.
func NewPipeline(filters ...Filter) *Pipeline {
	p := &Pipeline{}
	for _, f := range filters {
		if f != nil {
			p.Filters = append(p.Filters, f)
		}
	}
	return p
}

// Apply runs all the filters. An empty pipeline returns a copy of src.
func (p *Pipeline) Apply(ctx context.Context, src *Buffer) (*Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	out := src.Clone()
	for i, f := range p.Filters {
		next, err := f.Apply(ctx, out)
		if err != nil {
			return nil, err
		}
		Logger().Debug("pipeline stage done", zap.Int("stage", i))
		out = next
	}
	return out, nil
}

// StyleFilter runs one of the named styles.
type StyleFilter struct {
	Style     Style
	Intensity float64 // percent, [0, 100]
	Options   Options
}

// Apply implements Filter.
func (f StyleFilter) Apply(ctx context.Context, src *Buffer) (*Buffer, error) {
	return ApplyContext(ctx, src, f.Style, f.Intensity, f.Options)
}

// VignetteFilter darkens (or tints) the image borders.
type VignetteFilter struct {
	Intensity float64 // percent, [0, 100]
	Options   Options
}

// Apply implements Filter.
func (f VignetteFilter) Apply(ctx context.Context, src *Buffer) (*Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	return Vignette(ctx, src, f.Intensity/100, ParseVignette(f.Options))
}
