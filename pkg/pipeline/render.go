package pipeline

import (
	"context"

	"github.com/matzehuels/wbsview/pkg/errors"
	"github.com/matzehuels/wbsview/pkg/render/nodelink"
	"github.com/matzehuels/wbsview/pkg/render/sink"
	"github.com/matzehuels/wbsview/pkg/view"
)

// Render produces one artifact for v without caching.
func Render(ctx context.Context, v view.View, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return sink.RenderJSON(v, sink.WithIndent())
	case FormatDOT:
		return []byte(nodelink.ToDOT(v, nodelink.Options{Detailed: opts.Detailed})), nil
	case FormatSVG:
		data, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(v, nodelink.Options{Detailed: opts.Detailed}))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render svg")
		}
		return data, nil
	case FormatPNG:
		data, err := nodelink.RenderPNG(ctx, nodelink.ToDOT(v, nodelink.Options{Detailed: opts.Detailed}))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render png")
		}
		return data, nil
	}
	return nil, ValidateFormat(format)
}
