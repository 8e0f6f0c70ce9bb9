package render

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-trendminer/pkg/page"
)

// Renderer converts a RenderContext plus caller supplied Blocks into a
// complete document.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, rc page.RenderContext, blocks page.Blocks, options RenderOptions) ([]byte, error)
}

// RenderOptions describe per-request overrides that renderers apply without
// mutating their configuration.
type RenderOptions struct {
	// Site replaces the renderer's site metadata for this call. Empty fields
	// fall back to page.DefaultSite.
	Site *page.Site
	// Theme carries a resolved go-theme configuration. When present the shell
	// emits the theme's CSS variables and stylesheet after the fixed assets.
	Theme *theme.RendererConfig
}
