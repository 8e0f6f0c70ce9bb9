// Package trendminer is the entry point for rendering TrendMiner pages and
// validating document uploads without importing the individual packages.
package trendminer

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-trendminer/pkg/analyse"
	"github.com/goliatone/go-trendminer/pkg/page"
	"github.com/goliatone/go-trendminer/pkg/render"
	"github.com/goliatone/go-trendminer/pkg/renderers/shell"
	"github.com/goliatone/go-trendminer/pkg/upload"
)

// RenderContext carries the per-request values the page shell depends on.
type RenderContext = page.RenderContext

// User is the signed in user shown in the navigation bar.
type User = page.User

// Blocks are the caller supplied fragments inserted into the shell.
type Blocks = page.Blocks

// Site holds the branding and links of the shell.
type Site = page.Site

// RenderOptions describes per-request overrides such as the site metadata or
// a resolved theme.
type RenderOptions = render.RenderOptions

// UploadFile is an uploaded document held in memory.
type UploadFile = upload.File

// UploadResult is the outcome of validating an upload.
type UploadResult = upload.Result

// NewRenderer exposes the shell renderer constructor from the top-level module.
func NewRenderer(options ...shell.Option) (*shell.Renderer, error) {
	return shell.New(options...)
}

// Render returns the page shell for rc and blocks using the embedded template
// and default site metadata.
func Render(rc RenderContext, blocks Blocks) string {
	return shell.Render(rc, blocks)
}

// RenderPage builds a renderer from options and renders a single document.
func RenderPage(ctx context.Context, rc RenderContext, blocks Blocks, options ...shell.Option) ([]byte, error) {
	renderer, err := shell.New(options...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, rc, blocks, RenderOptions{})
}

// RenderThemedPage renders with the default renderer and the given theme
// configuration applied.
func RenderThemedPage(ctx context.Context, rc RenderContext, blocks Blocks, cfg theme.RendererConfig) ([]byte, error) {
	return shell.Default().Render(ctx, rc, blocks, RenderOptions{Theme: &cfg})
}

// ValidateUpload runs the upload validation pipeline on f.
func ValidateUpload(ctx context.Context, f UploadFile, options ...upload.Option) (UploadResult, error) {
	return upload.NewPipeline(options...).Validate(ctx, f)
}

// AnalysePage validates f and renders the analyse page reporting the outcome.
func AnalysePage(ctx context.Context, rc RenderContext, f UploadFile, options ...upload.Option) ([]byte, error) {
	result, err := ValidateUpload(ctx, f, options...)
	if err != nil {
		return nil, err
	}
	return analyse.Render(ctx, nil, rc, analyse.NewForm(result, f.Name), RenderOptions{})
}
