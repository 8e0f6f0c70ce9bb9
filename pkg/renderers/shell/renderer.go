package shell

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-trendminer/pkg/page"
	"github.com/goliatone/go-trendminer/pkg/render"
	rendertemplate "github.com/goliatone/go-trendminer/pkg/render/template"
	gotemplate "github.com/goliatone/go-trendminer/pkg/render/template/gotemplate"
)

// ThemeStylesheetKey is the asset key resolved through the theme's AssetURL
// to find an extra stylesheet for the shell.
const ThemeStylesheetKey = "shell.stylesheet"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	site             page.Site
	policy           *bluemonday.Policy
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must contain BaseTemplate.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithSite sets the site metadata used when a call does not override it.
func WithSite(site page.Site) Option {
	return func(cfg *config) {
		cfg.site = site.WithDefaults()
	}
}

// WithSanitizedBlocks passes the content and footer blocks through
// bluemonday's UGC policy before insertion.
func WithSanitizedBlocks() Option {
	return func(cfg *config) {
		cfg.policy = blockSanitizer()
	}
}

// WithBlockPolicy sanitizes the content and footer blocks with policy.
func WithBlockPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		cfg.policy = policy
	}
}

// Renderer produces the TrendMiner page shell.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	site      page.Site
	policy    *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the shell renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		site:       page.DefaultSite(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("shell renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates: renderer,
		site:      cfg.site,
		policy:    cfg.policy,
	}, nil
}

func (r *Renderer) Name() string {
	return "shell"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render composes the page shell around blocks. Output is deterministic for
// identical inputs.
func (r *Renderer) Render(ctx context.Context, rc page.RenderContext, blocks page.Blocks, options render.RenderOptions) ([]byte, error) {
	if r == nil || r.templates == nil {
		return nil, fmt.Errorf("shell renderer: template renderer is nil")
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	site := r.site
	if options.Site != nil {
		site = options.Site.WithDefaults()
	}

	result, err := r.templates.RenderTemplate(BaseTemplate, r.viewData(rc, blocks, site, options.Theme))
	if err != nil {
		return nil, fmt.Errorf("shell renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// RenderFragment executes an auxiliary template from the same bundle, such as
// AnalyseFragment. The result is meant to be passed in as a content block.
func (r *Renderer) RenderFragment(name string, data any) (string, error) {
	if r == nil || r.templates == nil {
		return "", fmt.Errorf("shell renderer: template renderer is nil")
	}
	out, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return "", fmt.Errorf("shell renderer: render fragment %s: %w", name, err)
	}
	return out, nil
}

func (r *Renderer) viewData(rc page.RenderContext, blocks page.Blocks, site page.Site, cfg *theme.RendererConfig) map[string]any {
	content, footer := blocks.Content, blocks.Footer
	if r.policy != nil {
		content = r.policy.Sanitize(content)
		footer = r.policy.Sanitize(footer)
	}

	return map[string]any{
		"title":         rc.Title,
		"username":      rc.Username(),
		"authenticated": rc.Authenticated(),
		"commit":        page.ShortCommit(rc.CommitTag),
		"commit_url":    page.CommitLink(site.CommitURL, rc.CommitTag),
		"site": map[string]any{
			"brand":       site.Brand,
			"description": site.Description,
			"author":      site.Author,
			"home_url":    site.HomeURL,
			"login_url":   site.LoginURL,
			"logout_url":  site.LogoutURL,
			"footer_text": site.FooterText,
		},
		"assets": assetURLs(),
		"theme":  themeData(cfg),
		"blocks": map[string]any{
			"head":       blocks.Head,
			"content":    content,
			"footer":     footer,
			"javascript": blocks.JavaScript,
		},
	}
}

func assetURLs() map[string]any {
	return map[string]any{
		"bootstrap_css":          page.BootstrapCSS,
		"fontawesome_css":        page.FontAwesomeCSS,
		"html5shiv_js":           page.HTML5ShivJS,
		"favicon":                page.DefaultFaviconURL,
		"touch_icon":             page.DefaultTouchIconURL,
		"jquery_js":              page.JQueryJS,
		"bootstrap_js":           page.BootstrapJS,
		"tablesorter_js":         page.TablesorterJS,
		"tablesorter_widgets_js": page.TablesorterWidgetsJS,
	}
}

func themeData(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	data := map[string]any{
		"name":     cfg.Theme,
		"variant":  cfg.Variant,
		"css_vars": cssVarsStyle(cfg.CSSVars),
	}
	if cfg.AssetURL != nil {
		data["stylesheet"] = cfg.AssetURL(ThemeStylesheetKey)
	}
	return data
}

// cssEscaper hex-escapes angle brackets so theme values cannot close the
// style element.
var cssEscaper = strings.NewReplacer("<", `\3c `, ">", `\3e `)

// cssVarsStyle emits vars as a sorted :root rule so output stays stable.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root { ")
	for _, key := range keys {
		b.WriteString(cssEscaper.Replace(key))
		b.WriteString(": ")
		b.WriteString(cssEscaper.Replace(vars[key]))
		b.WriteString("; ")
	}
	b.WriteString("}")
	return b.String()
}

// Default returns the shared renderer built from the embedded templates and
// DefaultSite.
func Default() *Renderer {
	defaultOnce.Do(func() {
		defaultRenderer, defaultErr = New()
	})
	if defaultErr != nil {
		panic(defaultErr)
	}
	return defaultRenderer
}

var (
	defaultOnce     sync.Once
	defaultRenderer *Renderer
	defaultErr      error
)

// Render is the stateless form of the page shell: it renders rc and blocks
// with the embedded template and default site metadata. It panics if the
// embedded template cannot be loaded.
func Render(rc page.RenderContext, blocks page.Blocks) string {
	out, err := Default().Render(context.Background(), rc, blocks, render.RenderOptions{})
	if err != nil {
		panic(err)
	}
	return string(out)
}
