package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-trendminer/internal/config"
	"github.com/goliatone/go-trendminer/internal/prompt"
	"github.com/goliatone/go-trendminer/pkg/buildinfo"
	"github.com/goliatone/go-trendminer/pkg/page"
	"github.com/goliatone/go-trendminer/pkg/render"
	"github.com/goliatone/go-trendminer/pkg/renderers/shell"
)

// newPromptDriver is replaced in tests.
var newPromptDriver = func() prompt.Driver {
	return prompt.NewSurveyDriver()
}

type renderOpts struct {
	title       string
	user        string
	commit      string
	headFile    string
	contentFile string
	footerFile  string
	jsFile      string
	sanitize    bool
	output      string
	interactive bool
}

func newRenderCmd() *cobra.Command {
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the page shell around HTML fragments",
		Long: `Render a complete TrendMiner HTML document. Fragments for the head, content,
footer and javascript blocks are read from files and inserted at their fixed positions.`,
		Example: `  trendminer render --title "Analyse Tweets" --content-file body.html
  trendminer render --title Dashboard --user alice --commit $(git rev-parse HEAD) -o index.html
  trendminer render --interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.title, "title", "", "document title")
	cmd.Flags().StringVar(&opts.user, "user", "", "signed in username (empty renders the Login link)")
	cmd.Flags().StringVar(&opts.commit, "commit", buildinfo.CommitTag(), "commit shown in the footer")
	cmd.Flags().StringVar(&opts.headFile, "head-file", "", "file with extra <head> markup")
	cmd.Flags().StringVar(&opts.contentFile, "content-file", "", "file with the main content")
	cmd.Flags().StringVar(&opts.footerFile, "footer-file", "", "file with extra footer markup")
	cmd.Flags().StringVar(&opts.jsFile, "js-file", "", "file with trailing script markup")
	cmd.Flags().BoolVar(&opts.sanitize, "sanitize", false, "sanitize content and footer fragments")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "prompt for title, user and commit")

	return cmd
}

func runRender(cmd *cobra.Command, opts renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)

	rc := renderContext(opts.title, opts.user, opts.commit)
	if opts.interactive {
		var err error
		if rc, err = prompt.RenderContext(ctx, newPromptDriver(), rc); err != nil {
			return err
		}
	}

	blocks, err := readBlocks(opts)
	if err != nil {
		return err
	}
	if blocks.Empty() {
		logger.Debug("no block files given, rendering bare shell")
	}

	renderer, err := newShell(cfg, opts.sanitize)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	out, err := renderer.Render(ctx, rc, blocks, render.RenderOptions{})
	if err != nil {
		return err
	}
	prog.done("rendered page", "title", rc.Title, "bytes", len(out))

	return writeOutput(cmd, opts.output, out)
}

func renderContext(title, user, commit string) page.RenderContext {
	rc := page.RenderContext{
		Title:     strings.TrimSpace(title),
		CommitTag: strings.TrimSpace(commit),
	}
	if username := strings.TrimSpace(user); username != "" {
		rc.User = &page.User{Username: username}
	}
	return rc
}

func readBlocks(opts renderOpts) (page.Blocks, error) {
	var blocks page.Blocks
	for _, block := range []struct {
		path string
		dst  *string
	}{
		{opts.headFile, &blocks.Head},
		{opts.contentFile, &blocks.Content},
		{opts.footerFile, &blocks.Footer},
		{opts.jsFile, &blocks.JavaScript},
	} {
		if block.path == "" {
			continue
		}
		data, err := os.ReadFile(block.path)
		if err != nil {
			return page.Blocks{}, fmt.Errorf("read block: %w", err)
		}
		*block.dst = string(data)
	}
	return blocks, nil
}

func newShell(cfg config.Config, sanitize bool) (*shell.Renderer, error) {
	options := []shell.Option{shell.WithSite(cfg.Site)}
	if sanitize {
		options = append(options, shell.WithSanitizedBlocks())
	}
	return shell.New(options...)
}

func writeOutput(cmd *cobra.Command, path string, out []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(out)
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	printFile(cmd.ErrOrStderr(), path)
	return nil
}

