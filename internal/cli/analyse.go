package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-trendminer/pkg/analyse"
	"github.com/goliatone/go-trendminer/pkg/buildinfo"
	"github.com/goliatone/go-trendminer/pkg/render"
)

type analyseOpts struct {
	user     string
	commit   string
	action   string
	sanitize bool
	output   string
}

func newAnalyseCmd() *cobra.Command {
	opts := analyseOpts{}

	cmd := &cobra.Command{
		Use:   "analyse <file>",
		Short: "Validate an upload and render the analyse page",
		Long: `Validate a file like the upload form would and render the resulting analyse page:
the form with the list of failed checks, or a success message.`,
		Example: `  trendminer analyse item.xml -o analyse.html`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, result, err := validateUpload(cmd, args[0])
			if err != nil {
				return err
			}

			cfg := configFromContext(cmd.Context())
			renderer, err := newShell(cfg, opts.sanitize)
			if err != nil {
				return err
			}

			form := analyse.NewForm(result, f.Name)
			form.Action = opts.action

			rc := renderContext(analyse.Title, opts.user, opts.commit)
			out, err := analyse.Render(cmd.Context(), renderer, rc, form, render.RenderOptions{})
			if err != nil {
				return err
			}
			return writeOutput(cmd, opts.output, out)
		},
	}

	cmd.Flags().StringVar(&opts.user, "user", "", "signed in username")
	cmd.Flags().StringVar(&opts.commit, "commit", buildinfo.CommitTag(), "commit shown in the footer")
	cmd.Flags().StringVar(&opts.action, "action", analyse.DefaultAction, "form target URL")
	cmd.Flags().BoolVar(&opts.sanitize, "sanitize", false, "sanitize the rendered content block")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}
