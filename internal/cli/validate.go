package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-trendminer/pkg/upload"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a .xml document or .zip archive before analysis",
		Long: `Run the upload checks on a file: extension, size, MIME type, archive integrity
and contents, XML well-formedness and schema conformity. Every failing check is reported.`,
		Example: `  trendminer validate item.xml
  trendminer validate --config trendminer.yaml tweets.zip`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, result, err := validateUpload(cmd, args[0])
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), f.Name, result)
			if !result.Valid {
				return fmt.Errorf("%s failed %d check(s)", f.Name, len(result.Errors))
			}
			return nil
		},
	}
}

// validateUpload reads path and runs the configured pipeline on it.
func validateUpload(cmd *cobra.Command, path string) (upload.File, upload.Result, error) {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)

	f, err := upload.FileFromPath(path)
	if err != nil {
		return upload.File{}, upload.Result{}, err
	}
	options, err := cfg.PipelineOptions()
	if err != nil {
		return upload.File{}, upload.Result{}, err
	}

	prog := newProgress(logger)
	result, err := upload.NewPipeline(options...).Validate(ctx, f)
	if err != nil {
		return upload.File{}, upload.Result{}, err
	}
	logger.Debug("validation finished", "file", f.Name, "size", f.Size, "failures", len(result.Errors))
	prog.done("validated upload", "file", f.Name, "valid", result.Valid)
	return f, result, nil
}
