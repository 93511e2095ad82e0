package envman

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/railwayapp/envman/internal/logging"
	"github.com/railwayapp/envman/internal/validator"
	"github.com/railwayapp/envman/internal/watch"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a .env file against a template",
	Long: `Validate checks that every required template variable is present and
non-empty and that its value matches the declared type (int, bool, url,
email). Optional variables are not checked.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := validateOptions{
			file:     setting(cmd, "file"),
			template: setting(cmd, "template"),
			watch:    boolSetting(cmd, "watch"),
		}
		return runValidate(cmd.Context(), opts, streamsFor(cmd))
	},
}

type validateOptions struct {
	file     string
	template string
	watch    bool
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringP("file", "f", ".env", "env file to validate")
	validateCmd.Flags().StringP("template", "t", ".env.example", "template file")
	validateCmd.Flags().Bool("watch", false, "re-validate whenever the env file or template changes")
}

func runValidate(ctx context.Context, opts validateOptions, s streams) error {
	if !requireFile(s, "Environment", opts.file) {
		return nil
	}

	err := validateOnce(opts, s)
	if !opts.watch {
		return err
	}

	w, werr := watch.New([]string{opts.file, opts.template}, watch.DefaultDebounce, func(path string) {
		fmt.Fprintf(s.out, "\n%s changed, re-validating\n", path)
		if err := validateOnce(opts, s); err != nil && !errors.Is(err, errSilent) {
			fmt.Fprintln(s.err, "Error:", err)
		}
	})
	if werr != nil {
		return werr
	}
	logging.WithFile(opts.file).Info("watching for changes", "template", opts.template)
	return w.Run(ctx)
}

// validateOnce prints the outcome of one validation. A failed validation is
// reported on s.err and returned as errSilent.
func validateOnce(opts validateOptions, s streams) error {
	issues, err := validator.ValidateFile(filesystem, opts.file, opts.template)
	if err != nil {
		return err
	}

	if len(issues) > 0 {
		fmt.Fprintln(s.err, "Validation failed:")
		for _, msg := range validator.Messages(issues) {
			fmt.Fprintf(s.err, "  - %s\n", msg)
		}
		return errSilent
	}

	fmt.Fprintln(s.out, "All environment variables are valid!")
	return nil
}
