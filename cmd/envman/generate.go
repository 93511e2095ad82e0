package envman

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/railwayapp/envman/internal/generator"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a .env file from a template",
	Long: `Generate resolves every variable declared in the template, in order:
a value already set in the process environment wins, then an interactive
answer (with --interactive), then the template default.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := generateOptions{
			template:    setting(cmd, "template"),
			output:      setting(cmd, "output"),
			interactive: boolSetting(cmd, "interactive"),
			expand:      boolSetting(cmd, "expand"),
			environ:     environMap(os.Environ()),
		}
		return runGenerate(cmd.Context(), opts, streamsFor(cmd))
	},
}

type generateOptions struct {
	template    string
	output      string
	interactive bool
	expand      bool
	environ     map[string]string
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringP("template", "t", ".env.example", "template file")
	generateCmd.Flags().StringP("output", "o", ".env", "output file")
	generateCmd.Flags().BoolP("interactive", "i", false, "prompt for values not set in the environment")
	generateCmd.Flags().Bool("expand", false, "interpolate ${VAR} references in resolved values")
}

func runGenerate(ctx context.Context, opts generateOptions, s streams) error {
	if !requireFile(s, "Template", opts.template) {
		return nil
	}

	genOpts := generator.Options{
		Environ:     opts.environ,
		Interactive: opts.interactive,
		Expand:      opts.expand,
	}
	if opts.interactive {
		genOpts.Prompter = generator.NewLinePrompter(s.in, s.out)
	}

	if _, err := generator.GenerateFile(ctx, filesystem, opts.template, opts.output, genOpts); err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Generated .env file: %s\n", opts.output)
	return nil
}

// environMap snapshots KEY=VALUE pairs as returned by os.Environ.
func environMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		m[key] = value
	}
	return m
}
