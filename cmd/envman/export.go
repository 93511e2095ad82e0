package envman

import (
	"fmt"
	"strings"

	"github.com/railwayapp/envman/internal/environment"
	"github.com/railwayapp/envman/internal/export"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print a .env file as dotenv, JSON, YAML or TOML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := exportOptions{
			file:   setting(cmd, "file"),
			format: setting(cmd, "format"),
			redact: boolSetting(cmd, "redact"),
		}
		return runExport(opts, streamsFor(cmd))
	},
}

type exportOptions struct {
	file   string
	format string
	redact bool
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("file", "f", ".env", "env file to export")
	exportCmd.Flags().String("format", "json", "output format ("+strings.Join(export.Formats(), ", ")+")")
	exportCmd.Flags().Bool("redact", false, "mask values that look like secrets")
}

func runExport(opts exportOptions, s streams) error {
	exporter, err := export.ForFormat(opts.format)
	if err != nil {
		return err
	}

	if !requireFile(s, "Environment", opts.file) {
		return nil
	}

	env, err := environment.ReadFile(filesystem, opts.file)
	if err != nil {
		return err
	}
	if opts.redact {
		env = export.Redacted(env)
	}

	data, err := exporter.Export(env)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(s.out, string(data))
	return err
}
