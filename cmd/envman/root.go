package envman

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/railwayapp/envman/internal/filesystems"
	"github.com/railwayapp/envman/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// errSilent makes the process exit non-zero after the command has already
// reported the failure itself.
var errSilent = errors.New("silent failure")

// filesystem backs every command.
var filesystem filesystems.FileSystem = filesystems.NewLocalFS()

var rootCmd = &cobra.Command{
	Use:   "envman",
	Short: "Manage .env files with validation, type checking and encryption",
	Long: `envman derives .env files from annotated templates and keeps them honest:
1. Generate - Resolve every template variable from the environment, a prompt or its default
2. Validate - Check an env file against the template's required and type annotations
3. Encrypt/Decrypt - Seal values in place with a passphrase-derived key

Template lines look like:
  PORT=8000  # int, required
  DEBUG=false  # bool, optional
  API_KEY=  # encrypted`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return
	}
	if !errors.Is(err, errSilent) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	stop()
	os.Exit(1)
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.envman.yaml, then $HOME/.envman.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log-format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// initConfig reads the config file and ENVMAN_* environment variables, then
// sets up logging. Every flag can be given a default in the config file
// under its own name (template, output, file, key, format, ...). The
// encrypt selectors are scoped under encrypt (encrypt.template,
// encrypt.sensitive) so the shared template key does not narrow encrypt.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName(".envman")
	}

	viper.SetEnvPrefix("ENVMAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	readErr := viper.ReadInConfig()

	logging.InitLogger(os.Stderr, viper.GetString("log-level"), viper.GetString("log-format"))

	if readErr == nil {
		logging.Logger.Debug("using config file", "path", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		logging.WithError(readErr).Warn("could not read config file", "path", cfgFile)
	}
}

// setting returns a string flag value. An explicitly passed flag wins, then
// the config file or ENVMAN_<NAME> variable, then the flag default.
func setting(cmd *cobra.Command, name string) string {
	return scopedSetting(cmd, name, name)
}

// scopedSetting is setting for a flag whose config key differs from its
// name, such as encrypt.template (ENVMAN_ENCRYPT_TEMPLATE).
func scopedSetting(cmd *cobra.Command, name, key string) string {
	flag := cmd.Flags().Lookup(name)
	if flag != nil && flag.Changed {
		return flag.Value.String()
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	if flag != nil {
		return flag.Value.String()
	}
	return ""
}

// boolSetting is setting for boolean flags.
func boolSetting(cmd *cobra.Command, name string) bool {
	return scopedBoolSetting(cmd, name, name)
}

func scopedBoolSetting(cmd *cobra.Command, name, key string) bool {
	flag := cmd.Flags().Lookup(name)
	if flag != nil && flag.Changed {
		value, _ := cmd.Flags().GetBool(name)
		return value
	}
	if viper.IsSet(key) {
		return viper.GetBool(key)
	}
	value, _ := cmd.Flags().GetBool(name)
	return value
}

// streams are the standard streams a command talks to.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func streamsFor(cmd *cobra.Command) streams {
	return streams{
		in:  cmd.InOrStdin(),
		out: cmd.OutOrStdout(),
		err: cmd.ErrOrStderr(),
	}
}

// requireFile reports a missing input file. Missing inputs are not failures:
// the command prints the message and exits zero without touching anything.
func requireFile(s streams, kind, path string) bool {
	if filesystems.Exists(filesystem, path) {
		return true
	}
	fmt.Fprintf(s.err, "Error: %s file '%s' not found.\n", kind, path)
	return false
}
