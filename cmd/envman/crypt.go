package envman

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/railwayapp/envman/internal/crypto"
	"github.com/railwayapp/envman/internal/filesystems"
	"github.com/railwayapp/envman/internal/logging"
	"github.com/railwayapp/envman/internal/template"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errNoKey = errors.New("no encryption key: pass --key, set ENVMAN_KEY or run from a terminal")

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt values in a .env file in place",
	Long: `Encrypt replaces values with enc:v1: tokens sealed with a key derived
from the passphrase. Values that are already encrypted are left alone, so
running it twice is harmless.

By default every value is encrypted. With --template only variables the
template marks as encrypted are; with --sensitive only values whose name or
shape looks like a secret are. The two can be combined.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEncrypt(encryptOptions(cmd), streamsFor(cmd))
	},
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypt values in a .env file in place",
	Long: `Decrypt restores every enc:v1: value it can open with the passphrase.
Values that fail to decrypt, for example under a wrong passphrase, are left
as they are.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cryptOptions{
			file: setting(cmd, "file"),
			key:  setting(cmd, "key"),
		}
		return runDecrypt(opts, streamsFor(cmd))
	},
}

type cryptOptions struct {
	file      string
	key       string
	template  string
	sensitive bool
}

func encryptOptions(cmd *cobra.Command) cryptOptions {
	return cryptOptions{
		file:      setting(cmd, "file"),
		key:       setting(cmd, "key"),
		template:  scopedSetting(cmd, "template", "encrypt.template"),
		sensitive: scopedBoolSetting(cmd, "sensitive", "encrypt.sensitive"),
	}
}

func init() {
	rootCmd.AddCommand(encryptCmd)
	encryptCmd.Flags().StringP("file", "f", ".env", "env file to encrypt")
	encryptCmd.Flags().StringP("key", "k", "", "encryption passphrase (or ENVMAN_KEY)")
	encryptCmd.Flags().String("template", "", "only encrypt variables this template marks as encrypted")
	encryptCmd.Flags().Bool("sensitive", false, "only encrypt values that look like secrets")

	rootCmd.AddCommand(decryptCmd)
	decryptCmd.Flags().StringP("file", "f", ".env", "env file to decrypt")
	decryptCmd.Flags().StringP("key", "k", "", "decryption passphrase (or ENVMAN_KEY)")
}

func runEncrypt(opts cryptOptions, s streams) error {
	if !requireFile(s, "Environment", opts.file) {
		return nil
	}

	selector, err := encryptSelector(opts)
	if err != nil {
		return err
	}

	codec, err := codecFor(opts.key, s)
	if err != nil {
		return err
	}

	report, err := crypto.EncryptFile(filesystem, opts.file, codec, selector)
	if err != nil {
		return err
	}
	logReport(opts.file, "encrypt", report)

	fmt.Fprintf(s.out, "Encrypted values in %s\n", opts.file)
	return nil
}

func runDecrypt(opts cryptOptions, s streams) error {
	if !requireFile(s, "Environment", opts.file) {
		return nil
	}

	codec, err := codecFor(opts.key, s)
	if err != nil {
		return err
	}

	report, err := crypto.DecryptFile(filesystem, opts.file, codec)
	if err != nil {
		return err
	}
	logReport(opts.file, "decrypt", report)

	fmt.Fprintf(s.out, "Decrypted values in %s\n", opts.file)
	return nil
}

func encryptSelector(opts cryptOptions) (crypto.Selector, error) {
	var selectors []crypto.Selector
	if opts.template != "" {
		if !filesystems.Exists(filesystem, opts.template) {
			return nil, errors.Newf("template file '%s' not found", opts.template)
		}
		tmpl, err := template.Load(filesystem, opts.template)
		if err != nil {
			return nil, err
		}
		selectors = append(selectors, crypto.Declared(tmpl))
	}
	if opts.sensitive {
		selectors = append(selectors, crypto.Sensitive())
	}
	if len(selectors) == 0 {
		return crypto.All(), nil
	}
	return crypto.Any(selectors...), nil
}

func codecFor(key string, s streams) (*crypto.Codec, error) {
	if key == "" {
		prompted, err := promptKey(s)
		if err != nil {
			return nil, err
		}
		key = prompted
	}
	return crypto.NewCodecFromPassphrase(key)
}

// promptKey asks for the passphrase without echo. It only works when the
// input is a terminal.
func promptKey(s streams) (string, error) {
	f, ok := s.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return "", errNoKey
	}

	fmt.Fprint(s.err, "Passphrase: ")
	raw, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(s.err)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", errors.Wrap(err, "read passphrase")
	}
	if len(raw) == 0 {
		return "", errNoKey
	}
	return string(raw), nil
}

func logReport(path, op string, report crypto.Report) {
	logger := logging.WithFile(path)
	for _, failed := range report.Failed {
		logger.Warn("value left unchanged", "op", op, "key", failed.Key, "error", failed.Err)
	}
	logger.Debug("file transformed", "op", op, "transformed", report.Transformed, "failed", len(report.Failed))
}
