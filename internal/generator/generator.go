// Package generator resolves template declarations into a concrete
// environment and writes it out as a .env file.
package generator

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	composetemplate "github.com/compose-spec/compose-go/v2/template"
	"github.com/railwayapp/envman/internal/environment"
	apperrors "github.com/railwayapp/envman/internal/errors"
	"github.com/railwayapp/envman/internal/filesystems"
	"github.com/railwayapp/envman/internal/logging"
	"github.com/railwayapp/envman/internal/template"
)

// Options control how values are resolved.
type Options struct {
	// Environ is the process environment snapshot. A key present here wins
	// over every other source.
	Environ map[string]string

	// Interactive asks Prompter for keys missing from Environ.
	Interactive bool
	Prompter    Prompter

	// Expand interpolates ${VAR} references in resolved values.
	Expand bool
}

// Generate resolves every declaration of tmpl. Per key the first source that
// applies wins: Environ, then the prompter when interactive (an empty answer
// falls back to the default), then the template default. A key declared more
// than once takes its last resolved value and keeps its first position. A
// nil tmpl yields an empty Env.
func Generate(ctx context.Context, tmpl *template.Template, opts Options) (*environment.Env, error) {
	if opts.Interactive && opts.Prompter == nil {
		return nil, errors.New("interactive generation requires a prompter")
	}

	env := environment.New()
	if tmpl == nil {
		return env, nil
	}
	for _, decl := range tmpl.Declarations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		value, err := resolve(ctx, decl, opts)
		if err != nil {
			return nil, err
		}
		env.Set(decl.Key, value)
	}

	if opts.Expand {
		if err := expand(env, opts.Environ); err != nil {
			return nil, err
		}
	}

	return env, nil
}

func resolve(ctx context.Context, decl template.Declaration, opts Options) (string, error) {
	if value, ok := opts.Environ[decl.Key]; ok {
		return value, nil
	}

	if opts.Interactive {
		answer, err := opts.Prompter.Prompt(ctx, decl)
		if err != nil {
			return "", errors.Wrapf(err, "prompt for %s", decl.Key)
		}
		if answer = strings.TrimSpace(answer); answer != "" {
			return answer, nil
		}
	}

	return decl.Default, nil
}

// expand interpolates references in declaration order. A reference resolves
// against values already in env, then environ; unknown names expand to "".
func expand(env *environment.Env, environ map[string]string) error {
	lookup := func(name string) (string, bool) {
		if value, ok := env.Lookup(name); ok {
			return value, true
		}
		value, ok := environ[name]
		return value, ok
	}

	for _, key := range env.Keys() {
		expanded, err := composetemplate.Substitute(env.Get(key), lookup)
		if err != nil {
			return errors.Wrapf(err, "interpolate %s", key)
		}
		env.Set(key, expanded)
	}
	return nil
}

// GenerateFile loads the template at templatePath, generates the environment
// and overwrites outputPath with it.
func GenerateFile(ctx context.Context, filesystem filesystems.FileSystem, templatePath, outputPath string, opts Options) (*environment.Env, error) {
	tmpl, err := template.Load(filesystem, templatePath)
	if err != nil {
		return nil, err
	}

	env, err := Generate(ctx, tmpl, opts)
	if err != nil {
		return nil, err
	}

	if err := filesystem.WriteFile(outputPath, []byte(env.String())); err != nil {
		return nil, apperrors.IO(err, "write env file", outputPath)
	}

	logging.WithFile(outputPath).Debug("generated env file", "variables", env.Len())
	return env, nil
}
