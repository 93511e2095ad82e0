package export

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/railwayapp/envman/internal/environment"
)

// Exporter defines the interface for exporting environments to various formats
type Exporter interface {
	// Export renders env in the target format
	Export(env *environment.Env) ([]byte, error)

	// Name returns the exporter name (e.g., "dotenv", "json", "yaml")
	Name() string
}

var exporters = map[string]func() Exporter{
	"dotenv": NewDotEnvExporter,
	"json":   NewJSONExporter,
	"yaml":   NewYAMLExporter,
	"toml":   NewTOMLExporter,
}

// ForFormat returns the exporter registered under name.
func ForFormat(name string) (Exporter, error) {
	constructor, ok := exporters[name]
	if !ok {
		return nil, errors.Newf("unsupported export format %q (supported: %v)", name, Formats())
	}
	return constructor(), nil
}

// Formats lists the supported format names, sorted.
func Formats() []string {
	names := make([]string, 0, len(exporters))
	for name := range exporters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Redacted returns a copy of env where values that look sensitive are masked.
func Redacted(env *environment.Env) *environment.Env {
	out := environment.New()
	for _, key := range env.Keys() {
		value := env.Get(key)
		if value != "" && environment.Sensitive(key, value) {
			value = "********"
		}
		out.Set(key, value)
	}
	return out
}
