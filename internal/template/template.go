package template

import (
	"strings"

	apperrors "github.com/railwayapp/envman/internal/errors"
	"github.com/railwayapp/envman/internal/filesystems"
	"github.com/railwayapp/envman/internal/logging"
)

// Template is a parsed template file.
//
// Declarations keeps every parsed line in file order, including repeated
// keys. Consumers resolve repeats last-wins through Lookup and Resolved.
type Template struct {
	Declarations []Declaration
	Skipped      []SkippedLine
}

// Parse parses template text. Malformed lines are not errors; they are
// recorded in Skipped.
func Parse(text string) *Template {
	tmpl := &Template{}

	for i, line := range strings.Split(text, "\n") {
		decl, ok := ParseLine(line)
		if !ok {
			if !isBlankOrComment(line) {
				tmpl.Skipped = append(tmpl.Skipped, SkippedLine{
					Line: i + 1,
					Text: strings.TrimSpace(line),
				})
			}
			continue
		}

		decl.Line = i + 1
		tmpl.Declarations = append(tmpl.Declarations, decl)
	}

	return tmpl
}

// Load reads and parses the template at path. Skipped lines are logged as
// warnings.
func Load(filesystem filesystems.FileSystem, path string) (*Template, error) {
	content, err := filesystem.ReadFile(path)
	if err != nil {
		return nil, apperrors.IO(err, "read template", path)
	}

	tmpl := Parse(string(content))
	for _, skipped := range tmpl.Skipped {
		logging.WithFile(path).Warn("skipping unrecognised template line",
			"line", skipped.Line, "text", skipped.Text)
	}
	return tmpl, nil
}

// Lookup returns the last declaration for key.
func (t *Template) Lookup(key string) (Declaration, bool) {
	for i := len(t.Declarations) - 1; i >= 0; i-- {
		if t.Declarations[i].Key == key {
			return t.Declarations[i], true
		}
	}
	return Declaration{}, false
}

// Keys returns the declared keys in order of first appearance.
func (t *Template) Keys() []string {
	seen := make(map[string]bool, len(t.Declarations))
	keys := make([]string, 0, len(t.Declarations))
	for _, decl := range t.Declarations {
		if seen[decl.Key] {
			continue
		}
		seen[decl.Key] = true
		keys = append(keys, decl.Key)
	}
	return keys
}

// Resolved returns one declaration per key, ordered by first appearance and
// holding the last declaration made for that key.
func (t *Template) Resolved() []Declaration {
	keys := t.Keys()
	resolved := make([]Declaration, 0, len(keys))
	for _, key := range keys {
		decl, _ := t.Lookup(key)
		resolved = append(resolved, decl)
	}
	return resolved
}
