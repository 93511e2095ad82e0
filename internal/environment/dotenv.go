package environment

import (
	"strings"

	"github.com/joho/godotenv"
	apperrors "github.com/railwayapp/envman/internal/errors"
	"github.com/railwayapp/envman/internal/filesystems"
)

// ReadFile reads and parses the .env file at path.
func ReadFile(filesystem filesystems.FileSystem, path string) (*Env, error) {
	content, err := filesystem.ReadFile(path)
	if err != nil {
		return nil, apperrors.IO(err, "read env file", path)
	}
	return Parse(string(content)), nil
}

// Parse parses .env content with dotenv semantics (quoting, inline comments,
// escapes and ${VAR} interpolation). A bare $VAR is kept as written. Lines
// that are not assignments are ignored, and when the file as a whole is
// rejected each assignment is parsed on its own so a single bad line only
// drops itself. The result keeps the order of first appearance.
func Parse(content string) *Env {
	var kept []string
	var order []string
	for _, line := range SplitLines(content) {
		key, ok := assignmentKey(line)
		if !ok {
			continue
		}
		kept = append(kept, literalLine(line))
		order = append(order, key)
	}

	values, err := godotenv.Unmarshal(strings.Join(kept, "\n"))
	if err != nil {
		values = make(map[string]string, len(kept))
		for _, line := range kept {
			lineValues, lineErr := godotenv.Unmarshal(line)
			if lineErr != nil {
				continue
			}
			for key, value := range lineValues {
				values[key] = value
			}
		}
	}

	for key, value := range values {
		values[key] = placeholders.Replace(value)
	}
	return FromMap(values, order)
}

// Stand-ins for escaped characters in double-quoted values. godotenv
// mis-reads a value whose closing quote follows \" or \\.
const (
	quotePlaceholder     = "\x00"
	backslashPlaceholder = "\x01"
)

var placeholders = strings.NewReplacer(quotePlaceholder, `"`, backslashPlaceholder, `\`)

// literalLine rewrites the value of an assignment so that godotenv reads it
// as written: a $ not followed by { is escaped, and inside double quotes the
// \" and \\ escapes are swapped for placeholders while \! and \` are
// unescaped. Single-quoted values are already literal.
func literalLine(line string) string {
	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return line
	}
	value := line[eq+1:]
	trimmed := strings.TrimLeft(value, " \t")
	if strings.HasPrefix(trimmed, "'") {
		return line
	}
	quoted := strings.HasPrefix(trimmed, `"`)

	var b strings.Builder
	b.WriteString(line[:eq+1])
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c == '\\' && i+1 < len(value):
			next := value[i+1]
			switch {
			case quoted && next == '"':
				b.WriteString(quotePlaceholder)
			case quoted && next == '\\':
				b.WriteString(backslashPlaceholder)
			case quoted && (next == '!' || next == '`'):
				b.WriteByte(next)
			default:
				b.WriteByte(c)
				b.WriteByte(next)
			}
			i++
		case c == '$' && (i+1 == len(value) || value[i+1] != '{'):
			b.WriteString(`\$`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// assignmentKey returns the key of a dotenv assignment line.
func assignmentKey(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", false
	}

	trimmed = strings.TrimPrefix(trimmed, "export ")
	key, _, found := strings.Cut(trimmed, "=")
	if !found {
		return "", false
	}

	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsAny(key, " \t\"'") {
		return "", false
	}
	return key, true
}
