// Package template parses annotated .env.example templates.
//
// A template line has the form
//
//	KEY=default  # tag, tag, ...
//
// where the comment may carry the tags required, optional, encrypted and
// one of string, int, bool, url or email. Tags are matched as
// case-insensitive substrings of the comment, so unknown words are ignored.
package template

import (
	"regexp"
	"strings"
)

var linePattern = regexp.MustCompile(`^([A-Z_][A-Z0-9_]*)\s*=\s*(.*?)(?:\s*#\s*(.*))?$`)

// ParseLine parses a single template line. It returns false for blank lines,
// comments and lines that are not KEY=VALUE assignments.
func ParseLine(line string) (Declaration, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Declaration{}, false
	}

	match := linePattern.FindStringSubmatch(line)
	if match == nil {
		return Declaration{}, false
	}

	return Declaration{
		Key:         match[1],
		Default:     strings.TrimSpace(match[2]),
		Constraints: parseConstraints(match[3]),
	}, true
}

// parseConstraints builds constraints from the comment of a template line.
// optional always wins over required, and a missing tag means required.
func parseConstraints(comment string) Constraints {
	comment = strings.ToLower(comment)

	constraints := Constraints{
		Required:  !strings.Contains(comment, "optional"),
		Type:      TypeString,
		Encrypted: strings.Contains(comment, "encrypted"),
	}

	for _, tt := range typeTokens {
		if strings.Contains(comment, tt.token) {
			constraints.Type = tt.typ
			break
		}
	}

	return constraints
}

// isBlankOrComment reports whether a line is ignored without being skipped.
func isBlankOrComment(line string) bool {
	line = strings.TrimSpace(line)
	return line == "" || strings.HasPrefix(line, "#")
}
