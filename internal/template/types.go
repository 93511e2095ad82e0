package template

import "strings"

// Type is the value type a declaration expects.
type Type int

const (
	TypeString Type = iota
	TypeInt
	TypeBool
	TypeURL
	TypeEmail
)

// typeTokens is scanned in order; the first token found in a comment sets
// the type.
var typeTokens = []struct {
	token string
	typ   Type
}{
	{"string", TypeString},
	{"int", TypeInt},
	{"bool", TypeBool},
	{"url", TypeURL},
	{"email", TypeEmail},
}

func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	case TypeURL:
		return "url"
	case TypeEmail:
		return "email"
	default:
		return "unknown"
	}
}

// ParseType returns the type named by s, matched case-insensitively.
func ParseType(s string) (Type, bool) {
	for _, tt := range typeTokens {
		if strings.EqualFold(s, tt.token) {
			return tt.typ, true
		}
	}
	return TypeString, false
}

// Constraints are the annotations attached to a declaration.
type Constraints struct {
	Required  bool
	Type      Type
	Encrypted bool
}

// Declaration is one parsed template entry.
type Declaration struct {
	Key         string
	Default     string
	Constraints Constraints
	Line        int // 1-based line in the template; 0 when parsed standalone
}

// SkippedLine is a non-blank, non-comment template line that did not parse.
type SkippedLine struct {
	Line int
	Text string
}
