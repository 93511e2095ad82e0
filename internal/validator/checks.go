package validator

import (
	"net/url"
	"regexp"
	"strings"

	playground "github.com/go-playground/validator/v10"
	"github.com/railwayapp/envman/internal/template"
)

type typeCheck struct {
	description string
	valid       func(string) bool
}

var checks = map[template.Type]typeCheck{
	template.TypeInt:   {"an integer", isInteger},
	template.TypeBool:  {"a boolean", isBoolean},
	template.TypeURL:   {"a valid URL", isURL},
	template.TypeEmail: {"a valid email", isEmail},
}

var (
	integerPattern = regexp.MustCompile(`^[+-]?[0-9]+$`)

	fields = playground.New()

	booleans = map[string]bool{
		"true": true, "false": true,
		"yes": true, "no": true,
		"1": true, "0": true,
	}
)

// isInteger accepts base-10 integers of any size with an optional sign.
func isInteger(value string) bool {
	return integerPattern.MatchString(value)
}

func isBoolean(value string) bool {
	return booleans[strings.ToLower(value)]
}

// isURL accepts absolute URLs with both a scheme and a host.
func isURL(value string) bool {
	if strings.ContainsAny(value, " \t\r\n") {
		return false
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return false
	}
	return parsed.Scheme != "" && parsed.Host != ""
}

// isEmail accepts a bare addr-spec with a dotted domain.
func isEmail(value string) bool {
	return fields.Var(value, "email") == nil
}
