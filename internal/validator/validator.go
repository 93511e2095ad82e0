// Package validator checks resolved values against template declarations.
//
// Only required declarations are checked. An optional value of the wrong
// type passes silently.
package validator

import (
	"fmt"

	"github.com/railwayapp/envman/internal/environment"
	"github.com/railwayapp/envman/internal/filesystems"
	"github.com/railwayapp/envman/internal/logging"
	"github.com/railwayapp/envman/internal/template"
)

// IssueKind classifies a validation issue.
type IssueKind int

const (
	IssueMissing IssueKind = iota
	IssueType
)

func (k IssueKind) String() string {
	switch k {
	case IssueMissing:
		return "missing"
	case IssueType:
		return "type"
	default:
		return "unknown"
	}
}

// Issue is one validation failure.
type Issue struct {
	Key     string
	Kind    IssueKind
	Message string
}

func (i Issue) Error() string {
	return i.Message
}

// Messages returns the message of every issue, in order.
func Messages(issues []Issue) []string {
	messages := make([]string, len(issues))
	for i, issue := range issues {
		messages[i] = issue.Message
	}
	return messages
}

// Validate checks values against the declarations of tmpl and returns every
// issue found, in declaration order. A nil template has nothing to check.
// A key declared more than once is checked once, against its last
// declaration.
func Validate(values map[string]string, tmpl *template.Template) []Issue {
	issues := []Issue{}
	if tmpl == nil {
		return issues
	}

	for _, decl := range tmpl.Resolved() {
		if !decl.Constraints.Required {
			continue
		}

		value, ok := values[decl.Key]
		if !ok || value == "" {
			issues = append(issues, Issue{
				Key:     decl.Key,
				Kind:    IssueMissing,
				Message: fmt.Sprintf("Required variable '%s' is missing", decl.Key),
			})
			continue
		}

		if check, ok := checks[decl.Constraints.Type]; ok && !check.valid(value) {
			issues = append(issues, Issue{
				Key:     decl.Key,
				Kind:    IssueType,
				Message: fmt.Sprintf("Variable '%s' must be %s", decl.Key, check.description),
			})
		}
	}

	return issues
}

// ValidateFile validates the env file at envPath against the template at
// templatePath. An empty or nonexistent template path validates nothing.
func ValidateFile(filesystem filesystems.FileSystem, envPath, templatePath string) ([]Issue, error) {
	env, err := environment.ReadFile(filesystem, envPath)
	if err != nil {
		return nil, err
	}

	if templatePath == "" || !filesystems.Exists(filesystem, templatePath) {
		logging.WithFile(envPath).Debug("no template to validate against", "template", templatePath)
		return Validate(env.Map(), nil), nil
	}

	tmpl, err := template.Load(filesystem, templatePath)
	if err != nil {
		return nil, err
	}
	return Validate(env.Map(), tmpl), nil
}
