package crypto

import (
	"github.com/railwayapp/envman/internal/environment"
	apperrors "github.com/railwayapp/envman/internal/errors"
	"github.com/railwayapp/envman/internal/filesystems"
	"github.com/railwayapp/envman/internal/template"
)

// Report summarises a file transform.
type Report struct {
	Transformed int
	Failed      []LineResult
}

func newReport(results []LineResult) Report {
	var report Report
	for _, result := range results {
		switch result.Status {
		case StatusTransformed:
			report.Transformed++
		case StatusFailed:
			report.Failed = append(report.Failed, result)
		}
	}
	return report
}

// EncryptFile encrypts the selected values of the file at path in place.
// Per-line failures are reported, not returned; only I/O errors abort.
func EncryptFile(filesystem filesystems.FileSystem, path string, svc Service, selector Selector) (Report, error) {
	return transformFile(filesystem, path, func(lines []string) []LineResult {
		return EncryptLines(lines, svc, selector)
	})
}

// DecryptFile decrypts every encrypted value of the file at path in place.
func DecryptFile(filesystem filesystems.FileSystem, path string, svc Service) (Report, error) {
	return transformFile(filesystem, path, func(lines []string) []LineResult {
		return DecryptLines(lines, svc)
	})
}

func transformFile(filesystem filesystems.FileSystem, path string, transform func([]string) []LineResult) (Report, error) {
	content, err := filesystem.ReadFile(path)
	if err != nil {
		return Report{}, apperrors.IO(err, "read env file", path)
	}

	results := transform(environment.SplitLines(string(content)))
	output := environment.JoinLines(Lines(results))

	if err := filesystem.WriteFile(path, []byte(output)); err != nil {
		return Report{}, apperrors.IO(err, "write env file", path)
	}
	return newReport(results), nil
}

// Declared selects the keys a template marks as encrypted.
func Declared(tmpl *template.Template) Selector {
	var keys []string
	for _, decl := range tmpl.Resolved() {
		if decl.Constraints.Encrypted {
			keys = append(keys, decl.Key)
		}
	}
	return Keys(keys...)
}

// Any selects an assignment when at least one of selectors does.
func Any(selectors ...Selector) Selector {
	return func(key, value string) bool {
		for _, selector := range selectors {
			if selector(key, value) {
				return true
			}
		}
		return false
	}
}

// Sensitive selects assignments that look like secrets.
func Sensitive() Selector {
	return environment.Sensitive
}
