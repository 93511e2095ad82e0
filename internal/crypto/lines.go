package crypto

import "strings"

// Status is the outcome of transforming one line.
type Status int

const (
	// StatusUnchanged means the line was not a candidate and is kept as is.
	StatusUnchanged Status = iota
	// StatusTransformed means the value was encrypted or decrypted.
	StatusTransformed
	// StatusFailed means the cipher failed; the original line is kept.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusTransformed:
		return "transformed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// LineResult is the outcome for one line. Line always holds the text to
// write back: the rewritten assignment on success, the original otherwise.
type LineResult struct {
	Line   string
	Key    string
	Status Status
	Err    error
}

// Selector decides whether the assignment key=value is encrypted.
type Selector func(key, value string) bool

// All selects every assignment.
func All() Selector {
	return func(string, string) bool { return true }
}

// Keys selects the listed keys.
func Keys(keys ...string) Selector {
	set := make(map[string]bool, len(keys))
	for _, key := range keys {
		set[key] = true
	}
	return func(key, _ string) bool { return set[key] }
}

// EncryptLines encrypts the value of every selected assignment that is not
// already encrypted. A nil selector selects everything.
func EncryptLines(lines []string, svc Service, selector Selector) []LineResult {
	if selector == nil {
		selector = All()
	}

	results := make([]LineResult, len(lines))
	for i, line := range lines {
		results[i] = LineResult{Line: line, Status: StatusUnchanged}

		keyPart, value, ok := splitAssignment(line)
		if !ok {
			continue
		}
		key := strings.TrimSpace(keyPart)
		results[i].Key = key

		if IsEncrypted(value) || !selector(key, value) {
			continue
		}

		token, err := svc.Encrypt(value)
		if err != nil {
			results[i].Status = StatusFailed
			results[i].Err = err
			continue
		}
		results[i].Line = keyPart + "=" + token
		results[i].Status = StatusTransformed
	}
	return results
}

// DecryptLines decrypts the value of every encrypted assignment. Lines that
// fail to decrypt, for example under the wrong key, are kept unchanged.
func DecryptLines(lines []string, svc Service) []LineResult {
	results := make([]LineResult, len(lines))
	for i, line := range lines {
		results[i] = LineResult{Line: line, Status: StatusUnchanged}

		keyPart, value, ok := splitAssignment(line)
		if !ok {
			continue
		}
		results[i].Key = strings.TrimSpace(keyPart)

		if !IsEncrypted(value) {
			continue
		}

		plain, err := svc.Decrypt(value)
		if err != nil {
			results[i].Status = StatusFailed
			results[i].Err = err
			continue
		}
		results[i].Line = keyPart + "=" + plain
		results[i].Status = StatusTransformed
	}
	return results
}

// Lines extracts the output text of each result.
func Lines(results []LineResult) []string {
	lines := make([]string, len(results))
	for i, result := range results {
		lines[i] = result.Line
	}
	return lines
}

// splitAssignment splits an assignment line at its first '='. The key part
// is returned verbatim and the value trimmed. Blank lines, comments and lines
// without '=' are not assignments.
func splitAssignment(line string) (keyPart, value string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false
	}

	keyPart, value, ok = strings.Cut(line, "=")
	if !ok {
		return "", "", false
	}
	return keyPart, strings.TrimSpace(value), true
}
