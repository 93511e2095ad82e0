// Package environment holds resolved environments: ordered KEY=VALUE
// mappings read from .env files or produced by the generator.
package environment

import "strings"

// Env is an ordered mapping from key to value. Keys keep the position of
// their first Set; setting an existing key replaces its value in place.
type Env struct {
	keys   []string
	values map[string]string
}

// New returns an empty Env.
func New() *Env {
	return &Env{values: make(map[string]string)}
}

// FromMap builds an Env from m using the given key order. Keys in order that
// are missing from m are ignored, keys of m that are absent from order are
// dropped.
func FromMap(m map[string]string, order []string) *Env {
	env := New()
	for _, key := range order {
		if value, ok := m[key]; ok {
			env.Set(key, value)
		}
	}
	return env
}

func (e *Env) Set(key, value string) {
	if _, exists := e.values[key]; !exists {
		e.keys = append(e.keys, key)
	}
	e.values[key] = value
}

func (e *Env) Get(key string) string {
	return e.values[key]
}

func (e *Env) Lookup(key string) (string, bool) {
	value, ok := e.values[key]
	return value, ok
}

// Keys returns the keys in insertion order.
func (e *Env) Keys() []string {
	keys := make([]string, len(e.keys))
	copy(keys, e.keys)
	return keys
}

func (e *Env) Len() int {
	return len(e.keys)
}

// Map returns a copy of the values as a plain map.
func (e *Env) Map() map[string]string {
	m := make(map[string]string, len(e.values))
	for key, value := range e.values {
		m[key] = value
	}
	return m
}

// Lines renders the environment as KEY=VALUE lines in insertion order.
func (e *Env) Lines() []string {
	lines := make([]string, 0, len(e.keys))
	for _, key := range e.keys {
		lines = append(lines, key+"="+e.values[key])
	}
	return lines
}

// String renders the environment as file content: one KEY=VALUE line per
// key followed by a single trailing newline.
func (e *Env) String() string {
	return JoinLines(e.Lines())
}

// SplitLines splits file content into lines. A terminating newline does not
// produce a trailing empty line.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

// JoinLines joins lines into file content ending with exactly one newline.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n") + "\n"
}
