package export

import (
	"bytes"
	"encoding/json"

	"github.com/railwayapp/envman/internal/environment"
)

type JSONExporter struct{}

func (e *JSONExporter) Name() string {
	return "json"
}

// Export writes a JSON object whose members follow the env's key order.
func (e *JSONExporter) Export(env *environment.Env) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, key := range env.Keys() {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  ")

		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(env.Get(key))
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteString(": ")
		buf.Write(v)
	}
	if env.Len() > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func NewJSONExporter() Exporter {
	return &JSONExporter{}
}
