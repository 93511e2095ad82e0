package export

import (
	"bytes"

	"github.com/BurntSushi/toml"
	"github.com/railwayapp/envman/internal/environment"
)

type TOMLExporter struct{}

func (e *TOMLExporter) Name() string {
	return "toml"
}

// Export writes one string key per variable. The encoder sorts keys.
func (e *TOMLExporter) Export(env *environment.Env) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(env.Map()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func NewTOMLExporter() Exporter {
	return &TOMLExporter{}
}
