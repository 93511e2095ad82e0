package export

import (
	"github.com/railwayapp/envman/internal/environment"
	"gopkg.in/yaml.v3"
)

type YAMLExporter struct{}

func (e *YAMLExporter) Name() string {
	return "yaml"
}

// Export writes a YAML mapping in key order. Values are always strings.
func (e *YAMLExporter) Export(env *environment.Env) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range env.Keys() {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: env.Get(key)},
		)
	}
	return yaml.Marshal(root)
}

func NewYAMLExporter() Exporter {
	return &YAMLExporter{}
}
