package export

import (
	"github.com/joho/godotenv"
	"github.com/railwayapp/envman/internal/environment"
)

// DotEnvExporter writes a normalised .env file: keys sorted, integers bare
// and every other value double quoted and escaped.
type DotEnvExporter struct{}

func (e *DotEnvExporter) Name() string {
	return "dotenv"
}

func (e *DotEnvExporter) Export(env *environment.Env) ([]byte, error) {
	content, err := godotenv.Marshal(env.Map())
	if err != nil {
		return nil, err
	}
	return []byte(content + "\n"), nil
}

func NewDotEnvExporter() Exporter {
	return &DotEnvExporter{}
}
