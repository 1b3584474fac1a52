package importer

import (
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultBatchSize is the number of records applied per insert batch.
const DefaultBatchSize = 1000

// FileConfig is the YAML config surface. Every field can be overridden by a
// CLI flag in cmd/uls-importer.
type FileConfig struct {
	// DB is the SQLite database path.
	DB string `yaml:"db"`
	// Schema is the path to the SQL Server DDL file consumed by schema
	// initialization.
	Schema string `yaml:"schema"`
	// BatchSize overrides DefaultBatchSize when > 0.
	BatchSize int  `yaml:"batch_size"`
	Debug     bool `yaml:"debug"`
}

func LoadConfig(path string) (*FileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg FileConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
