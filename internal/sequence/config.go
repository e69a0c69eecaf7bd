package sequence

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/jlibgo/jlib/internal/storage"
)

type Config struct {
	// index of the first item
	FirstIndex int            `yaml:"first-index" json:"firstIndex"`
	Storage    storage.Config `yaml:"storage" json:"storage"`
}

func DefaultConfig() Config {
	return Config{Storage: storage.DefaultConfig()}
}

// LoadConfig parses a YAML document, missing fields take their default value.
func LoadConfig(data []byte) (Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	if err := c.Storage.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
