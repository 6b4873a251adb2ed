package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Default tolerances applied when the file leaves them unset.
const (
	DefaultMaxTimeGapSeconds          = 300
	DefaultMaxInterpolationGapSeconds = 120
)

// Default returns the configuration used when no config file is present.
func Default() AppConfig {
	return AppConfig{
		Match: MatchConfig{
			MaxTimeGapSeconds:          DefaultMaxTimeGapSeconds,
			MaxInterpolationGapSeconds: DefaultMaxInterpolationGapSeconds,
		},
		Batch: BatchConfig{Workers: 1},
	}
}

// LoadAppConfig loads and validates the application configuration from config.yml
func LoadAppConfig(paths ...string) (AppConfig, error) {
	if len(paths) == 0 {
		paths = []string{"config.yml", "./config/config.yml"}
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return Default(), err
	}
	return ParseAppConfig(data)
}

// ParseAppConfig decodes and validates a YAML configuration document. The
// document is decoded over Default(), so omitted keys keep their defaults
// while an explicit zero is honored (maxTimeGapSeconds: 0 really disables
// low-confidence flagging).
func ParseAppConfig(data []byte) (AppConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}
