package stages

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported stages file format")
	ErrInvalidConfig     = errors.New("invalid stages config")
)

// LoadConfig reads stage definitions from a .yaml, .yml or .toml file.
// A missing file is not an error: it returns nil.
func LoadConfig(filePath string) (*Config, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading stages config file %s: %w", filePath, err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(filePath)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &cfg)
	case ".toml":
		err = toml.Unmarshal(raw, &cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("error unmarshalling stages config from %s: %w", filePath, err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w in %s: %w", ErrInvalidConfig, filePath, err)
	}

	return &cfg, nil
}

// LoadConfigOrDefault is LoadConfig falling back to Default when the file
// does not exist.
func LoadConfigOrDefault(filePath string) (*Config, error) {
	cfg, err := LoadConfig(filePath)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return Default(), nil
	}
	return cfg, nil
}
