package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Source tells where a loaded configuration came from.
type Source string

const (
	SourceCustom   Source = "custom"
	SourceUser     Source = "user"
	SourceLocal    Source = "local"
	SourceEmbedded Source = "embedded"
	SourceBuiltin  Source = "builtin"
)

// LoadPixelArt loads Pixel Art configuration.
// Search order: customPath -> ~/.arcade/configs/pixelart.yaml -> ./configs/pixelart.yaml -> embedded default
func LoadPixelArt(customPath string) (PixelArtConfig, Source, error) {
	return load("pixelart", customPath, defaultPixelArtYAML, DefaultPixelArtConfig)
}

// LoadOrientation loads orientation configuration.
// Search order: customPath -> ~/.arcade/configs/orientation.yaml -> ./configs/orientation.yaml -> embedded default
func LoadOrientation(customPath string) (OrientationConfig, Source, error) {
	return load("orientation", customPath, defaultOrientationYAML, DefaultOrientationConfig)
}

type validator interface {
	Validate() error
}

// load walks the search order for one game. Files are decoded on top of the
// hardcoded defaults, so a partial YAML only overrides the keys it sets.
// A broken user or local file is skipped; a broken custom file is an error.
func load[T validator](gameID, customPath string, embedded []byte, defaults func() T) (T, Source, error) {
	filename := gameID + ".yaml"

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return defaults(), SourceBuiltin, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := decode(data, defaults)
		if err != nil {
			return defaults(), SourceBuiltin, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, SourceCustom, nil
	}

	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if cfg, ok := tryFile(userCfgPath, defaults); ok {
			return cfg, SourceUser, nil
		}
	}

	if cfg, ok := tryFile(filepath.Join("configs", filename), defaults); ok {
		return cfg, SourceLocal, nil
	}

	if cfg, err := decode(embedded, defaults); err == nil {
		return cfg, SourceEmbedded, nil
	}
	return defaults(), SourceBuiltin, nil
}

func tryFile[T validator](path string, defaults func() T) (T, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		var zero T
		return zero, false
	}
	cfg, err := decode(data, defaults)
	if err != nil {
		var zero T
		return zero, false
	}
	return cfg, true
}

func decode[T validator](data []byte, defaults func() T) (T, error) {
	cfg := defaults()
	if len(data) == 0 {
		return cfg, fmt.Errorf("empty document")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
