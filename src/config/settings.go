package config

import (
	"os"

	"github.com/BurntSushi/toml"

	werrors "writer/src/errors"
	"writer/src/prompt"
)

type Settings struct {
	Defaults DefaultsConfig `toml:"defaults"`
	Output   OutputConfig   `toml:"output"`
	Log      LogConfig      `toml:"log"`
}

// DefaultsConfig holds the values used for request fields left unset on the
// command line.
type DefaultsConfig struct {
	Tone        string   `toml:"tone"`
	Perspective string   `toml:"perspective"`
	Audience    string   `toml:"audience"`
	Environment string   `toml:"environment"`
	Characters  []string `toml:"characters"`
	Constraints []string `toml:"constraints"`
}

type OutputConfig struct {
	Format string `toml:"format"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() *Settings {
	return &Settings{
		Defaults: DefaultsConfig{
			Tone:        prompt.DefaultTone,
			Perspective: prompt.DefaultPerspective,
			Audience:    prompt.DefaultAudience,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// LoadSettings decodes the TOML file at path over the built-in settings.
// A missing file is not an error.
func LoadSettings(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, werrors.WrapWithContext(err, "failed to read config %s", path)
	}

	if _, err := toml.Decode(string(data), settings); err != nil {
		return nil, werrors.WrapWithContext(err, "failed to parse config %s", path)
	}

	return settings, nil
}

// Map flattens settings into the dotted keys the CLI binds.
func (s *Settings) Map() map[string]interface{} {
	return map[string]interface{}{
		"defaults.tone":        s.Defaults.Tone,
		"defaults.perspective": s.Defaults.Perspective,
		"defaults.audience":    s.Defaults.Audience,
		"defaults.environment": s.Defaults.Environment,
		"defaults.characters":  s.Defaults.Characters,
		"defaults.constraints": s.Defaults.Constraints,
		"output.format":        s.Output.Format,
		"log.level":            s.Log.Level,
		"log.format":           s.Log.Format,
	}
}
