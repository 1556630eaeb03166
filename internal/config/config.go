// Package config loads settings for the command line tool from YAML files.
package config

import (
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/akeil/sntool/internal/errors"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds the settings for the command line tool.
type Config struct {
	LogLevel string `yaml:"log_level"`
	Format   string `yaml:"format"`
	// SkipBroken leaves out pages that cannot be decoded.
	SkipBroken bool `yaml:"skip_broken"`
	// SkipRecognition does not decode recognized text.
	SkipRecognition bool `yaml:"skip_recognition"`
	// Output is the target directory for dumped blocks.
	Output string `yaml:"output"`
}

// Default returns the settings used without a config file.
func Default() *Config {
	return &Config{
		LogLevel: "warning",
		Format:   FormatText,
		Output:   ".",
	}
}

// Validate checks for unknown log levels and formats.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warning", "error", "none")),
		validation.Field(&c.Format, validation.Required, validation.In(FormatText, FormatJSON)),
		validation.Field(&c.Output, validation.Required),
	)
	if err != nil {
		return errors.NewValidationError("invalid config: %v", err)
	}
	return nil
}

// Load reads settings from a YAML file.
// Environment variables in the file are expanded and values missing from
// the file keep their defaults.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "read config file %q", filename)
	}

	c := Default()
	err = yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), c)
	if err != nil {
		return nil, errors.Wrap(err, "parse config file %q", filename)
	}

	err = c.Validate()
	if err != nil {
		return nil, err
	}
	return c, nil
}
