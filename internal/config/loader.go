// Package config loads the snippets CLI configuration from struct defaults, an
// optional YAML file, SNIPPETS__ environment variables and explicit flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the environment namespace: SNIPPETS__MAP__ZOOM -> map.zoom.
const EnvPrefix = "SNIPPETS"

// Loader layers configuration sources.
type Loader struct {
	k         *koanf.Koanf
	envPrefix string
}

// Validator can be implemented by config structs to enable validation.
type Validator interface {
	Validate() error
}

// NewLoader creates a loader. envPrefix is given without the trailing "__".
func NewLoader(envPrefix string) *Loader {
	return &Loader{
		k:         koanf.New("."),
		envPrefix: envPrefix + "__",
	}
}

// LoadWithDefaults loads, lowest priority first: struct defaults, the YAML
// file at configPath (when set; it must exist), then environment variables.
func (l *Loader) LoadWithDefaults(defaults any, configPath string) error {
	if defaults != nil {
		if err := l.k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
			return fmt.Errorf("config: load defaults: %w", err)
		}
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return fmt.Errorf("config: file not found: %s", configPath)
		}
		if err := l.k.Load(file.Provider(configPath), koanfyaml.Parser()); err != nil {
			return fmt.Errorf("config: load file: %w", err)
		}
	}

	envProvider := env.Provider(l.envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, l.envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	})
	if err := l.k.Load(envProvider, nil); err != nil {
		return fmt.Errorf("config: load environment: %w", err)
	}
	return nil
}

// LoadFlags applies flags the user set explicitly, mapping flag names to
// config keys. Call it after LoadWithDefaults.
func (l *Loader) LoadFlags(flags *pflag.FlagSet, mappings map[string]string) error {
	if flags == nil {
		return nil
	}
	var errs []error
	flags.Visit(func(f *pflag.Flag) {
		if key, ok := mappings[f.Name]; ok {
			if err := l.k.Set(key, f.Value.String()); err != nil {
				errs = append(errs, fmt.Errorf("flag %s: %w", f.Name, err))
			}
		}
	})
	return errors.Join(errs...)
}

// Unmarshal decodes the configuration at path ("" for the root) into out.
func (l *Loader) Unmarshal(path string, out any) error {
	return l.k.Unmarshal(path, out)
}

// UnmarshalAndValidate unmarshals and then calls Validate when out
// implements Validator.
func (l *Loader) UnmarshalAndValidate(path string, out any) error {
	if err := l.k.Unmarshal(path, out); err != nil {
		return err
	}
	if v, ok := out.(Validator); ok {
		return v.Validate()
	}
	return nil
}

// Set overrides a single key.
func (l *Loader) Set(key string, value any) error {
	return l.k.Set(key, value)
}

// DumpYAML writes the merged configuration.
func (l *Loader) DumpYAML(w io.Writer) error {
	return yaml.NewEncoder(w).Encode(l.k.Raw())
}
