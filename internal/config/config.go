// Package config handles ippvm.toml settings and their layering with
// command-line flags and IPPVM_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FileName is the name of the configuration file looked up by Find
const FileName = "ippvm.toml"

// EnvPrefix prefixes environment variables that override settings
const EnvPrefix = "IPPVM"

// Setting keys shared by flags, environment and file
const (
	KeyMaxSteps = "max-steps"
	KeyVerbose  = "verbose"
	KeyNoColor  = "no-color"
)

// Config holds the interpreter settings.
type Config struct {
	MaxSteps int  `toml:"max_steps"`
	Verbose  bool `toml:"verbose"`
	NoColor  bool `toml:"no_color"`

	// Path is the file the settings were read from, empty for defaults.
	Path string `toml:"-"`
}

// Load parses the TOML file at path. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var c Config
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if c.MaxSteps < 0 {
		return nil, fmt.Errorf("%s: max_steps must not be negative", path)
	}

	c.Path = path
	return &c, nil
}

// Find returns the configuration file to use: explicit if set, otherwise
// ippvm.toml in dir, then in the home directory. It returns "" if none exists.
func Find(explicit, dir string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return explicit, nil
	}

	candidates := []string{filepath.Join(dir, FileName)}
	if home, err := homedir.Dir(); err == nil {
		candidates = append(candidates, filepath.Join(home, FileName))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", nil
}

// Bind registers flags and IPPVM_* environment variables with v
func Bind(v *viper.Viper, flags *pflag.FlagSet) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v.BindPFlags(flags)
}

// Apply installs the file settings as defaults so that flags and environment win
func (c *Config) Apply(v *viper.Viper) {
	v.SetDefault(KeyMaxSteps, c.MaxSteps)
	v.SetDefault(KeyVerbose, c.Verbose)
	v.SetDefault(KeyNoColor, c.NoColor)
}

// Resolve reads the effective settings from v
func Resolve(v *viper.Viper) Config {
	return Config{
		MaxSteps: v.GetInt(KeyMaxSteps),
		Verbose:  v.GetBool(KeyVerbose),
		NoColor:  v.GetBool(KeyNoColor),
	}
}
