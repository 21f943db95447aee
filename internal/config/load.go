package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads the configuration at path. An empty path looks for DefaultFile
// in the working directory; a missing default file is not an error. Values
// from TSDOC_* environment variables take precedence over the file.
func Load(path string) (*Config, error) {
	v := newViper()

	file := path
	if file == "" {
		file = DefaultFile
	}
	v.SetConfigFile(file)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if path != "" || !isNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	return LoadWithViper(v)
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

// Default returns the configuration used when no file and no environment
// overrides exist.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)

	config, err := LoadWithViper(v)
	if err != nil {
		// the defaults are static and always valid
		panic(err)
	}
	return config
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)
	return v
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}
