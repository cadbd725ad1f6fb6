package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/isx/errors"
)

var globalConfig *Config
var viperInstance *viper.Viper

// Load reads the isxgen configuration using Viper
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	v := initViper()

	config, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}

	globalConfig = config
	return globalConfig, nil
}

// GetViper returns the Viper instance for advanced configuration access
func GetViper() *viper.Viper {
	return initViper()
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	// Set defaults but don't bind environment variables for this specific load
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	config, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid config file %s", configPath)
	}
	return config, nil
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viperInstance = nil
}

// initViper initializes Viper with configuration sources and defaults
func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()

	// Set up environment variable binding: ISXGEN_GENERATE_OUTPUT, ISXGEN_LOG_JSON, ...
	v.SetEnvPrefix("ISXGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults first
	SetDefaults(v)

	// Manually merge configs in precedence order: user -> project -> env vars
	wd, _ := os.Getwd()
	mergeConfigFiles(v, wd)

	viperInstance = v
	return v
}

// findProjectConfig searches for isxgen.toml by walking up the directory tree
// from dir. Returns the path to the first config file found, or empty string
// if none found.
func findProjectConfig(dir string) string {
	if dir == "" {
		return ""
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, ProjectConfigName)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root, stop searching
			break
		}
		dir = parent
	}

	return ""
}

// UserConfigPath returns ~/.config/isxgen/config.toml (or the platform equivalent)
func UserConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "isxgen", "config.toml")
}

// configFiles lists the existing config files for wd, lowest precedence first.
func configFiles(wd string) []string {
	var files []string
	if user := UserConfigPath(); user != "" {
		if _, err := os.Stat(user); err == nil {
			files = append(files, user)
		}
	}
	if project := findProjectConfig(wd); project != "" {
		files = append(files, project)
	}
	return files
}

// mergeConfigFiles merges the user config, then the project config, into v.
// Environment variables still win because AutomaticEnv is consulted on read.
// A file that fails to parse is skipped here and reported by UnknownKeys.
func mergeConfigFiles(v *viper.Viper, wd string) {
	for _, path := range configFiles(wd) {
		fileViper := viper.New()
		fileViper.SetConfigFile(path)
		fileViper.SetConfigType("toml")
		if err := fileViper.ReadInConfig(); err != nil {
			continue
		}
		_ = v.MergeConfigMap(fileViper.AllSettings())
	}
}

// ProjectConfigPath returns the project config that Load would use, if any
func ProjectConfigPath() string {
	wd, _ := os.Getwd()
	return findProjectConfig(wd)
}
