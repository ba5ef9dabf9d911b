package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/plugboard-dev/plugboard/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood by the host.
const (
	KeyPluginsDir = "plugins_dir"
	KeyListen     = "listen"
	KeyLogLevel   = "log_level"
	KeyLogFormat  = "log_format"
	KeyVerbose    = "verbose"
)

// Settings is the resolved host configuration.
type Settings struct {
	PluginsDir string
	Listen     string
	LogLevel   string
	LogFormat  string
	Verbose    bool
}

// Dir returns the path to the config directory (~/.plugboard/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.plugboard/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyPluginsDir, filepath.Join(Dir(), "plugins"))
	viper.SetDefault(KeyListen, ":8080")
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyLogFormat, "text")
	viper.SetDefault(KeyVerbose, true)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Current returns the settings resolved from file, environment and defaults.
func Current() Settings {
	return Settings{
		PluginsDir: viper.GetString(KeyPluginsDir),
		Listen:     viper.GetString(KeyListen),
		LogLevel:   viper.GetString(KeyLogLevel),
		LogFormat:  viper.GetString(KeyLogFormat),
		Verbose:    viper.GetBool(KeyVerbose),
	}
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
