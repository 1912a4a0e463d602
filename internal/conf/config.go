// config.go: defines the settings struct and loading of application configuration.
package conf

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yaml
var configFiles embed.FS

// ScorerSettings configures the external embedding scorer endpoint.
type ScorerSettings struct {
	URL     string        // endpoint of the scoring service
	Timeout time.Duration // per-request timeout
	Retries int           // bounded retry attempts on scorer failure
}

// TaggerSettings controls ranking and directory processing.
type TaggerSettings struct {
	TopK           int      // number of labels to keep per image
	MaxWorkers     int      // concurrency limit for directory jobs
	Extensions     []string // eligible file extensions for directory scans
	VocabularyPath string   // optional path to a vocabulary file override
	Labels         []string // optional candidate label set; empty means the full vocabulary
}

// Settings contains all application settings.
type Settings struct {
	Debug bool // true to enable debug mode

	Main struct {
		Name string // node name, identifies this tagger instance in logs
	}

	Input struct {
		Path      string // path to input file or directory
		Recursive bool   // true for recursive directory analysis
	}

	Tagger TaggerSettings
	Scorer ScorerSettings

	Output struct {
		SQLite struct {
			Enabled bool   // true to enable sqlite output
			Path    string // path to sqlite database file
		}
		MySQL struct {
			Enabled  bool   // true to enable mysql output
			Username string // mysql database username
			Password string // mysql database user password
			Host     string // mysql database host
			Port     string // mysql database port
			Database string // mysql database name
		}
	}
}

var (
	settingsInstance *Settings
	settingsMutex    sync.Mutex
)

// Load reads the configuration file and environment variables into Settings.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// Setting returns the currently loaded settings instance, or nil before Load.
func Setting() *Settings {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()
	return settingsInstance
}

// initViper initializes viper with default values and reads the configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	viper.SetEnvPrefix("PHOTOTAG")
	viper.AutomaticEnv()

	// Defaults are registered in defaults.go
	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// Config file not found, create one with defaults
			return createDefaultConfig()
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPaths returns the list of directories searched for config.yaml.
func GetDefaultConfigPaths() ([]string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("error fetching user home directory: %w", err)
	}
	return []string{
		".",
		filepath.Join(homeDir, ".config", "phototag"),
	}, nil
}

// createDefaultConfig writes the embedded default config to the user config path.
func createDefaultConfig() error {
	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	configDir := configPaths[1]
	configPath := filepath.Join(configDir, "config.yaml")

	defaultConfig, err := configFiles.ReadFile("config.yaml")
	if err != nil {
		return fmt.Errorf("error reading embedded default config: %w", err)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, defaultConfig, 0o644); err != nil {
		return fmt.Errorf("error writing default config file: %w", err)
	}

	return viper.ReadInConfig()
}
