package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		// Set default values
		setDefaults()

		// Set up environment variable reading for overrides
		viper.SetEnvPrefix("CENSOR")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		// Load config from fixed location (cleaned for safety)
		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		// Try to read the config file
		if err := viper.ReadInConfig(); err != nil {
			// If the config file doesn't exist, just use defaults and env vars
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
		}

		// Validate the configuration
		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// Get returns a config value by key using Viper directly
func Get(key string) any {
	return viper.Get(key)
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	if viper.GetString("database.path") == "" {
		return fmt.Errorf("database path must not be empty")
	}

	if viper.GetString("storage.upload_dir") == "" {
		return fmt.Errorf("upload directory must not be empty")
	}

	// Auto-correct a nonsensical beep frequency
	if viper.GetInt("censor.beep_frequency") <= 0 {
		viper.Set("censor.beep_frequency", 1000)
	}

	volume := viper.GetFloat64("censor.beep_volume")
	if volume <= 0 || volume > 1 {
		viper.Set("censor.beep_volume", 0.4)
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database path must not be empty")
	}

	if c.Storage.UploadDir == "" {
		return fmt.Errorf("upload directory must not be empty")
	}

	if c.Censor.BeepFrequency <= 0 {
		c.Censor.BeepFrequency = 1000
	}

	if c.Censor.BeepVolume <= 0 || c.Censor.BeepVolume > 1 {
		c.Censor.BeepVolume = 0.4
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Environment defaults
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)
	viper.SetDefault("server.max_upload_bytes", 1073741824)

	// Database defaults
	viper.SetDefault("database.path", "./data/censor.db")
	viper.SetDefault("database.verbose", false)

	// Storage defaults
	viper.SetDefault("storage.upload_dir", "./uploads")
	viper.SetDefault("storage.max_temp_age", 24*time.Hour)
	viper.SetDefault("storage.cleanup_interval", 1*time.Hour)

	// Processing defaults
	viper.SetDefault("processing.ffmpeg_path", "ffmpeg")
	viper.SetDefault("processing.ffprobe_path", "ffprobe")
	viper.SetDefault("processing.ffmpeg_timeout", 30*time.Minute)

	// Whisper defaults
	viper.SetDefault("whisper.binary_path", "whisper-cli")
	viper.SetDefault("whisper.model_path", "./models/ggml-large-v3.bin")
	viper.SetDefault("whisper.language", "auto")
	viper.SetDefault("whisper.timeout", 30*time.Minute)

	// Censor defaults
	viper.SetDefault("censor.default_forbidden_words", []string{
		"palavrão1", "palavrão2", "merda", "porra", "caralho",
	})
	viper.SetDefault("censor.beep_frequency", 1000)
	viper.SetDefault("censor.beep_volume", 0.4)
	viper.SetDefault("censor.ducking_volume", 0.35)

	// Progress streaming defaults
	viper.SetDefault("progress.poll_interval", 500*time.Millisecond)
	viper.SetDefault("progress.max_wait", 50*time.Minute)

	// Rate limiting defaults
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.endpoints", map[string]int{
		"preview":  5,
		"render":   5,
		"progress": 30,
		"videos":   20,
		"default":  60,
	})

	// Security defaults
	viper.SetDefault("security.enable_cors", true)
	viper.SetDefault("security.cors_origins", []string{"*"})
	viper.SetDefault("security.enable_recovery", true)
}
