package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Storage      StorageConfig      `mapstructure:"storage"`
	Processing   ProcessingConfig   `mapstructure:"processing"`
	Whisper      WhisperConfig      `mapstructure:"whisper"`
	Censor       CensorConfig       `mapstructure:"censor"`
	Progress     ProgressConfig     `mapstructure:"progress"`
	RateLimiting RateLimitConfig    `mapstructure:"rate_limiting"`
	Security     SecurityConfig     `mapstructure:"security"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	Verbose bool   `mapstructure:"verbose"`
}

// StorageConfig contains upload and temp file storage settings
type StorageConfig struct {
	UploadDir       string        `mapstructure:"upload_dir"`
	MaxTempAge      time.Duration `mapstructure:"max_temp_age"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// ProcessingConfig contains ffmpeg processing settings
type ProcessingConfig struct {
	FFmpegPath    string        `mapstructure:"ffmpeg_path"`
	FFprobePath   string        `mapstructure:"ffprobe_path"`
	FFmpegTimeout time.Duration `mapstructure:"ffmpeg_timeout"`
}

// WhisperConfig contains speech transcription settings
type WhisperConfig struct {
	BinaryPath string        `mapstructure:"binary_path"`
	ModelPath  string        `mapstructure:"model_path"`
	Language   string        `mapstructure:"language"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// CensorConfig contains profanity masking and beep settings
type CensorConfig struct {
	DefaultForbiddenWords []string `mapstructure:"default_forbidden_words"`
	BeepFrequency         int      `mapstructure:"beep_frequency"`
	BeepVolume            float64  `mapstructure:"beep_volume"`
	DuckingVolume         float64  `mapstructure:"ducking_volume"`
}

// ProgressConfig contains progress streaming settings
type ProgressConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
	MaxWait      time.Duration `mapstructure:"max_wait"`
}

// RateLimitConfig contains rate limiting settings
type RateLimitConfig struct {
	Enabled   bool           `mapstructure:"enabled"`
	Endpoints map[string]int `mapstructure:"endpoints"`
}

// SecurityConfig contains security settings
type SecurityConfig struct {
	EnableCORS     bool     `mapstructure:"enable_cors"`
	CORSOrigins    []string `mapstructure:"cors_origins"`
	EnableRecovery bool     `mapstructure:"enable_recovery"`
}
