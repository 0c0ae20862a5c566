package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Storage StorageConfig `mapstructure:"storage"`
	Feed    FeedConfig    `mapstructure:"feed"`
	Image   ImageConfig   `mapstructure:"image"`
	Logger  LoggerConfig  `mapstructure:"logger"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// StorageConfig holds durable storage configuration
type StorageConfig struct {
	// Driver selects the backend: "file" (directory of JSON records) or
	// "sqlite" (single database file).
	Driver   string `mapstructure:"driver"`
	Dir      string `mapstructure:"dir"`
	DBPath   string `mapstructure:"db_path"`
	MaxBytes int64  `mapstructure:"max_bytes"`
}

// FeedConfig holds feed pagination configuration
type FeedConfig struct {
	PageSize  int           `mapstructure:"page_size"`
	LoadDelay time.Duration `mapstructure:"load_delay"`
}

// ImageConfig holds image compression configuration
type ImageConfig struct {
	MaxWidth    int `mapstructure:"max_width"`
	JPEGQuality int `mapstructure:"jpeg_quality"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	Filename string `mapstructure:"filename"`
}

// Load loads configuration from various sources
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors)
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()
	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	// App defaults
	viper.SetDefault("app.name", "VibeShot")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.environment", "development")
	viper.SetDefault("app.debug", false)

	// Storage defaults
	viper.SetDefault("storage.driver", "file")
	viper.SetDefault("storage.dir", ".vibeshot")
	viper.SetDefault("storage.db_path", ".vibeshot/vibeshot.db")
	viper.SetDefault("storage.max_bytes", int64(5*1024*1024))

	// Feed defaults
	viper.SetDefault("feed.page_size", 8)
	viper.SetDefault("feed.load_delay", "600ms")

	// Image defaults
	viper.SetDefault("image.max_width", 800)
	viper.SetDefault("image.jpeg_quality", 70)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output", "stderr")
}

func bindEnvVars() {
	// App
	viper.BindEnv("app.name", "APP_NAME")
	viper.BindEnv("app.version", "APP_VERSION")
	viper.BindEnv("app.environment", "APP_ENVIRONMENT")
	viper.BindEnv("app.debug", "APP_DEBUG")

	// Storage
	viper.BindEnv("storage.driver", "STORAGE_DRIVER")
	viper.BindEnv("storage.dir", "STORAGE_DIR")
	viper.BindEnv("storage.db_path", "STORAGE_DB_PATH")
	viper.BindEnv("storage.max_bytes", "STORAGE_MAX_BYTES")

	// Feed
	viper.BindEnv("feed.page_size", "FEED_PAGE_SIZE")
	viper.BindEnv("feed.load_delay", "FEED_LOAD_DELAY")

	// Image
	viper.BindEnv("image.max_width", "IMAGE_MAX_WIDTH")
	viper.BindEnv("image.jpeg_quality", "IMAGE_JPEG_QUALITY")

	// Logger
	viper.BindEnv("logger.level", "LOG_LEVEL")
	viper.BindEnv("logger.format", "LOG_FORMAT")
	viper.BindEnv("logger.output", "LOG_OUTPUT")
	viper.BindEnv("logger.filename", "LOG_FILENAME")
}

func validateConfig(cfg *Config) error {
	switch cfg.Storage.Driver {
	case "file", "sqlite":
	default:
		return fmt.Errorf("storage driver must be file or sqlite, got %q", cfg.Storage.Driver)
	}

	if cfg.Storage.Driver == "file" && cfg.Storage.Dir == "" {
		return fmt.Errorf("storage dir is required for the file driver")
	}

	if cfg.Storage.Driver == "sqlite" && cfg.Storage.DBPath == "" {
		return fmt.Errorf("storage db_path is required for the sqlite driver")
	}

	if cfg.Feed.PageSize <= 0 {
		return fmt.Errorf("feed page_size must be positive")
	}

	if cfg.Image.MaxWidth <= 0 {
		return fmt.Errorf("image max_width must be positive")
	}

	if cfg.Image.JPEGQuality <= 0 || cfg.Image.JPEGQuality > 100 {
		return fmt.Errorf("image jpeg_quality must be between 1 and 100")
	}

	return nil
}

// IsDevelopment returns true if the environment is development
func (cfg *AppConfig) IsDevelopment() bool {
	return cfg.Environment == "development"
}

// IsProduction returns true if the environment is production
func (cfg *AppConfig) IsProduction() bool {
	return cfg.Environment == "production"
}
