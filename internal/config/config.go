package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kjstillabower/weather-planner-service/internal/validation"
)

// Config holds service configuration loaded from YAML and env.
type Config struct {
	ServerPort string

	ForecastAPIURL     string
	ForecastAPITimeout time.Duration
	ForecastDays       int

	RequestTimeout time.Duration

	// Planner tuning: smart-window count and separation, intent length cap.
	WindowCount     int
	MinSeparation   int
	IntentMaxLength int

	// Default planning site. HasDefaultLocation is false when the config
	// provides no coordinates; requests must then carry their own, and a
	// request without them is a permission-denied error state.
	HasDefaultLocation bool
	DefaultLatitude    float64
	DefaultLongitude   float64

	RateLimitRPS   int
	RateLimitBurst int

	ShutdownTimeout               time.Duration
	ShutdownInFlightTimeout       time.Duration
	ShutdownInFlightCheckInterval time.Duration

	DegradedWindow   time.Duration
	DegradedErrorPct int
}

type fileConfig struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	ForecastAPI struct {
		URL          string `yaml:"url"`
		Timeout      string `yaml:"timeout"`
		ForecastDays int    `yaml:"forecast_days"`
	} `yaml:"forecast_api"`

	Request struct {
		Timeout string `yaml:"timeout"`
	} `yaml:"request"`

	Planner struct {
		WindowCount     int `yaml:"window_count"`
		MinSeparation   int `yaml:"min_separation"`
		IntentMaxLength int `yaml:"intent_max_length"`
	} `yaml:"planner"`

	Location struct {
		Latitude  *float64 `yaml:"latitude"`
		Longitude *float64 `yaml:"longitude"`
	} `yaml:"location"`

	Reliability struct {
		RateLimitRPS   int `yaml:"rate_limit_rps"`
		RateLimitBurst int `yaml:"rate_limit_burst"`
	} `yaml:"reliability"`

	Shutdown struct {
		Timeout               string `yaml:"timeout"`
		InFlightTimeout       string `yaml:"in_flight_timeout"`
		InFlightCheckInterval string `yaml:"in_flight_check_interval"`
	} `yaml:"shutdown"`

	Lifecycle struct {
		DegradedWindow   string `yaml:"degraded_window"`
		DegradedErrorPct int    `yaml:"degraded_error_pct"`
	} `yaml:"lifecycle"`
}

// Load reads configuration from config/{ENV_NAME}.yaml (default dev).
// Call from project root. Open-Meteo is keyless, so there is no
// secrets file.
func Load() (*Config, error) {
	env := os.Getenv("ENV_NAME")
	if env == "" {
		env = "dev"
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("config: get working directory: %w", err)
	}
	configPath := filepath.Join(cwd, "config", env+".yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", configPath)
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	cfg := &Config{}

	cfg.ServerPort = fc.Server.Port
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}

	cfg.ForecastAPIURL = strings.TrimSpace(os.Getenv("FORECAST_API_URL"))
	if cfg.ForecastAPIURL == "" {
		cfg.ForecastAPIURL = fc.ForecastAPI.URL
	}
	if cfg.ForecastAPIURL == "" {
		cfg.ForecastAPIURL = "https://api.open-meteo.com/v1/forecast"
	}
	cfg.ForecastAPITimeout = parseDurationOrZero(fc.ForecastAPI.Timeout, 2*time.Second)
	cfg.ForecastDays = fc.ForecastAPI.ForecastDays
	if cfg.ForecastDays <= 0 {
		cfg.ForecastDays = 7
	}

	cfg.RequestTimeout = parseDuration(fc.Request.Timeout, 5*time.Second)

	cfg.WindowCount = fc.Planner.WindowCount
	if cfg.WindowCount <= 0 {
		cfg.WindowCount = 3
	}
	cfg.MinSeparation = fc.Planner.MinSeparation
	if cfg.MinSeparation <= 0 {
		cfg.MinSeparation = 2
	}
	cfg.IntentMaxLength = fc.Planner.IntentMaxLength
	if cfg.IntentMaxLength <= 0 {
		cfg.IntentMaxLength = 80
	}

	if fc.Location.Latitude != nil && fc.Location.Longitude != nil {
		cfg.HasDefaultLocation = true
		cfg.DefaultLatitude = *fc.Location.Latitude
		cfg.DefaultLongitude = *fc.Location.Longitude
	}

	cfg.RateLimitRPS = fc.Reliability.RateLimitRPS
	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = 100
	}
	cfg.RateLimitBurst = fc.Reliability.RateLimitBurst
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = 250
	}

	cfg.ShutdownTimeout = parseDuration(fc.Shutdown.Timeout, 30*time.Second)
	cfg.ShutdownInFlightTimeout = parseDuration(fc.Shutdown.InFlightTimeout, 10*time.Second)
	cfg.ShutdownInFlightCheckInterval = parseDuration(fc.Shutdown.InFlightCheckInterval, 100*time.Millisecond)

	cfg.DegradedWindow = parseDuration(fc.Lifecycle.DegradedWindow, 60*time.Second)
	cfg.DegradedErrorPct = fc.Lifecycle.DegradedErrorPct
	if cfg.DegradedErrorPct <= 0 {
		cfg.DegradedErrorPct = 5
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseDuration parses a duration string and returns defaultVal if parsing fails or result is <= 0.
// Used for parsing duration fields from YAML config with safe fallback to defaults.
func parseDuration(s string, defaultVal time.Duration) time.Duration {
	d := parseDurationOrZero(s, defaultVal)
	if d <= 0 {
		return defaultVal
	}
	return d
}

// parseDurationOrZero parses a duration string, returning defaultVal on empty string or parse error.
// Returns zero or negative durations as-is (caller should handle fallback).
func parseDurationOrZero(s string, defaultVal time.Duration) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultVal
	}
	return d
}

// validate performs post-load validation of configuration values.
// Ensures ForecastAPITimeout is positive, RequestTimeout exceeds it,
// and configured default coordinates are in range.
func validate(cfg *Config) error {
	if cfg.ForecastAPITimeout <= 0 {
		return fmt.Errorf("forecast_api.timeout must be positive")
	}
	if cfg.RequestTimeout <= cfg.ForecastAPITimeout {
		cfg.RequestTimeout = cfg.ForecastAPITimeout + time.Second
	}
	if cfg.ForecastDays > 16 {
		return fmt.Errorf("forecast_api.forecast_days must be <= 16, got %d", cfg.ForecastDays)
	}
	if cfg.HasDefaultLocation {
		if err := validation.ValidateCoordinates(cfg.DefaultLatitude, cfg.DefaultLongitude); err != nil {
			return fmt.Errorf("location: %w", err)
		}
	}
	return nil
}
