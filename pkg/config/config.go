package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ErrInvalidValue is returned when an environment variable cannot be parsed
var ErrInvalidValue = errors.New("invalid configuration value")

// Config holds process settings read from the environment and an optional .env file
type Config struct {
	Scene     string // Built-in scene ID or file:<name>
	ScenesDir string // Directory scanned for JSON scene files
	Output    string
	Strategy  string
	Workers   int    // 0 = use CPU count
	Seed      uint64 // Base seed for per-pixel random streams
	Samples   int    // -1 = use the scene's setting
	MaxDepth  int    // 0 = use the scene's setting
	Port      int
	LogLevel  slog.Level
	S3        S3Config
}

// S3Config contains object storage settings for publishing renders
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Prefix    string
}

// Enabled reports whether a bucket is configured
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// Default returns the settings used when nothing is configured
func Default() Config {
	return Config{
		Scene:     "default",
		ScenesDir: "scenes",
		Output:    "output.ppm",
		Strategy:  "rows",
		Workers:   0,
		Seed:      42,
		Samples:   -1,
		MaxDepth:  0,
		Port:      8080,
		LogLevel:  slog.LevelInfo,
		S3: S3Config{
			Region: "us-east-1",
			Prefix: "renders/",
		},
	}
}

// Load reads envFile (if it exists) into the environment and then builds a
// Config. Variables already set in the environment take precedence over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment
func FromEnv() (Config, error) {
	cfg := Default()

	cfg.Scene = getEnv("RAYTRACER_SCENE", cfg.Scene)
	cfg.ScenesDir = getEnv("RAYTRACER_SCENES_DIR", cfg.ScenesDir)
	cfg.Output = getEnv("RAYTRACER_OUTPUT", cfg.Output)
	cfg.Strategy = getEnv("RAYTRACER_STRATEGY", cfg.Strategy)

	var err error
	if cfg.Workers, err = getInt("RAYTRACER_WORKERS", cfg.Workers); err != nil {
		return cfg, err
	}
	if cfg.Samples, err = getInt("RAYTRACER_SAMPLES", cfg.Samples); err != nil {
		return cfg, err
	}
	if cfg.MaxDepth, err = getInt("RAYTRACER_MAX_DEPTH", cfg.MaxDepth); err != nil {
		return cfg, err
	}
	if cfg.Port, err = getInt("RAYTRACER_PORT", cfg.Port); err != nil {
		return cfg, err
	}
	if value, ok := os.LookupEnv("RAYTRACER_SEED"); ok && value != "" {
		seed, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("%w: RAYTRACER_SEED=%q", ErrInvalidValue, value)
		}
		cfg.Seed = seed
	}
	if value, ok := os.LookupEnv("LOG_LEVEL"); ok && value != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(value)); err != nil {
			return cfg, fmt.Errorf("%w: LOG_LEVEL=%q", ErrInvalidValue, value)
		}
	}

	cfg.S3 = S3Config{
		Bucket:    getEnv("S3_BUCKET", cfg.S3.Bucket),
		Region:    getEnv("S3_REGION", cfg.S3.Region),
		Endpoint:  getEnv("S3_ENDPOINT", cfg.S3.Endpoint),
		AccessKey: getEnv("S3_ACCESS_KEY", cfg.S3.AccessKey),
		SecretKey: getEnv("S3_SECRET_KEY", cfg.S3.SecretKey),
		Prefix:    getEnv("S3_PREFIX", cfg.S3.Prefix),
	}
	return cfg, nil
}

// getEnv returns the value of key, or fallback when it is unset or empty
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback, fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, value)
	}
	return n, nil
}
