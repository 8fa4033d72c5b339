// Package config loads and validates figma-simplify settings from a YAML
// file, environment variables, and CLI flags, in increasing precedence.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	// DefaultConfigFile is the default configuration file name, searched in
	// the working directory and then the user's home directory.
	DefaultConfigFile = ".figma-simplify.yaml"

	// DefaultImageFormat is png: universally consumable and lossless for UI
	// screenshots.
	DefaultImageFormat = "png"

	// DefaultImageScale renders at 1x; higher scales are for retina export.
	DefaultImageScale = 1.0

	// DefaultImageDir is where downloaded assets land relative to the
	// working directory.
	DefaultImageDir = "figma-assets"

	// DefaultConcurrency bounds simultaneous asset downloads. Five parallel
	// transfers saturate the temporary S3 URLs without tripping rate limits.
	DefaultConcurrency = 5

	// EnvAccessToken and EnvOAuthToken are the environment variables holding
	// the two supported credential kinds.
	EnvAccessToken = "FIGMA_API_KEY"
	EnvOAuthToken  = "FIGMA_OAUTH_TOKEN"
)

// Validation errors. Package-level sentinels so callers can branch with
// errors.Is while the message stays human-readable.
var (
	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrNoCredentials is returned when neither credential kind is set.
	ErrNoCredentials = errors.New("no credentials: set " + EnvAccessToken + " or " + EnvOAuthToken)

	// ErrInvalidFormat is returned for an unsupported image format.
	ErrInvalidFormat = errors.New("invalid image format: must be png, svg, jpg, or pdf")

	// ErrInvalidScale is returned when the render scale is not positive.
	ErrInvalidScale = errors.New("invalid image scale: must be positive")

	// ErrInvalidConcurrency is returned when the download concurrency is not
	// positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")
)

// Config holds all runtime settings.
type Config struct {
	AccessToken string  `yaml:"accessToken"`
	OAuthToken  string  `yaml:"oauthToken"`
	ImageFormat string  `yaml:"imageFormat"`
	ImageScale  float64 `yaml:"imageScale"`
	ImageDir    string  `yaml:"imageDir"`
	Concurrency int     `yaml:"concurrency"`
}

// New returns a Config with defaults applied and credentials picked up from
// the environment.
func New() *Config {
	return &Config{
		AccessToken: os.Getenv(EnvAccessToken),
		OAuthToken:  os.Getenv(EnvOAuthToken),
		ImageFormat: DefaultImageFormat,
		ImageScale:  DefaultImageScale,
		ImageDir:    DefaultImageDir,
		Concurrency: DefaultConcurrency,
	}
}

// Load reads a YAML configuration file over the defaults. Empty file values
// keep the defaults; environment credentials survive unless the file sets its
// own.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	cfg := New()
	if file.AccessToken != "" {
		cfg.AccessToken = file.AccessToken
	}
	if file.OAuthToken != "" {
		cfg.OAuthToken = file.OAuthToken
	}
	if file.ImageFormat != "" {
		cfg.ImageFormat = file.ImageFormat
	}
	if file.ImageScale > 0 {
		cfg.ImageScale = file.ImageScale
	}
	if file.ImageDir != "" {
		cfg.ImageDir = file.ImageDir
	}
	if file.Concurrency > 0 {
		cfg.Concurrency = file.Concurrency
	}

	return cfg, nil
}

// Find searches for the configuration file: an explicit path wins, then the
// working directory, then the user's home directory. Returns "" when no file
// exists.
func Find(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.AccessToken == "" && c.OAuthToken == "" {
		return ErrNoCredentials
	}
	switch c.ImageFormat {
	case "png", "svg", "jpg", "pdf":
	default:
		return ErrInvalidFormat
	}
	if c.ImageScale <= 0 {
		return ErrInvalidScale
	}
	if c.Concurrency < 1 {
		return ErrInvalidConcurrency
	}
	return nil
}
