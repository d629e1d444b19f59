package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	LocalAPIRoot     = "http://localhost:3000"
	ContainerAPIRoot = "http://backend:3000"

	configDirName  = ".items"
	configFileName = "config.toml"
)

// Config holds everything the console needs to reach the items API.
// Zero values are filled in by Default.
type Config struct {
	APIURL      string   `toml:"api_url" yaml:"api_url" validate:"omitempty,url"`
	Host        string   `toml:"host" yaml:"host"`
	Timeout     Duration `toml:"timeout" yaml:"timeout"`
	Theme       string   `toml:"theme" yaml:"theme" validate:"oneof=classic neon mono"`
	Diagnostics bool     `toml:"diagnostics" yaml:"diagnostics"`
	Verbose     bool     `toml:"verbose" yaml:"verbose"`
	LogLevel    string   `toml:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`

	// path the config was read from, empty when defaults were used
	path string
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	// report fields by their config-file key
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func Default() *Config {
	return &Config{
		Host:        "localhost",
		Theme:       "classic",
		Diagnostics: true,
		LogLevel:    "info",
	}
}

// DefaultPath is ~/.items/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

// Load reads the config at path. An empty path means DefaultPath, and a
// missing default file yields Default(). A missing explicit file is an error.
// Environment overrides are applied on top of the file.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(path, b, cfg); err != nil {
			return nil, err
		}
		cfg.path = path
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, b []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		if err := toml.Unmarshal(b, cfg); err != nil {
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				row, col := derr.Position()
				return fmt.Errorf("parse config %s: line %d, column %d: %w", path, row, col, err)
			}
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("ITEMS_API_URL")); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv("ITEMS_HOST")); v != "" {
		c.Host = v
	}
}

// Validate reports the first invalid field in a readable form.
func (c *Config) Validate() error {
	if c.Timeout.Duration < 0 {
		return fmt.Errorf("invalid config: timeout: must be >= 0")
	}
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("invalid config: %w", err)
	}
	fe := verrs[0]
	return fmt.Errorf("invalid config: %s: %s", fe.Field(), validationMessage(fe))
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "validation failed: " + fe.Tag()
	}
}

// Duration reads "5s"-style strings from TOML and YAML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Path returns the file the config was read from, or "".
func (c *Config) Path() string { return c.path }

// APIRoot is the origin every request is sent to.
func (c *Config) APIRoot() string {
	if c.APIURL != "" {
		return strings.TrimRight(c.APIURL, "/")
	}
	return ResolveAPIRoot(c.Host)
}

// ResolveAPIRoot picks the local origin for localhost/127.0.0.1 and the
// container-network origin for anything else.
func ResolveAPIRoot(host string) string {
	switch strings.ToLower(strings.TrimSpace(host)) {
	case "", "localhost", "127.0.0.1":
		return LocalAPIRoot
	default:
		return ContainerAPIRoot
	}
}
