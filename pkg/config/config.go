// Package config loads wbsview settings.
//
// Configuration follows the XDG Base Directory specification:
//   - Config: ~/.config/wbsview/config.toml (config.yaml is also accepted)
//   - Cache:  ~/.cache/wbsview/
//
// A missing file is not an error: [Default] is used. Command-line flags
// override file values in the CLI.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/wbsview/pkg/errors"
	"github.com/matzehuels/wbsview/pkg/layout"
	"github.com/matzehuels/wbsview/pkg/view"
)

const appName = "wbsview"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// LogConfig controls logging.
type LogConfig struct {
	Level string `toml:"level" yaml:"level" validate:"oneof=debug info warn error"`
}

// LayoutConfig controls tree spacing and the local view radius.
type LayoutConfig struct {
	XGap   float64 `toml:"x_gap" yaml:"x_gap" validate:"gt=0"`
	YGap   float64 `toml:"y_gap" yaml:"y_gap" validate:"gt=0"`
	Radius float64 `toml:"radius" yaml:"radius" validate:"gt=0"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend" yaml:"backend" validate:"oneof=file redis none"`
	Dir           string `toml:"dir" yaml:"dir" validate:"required_if=Backend file"`
	RedisAddr     string `toml:"redis_addr" yaml:"redis_addr" validate:"required_if=Backend redis"`
	RedisPassword string `toml:"redis_password" yaml:"redis_password"`
	RedisDB       int    `toml:"redis_db" yaml:"redis_db" validate:"gte=0"`
	// Prefix namespaces keys, useful when several hosts share one Redis.
	Prefix string `toml:"prefix" yaml:"prefix"`
}

// RenderConfig controls artifact output.
type RenderConfig struct {
	// Detailed adds the WBS code and type to node labels.
	Detailed bool `toml:"detailed" yaml:"detailed"`
}

// Config is the top-level configuration.
type Config struct {
	Log    LogConfig    `toml:"log" yaml:"log"`
	Layout LayoutConfig `toml:"layout" yaml:"layout"`
	Cache  CacheConfig  `toml:"cache" yaml:"cache"`
	Render RenderConfig `toml:"render" yaml:"render"`
}

// validate reports field errors under their file keys, e.g. "cache.backend".
var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}()

// Default returns a Config with the built-in layout constants and a file
// cache under the XDG cache directory.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "info"},
		Layout: LayoutConfig{
			XGap:   layout.XGap,
			YGap:   layout.YGap,
			Radius: view.Radius,
		},
		Cache: CacheConfig{
			Backend:   BackendFile,
			Dir:       CacheDir(),
			RedisAddr: "localhost:6379",
		},
	}
}

// ConfigDir returns the XDG config directory for wbsview.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// CacheDir returns the XDG cache directory for wbsview.
func CacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".cache", appName)
}

// Path returns the config file in use: config.toml if it exists, else
// config.yaml if that exists, else the config.toml path.
func Path() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	primary := filepath.Join(dir, "config.toml")
	if fileExists(primary) {
		return primary
	}
	if yml := filepath.Join(dir, "config.yaml"); fileExists(yml) {
		return yml
	}
	return primary
}

// Load reads the config file from the XDG config directory.
// Returns Default if the file doesn't exist.
func Load() (Config, error) {
	path := Path()
	if path == "" {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path. The format follows the
// extension: .yaml and .yml are YAML, everything else TOML.
// Returns Default if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "reading config")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		_, err = toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parsing %s", filepath.Base(path))
	}

	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Cache.Dir = expandHome(cfg.Cache.Dir)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrs) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "validating config")
	}
	msgs := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		msgs[i] = describeFieldError(fe)
	}
	return errors.New(errors.ErrCodeInvalidConfig, "%s", strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	key := fe.Namespace()
	if _, rest, ok := strings.Cut(key, "."); ok {
		key = rest
	}
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s %q: want one of %s", key, fe.Value(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", key, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", key, fe.Param())
	case "required_if":
		return fmt.Sprintf("%s is required for this cache backend", key)
	default:
		return fmt.Sprintf("%s is invalid", key)
	}
}

// Encode writes c as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
