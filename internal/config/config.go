// Package config provides Viper-based configuration loading for schoolstock.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// EnvPrefix prefixes every environment override, e.g. SCHOOLSTOCK_LOGGING_LEVEL.
const EnvPrefix = "SCHOOLSTOCK"

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// File receives log output instead of stderr when set, keeping the
	// console session clean.
	File string `mapstructure:"file"`
}

// CatalogConfig locates the inventory module definitions.
type CatalogConfig struct {
	// ModulesDir holds one YAML file per module.
	ModulesDir string `mapstructure:"modules_dir"`
	// DefaultModule is opened when a session starts; empty means the first module.
	DefaultModule string `mapstructure:"default_module"`
	// IDScheme selects room ID generation: "sequence" or "uuid".
	IDScheme string `mapstructure:"id_scheme"`
}

// ResourcesConfig selects and tunes the resource query model.
type ResourcesConfig struct {
	// Provider is "gemini", "anthropic" or "none".
	Provider string `mapstructure:"provider"`
	// Model overrides the provider's default model.
	Model string `mapstructure:"model"`
	// APIKey authenticates with the provider. Falls back to the provider's
	// conventional environment variable, then API_KEY.
	APIKey string `mapstructure:"api_key"`
	// BaseURL overrides the provider endpoint.
	BaseURL     string  `mapstructure:"base_url"`
	Temperature float32 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	MaxRetries  int     `mapstructure:"max_retries"`
	// Timeout bounds one query; zero means no timeout.
	Timeout time.Duration `mapstructure:"timeout"`
}

// Enabled reports whether searches can reach a model.
func (r ResourcesConfig) Enabled() bool {
	return r.Provider != "none" && r.APIKey != ""
}

// ReportConfig controls exported documents.
type ReportConfig struct {
	OutputDir     string `mapstructure:"output_dir"`
	DefaultFormat string `mapstructure:"default_format"`
	// SchoolName heads every exported page.
	SchoolName string `mapstructure:"school_name"`
	// Locale is a BCP 47 tag used for number formatting.
	Locale string `mapstructure:"locale"`
	// ChromeBin is the browser used for PDF output; empty lets rod locate one.
	ChromeBin string `mapstructure:"chrome_bin"`
	Headless  bool   `mapstructure:"headless"`
	// Concurrency bounds parallel exports.
	Concurrency int `mapstructure:"concurrency"`
}

// ConsoleConfig tunes the interactive console.
type ConsoleConfig struct {
	Prompt string `mapstructure:"prompt"`
	Color  bool   `mapstructure:"color"`
	Width  int    `mapstructure:"width"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Resources ResourcesConfig `mapstructure:"resources"`
	Report    ReportConfig    `mapstructure:"report"`
	Console   ConsoleConfig   `mapstructure:"console"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	for _, err := range []error{
		validateLogging(c.Logging),
		validateCatalog(c.Catalog),
		validateResources(c.Resources),
		validateReport(c.Report),
		validateConsole(c.Console),
	} {
		if err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateCatalog(c CatalogConfig) error {
	var errs []string
	if c.ModulesDir == "" {
		errs = append(errs, "catalog.modules_dir must not be empty")
	}
	if c.IDScheme != "sequence" && c.IDScheme != "uuid" {
		errs = append(errs, fmt.Sprintf("catalog.id_scheme must be one of [sequence, uuid], got %q", c.IDScheme))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateResources(r ResourcesConfig) error {
	var errs []string
	validProviders := map[string]bool{"gemini": true, "anthropic": true, "none": true}
	if !validProviders[r.Provider] {
		errs = append(errs, fmt.Sprintf("resources.provider must be one of [gemini, anthropic, none], got %q", r.Provider))
	}
	if r.Temperature < 0 || r.Temperature > 2 {
		errs = append(errs, fmt.Sprintf("resources.temperature must be 0-2, got %g", r.Temperature))
	}
	if r.MaxTokens < 1 {
		errs = append(errs, fmt.Sprintf("resources.max_tokens must be >= 1, got %d", r.MaxTokens))
	}
	if r.MaxRetries < 0 {
		errs = append(errs, fmt.Sprintf("resources.max_retries must be >= 0, got %d", r.MaxRetries))
	}
	if r.Timeout < 0 {
		errs = append(errs, "resources.timeout must not be negative")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateReport(r ReportConfig) error {
	var errs []string
	if r.OutputDir == "" {
		errs = append(errs, "report.output_dir must not be empty")
	}
	validFormats := map[string]bool{"pdf": true, "xlsx": true, "text": true}
	if !validFormats[r.DefaultFormat] {
		errs = append(errs, fmt.Sprintf("report.default_format must be one of [pdf, xlsx, text], got %q", r.DefaultFormat))
	}
	if _, err := language.Parse(r.Locale); err != nil {
		errs = append(errs, fmt.Sprintf("report.locale %q is not a valid language tag", r.Locale))
	}
	if r.Concurrency < 1 {
		errs = append(errs, fmt.Sprintf("report.concurrency must be >= 1, got %d", r.Concurrency))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateConsole(c ConsoleConfig) error {
	if c.Width < 20 {
		return fmt.Errorf("console.width must be >= 20, got %d", c.Width)
	}
	return nil
}

// LoadDotEnv loads .env files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path searches ./configs and the
// working directory for schoolstock.yaml and falls back to defaults when none
// exists.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("schoolstock")
		v.SetConfigType("yaml")
		v.AddConfigPath("configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	cfg.Resources.APIKey = resolveAPIKey(cfg.Resources)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// resolveAPIKey applies the environment fallbacks for an unset API key.
func resolveAPIKey(r ResourcesConfig) string {
	if r.APIKey != "" {
		return r.APIKey
	}
	var candidates []string
	switch r.Provider {
	case "gemini":
		candidates = []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}
	case "anthropic":
		candidates = []string{"ANTHROPIC_API_KEY"}
	}
	candidates = append(candidates, "API_KEY")
	for _, name := range candidates {
		if key := os.Getenv(name); key != "" {
			return key
		}
	}
	return ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "")

	v.SetDefault("catalog.modules_dir", "content/modules")
	v.SetDefault("catalog.default_module", "")
	v.SetDefault("catalog.id_scheme", "sequence")

	v.SetDefault("resources.provider", "gemini")
	v.SetDefault("resources.model", "")
	v.SetDefault("resources.api_key", "")
	v.SetDefault("resources.base_url", "")
	v.SetDefault("resources.temperature", 0.5)
	v.SetDefault("resources.max_tokens", 2048)
	v.SetDefault("resources.max_retries", 2)
	v.SetDefault("resources.timeout", "0s")

	v.SetDefault("report.output_dir", "exports")
	v.SetDefault("report.default_format", "pdf")
	v.SetDefault("report.school_name", "R/EMB/ROYAL COLLEGE")
	v.SetDefault("report.locale", "en")
	v.SetDefault("report.chrome_bin", "")
	v.SetDefault("report.headless", true)
	v.SetDefault("report.concurrency", 4)

	v.SetDefault("console.prompt", "> ")
	v.SetDefault("console.color", true)
	v.SetDefault("console.width", 80)
}
