package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Catalog: CatalogConfig{
			ModulesDir: "content/modules",
			IDScheme:   "sequence",
		},
		Resources: ResourcesConfig{
			Provider:    "gemini",
			APIKey:      "key",
			Temperature: 0.5,
			MaxTokens:   2048,
			MaxRetries:  2,
		},
		Report: ReportConfig{
			OutputDir:     "exports",
			DefaultFormat: "pdf",
			SchoolName:    "R/EMB/ROYAL COLLEGE",
			Locale:        "en",
			Headless:      true,
			Concurrency:   4,
		},
		Console: ConsoleConfig{
			Prompt: "> ",
			Color:  true,
			Width:  80,
		},
	}
}

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY", "ANTHROPIC_API_KEY", "SCHOOLSTOCK_RESOURCES_API_KEY"} {
		t.Setenv(name, "")
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	clearKeyEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
logging:
  level: debug
  format: console
catalog:
  modules_dir: /srv/modules
  default_module: grade3
  id_scheme: uuid
resources:
  provider: anthropic
  api_key: from-file
  temperature: 0.2
  timeout: 30s
report:
  default_format: xlsx
  school_name: ROYAL COLLEGE
  locale: si-LK
console:
  color: false
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/srv/modules", cfg.Catalog.ModulesDir)
	assert.Equal(t, "grade3", cfg.Catalog.DefaultModule)
	assert.Equal(t, "uuid", cfg.Catalog.IDScheme)
	assert.Equal(t, "anthropic", cfg.Resources.Provider)
	assert.Equal(t, "from-file", cfg.Resources.APIKey)
	assert.InDelta(t, 0.2, cfg.Resources.Temperature, 1e-6)
	assert.Equal(t, 30*time.Second, cfg.Resources.Timeout)
	assert.Equal(t, "xlsx", cfg.Report.DefaultFormat)
	assert.Equal(t, "si-LK", cfg.Report.Locale)
	assert.False(t, cfg.Console.Color)

	// Defaults fill what the file leaves out.
	assert.Equal(t, 2048, cfg.Resources.MaxTokens)
	assert.Equal(t, "exports", cfg.Report.OutputDir)
	assert.True(t, cfg.Report.Headless)
	assert.Equal(t, 80, cfg.Console.Width)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	clearKeyEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "content/modules", cfg.Catalog.ModulesDir)
	assert.Equal(t, "gemini", cfg.Resources.Provider)
	assert.False(t, cfg.Resources.Enabled())
}

func TestLoad_EnvOverride(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("SCHOOLSTOCK_LOGGING_LEVEL", "warn")
	t.Setenv("SCHOOLSTOCK_REPORT_DEFAULT_FORMAT", "text")
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Report.DefaultFormat)
}

func TestLoad_APIKeyFallbacks(t *testing.T) {
	clearKeyEnv(t)
	t.Chdir(t.TempDir())

	t.Setenv("API_KEY", "generic")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "generic", cfg.Resources.APIKey)
	assert.True(t, cfg.Resources.Enabled())

	t.Setenv("GEMINI_API_KEY", "gemini-specific")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "gemini-specific", cfg.Resources.APIKey)

	t.Setenv("SCHOOLSTOCK_RESOURCES_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "anthropic-specific")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "anthropic-specific", cfg.Resources.APIKey)
}

func TestLoadDotEnv(t *testing.T) {
	clearKeyEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("API_KEY=from-dotenv\n"), 0644))
	require.NoError(t, os.Unsetenv("API_KEY"))

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "from-dotenv", os.Getenv("API_KEY"))
}

func TestLoadFromViper(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("resources.provider", "none")
	cfg, err := LoadFromViper(v)
	require.NoError(t, err)
	assert.False(t, cfg.Resources.Enabled())

	v.Set("logging.level", "trace")
	_, err = LoadFromViper(v)
	assert.ErrorContains(t, err, "logging.level")
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := validConfig()
		cfg.Logging.Format = format
		assert.NoError(t, cfg.Validate(), "format %q should be valid", format)
	}
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateCatalog(t *testing.T) {
	cfg := validConfig()
	cfg.Catalog.ModulesDir = ""
	assert.ErrorContains(t, cfg.Validate(), "catalog.modules_dir")

	cfg = validConfig()
	cfg.Catalog.IDScheme = "random"
	assert.ErrorContains(t, cfg.Validate(), "catalog.id_scheme")
}

func TestValidateResourcesProvider(t *testing.T) {
	for _, p := range []string{"gemini", "anthropic", "none"} {
		cfg := validConfig()
		cfg.Resources.Provider = p
		assert.NoError(t, cfg.Validate(), "provider %q should be valid", p)
	}
	cfg := validConfig()
	cfg.Resources.Provider = "openai"
	assert.ErrorContains(t, cfg.Validate(), "resources.provider")
}

func TestValidateReport(t *testing.T) {
	cfg := validConfig()
	cfg.Report.DefaultFormat = "docx"
	assert.ErrorContains(t, cfg.Validate(), "report.default_format")

	cfg = validConfig()
	cfg.Report.Locale = "not a tag!"
	assert.ErrorContains(t, cfg.Validate(), "report.locale")

	cfg = validConfig()
	cfg.Report.Concurrency = 0
	assert.ErrorContains(t, cfg.Validate(), "report.concurrency")
}

func TestValidateCollectsAllViolations(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	cfg.Report.OutputDir = ""
	cfg.Console.Width = 5
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "report.output_dir")
	assert.Contains(t, err.Error(), "console.width")
}

func TestEnabled(t *testing.T) {
	r := validConfig().Resources
	assert.True(t, r.Enabled())
	r.APIKey = ""
	assert.False(t, r.Enabled())
	r.APIKey = "key"
	r.Provider = "none"
	assert.False(t, r.Enabled())
}

// Property-based tests

func TestPropertyTemperatureRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		temp := rapid.Float32Range(0, 2).Draw(t, "temperature")
		cfg := validConfig()
		cfg.Resources.Temperature = temp
		if err := cfg.Validate(); err != nil {
			t.Fatalf("valid temperature %g rejected: %v", temp, err)
		}
	})
}

func TestPropertyInvalidTemperature(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		temp := rapid.OneOf(
			rapid.Float32Range(-100, -0.001),
			rapid.Float32Range(2.001, 100),
		).Draw(t, "temperature")
		cfg := validConfig()
		cfg.Resources.Temperature = temp
		if cfg.Validate() == nil {
			t.Fatalf("invalid temperature %g accepted", temp)
		}
	})
}

func TestPropertyMaxTokensAlwaysPositive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(-1000, 0).Draw(t, "max_tokens")
		cfg := validConfig()
		cfg.Resources.MaxTokens = n
		if cfg.Validate() == nil {
			t.Fatalf("max_tokens=%d accepted", n)
		}
	})
}
