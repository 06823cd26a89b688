package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Conf holds the application configuration, making it accessible globally.
var Conf *Config

// Config struct is the top-level configuration structure.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	AI       AIConfig       `mapstructure:"ai"`
	Scoring  ScoringConfig  `mapstructure:"scoring"`
	Survey   SurveyConfig   `mapstructure:"survey"`
	Insights InsightsConfig `mapstructure:"insights"`
}

// ServerConfig holds server-related settings.
type ServerConfig struct {
	Port            string   `mapstructure:"port"`
	SessionSecret   string   `mapstructure:"session_secret"`
	SecureCookies   bool     `mapstructure:"secure_cookies"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	LoginRateLimit  uint     `mapstructure:"login_rate_limit"`
	SubmitRateLimit uint     `mapstructure:"submit_rate_limit"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Path     string `mapstructure:"path"`
	LogLevel string `mapstructure:"log_level"`
}

// LoggingConfig holds settings for the logger.
type LoggingConfig struct {
	Directory  string `mapstructure:"directory"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
	Level      string `mapstructure:"level"`
}

// AIConfig points at the chat-completion endpoint used for narratives.
type AIConfig struct {
	Endpoint         string        `mapstructure:"endpoint"`
	APIKey           string        `mapstructure:"api_key"`
	Model            string        `mapstructure:"model"`
	SurveyMaxTokens  int           `mapstructure:"survey_max_tokens"`
	SummaryMaxTokens int           `mapstructure:"summary_max_tokens"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

// ScoringConfig selects how survey labels are scored.
type ScoringConfig struct {
	Mode    string `mapstructure:"mode"`
	Workers int    `mapstructure:"workers"`
}

// SurveyConfig locates the survey definition and its helpers.
type SurveyConfig struct {
	FormPath               string `mapstructure:"form_path"`
	OrganizationSuggestURL string `mapstructure:"organization_suggest_url"`
}

// InsightsConfig controls the overall recommendation feed.
type InsightsConfig struct {
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	CacheSize       int           `mapstructure:"cache_size"`
}

// setDefaults sets the default values for the configuration.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "5050")
	v.SetDefault("server.session_secret", "change-me-in-production")
	v.SetDefault("server.secure_cookies", false)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.login_rate_limit", 5)
	v.SetDefault("server.submit_rate_limit", 10)

	// Database defaults
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "db")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "user")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.dbname", "attrition-db")
	v.SetDefault("database.path", "attrition.db")
	v.SetDefault("database.log_level", "warn")

	// Logging defaults
	v.SetDefault("logging.directory", "logs")
	v.SetDefault("logging.max_size", 10)   // 10 MB
	v.SetDefault("logging.max_backups", 3) // Keep 3 backups
	v.SetDefault("logging.max_age", 7)     // 7 days
	v.SetDefault("logging.compress", true) // Compress old logs
	v.SetDefault("logging.level", "debug")

	// AI defaults
	v.SetDefault("ai.endpoint", "https://api.openai.com/v1/chat/completions")
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", "gpt-4o")
	v.SetDefault("ai.survey_max_tokens", 512)
	v.SetDefault("ai.summary_max_tokens", 256)
	v.SetDefault("ai.timeout", 60*time.Second)

	v.SetDefault("scoring.mode", "corrected")
	v.SetDefault("scoring.workers", 0)

	v.SetDefault("survey.form_path", "config/survey.yaml")
	v.SetDefault("survey.organization_suggest_url", "https://autocomplete.clearbit.com/v1/companies/suggest")

	v.SetDefault("insights.refresh_interval", time.Duration(0))
	v.SetDefault("insights.cache_size", 1024)
}

// Default returns a Config populated only from defaults. Useful for tests
// and for commands that run without a config file.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		panic(fmt.Sprintf("config defaults do not decode: %v", err))
	}
	return &c
}

// Init initializes the configuration with Viper.
func Init(projectRoot string, log *zap.Logger) error {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// --- File Configuration ---
	v.AddConfigPath(filepath.Join(projectRoot, "config"))
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// --- Environment Variable Binding ---
	v.SetEnvPrefix("ATTRITION") // e.g., ATTRITION_AI_API_KEY
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// It's okay if the file doesn't exist; defaults and env vars will be used.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := v.Unmarshal(&Conf); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	Conf.resolvePaths(projectRoot)

	// Set up a watch for configuration changes for hot-reloading
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		log.Info("Configuration file changed, reloading.", zap.String("file", e.Name))
		if err := v.Unmarshal(&Conf); err != nil {
			log.Error("Error reloading configuration", zap.Error(err))
			return
		}
		Conf.resolvePaths(projectRoot)
	})

	log.Info("Configuration loaded successfully")
	return nil
}

// resolvePaths anchors relative file paths at the project root.
func (c *Config) resolvePaths(projectRoot string) {
	if c.Survey.FormPath != "" && !filepath.IsAbs(c.Survey.FormPath) {
		c.Survey.FormPath = filepath.Join(projectRoot, c.Survey.FormPath)
	}
	if c.Logging.Directory != "" && !filepath.IsAbs(c.Logging.Directory) {
		c.Logging.Directory = filepath.Join(projectRoot, c.Logging.Directory)
	}
	if c.Database.Driver == "sqlite" && c.Database.Path != ":memory:" && !filepath.IsAbs(c.Database.Path) {
		c.Database.Path = filepath.Join(projectRoot, c.Database.Path)
	}
}
