// Package config loads crudforge settings from defaults, an optional
// crudforge.yaml, a .env file and the environment, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ridoystarlord/crudforge/schema"
)

const envPrefix = "CRUDFORGE"

type Config struct {
	DatabaseURL   string    `mapstructure:"database_url"`
	DBSchema      string    `mapstructure:"db_schema"`
	SourceRoot    string    `mapstructure:"source_root"`
	ResourcesRoot string    `mapstructure:"resources_root"`
	BasePackage   string    `mapstructure:"base_package"`
	APIPrefix     string    `mapstructure:"api_prefix"`
	AllowedOrigin string    `mapstructure:"allowed_origin"`
	API           APIConfig `mapstructure:"api"`
	Log           LogConfig `mapstructure:"log"`
}

type APIConfig struct {
	Title        string   `mapstructure:"title"`
	Version      string   `mapstructure:"version"`
	Description  string   `mapstructure:"description"`
	ContactName  string   `mapstructure:"contact_name"`
	ContactEmail string   `mapstructure:"contact_email"`
	Servers      []string `mapstructure:"servers"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	Dev        bool   `mapstructure:"dev"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
	Compress   bool   `mapstructure:"compress"`
}

// Options returns the rendering options carried by the configuration.
func (c *Config) Options() schema.Options {
	return schema.Options{
		BasePackage:   c.BasePackage,
		APIPrefix:     c.APIPrefix,
		AllowedOrigin: c.AllowedOrigin,
		API: schema.APIInfo{
			Title:        c.API.Title,
			Version:      c.API.Version,
			Description:  c.API.Description,
			ContactName:  c.API.ContactName,
			ContactEmail: c.API.ContactEmail,
			Servers:      c.API.Servers,
		},
	}.WithDefaults()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database_url", "")
	v.SetDefault("db_schema", "public")
	v.SetDefault("source_root", "")
	v.SetDefault("resources_root", "src/main/resources")
	v.SetDefault("base_package", schema.DefaultBasePackage)
	v.SetDefault("api_prefix", schema.DefaultAPIPrefix)
	v.SetDefault("allowed_origin", "http://localhost:5173")
	v.SetDefault("api.title", "Generated API")
	v.SetDefault("api.version", "1.0.0")
	v.SetDefault("api.description", "")
	v.SetDefault("api.contact_name", "")
	v.SetDefault("api.contact_email", "")
	v.SetDefault("api.servers", []string{"http://localhost:8080"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.dev", false)
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", false)
}

// Loader reads and, on request, watches the configuration.
type Loader struct {
	v *viper.Viper
}

// NewLoader prepares the configuration sources. configFile may be empty, in
// which case ./crudforge.yaml is used when present.
func NewLoader(configFile string) (*Loader, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("database_url", envPrefix+"_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("binding DATABASE_URL: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("crudforge")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	return &Loader{v: v}, nil
}

// Config decodes the current settings. An unset source_root follows
// base_package: com.acme.jobs -> src/main/java/com/acme/jobs.
func (l *Loader) Config() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if strings.TrimSpace(cfg.SourceRoot) == "" {
		cfg.SourceRoot = DefaultSourceRoot(cfg.BasePackage)
	}
	return &cfg, nil
}

// DefaultSourceRoot is the Maven source directory of basePackage.
func DefaultSourceRoot(basePackage string) string {
	if basePackage == "" {
		basePackage = schema.DefaultBasePackage
	}
	return path.Join("src/main/java", strings.ReplaceAll(basePackage, ".", "/"))
}

// ConfigFile returns the config file in use, or "" when none was found.
func (l *Loader) ConfigFile() string {
	return l.v.ConfigFileUsed()
}

// Watch calls onChange with the reloaded settings whenever the config file
// changes. It returns false when no config file is in use.
func (l *Loader) Watch(onChange func(*Config, error)) bool {
	if l.v.ConfigFileUsed() == "" {
		return false
	}
	l.v.OnConfigChange(func(fsnotify.Event) {
		onChange(l.Config())
	})
	l.v.WatchConfig()
	return true
}
