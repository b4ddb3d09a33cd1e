package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/foodgram-backend/internal/data/db"
	"github.com/yungbote/foodgram-backend/internal/observability"
	"github.com/yungbote/foodgram-backend/internal/platform/envutil"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
	"github.com/yungbote/foodgram-backend/internal/platform/objectstore"
)

type DatabaseConfig struct {
	Driver       string `yaml:"driver"`
	Host         string `yaml:"host"`
	Port         string `yaml:"port"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	Name         string `yaml:"name"`
	SSLMode      string `yaml:"sslmode"`
	SQLitePath   string `yaml:"sqlite_path"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

type StorageConfig struct {
	Mode          string `yaml:"mode"`
	LocalDir      string `yaml:"local_dir"`
	Bucket        string `yaml:"bucket"`
	EmulatorHost  string `yaml:"emulator_host"`
	Credentials   string `yaml:"credentials"`
	PublicBaseURL string `yaml:"public_base_url"`
}

type CacheConfig struct {
	RedisAddr      string        `yaml:"redis_addr"`
	RedisPrefix    string        `yaml:"redis_prefix"`
	IngredientSize int           `yaml:"ingredient_size"`
	IngredientTTL  time.Duration `yaml:"ingredient_ttl"`
}

type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"`
	Headers     string  `yaml:"headers"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

type Config struct {
	Port            string        `yaml:"port"`
	LogMode         string        `yaml:"log_mode"`
	Environment     string        `yaml:"environment"`
	Version         string        `yaml:"version"`
	JWTSecretKey    string        `yaml:"jwt_secret_key"`
	CORSOrigins     []string      `yaml:"cors_allow_origins"`
	RecipesPageSize int           `yaml:"recipes_page_size"`
	ExportFontPath  string        `yaml:"export_font_path"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MetricsEnabled  bool          `yaml:"metrics_enabled"`

	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Cache    CacheConfig    `yaml:"cache"`
	Tracing  TracingConfig  `yaml:"tracing"`
}

func defaultConfig() Config {
	return Config{
		Port:            "8080",
		LogMode:         "development",
		Environment:     "development",
		RecipesPageSize: 6,
		ShutdownTimeout: 15 * time.Second,
		MetricsEnabled:  true,
		Database: DatabaseConfig{
			Driver:     db.DriverPostgres,
			Host:       "localhost",
			Port:       "5432",
			User:       "postgres",
			Name:       "foodgram",
			SSLMode:    "disable",
			SQLitePath: "foodgram.db",
		},
		Storage: StorageConfig{
			Mode:     string(objectstore.ModeLocal),
			LocalDir: "media",
		},
		Cache: CacheConfig{
			RedisPrefix:    "foodgram",
			IngredientSize: 4096,
			IngredientTTL:  24 * time.Hour,
		},
		Tracing: TracingConfig{SampleRatio: 0.1},
	}
}

// LoadConfig layers defaults, then the YAML file named by CONFIG_FILE, then
// environment variables.
func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := defaultConfig()
	if path := envutil.String("CONFIG_FILE", ""); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
		if log != nil {
			log.Info("Loaded config file", "path", path)
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Port = envutil.String("PORT", cfg.Port)
	cfg.LogMode = envutil.String("LOG_MODE", cfg.LogMode)
	cfg.Environment = envutil.String("APP_ENV", cfg.Environment)
	cfg.Version = envutil.String("APP_VERSION", cfg.Version)
	cfg.JWTSecretKey = envutil.String("JWT_SECRET_KEY", cfg.JWTSecretKey)
	cfg.CORSOrigins = envutil.CSV("CORS_ALLOW_ORIGINS", cfg.CORSOrigins)
	cfg.RecipesPageSize = envutil.Int("RECIPES_PAGE_SIZE", cfg.RecipesPageSize)
	cfg.ExportFontPath = envutil.String("EXPORT_FONT_PATH", cfg.ExportFontPath)
	cfg.ShutdownTimeout = envutil.Duration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	cfg.MetricsEnabled = envutil.Bool("METRICS_ENABLED", cfg.MetricsEnabled)

	d := &cfg.Database
	d.Driver = envutil.String("DB_DRIVER", d.Driver)
	d.Host = envutil.String("POSTGRES_HOST", d.Host)
	d.Port = envutil.String("POSTGRES_PORT", d.Port)
	d.User = envutil.String("POSTGRES_USER", d.User)
	d.Password = envutil.String("POSTGRES_PASSWORD", d.Password)
	d.Name = envutil.String("POSTGRES_NAME", d.Name)
	d.SSLMode = envutil.String("POSTGRES_SSLMODE", d.SSLMode)
	d.SQLitePath = envutil.String("SQLITE_PATH", d.SQLitePath)
	d.MaxOpenConns = envutil.Int("POSTGRES_MAX_OPEN_CONNS", d.MaxOpenConns)
	d.MaxIdleConns = envutil.Int("POSTGRES_MAX_IDLE_CONNS", d.MaxIdleConns)

	s := &cfg.Storage
	s.Mode = envutil.String("OBJECT_STORAGE_MODE", s.Mode)
	s.LocalDir = envutil.String("LOCAL_MEDIA_DIR", s.LocalDir)
	s.Bucket = envutil.String("RECIPE_IMAGE_GCS_BUCKET", s.Bucket)
	s.EmulatorHost = envutil.String("STORAGE_EMULATOR_HOST", s.EmulatorHost)
	s.Credentials = envutil.String("GCS_CREDENTIALS", s.Credentials)
	s.PublicBaseURL = envutil.String("PUBLIC_MEDIA_BASE_URL", s.PublicBaseURL)

	c := &cfg.Cache
	c.RedisAddr = envutil.String("REDIS_ADDR", c.RedisAddr)
	c.RedisPrefix = envutil.String("REDIS_PREFIX", c.RedisPrefix)
	c.IngredientSize = envutil.Int("INGREDIENT_CACHE_SIZE", c.IngredientSize)
	c.IngredientTTL = envutil.Duration("INGREDIENT_CACHE_TTL", c.IngredientTTL)

	t := &cfg.Tracing
	t.Enabled = envutil.Bool("OTEL_ENABLED", t.Enabled)
	t.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", t.Endpoint)
	t.Headers = envutil.String("OTEL_EXPORTER_OTLP_HEADERS", t.Headers)
	t.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", t.Insecure)
	t.SampleRatio = envutil.Float("OTEL_SAMPLER_RATIO", t.SampleRatio)
}

func (c Config) DBConfig() db.Config {
	d := c.Database
	return db.Config{
		Driver:       d.Driver,
		Host:         d.Host,
		Port:         d.Port,
		User:         d.User,
		Password:     d.Password,
		Name:         d.Name,
		SSLMode:      d.SSLMode,
		SQLitePath:   d.SQLitePath,
		MaxOpenConns: d.MaxOpenConns,
		MaxIdleConns: d.MaxIdleConns,
	}
}

func (c Config) ObjectStoreConfig() objectstore.Config {
	s := c.Storage
	return objectstore.Config{
		Mode:          objectstore.Mode(strings.ToLower(strings.TrimSpace(s.Mode))),
		LocalDir:      s.LocalDir,
		Bucket:        s.Bucket,
		EmulatorHost:  s.EmulatorHost,
		Credentials:   s.Credentials,
		PublicBaseURL: s.PublicBaseURL,
	}
}

func (c Config) TracingConfig(serviceName string) observability.TracingConfig {
	t := c.Tracing
	return observability.TracingConfig{
		Enabled:     t.Enabled,
		ServiceName: serviceName,
		Environment: c.Environment,
		Version:     c.Version,
		Endpoint:    t.Endpoint,
		Headers:     observability.ParseOTLPHeaders(t.Headers),
		Insecure:    t.Insecure,
		SampleRatio: t.SampleRatio,
	}
}
