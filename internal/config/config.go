package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Log       LogConfig
	Worker    WorkerConfig
	Geo       GeoConfig
	Nominatim NominatimConfig
	N8N       N8NConfig
	Chat      ChatConfig
	Storage   StorageConfig
	Auth      AuthConfig
	Search    SearchConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	AllowOrigins string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	// AutoMigrate - применять миграции при старте API
	AutoMigrate bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	SearchCacheTTL time.Duration
	// GeoMaxAge - значение Cache-Control max-age для справочников
	GeoMaxAge time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	MaxRetries        int
	RetryDelay        time.Duration
}

type GeoConfig struct {
	DataDir string
}

type NominatimConfig struct {
	BaseURL        string
	UserAgent      string
	AcceptLanguage string
	CountryCodes   string
	Timeout        time.Duration
	RatePerSecond  float64
}

type N8NConfig struct {
	ChatWebhookURL     string
	ReportWebhookURL   string
	RegisterWebhookURL string
	LoginWebhookURL    string
	Timeout            time.Duration
}

type ChatConfig struct {
	// Store - memory или redis
	Store         string
	TTL           time.Duration
	SweepInterval time.Duration
}

type StorageConfig struct {
	Endpoint           string
	AccessKey          string
	SecretKey          string
	Bucket             string
	UseSSL             bool
	PublicURL          string
	AttachmentMaxBytes int64
}

type AuthConfig struct {
	Required   bool
	CookieName string
}

type SearchConfig struct {
	Debounce     time.Duration
	GeocodeLimit int
	MaxResults   int
	APIURL       string
}

func setDefaults() {
	viper.SetDefault("API_HOST", "0.0.0.0")
	viper.SetDefault("API_PORT", 8080)
	viper.SetDefault("API_ENV", "development")
	viper.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	viper.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)
	viper.SetDefault("DB_AUTO_MIGRATE", true)

	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", 6379)

	viper.SetDefault("SEARCH_CACHE_TTL", 3600)
	viper.SetDefault("GEO_CACHE_MAX_AGE", 86400)
	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("WORKER_CONSUMER_GROUP", "doleance-report-forwarders")
	viper.SetDefault("WORKER_STREAM_READ_TIMEOUT", 5000)
	viper.SetDefault("WORKER_MAX_RETRIES", 3)
	viper.SetDefault("WORKER_RETRY_DELAY", 2000)

	viper.SetDefault("GEO_DATA_DIR", "./public/data")

	viper.SetDefault("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org")
	viper.SetDefault("NOMINATIM_USER_AGENT", "DoleancesBackend/1.0 (https://itdcmada.com)")
	viper.SetDefault("NOMINATIM_ACCEPT_LANGUAGE", "fr")
	viper.SetDefault("NOMINATIM_COUNTRY_CODES", "mg")
	viper.SetDefault("NOMINATIM_TIMEOUT", 10)
	viper.SetDefault("NOMINATIM_RATE_PER_SEC", 1.0)

	viper.SetDefault("N8N_TIMEOUT", 30)

	viper.SetDefault("CHAT_STORE", "memory")
	viper.SetDefault("CHAT_TTL", 3600)
	viper.SetDefault("CHAT_SWEEP_INTERVAL", 3600)

	viper.SetDefault("MINIO_BUCKET", "doleances")
	viper.SetDefault("ATTACHMENT_MAX_BYTES", 10<<20)

	viper.SetDefault("AUTH_REQUIRED", true)
	viper.SetDefault("AUTH_COOKIE_NAME", "auth-token")

	viper.SetDefault("SEARCH_DEBOUNCE", 400)
	viper.SetDefault("SEARCH_GEOCODE_LIMIT", 8)
	viper.SetDefault("SEARCH_MAX_RESULTS", 15)
	viper.SetDefault("LOCSEARCH_API_URL", "http://localhost:8080")
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// .env необязателен: в контейнере всё приходит из окружения
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("API_HOST"),
			Port:         viper.GetInt("API_PORT"),
			Env:          viper.GetString("API_ENV"),
			AllowOrigins: viper.GetString("CORS_ALLOW_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
			AutoMigrate:     viper.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			SearchCacheTTL: time.Duration(viper.GetInt("SEARCH_CACHE_TTL")) * time.Second,
			GeoMaxAge:      time.Duration(viper.GetInt("GEO_CACHE_MAX_AGE")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        viper.GetInt("WORKER_MAX_RETRIES"),
			RetryDelay:        time.Duration(viper.GetInt("WORKER_RETRY_DELAY")) * time.Millisecond,
		},
		Geo: GeoConfig{
			DataDir: viper.GetString("GEO_DATA_DIR"),
		},
		Nominatim: NominatimConfig{
			BaseURL:        strings.TrimRight(viper.GetString("NOMINATIM_BASE_URL"), "/"),
			UserAgent:      viper.GetString("NOMINATIM_USER_AGENT"),
			AcceptLanguage: viper.GetString("NOMINATIM_ACCEPT_LANGUAGE"),
			CountryCodes:   viper.GetString("NOMINATIM_COUNTRY_CODES"),
			Timeout:        time.Duration(viper.GetInt("NOMINATIM_TIMEOUT")) * time.Second,
			RatePerSecond:  viper.GetFloat64("NOMINATIM_RATE_PER_SEC"),
		},
		N8N: N8NConfig{
			ChatWebhookURL:     viper.GetString("N8N_CHAT_WEBHOOK_URL"),
			ReportWebhookURL:   viper.GetString("N8N_REPORT_WEBHOOK_URL"),
			RegisterWebhookURL: viper.GetString("N8N_REGISTER_WEBHOOK_URL"),
			LoginWebhookURL:    viper.GetString("N8N_LOGIN_WEBHOOK_URL"),
			Timeout:            time.Duration(viper.GetInt("N8N_TIMEOUT")) * time.Second,
		},
		Chat: ChatConfig{
			Store:         strings.ToLower(viper.GetString("CHAT_STORE")),
			TTL:           time.Duration(viper.GetInt("CHAT_TTL")) * time.Second,
			SweepInterval: time.Duration(viper.GetInt("CHAT_SWEEP_INTERVAL")) * time.Second,
		},
		Storage: StorageConfig{
			Endpoint:           viper.GetString("MINIO_ENDPOINT"),
			AccessKey:          viper.GetString("MINIO_ACCESS_KEY"),
			SecretKey:          viper.GetString("MINIO_SECRET_KEY"),
			Bucket:             viper.GetString("MINIO_BUCKET"),
			UseSSL:             viper.GetBool("MINIO_USE_SSL"),
			PublicURL:          strings.TrimRight(viper.GetString("MINIO_PUBLIC_URL"), "/"),
			AttachmentMaxBytes: viper.GetInt64("ATTACHMENT_MAX_BYTES"),
		},
		Auth: AuthConfig{
			Required:   viper.GetBool("AUTH_REQUIRED"),
			CookieName: viper.GetString("AUTH_COOKIE_NAME"),
		},
		Search: SearchConfig{
			Debounce:     time.Duration(viper.GetInt("SEARCH_DEBOUNCE")) * time.Millisecond,
			GeocodeLimit: viper.GetInt("SEARCH_GEOCODE_LIMIT"),
			MaxResults:   viper.GetInt("SEARCH_MAX_RESULTS"),
			APIURL:       strings.TrimRight(viper.GetString("LOCSEARCH_API_URL"), "/"),
		},
	}

	if cfg.Chat.Store != "memory" && cfg.Chat.Store != "redis" {
		return nil, fmt.Errorf("unsupported CHAT_STORE %q", cfg.Chat.Store)
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return c.Database.DSN()
}

// DSN - строка подключения в формате key=value
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.DBName,
		d.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// StorageEnabled - MinIO настроен, вложения принимаются
func (c *Config) StorageEnabled() bool {
	return c.Storage.Endpoint != ""
}
