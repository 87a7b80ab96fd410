package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultDataSourceURL - публичный CSV Everytown Research "Gunfire on School Grounds"
const DefaultDataSourceURL = "https://everytownresearch.org/wp-content/uploads/sites/4/etown-maps/gunfire-on-school-grounds/data.csv"

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Data source Config
	DataSourceURL    string        `env:"DATA_SOURCE_URL"`
	DataUserAgent    string        `env:"DATA_USER_AGENT" envDefault:"Mozilla/5.0"`
	DataFetchTimeout time.Duration `env:"DATA_FETCH_TIMEOUT" envDefault:"10s"`

	// Pipeline policy Config
	DropInvalidCoords     bool `env:"DROP_INVALID_COORDS" envDefault:"false"`
	MassCasualtyThreshold int  `env:"MASS_CASUALTY_THRESHOLD" envDefault:"4"`

	// Cache Config
	CacheBackend string        `env:"CACHE_BACKEND" envDefault:"memory"`
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"1h"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Refresh Config, пустое расписание отключает планировщик
	RefreshSchedule string `env:"REFRESH_SCHEDULE"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`

	CORSOrigins []string `env:"CORS_ORIGINS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		DataSourceURL:         getEnv("DATA_SOURCE_URL", DefaultDataSourceURL),
		DataUserAgent:         getEnv("DATA_USER_AGENT", "Mozilla/5.0"),
		DataFetchTimeout:      getEnvAsDuration("DATA_FETCH_TIMEOUT", 10*time.Second),
		DropInvalidCoords:     getEnvAsBool("DROP_INVALID_COORDS", false),
		MassCasualtyThreshold: getEnvAsInt("MASS_CASUALTY_THRESHOLD", 4),
		CacheBackend:          strings.ToLower(getEnv("CACHE_BACKEND", CacheBackendMemory)),
		CacheTTL:              getEnvAsDuration("CACHE_TTL", time.Hour),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:             os.Getenv("REDIS_PASSWORD"),
		RedisDB:               getEnvAsInt("REDIS_DB", 0),
		RefreshSchedule:       os.Getenv("REFRESH_SCHEDULE"),
		WebhookURL:            os.Getenv("WEBHOOK_URL"),
		WebhookSecret:         os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:        getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:     getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:      getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
	}

	// Загрузка API ключей
	cfg.APIKeys = getEnvAsList("API_KEYS")
	cfg.CORSOrigins = getEnvAsList("CORS_ORIGINS")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	if c.DataSourceURL == "" {
		return fmt.Errorf("DATA_SOURCE_URL must not be empty")
	}
	if c.DataFetchTimeout <= 0 {
		return fmt.Errorf("DATA_FETCH_TIMEOUT must be positive, got %s", c.DataFetchTimeout)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %s", c.CacheTTL)
	}
	if c.CacheBackend != CacheBackendMemory && c.CacheBackend != CacheBackendRedis {
		return fmt.Errorf("CACHE_BACKEND must be %q or %q, got %q", CacheBackendMemory, CacheBackendRedis, c.CacheBackend)
	}
	if c.MassCasualtyThreshold < 1 {
		return fmt.Errorf("MASS_CASUALTY_THRESHOLD must be at least 1, got %d", c.MassCasualtyThreshold)
	}
	if c.WebhookMaxRetries < 1 {
		c.WebhookMaxRetries = 1
	}
	return nil
}

// NeedsRedis сообщает, требуется ли подключение к Redis (кэш или очередь вебхуков)
func (c *Config) NeedsRedis() bool {
	return c.CacheBackend == CacheBackendRedis || c.WebhookURL != ""
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool возвращает значение переменной окружения как bool или значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}

// getEnvAsList разбирает список через запятую, пустые элементы отбрасываются
func getEnvAsList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
