package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// BackendConfig описывает удалённое API продажи билетов.
type BackendConfig struct {
	BaseURL      string
	Timeout      time.Duration
	ServiceToken string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type JWTConfig struct {
	SecretKey string
}

type LogConfig struct {
	Level       string
	OutputPaths []string
}

type ViewConfig struct {
	PageSize      int
	IdleTTL       time.Duration
	SweepInterval time.Duration
}

type MenuConfig struct {
	CacheTTL time.Duration
}

type EmailConfig struct {
	Provider     string
	ResendAPIKey string
	From         string
	Concurrency  int
	// HourlyLimit ограничивает число рассылок на пользователя в час; 0 отключает лимит.
	HourlyLimit int
}

type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Log     LogConfig
	Views   ViewConfig
	Menu    MenuConfig
	Email   EmailConfig
}

func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or could not be loaded.")
	}

	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		},
		Backend: BackendConfig{
			BaseURL:      strings.TrimRight(getEnv("BACKEND_BASE_URL", "http://localhost:9000/api"), "/"),
			Timeout:      getEnvDuration("BACKEND_TIMEOUT", 15*time.Second),
			ServiceToken: getEnv("BACKEND_SERVICE_TOKEN", ""),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET_KEY", "change-me"),
		},
		Log: LogConfig{
			Level:       getEnv("LOG_LEVEL", "debug"),
			OutputPaths: getEnvList("LOG_OUTPUT_PATHS", []string{"stdout"}),
		},
		Views: ViewConfig{
			PageSize:      getEnvInt("VIEW_PAGE_SIZE", 20),
			IdleTTL:       getEnvDuration("VIEW_IDLE_TTL", 30*time.Minute),
			SweepInterval: getEnvDuration("VIEW_SWEEP_INTERVAL", time.Minute),
		},
		Menu: MenuConfig{
			CacheTTL: getEnvDuration("MENU_CACHE_TTL", 10*time.Minute),
		},
		Email: EmailConfig{
			Provider:     getEnv("EMAIL_PROVIDER", "noop"),
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			From:         getEnv("EMAIL_FROM", "Bus Tickets <noreply@example.com>"),
			Concurrency:  getEnvInt("EMAIL_CONCURRENCY", 4),
			HourlyLimit:  getEnvInt("EMAIL_HOURLY_LIMIT", 20),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: %s=%q is not an integer, using %d", key, value, fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: %s=%q is not a duration, using %s", key, value, fallback)
		return fallback
	}
	return d
}

// getEnvList читает список через запятую, пропуская пустые элементы.
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
