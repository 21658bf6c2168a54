package config

import (
	"errors"
	"io/fs"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// OpeningHours is one line of the weekly schedule.
type OpeningHours struct {
	Day   string `mapstructure:"day"`
	Hours string `mapstructure:"hours"`
}

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// MongoDB.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Conversation sessions.
	SessionStore       string        `mapstructure:"SESSION_STORE"`
	SessionTTL         time.Duration `mapstructure:"SESSION_TTL"`
	SessionMaxEntries  int           `mapstructure:"SESSION_MAX_ENTRIES"`
	AsyncTurnRecording bool          `mapstructure:"ASYNC_TURN_RECORDING"`

	// Admin access.
	JWTSecret          string        `mapstructure:"JWT_SECRET"`
	AdminPasswordHash  string        `mapstructure:"ADMIN_PASSWORD_HASH"`
	AdminTokenTTL      time.Duration `mapstructure:"ADMIN_TOKEN_TTL"`
	CORSAllowedOrigins []string      `mapstructure:"CORS_ALLOWED_ORIGINS"`

	// Dialogue tuning.
	BookingDaysAhead   int    `mapstructure:"BOOKING_DAYS_AHEAD"`
	SeatsPerTable      int    `mapstructure:"SEATS_PER_TABLE"`
	SuggestionCount    int    `mapstructure:"SUGGESTION_COUNT"`
	OrderReadyEstimate string `mapstructure:"ORDER_READY_ESTIMATE"`

	// Restaurant profile.
	RestaurantName    string         `mapstructure:"RESTAURANT_NAME"`
	RestaurantAddress string         `mapstructure:"RESTAURANT_ADDRESS"`
	RestaurantPhone   string         `mapstructure:"RESTAURANT_PHONE"`
	RestaurantEmail   string         `mapstructure:"RESTAURANT_EMAIL"`
	RestaurantHours   []OpeningHours `mapstructure:"RESTAURANT_HOURS"`

	// Seeding.
	SeedMenuFile      string   `mapstructure:"SEED_MENU_FILE"`
	SeedTablesFile    string   `mapstructure:"SEED_TABLES_FILE"`
	SeedDays          int      `mapstructure:"SEED_DAYS"`
	SeedTimes         []string `mapstructure:"SEED_TIMES"`
	SeedTablesPerSlot int      `mapstructure:"SEED_TABLES_PER_SLOT"`
}

var AppConfig Config

var defaultHours = []map[string]string{
	{"day": "Monday", "hours": "11:00 AM - 9:00 PM"},
	{"day": "Tuesday", "hours": "11:00 AM - 9:00 PM"},
	{"day": "Wednesday", "hours": "11:00 AM - 9:00 PM"},
	{"day": "Thursday", "hours": "11:00 AM - 10:00 PM"},
	{"day": "Friday", "hours": "11:00 AM - 11:00 PM"},
	{"day": "Saturday", "hours": "10:00 AM - 11:00 PM"},
	{"day": "Sunday", "hours": "10:00 AM - 9:00 PM"},
}

// Load reads config.yaml from the working directory or ./config, an optional .env
// file, and the environment. Environment values win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "greengarden")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_SESSION_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)
	v.SetDefault("SESSION_STORE", "memory")
	v.SetDefault("SESSION_TTL", "2h")
	v.SetDefault("SESSION_MAX_ENTRIES", 10000)
	v.SetDefault("ASYNC_TURN_RECORDING", false)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("ADMIN_PASSWORD_HASH", "")
	v.SetDefault("ADMIN_TOKEN_TTL", "12h")
	v.SetDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	v.SetDefault("BOOKING_DAYS_AHEAD", 7)
	v.SetDefault("SEATS_PER_TABLE", 4)
	v.SetDefault("SUGGESTION_COUNT", 5)
	v.SetDefault("ORDER_READY_ESTIMATE", "30 minutes")
	v.SetDefault("RESTAURANT_NAME", "Green Garden Vegetarian")
	v.SetDefault("RESTAURANT_ADDRESS", "123 Veggies Ave, Plant City")
	v.SetDefault("RESTAURANT_PHONE", "+1 (555) 123-4567")
	v.SetDefault("RESTAURANT_EMAIL", "info@greengarden.com")
	v.SetDefault("RESTAURANT_HOURS", defaultHours)
	v.SetDefault("SEED_MENU_FILE", "data/menu.json")
	v.SetDefault("SEED_TABLES_FILE", "")
	v.SetDefault("SEED_DAYS", 14)
	v.SetDefault("SEED_TIMES", []string{"12:00 PM", "1:00 PM", "6:00 PM", "7:00 PM", "8:00 PM"})
	v.SetDefault("SEED_TABLES_PER_SLOT", 5)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.SessionStore != "memory" && cfg.SessionStore != "redis" {
		return nil, errors.New("SESSION_STORE must be memory or redis")
	}
	return &cfg, nil
}

// LoadConfig loads the configuration into AppConfig and exits on failure.
func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = *cfg
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
