package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Booking  BookingConfig
	Verify   VerifyConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SessionConfig struct {
	ExpiryHours int
}

type BookingConfig struct {
	// ServiceFeePercent is the platform fee applied on top of the rental
	// amount, e.g. 0.10 for 10%.
	ServiceFeePercent float64
	// CalendarMaxDays caps the span of calendar and availability queries.
	CalendarMaxDays int
}

type VerifyConfig struct {
	CodeTTLMinutes int
	CodeLength     int
	// LoginRateLimit is attempts per minute per client IP.
	LoginRateLimit int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("SERVICE_FEE_PERCENT", 0.10)
	viper.SetDefault("CALENDAR_MAX_DAYS", 90)
	viper.SetDefault("VERIFY_CODE_TTL_MINUTES", 10)
	viper.SetDefault("VERIFY_CODE_LENGTH", 6)
	viper.SetDefault("LOGIN_RATE_LIMIT", 10)
	viper.SetDefault("LOG_PATH", "logs/")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASS"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Booking: BookingConfig{
			ServiceFeePercent: viper.GetFloat64("SERVICE_FEE_PERCENT"),
			CalendarMaxDays:   viper.GetInt("CALENDAR_MAX_DAYS"),
		},
		Verify: VerifyConfig{
			CodeTTLMinutes: viper.GetInt("VERIFY_CODE_TTL_MINUTES"),
			CodeLength:     viper.GetInt("VERIFY_CODE_LENGTH"),
			LoginRateLimit: viper.GetInt("LOGIN_RATE_LIMIT"),
		},
	}

	return config, nil
}
