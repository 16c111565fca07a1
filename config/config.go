package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Appointment scheduling window.
	ScheduleTimezone    string   `mapstructure:"SCHEDULE_TIMEZONE"`
	ScheduleLocale      string   `mapstructure:"SCHEDULE_LOCALE"`
	LeadDays            int      `mapstructure:"LEAD_DAYS"`
	OpenHour            int      `mapstructure:"OPEN_HOUR"`
	CloseHour           int      `mapstructure:"CLOSE_HOUR"`
	LunchStart          string   `mapstructure:"LUNCH_START"`
	LunchEnd            string   `mapstructure:"LUNCH_END"`
	Holidays            []string `mapstructure:"HOLIDAYS"` // "MM-DD=Name"; replaces the built-in table when set
	ReminderLeadMinutes int      `mapstructure:"REMINDER_LEAD_MINUTES"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_REMINDER_QUEUE_DB", 3)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "schoolhealth")
	v.SetDefault("JWT_SECRET", "")

	v.SetDefault("SCHEDULE_TIMEZONE", "Asia/Ho_Chi_Minh")
	v.SetDefault("SCHEDULE_LOCALE", "vi")
	v.SetDefault("LEAD_DAYS", 1)
	v.SetDefault("OPEN_HOUR", 8)
	v.SetDefault("CLOSE_HOUR", 17)
	v.SetDefault("LUNCH_START", "11:30")
	v.SetDefault("LUNCH_END", "13:00")
	v.SetDefault("HOLIDAYS", []string{})
	v.SetDefault("REMINDER_LEAD_MINUTES", 60)
}

// Load reads config.yaml (from . or ./config) and the environment into a Config.
func Load(v *viper.Viper) (Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig fills AppConfig from the global viper instance.
func LoadConfig() {
	cfg, err := Load(viper.GetViper())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
