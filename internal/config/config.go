package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultWeatherBaseURL = "https://api.open-meteo.com/v1"

type Config struct {
	Address string

	DatabaseDSN   string
	MigrationsDir string

	WeatherBaseURL string
	WeatherTimeout time.Duration

	LogLevel  string
	LogFormat string
	AppName   string
}

// Load arma la config desde .env (si existe) + variables de entorno.
func Load() Config {
	// Sin .env no pasa nada: se usan las env vars del proceso.
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("address", ":8080")
	viper.SetDefault("weather_api_base_url", defaultWeatherBaseURL)
	viper.SetDefault("weather_timeout", "5s")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_format", "text")
	viper.SetDefault("app_name", "place-history")

	return Config{
		Address:        viper.GetString("address"),
		DatabaseDSN:    viper.GetString("database_dsn"),
		MigrationsDir:  viper.GetString("migrations_dir"),
		WeatherBaseURL: viper.GetString("weather_api_base_url"),
		WeatherTimeout: viper.GetDuration("weather_timeout"),
		LogLevel:       viper.GetString("log_level"),
		LogFormat:      viper.GetString("log_format"),
		AppName:        viper.GetString("app_name"),
	}
}
