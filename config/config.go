package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Logging  Logging
	OpenAI   OpenAI
}

type Server struct {
	Port string
	// PublicAPIKey is the initial public PEM used to verify admin credentials.
	// May be empty until a token renewal installs one.
	PublicAPIKey string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Logging struct {
	Level string
}

type OpenAI struct {
	BaseURL string
	APIKey  string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.PublicAPIKey = viper.GetString("PUBLIC_API_KEY")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Logging.Level = viper.GetString("LOG_LEVEL")

	config.OpenAI.BaseURL = viper.GetString("OPENAI_BASE_URL")
	config.OpenAI.APIKey = viper.GetString("OPENAI_API_KEY")

	log.Info().Str("port", config.Server.Port).Str("db_host", config.Database.Host).Msg("Config loaded")
	return &config, nil
}
