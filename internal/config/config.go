package config

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Env string `mapstructure:"env"`
	} `mapstructure:"app"`
	API struct {
		BaseURL string        `mapstructure:"base_url"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"api"`
	Credentials struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"credentials"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
	} `mapstructure:"cloudinary"`
	OTLP struct {
		Endpoint string `mapstructure:"endpoint"`
	} `mapstructure:"otlp"`
	Mock struct {
		Port      string        `mapstructure:"port"`
		JWTSecret string        `mapstructure:"jwt_secret"`
		TokenTTL  time.Duration `mapstructure:"token_ttl"`
	} `mapstructure:"mock"`
}

func LoadConfig() (cfg Config, err error) {

	err = godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if err = viper.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("app.env", "development")
	viper.SetDefault("api.base_url", "http://localhost:8080/api")
	viper.SetDefault("api.timeout", 30*time.Second)
	viper.SetDefault("credentials.path", defaultCredentialPath())
	viper.SetDefault("mock.port", "8080")
	viper.SetDefault("mock.jwt_secret", "dev-only-secret")
	viper.SetDefault("mock.token_ttl", 24*time.Hour)

	viper.BindEnv("app.env", "APP_ENV")
	viper.BindEnv("api.base_url", "API_BASE_URL")
	viper.BindEnv("api.timeout", "API_TIMEOUT")
	viper.BindEnv("credentials.path", "CREDENTIALS_PATH")
	viper.BindEnv("otlp.endpoint", "OTLP_ENDPOINT")
	viper.BindEnv("mock.port", "MOCK_PORT")
	viper.BindEnv("mock.jwt_secret", "MOCK_JWT_SECRET")
	viper.BindEnv("mock.token_ttl", "MOCK_TOKEN_TTL")

	viper.BindEnv("cloudinary.cloud_name", "CLOUDINARY_CLOUD_NAME")
	viper.BindEnv("cloudinary.api_key", "CLOUDINARY_API_KEY")
	viper.BindEnv("cloudinary.api_secret", "CLOUDINARY_API_SECRET")

	err = viper.Unmarshal(&cfg)
	return
}

func defaultCredentialPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".folio-sync-credentials"
	}
	return filepath.Join(dir, "folio-sync", "credentials")
}
