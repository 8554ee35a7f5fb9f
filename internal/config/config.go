// Package config предоставялет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	Mongo      `yaml:"mongo"`
	JWTToken   `yaml:"jwttoken"`
	Payment    `yaml:"payment"`
	RabbitMQ   `yaml:"rabbitmq"`
	RateLimit  `yaml:"rate_limit"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":5000"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Mongo структура для настройки подключения к документному хранилищу
type Mongo struct {
	URI                  string        `yaml:"uri" env:"MONGODB_URI" env-required:"true"`
	Database             string        `yaml:"database" env:"MONGODB_DATABASE" env-default:"NewDB"`
	ConnectTimeout       time.Duration `yaml:"connect_timeout" env-default:"10s"`
	MigrationsPath       string        `yaml:"migrations_path" env-default:"./migrations"`
	UsersCollection      string        `yaml:"users_collection" env-default:"users"`
	ArticlesCollection   string        `yaml:"articles_collection" env-default:"article"`
	PublishersCollection string        `yaml:"publishers_collection" env-default:"publisher"`
	PaymentsCollection   string        `yaml:"payments_collection" env-default:"payments"`
	MigrationsCollection string        `yaml:"migrations_collection" env-default:"schema_migrations"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY" env-required:"true"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"168h"`
}

// Payment структура для настройки платежного провайдера
type Payment struct {
	StripeSecretKey string `yaml:"stripe_secret_key" env:"STRIPE_SECRET_KEY"`
	Currency        string `yaml:"currency" env-default:"usd"`
	VerifyIntents   bool   `yaml:"verify_intents" env:"PAYMENT_VERIFY_INTENTS" env-default:"false"`
}

// RabbitMQ структура для настройки публикации доменных событий.
// Пустой URL отключает публикацию.
type RabbitMQ struct {
	URL      string        `yaml:"url" env:"RABBITMQ_URL"`
	Exchange string        `yaml:"exchange" env-default:"bulletin"`
	Retries  int           `yaml:"retries" env-default:"3"`
	Delay    time.Duration `yaml:"delay" env-default:"2s"`
}

// RateLimit структура для настройки ограничения частоты запросов
type RateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"5"`
	Burst int     `yaml:"burst" env-default:"10"`
}

// MustLoad функция для загрузки конфига, путь к файлу берётся из CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Load читает конфиг из файла и переменных окружения.
func Load(configPath string) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Mongo:\n"+
			"  Database: %s\n"+
			"JWTToken:\n"+
			"  TokenTTL: %s\n"+
			"Payment:\n"+
			"  Currency: %s\n"+
			"  VerifyIntents: %t\n"+
			"RabbitMQ:\n"+
			"  Enabled: %t\n"+
			"  Exchange: %s\n",
		c.Env,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.Database,
		c.TokenTTL,
		c.Currency,
		c.VerifyIntents,
		c.RabbitMQ.URL != "",
		c.Exchange,
	)
}
