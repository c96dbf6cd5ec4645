package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	Catalog    `yaml:"catalog"`
	HTTPServer `yaml:"http_server"`
}

type Catalog struct {
	Path      string        `yaml:"path" env:"CATALOG_PATH" env-required:"true"`
	Variant   string        `yaml:"variant" env:"CATALOG_VARIANT" env-default:"permissive"`
	CacheTTL  time.Duration `yaml:"cache_ttl" env-default:"10m"`
	RedisAddr string        `yaml:"redis_addr" env:"REDIS_ADDR" env-default:""`
}

type HTTPServer struct {
	Address         string        `yaml:"address" env-default:"localhost:8080"`
	Timeout         time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"15s"`
}

func MustLoad() *Config {
	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("Config file does not exist: %s", configPath)
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}

	return &cfg
}
