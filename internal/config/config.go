package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"log"
	"sync"
)

type Config struct {
	Env      string `yaml:"env" env:"ENV" env-default:"local"`
	Telegram struct {
		ApiKey   string `yaml:"api_key" env:"TELEGRAM_API_KEY" env-default:""`
		AdminId  int64  `yaml:"admin_id" env-default:"0"`
		BotName  string `yaml:"bot_name" env-default:"ShelfGuardianBot"`
		Enabled  bool   `yaml:"enabled" env-default:"false"`
		MinLevel string `yaml:"min_level" env-default:"error"`
	} `yaml:"telegram"`
	OpenAI struct {
		ApiKey        string `yaml:"api_key" env:"OPENAI_API_KEY" env-default:""`
		BaseURL       string `yaml:"base_url" env-default:""`
		Model         string `yaml:"model" env-default:"gpt-4o-mini"`
		MaxToolRounds int    `yaml:"max_tool_rounds" env-default:"5"`
	} `yaml:"openai"`
	Mongo struct {
		Enabled     bool   `yaml:"enabled" env-default:"false"`
		Host        string `yaml:"host" env:"MONGO_HOST" env-default:"127.0.0.1"`
		Port        string `yaml:"port" env:"MONGO_PORT" env-default:"27017"`
		User        string `yaml:"user" env:"MONGO_USER" env-default:"admin"`
		Password    string `yaml:"password" env:"MONGO_PASSWORD" env-default:"pass"`
		Database    string `yaml:"database" env:"MONGO_DATABASE" env-default:"expiry_tracker"`
		ExpiredDays int    `yaml:"expired_days" env-default:"7"`
	} `yaml:"mongo"`
	Auth struct {
		JwtSecret  string `yaml:"jwt_secret" env:"JWT_SECRET" env-default:""`
		TokenTTL   int    `yaml:"token_ttl_minutes" env-default:"30"`
		BcryptCost int    `yaml:"bcrypt_cost" env-default:"10"`
	} `yaml:"auth"`
	Chat struct {
		HistoryLimit int `yaml:"history_limit" env-default:"100"`
	} `yaml:"chat"`
	Cleanup struct {
		Hour         int `yaml:"hour" env-default:"3"`
		ExpiringDays int `yaml:"expiring_days" env-default:"7"`
	} `yaml:"cleanup"`
	Cors struct {
		AllowedOrigins []string `yaml:"allowed_origins" env-default:"http://localhost:5174,http://127.0.0.1:5174,http://localhost:5173,http://127.0.0.1:5173,http://localhost:4173,http://127.0.0.1:4173"`
	} `yaml:"cors"`
	Listen struct {
		BindIP  string `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port    string `yaml:"port" env:"PORT" env-default:"8000"`
		Timeout int    `yaml:"timeout" env-default:"60"`
	} `yaml:"listen"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}
