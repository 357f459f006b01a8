package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type UploadsConfig struct {
	RootDir string `yaml:"root_dir"`
}

type RemindersConfig struct {
	CronSpec string `yaml:"cron"`
}

type AuthConfig struct {
	Enabled      bool   `yaml:"enabled"`
	PasswordHash string `yaml:"password_hash"`
	TokenSecret  string `yaml:"token_secret"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	Uploads   UploadsConfig   `yaml:"uploads"`
	Reminders RemindersConfig `yaml:"reminders"`
	Auth      AuthConfig      `yaml:"auth"`
	Telegram  TelegramConfig  `yaml:"telegram"`
}

func LoadConfig() *Config {
	f, err := os.Open("config/config.yaml")
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3001
	}
	if cfg.Uploads.RootDir == "" {
		cfg.Uploads.RootDir = "./uploads"
	}
	if cfg.Reminders.CronSpec == "" {
		cfg.Reminders.CronSpec = "0 9 * * *"
	}
	return &cfg
}
