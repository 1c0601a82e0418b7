package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Sheets SheetsConfig `yaml:"sheets"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// SheetsConfig locates the backing spreadsheet and tunes access to it.
type SheetsConfig struct {
	SpreadsheetID   string        `yaml:"spreadsheet_id"`
	CredentialsFile string        `yaml:"credentials_file"`
	MainSheet       string        `yaml:"main_sheet"`
	Timezone        string        `yaml:"timezone"`
	CacheTTL        time.Duration `yaml:"cache_ttl"`
	MetadataTTL     time.Duration `yaml:"metadata_ttl"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Sheets: SheetsConfig{
			MainSheet:   "Customers",
			Timezone:    "America/Los_Angeles",
			CacheTTL:    60 * time.Second,
			MetadataTTL: 10 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("CRMSHEET_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("CRMSHEET_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("CRMSHEET_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CRMSHEET_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if id := os.Getenv("CRMSHEET_SPREADSHEET_ID"); id != "" {
		cfg.Sheets.SpreadsheetID = id
	}
	if creds := os.Getenv("CRMSHEET_CREDENTIALS_FILE"); creds != "" {
		cfg.Sheets.CredentialsFile = creds
	}
	if sheet := os.Getenv("CRMSHEET_MAIN_SHEET"); sheet != "" {
		cfg.Sheets.MainSheet = sheet
	}
	if tz := os.Getenv("CRMSHEET_TIMEZONE"); tz != "" {
		cfg.Sheets.Timezone = tz
	}
	if level := os.Getenv("CRMSHEET_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if cfg.Sheets.SpreadsheetID == "" {
		return Config{}, fmt.Errorf("sheets.spreadsheet_id is required (set CRMSHEET_SPREADSHEET_ID)")
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
