package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		Symbol      string `yaml:"symbol"`
		CSVPath     string `yaml:"csv_path"` // when set, bars load from file instead of Yahoo
		HistoryDays int    `yaml:"history_days"`
	} `yaml:"data_source"`
	Analysis struct {
		TenkanPeriod     int     `yaml:"tenkan_period"`
		KijunPeriod      int     `yaml:"kijun_period"`
		SenkouBPeriod    int     `yaml:"senkou_b_period"`
		Displacement     int     `yaml:"displacement"`
		VolumeWindow     int     `yaml:"volume_window"`
		HighVolumeFactor float64 `yaml:"high_volume_factor"`
		LowVolumeFactor  float64 `yaml:"low_volume_factor"`
	} `yaml:"analysis"`
	Schedule struct {
		DailyCron  string `yaml:"daily_cron"`
		WeeklyCron string `yaml:"weekly_cron"`
	} `yaml:"schedule"`
	Exposure struct {
		StateFile string `yaml:"state_file"`
	} `yaml:"exposure"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SYMBOL"); v != "" {
		cfg.DataSource.Symbol = v
	}
	if v := os.Getenv("CSV_PATH"); v != "" {
		cfg.DataSource.CSVPath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HISTORY_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			cfg.DataSource.HistoryDays = days
		}
	}

	// Defaults
	if cfg.DataSource.Symbol == "" {
		cfg.DataSource.Symbol = "SPX500"
	}
	if cfg.DataSource.HistoryDays == 0 {
		cfg.DataSource.HistoryDays = 300
	}
	if cfg.Analysis.TenkanPeriod == 0 {
		cfg.Analysis.TenkanPeriod = 9
	}
	if cfg.Analysis.KijunPeriod == 0 {
		cfg.Analysis.KijunPeriod = 26
	}
	if cfg.Analysis.SenkouBPeriod == 0 {
		cfg.Analysis.SenkouBPeriod = 52
	}
	if cfg.Analysis.Displacement == 0 {
		cfg.Analysis.Displacement = 26
	}
	if cfg.Analysis.VolumeWindow == 0 {
		cfg.Analysis.VolumeWindow = 20
	}
	if cfg.Analysis.HighVolumeFactor == 0 {
		cfg.Analysis.HighVolumeFactor = 1.5
	}
	if cfg.Analysis.LowVolumeFactor == 0 {
		cfg.Analysis.LowVolumeFactor = 0.7
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 0 22 * * 1-5"
	}
	if cfg.Schedule.WeeklyCron == "" {
		cfg.Schedule.WeeklyCron = "0 0 8 * * 6"
	}
	if cfg.Exposure.StateFile == "" {
		cfg.Exposure.StateFile = "data/exposure_state.json"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/ichivsa.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set and sane. The engine
// constructors re-check their own parameters; this catches bad values
// before anything is wired up.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	for _, p := range []struct {
		name  string
		value int
	}{
		{"analysis.tenkan_period", c.Analysis.TenkanPeriod},
		{"analysis.kijun_period", c.Analysis.KijunPeriod},
		{"analysis.senkou_b_period", c.Analysis.SenkouBPeriod},
		{"analysis.displacement", c.Analysis.Displacement},
		{"analysis.volume_window", c.Analysis.VolumeWindow},
	} {
		if p.value <= 0 {
			return fmt.Errorf("%s must be positive, got %d", p.name, p.value)
		}
	}
	if c.Analysis.HighVolumeFactor <= 0 || c.Analysis.LowVolumeFactor <= 0 {
		return fmt.Errorf("analysis volume factors must be positive")
	}
	if c.DataSource.HistoryDays <= 0 {
		return fmt.Errorf("data_source.history_days must be positive, got %d", c.DataSource.HistoryDays)
	}
	return nil
}
