package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	DB     DBConfig     `mapstructure:"db"`
	Engine EngineConfig `mapstructure:"engine"`
	Report ReportConfig `mapstructure:"report"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

// EngineConfig seeds the default CalculationSettings row and bounds the
// dashboard lists. The persisted settings row, not this struct, is what the
// engine reads per operation.
type EngineConfig struct {
	MinimumIntervalMonths int `mapstructure:"minimum_interval_months"`
	RoundingPlaces        int `mapstructure:"rounding_places"`
	RecentLimit           int `mapstructure:"recent_limit"`
	PendingLimit          int `mapstructure:"pending_limit"`
}

// ReportConfig seeds the default PDFTemplate row.
type ReportConfig struct {
	LetterheadTitle    string `mapstructure:"letterhead_title"`
	LetterheadSubtitle string `mapstructure:"letterhead_subtitle"`
	FooterText         string `mapstructure:"footer_text"`
	MaxRecords         int    `mapstructure:"max_records"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ALQ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("engine.minimum_interval_months", 12)
	v.SetDefault("engine.rounding_places", 2)
	v.SetDefault("engine.recent_limit", 5)
	v.SetDefault("engine.pending_limit", 5)
	v.SetDefault("report.letterhead_title", "Relatório de Reajuste de Aluguel")
	v.SetDefault("report.letterhead_subtitle", "")
	v.SetDefault("report.footer_text", "Documento gerado automaticamente")
	v.SetDefault("report.max_records", 500)

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
