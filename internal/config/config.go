package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr       string `mapstructure:"LISTEN_ADDR"`
	Port             string `mapstructure:"PORT"`
	DatabasePath     string `mapstructure:"DATABASE_PATH"`
	SessionSecret    string `mapstructure:"SESSION_SECRET"`
	GinMode          string `mapstructure:"GIN_MODE"`
	LogLevel         string `mapstructure:"LOG_LEVEL"`
	LogFormat        string `mapstructure:"LOG_FORMAT"`
	WaterGoalML      int    `mapstructure:"WATER_GOAL_ML"`
	WaterIncrementML int    `mapstructure:"WATER_INCREMENT_ML"`
	DefaultLanguage  string `mapstructure:"DEFAULT_LANGUAGE"`
	Timezone         string `mapstructure:"TIMEZONE"`
}

var envKeys = []string{
	"LISTEN_ADDR",
	"PORT",
	"DATABASE_PATH",
	"SESSION_SECRET",
	"GIN_MODE",
	"LOG_LEVEL",
	"LOG_FORMAT",
	"WATER_GOAL_ML",
	"WATER_INCREMENT_ML",
	"DEFAULT_LANGUAGE",
	"TIMEZONE",
}

// Load 从环境变量（以及可选的 .env 文件）读取应用配置，并为缺失项提供安全的默认值。
func Load() (AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_PATH", "data/medreminder.db")
	v.SetDefault("SESSION_SECRET", "medreminder-dev-secret")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("WATER_GOAL_ML", 2000)
	v.SetDefault("WATER_INCREMENT_ML", 250)
	v.SetDefault("DEFAULT_LANGUAGE", "vi")
	v.SetDefault("TIMEZONE", "Local")

	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}

	// .env 不存在时忽略
	_ = v.ReadInConfig()

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Port = strings.TrimSpace(cfg.Port)
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	cfg.ListenAddr = strings.TrimSpace(cfg.ListenAddr)
	if cfg.ListenAddr == "" {
		// 单机单用户应用，默认仅监听本机
		cfg.ListenAddr = fmt.Sprintf("127.0.0.1:%s", cfg.Port)
	}
	cfg.DatabasePath = strings.TrimSpace(cfg.DatabasePath)

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate 校验数值型配置
func (c AppConfig) Validate() error {
	if c.WaterGoalML <= 0 {
		return fmt.Errorf("WATER_GOAL_ML must be positive, got %d", c.WaterGoalML)
	}
	if c.WaterIncrementML <= 0 {
		return fmt.Errorf("WATER_INCREMENT_ML must be positive, got %d", c.WaterIncrementML)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location 解析 TIMEZONE，用于确定“今天”是哪一天
func (c AppConfig) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Timezone)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}
