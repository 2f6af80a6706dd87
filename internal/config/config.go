package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/nurpe/careops-billing/internal/service"
)

type HTTPConfig struct {
	Host               string
	Port               int
	CORSAllowedOrigins []string
}

type AuthConfig struct {
	AccessSecret string
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	Auth        AuthConfig
	SeedDemo    bool
	Engine      service.Policy
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	defaults := service.DefaultPolicy()
	v.SetDefault("SEED_DEMO_DATA", true)
	v.SetDefault("ENGINE_FLAT_HOURLY_RATE", defaults.FlatHourlyRate)
	v.SetDefault("ENGINE_WEEKS_PER_YEAR", defaults.WeeksPerYear)
	v.SetDefault("ENGINE_BILLING_WEEKS", defaults.BillingWeeks)
	v.SetDefault("ENGINE_STACKING_FACTOR", defaults.StackingFactor)
	v.SetDefault("ENGINE_STACKING_FLOOR_HOURS", defaults.StackingFloorHours)
	v.SetDefault("ENGINE_PLACEMENT_SAVINGS_FACTOR", defaults.PlacementSavingsFactor)

	engine := defaults
	engine.FlatHourlyRate = v.GetFloat64("ENGINE_FLAT_HOURLY_RATE")
	engine.WeeksPerYear = v.GetFloat64("ENGINE_WEEKS_PER_YEAR")
	engine.BillingWeeks = v.GetFloat64("ENGINE_BILLING_WEEKS")
	engine.StackingFactor = v.GetFloat64("ENGINE_STACKING_FACTOR")
	engine.StackingFloorHours = v.GetFloat64("ENGINE_STACKING_FLOOR_HOURS")
	engine.PlacementSavingsFactor = v.GetFloat64("ENGINE_PLACEMENT_SAVINGS_FACTOR")

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host:               v.GetString("HTTP_HOST"),
			Port:               v.GetInt("HTTP_PORT"),
			CORSAllowedOrigins: parseList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		SeedDemo: v.GetBool("SEED_DEMO_DATA"),
		Engine:   engine,
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if len(cfg.HTTP.CORSAllowedOrigins) == 0 {
		cfg.HTTP.CORSAllowedOrigins = []string{"*"}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.HTTP.Port < 0 || cfg.HTTP.Port > 65535 {
		return fmt.Errorf("HTTP_PORT %d is out of range", cfg.HTTP.Port)
	}
	if err := cfg.Engine.Validate(); err != nil {
		return fmt.Errorf("engine policy: %w", err)
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
