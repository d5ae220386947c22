package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Logging    LoggingConfig    `mapstructure:"logging"`

	// DevicesFile optionally overrides the embedded device fixture.
	DevicesFile string `mapstructure:"devices_file"`
}

type ServerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type SimulationConfig struct {
	Interval    string  `mapstructure:"interval"`
	TargetTemp  float64 `mapstructure:"target_temp"`
	MorningHour int     `mapstructure:"morning_hour"`
	EveningHour int     `mapstructure:"evening_hour"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TickInterval parses the configured cadence, falling back to the reference
// two seconds on a bad value.
func (s SimulationConfig) TickInterval() time.Duration {
	d, err := time.ParseDuration(s.Interval)
	if err != nil || d <= 0 {
		return 2 * time.Second
	}
	return d
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.BindEnv("logging.level", "LOG_LEVEL")
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("simulation.interval", "SIM_INTERVAL")

	if err := viper.ReadInConfig(); err != nil {
		// Missing config file is fine; defaults carry the simulator
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.enabled", true)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 3001)
	viper.SetDefault("server.mode", "production")

	viper.SetDefault("simulation.interval", "2s")
	viper.SetDefault("simulation.target_temp", 22.0)
	viper.SetDefault("simulation.morning_hour", 7)
	viper.SetDefault("simulation.evening_hour", 19)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
}
