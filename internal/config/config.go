package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable the server reads at startup. Values come from
// defaults, an optional config file in the working directory, and environment
// variables, in increasing order of precedence.
type Config struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	LogLevel       string   `mapstructure:"log_level"`

	TotalRounds  int           `mapstructure:"total_rounds"`
	TurnDuration time.Duration `mapstructure:"turn_duration"`
	TurnGrace    time.Duration `mapstructure:"turn_grace"`
	MaxPlayers   int           `mapstructure:"max_players"`
	MinPlayers   int           `mapstructure:"min_players"`

	GuesserPoints       int           `mapstructure:"guesser_points"`
	DrawerPoints        int           `mapstructure:"drawer_points"`
	SpeedBonusPoints    int           `mapstructure:"speed_bonus_points"`
	SpeedBonusThreshold time.Duration `mapstructure:"speed_bonus_threshold"`

	RoomCodeLength int    `mapstructure:"room_code_length"`
	RoomCodeChars  string `mapstructure:"room_code_chars"`
}

// RoomCodeChars excludes visually ambiguous characters (I, O, 0, 1).
const defaultRoomCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("addr", ":5000")
	v.SetDefault("allowed_origins", []string{"http://localhost:5000"})
	v.SetDefault("log_level", "info")

	v.SetDefault("total_rounds", 3)
	v.SetDefault("turn_duration", time.Minute)
	v.SetDefault("turn_grace", 3*time.Second)
	v.SetDefault("max_players", 8)
	v.SetDefault("min_players", 2)

	v.SetDefault("guesser_points", 10)
	v.SetDefault("drawer_points", 5)
	v.SetDefault("speed_bonus_points", 5)
	v.SetDefault("speed_bonus_threshold", 30*time.Second)

	v.SetDefault("room_code_length", 6)
	v.SetDefault("room_code_chars", defaultRoomCodeChars)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("drawgame")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration without touching the
// filesystem or environment. Used by tests.
func Default() *Config {
	return &Config{
		Addr:                ":5000",
		AllowedOrigins:      []string{"http://localhost:5000"},
		LogLevel:            "info",
		TotalRounds:         3,
		TurnDuration:        time.Minute,
		TurnGrace:           3 * time.Second,
		MaxPlayers:          8,
		MinPlayers:          2,
		GuesserPoints:       10,
		DrawerPoints:        5,
		SpeedBonusPoints:    5,
		SpeedBonusThreshold: 30 * time.Second,
		RoomCodeLength:      6,
		RoomCodeChars:       defaultRoomCodeChars,
	}
}
