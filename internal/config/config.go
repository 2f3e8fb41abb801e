package config

import (
	"errors"
	"os"
	"time"

	"flip7-server/internal/util"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the Flip 7 server
type Config struct {
	loaded         bool
	TCPAddr        string        `yaml:"tcpAddr" envconfig:"tcp_addr"`
	StartGameDelay time.Duration `yaml:"startGameDelay" envconfig:"start_game_delay"`
	Log            struct {
		Level             string `yaml:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	Game Game `yaml:"game"`
}

// Game holds the rules every new match is created with
type Game struct {
	TargetScore      int           `yaml:"targetScore" envconfig:"target_score"`
	WinThreshold     int           `yaml:"winThreshold" envconfig:"win_threshold"`
	FlipThreeDraws   int           `yaml:"flipThreeDraws" envconfig:"flip_three_draws"`
	PromptTimeout    time.Duration `yaml:"promptTimeout" envconfig:"prompt_timeout"`
	MinActivePlayers int           `yaml:"minActivePlayers" envconfig:"min_active_players"`
	MaxPlayers       int           `yaml:"maxPlayers" envconfig:"max_players"`
	// Seed fixes the shuffle order of every match when non-zero. Only for local testing.
	Seed int64 `yaml:"seed,omitempty" envconfig:"seed"`
}

var config Config

// DefaultConfig returns the configuration used when no file or environment overrides are present
func DefaultConfig() Config {
	cfg := Config{
		TCPAddr:        ":8080",
		StartGameDelay: time.Second * 3,
		Game: Game{
			TargetScore:      200,
			WinThreshold:     7,
			FlipThreeDraws:   3,
			PromptTimeout:    time.Minute * 2,
			MinActivePlayers: 1,
			MaxPlayers:       18,
		},
	}
	cfg.Log.Level = "info"

	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// Values are layered: defaults, then the YAML file (if one exists), then FLIP7_* environment variables.
// A .env file in the working directory is loaded into the environment first.
func Load() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	cfg := DefaultConfig()

	configFile := util.Getenv("FLIP7_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := envconfig.Process("flip7", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}
