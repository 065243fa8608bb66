package config

import (
	"errors"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
	"ridethebus-server/internal/util"
	"ridethebus-server/pkg/bankroll"
	"ridethebus-server/pkg/playable/ridethebus"
)

// Store backends
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config provides configuration for the Ride the Bus server
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	Store          string `yaml:"store" envconfig:"store"`
	JWT            struct {
		Secret string `yaml:"secret" envconfig:"secret"`
	} `yaml:"jwt"`
	Log struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	Game Game `yaml:"game"`
}

// Game contains the table rules
type Game struct {
	StartingBankroll   int           `yaml:"startingBankroll" envconfig:"starting_bankroll"`
	ReimbursementFloor int           `yaml:"reimbursementFloor" envconfig:"reimbursement_floor"`
	DefaultWager       int           `yaml:"defaultWager" envconfig:"default_wager"`
	MinWager           int           `yaml:"minWager" envconfig:"min_wager"`
	LossResetDelay     time.Duration `yaml:"lossResetDelay" envconfig:"loss_reset_delay"`
	WinResetDelay      time.Duration `yaml:"winResetDelay" envconfig:"win_reset_delay"`
	HighLowTies        string        `yaml:"highLowTies" envconfig:"high_low_ties"`
}

var config Config

// DefaultConfig returns the configuration used when nothing overrides it
func DefaultConfig() Config {
	cfg := Config{
		PGDSN:          "postgres://postgres@localhost:5432/ridethebus?sslmode=disable",
		MigrationsPath: "file://sql",
		Store:          StoreMemory,
		Game: Game{
			StartingBankroll:   100,
			ReimbursementFloor: 10,
			DefaultWager:       100,
			MinWager:           1,
			LossResetDelay:     time.Second * 2,
			WinResetDelay:      time.Second * 3,
			HighLowTies:        ridethebus.TiesWin.String(),
		},
	}

	cfg.Log.Level = logrus.InfoLevel.String()
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
// A missing config file is not an error, the defaults are used instead
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("RTB_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	} else {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	}

	if err := envconfig.Process("rtb", &cfg); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	config = cfg
	config.loaded = true
	return nil
}

// Validate returns an error if the configuration cannot run a table
func (c Config) Validate() error {
	if c.Store != StoreMemory && c.Store != StorePostgres {
		return errors.New("store must be memory or postgres")
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return err
	}

	_, err := c.GameOptions()
	return err
}

// GameOptions converts the table rules into game options
func (c Config) GameOptions() (ridethebus.Options, error) {
	ties, err := ridethebus.GetTiePolicy(c.Game.HighLowTies)
	if err != nil {
		return ridethebus.Options{}, err
	}

	if c.Game.MinWager < 1 {
		return ridethebus.Options{}, errors.New("game.minWager must be >= 1")
	}

	if c.Game.DefaultWager < c.Game.MinWager {
		return ridethebus.Options{}, errors.New("game.defaultWager must be >= game.minWager")
	}

	if c.Game.StartingBankroll < 1 {
		return ridethebus.Options{}, errors.New("game.startingBankroll must be >= 1")
	}

	if c.Game.ReimbursementFloor < 0 {
		return ridethebus.Options{}, errors.New("game.reimbursementFloor must be >= 0")
	}

	return ridethebus.Options{
		HighLowTies:    ties,
		LossResetDelay: c.Game.LossResetDelay,
		WinResetDelay:  c.Game.WinResetDelay,
		Bankroll: bankroll.Options{
			StartingBalance:    c.Game.StartingBankroll,
			ReimbursementFloor: c.Game.ReimbursementFloor,
		},
		Wager: bankroll.WagerOptions{
			Min:     c.Game.MinWager,
			Default: c.Game.DefaultWager,
		},
	}, nil
}
