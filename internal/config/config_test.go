package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"ridethebus-server/internal/util"
	"ridethebus-server/pkg/playable/ridethebus"
)

func TestInstance(t *testing.T) {
	clear1 := util.SetEnv("RTB_CONFIG_FILE", "testdata/config.yaml")
	defer clear1()
	clear2 := util.SetEnv("RTB_JWT_SECRET", "env-secret")
	defer clear2()

	config = Config{}

	a := assert.New(t)
	cfg := Instance()
	a.Equal("postgres://postgres@db:5432/ridethebus?sslmode=disable", cfg.PGDSN)
	a.Equal(StorePostgres, cfg.Store)
	a.Equal("env-secret", cfg.JWT.Secret)
	a.Equal("debug", cfg.Log.Level)
	a.Equal(250, cfg.Game.StartingBankroll)
	a.Equal(time.Millisecond*500, cfg.Game.LossResetDelay)

	// values not in the file keep their defaults
	a.Equal(time.Second*3, cfg.Game.WinResetDelay)
	a.Equal(10, cfg.Game.ReimbursementFloor)
	a.Equal("file://sql", cfg.MigrationsPath)

	// ensure that it's only loaded once
	_ = os.Setenv("RTB_JWT_SECRET", "env-secret-2")
	// ensure we aren't using a pointer
	cfg.JWT.Secret = "bad"
	cfg = Instance()
	a.Equal("env-secret", cfg.JWT.Secret)

	opts, err := cfg.GameOptions()
	a.NoError(err)
	a.Equal(ridethebus.TiesLose, opts.HighLowTies)
	a.Equal(250, opts.Bankroll.StartingBalance)
	a.Equal(100, opts.Wager.Default)
}

func TestDefaults(t *testing.T) {
	clear1 := util.SetEnv("RTB_CONFIG_FILE", "testdata/does-not-exist.yaml")
	defer clear1()

	assert.NoError(t, Load())
	cfg := Instance()
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, "info", cfg.Log.Level)

	opts, err := cfg.GameOptions()
	assert.NoError(t, err)
	assert.Equal(t, ridethebus.DefaultOptions(), opts)
}

func TestLoad_invalid(t *testing.T) {
	clear1 := util.SetEnv("RTB_CONFIG_FILE", "testdata/bad_store.yaml")
	defer clear1()
	assert.EqualError(t, Load(), "store must be memory or postgres")

	clear1()
	clear2 := util.SetEnv("RTB_CONFIG_FILE", "testdata/does-not-exist.yaml")
	defer clear2()
	clear3 := util.SetEnv("RTB_GAME_HIGH_LOW_TIES", "maybe")
	defer clear3()
	assert.EqualError(t, Load(), "unknown tie policy: maybe")
}

func TestConfig_GameOptions(t *testing.T) {
	a := assert.New(t)

	cfg := DefaultConfig()
	cfg.Game.MinWager = 0
	_, err := cfg.GameOptions()
	a.EqualError(err, "game.minWager must be >= 1")

	cfg = DefaultConfig()
	cfg.Game.DefaultWager = 5
	cfg.Game.MinWager = 10
	_, err = cfg.GameOptions()
	a.EqualError(err, "game.defaultWager must be >= game.minWager")

	cfg = DefaultConfig()
	cfg.Game.StartingBankroll = 0
	_, err = cfg.GameOptions()
	a.EqualError(err, "game.startingBankroll must be >= 1")

	cfg = DefaultConfig()
	cfg.Game.ReimbursementFloor = -1
	_, err = cfg.GameOptions()
	a.EqualError(err, "game.reimbursementFloor must be >= 0")
}
