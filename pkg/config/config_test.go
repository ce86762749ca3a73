package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, Load(cfg))

	assert.Equal(t, "AAPL", cfg.Symbol)
	assert.Equal(t, int64(10_000), cfg.StartPrice)
	assert.Equal(t, int32(2), cfg.TickValue)
	assert.Equal(t, 0.02, cfg.Volatility)
	assert.Equal(t, int64(10), cfg.SpreadBps)
	assert.Equal(t, "10000", cfg.InitialCash)
	assert.Equal(t, 100*time.Millisecond, cfg.StepInterval)
	assert.Equal(t, 0, cfg.Steps)
	assert.Equal(t, 10, cfg.DepthLevels)
	assert.False(t, cfg.KafkaConfig.Enabled)
	assert.False(t, cfg.RedisConfig.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SYMBOL", "MSFT")
	t.Setenv("SIM_STEPS", "500")
	t.Setenv("SIM_SEED", "42")
	t.Setenv("SIM_START_PRICE", "25000")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_TOPIC", "fills")
	t.Setenv("REDIS_ADDRESS", "redis:6379")

	cfg := &Config{}
	require.NoError(t, Load(cfg))

	assert.Equal(t, "MSFT", cfg.Symbol)
	assert.Equal(t, 500, cfg.Steps)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, int64(25_000), cfg.StartPrice)
	assert.True(t, cfg.KafkaConfig.Enabled)
	assert.Equal(t, "fills", cfg.KafkaConfig.Topic)
	assert.Equal(t, "redis:6379", cfg.RedisConfig.Addr)
}

func TestMustLoad(t *testing.T) {
	t.Setenv("SIM_QUOTE_SIZE", "25")

	cfg := &Config{}
	assert.NotPanics(t, func() {
		MustLoad(cfg)
	})
	assert.Equal(t, int64(25), cfg.QuoteSize)
}
