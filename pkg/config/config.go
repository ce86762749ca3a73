package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MustLoad loads the configuration from environment variables and .env file.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load() // Load environment variables from .env file

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and .env file.
func Load[T any](cfg T) error {
	_ = godotenv.Load() // .env file is optional

	if err := env.Parse(cfg); err != nil {
		return err
	}

	return nil
}

// Config holds the configuration for the simulator.
type Config struct {
	Symbol           string               `env:"SYMBOL" envDefault:"AAPL"` // Instrument symbol, e.g. AAPL
	SimulationConfig `envPrefix:"SIM_"`   // Simulation configuration
	KafkaConfig      `envPrefix:"KAFKA_"` // Kafka trade feed configuration
	RedisConfig      `envPrefix:"REDIS_"` // Redis market data configuration
}

// SimulationConfig holds the parameters of the simulated market.
type SimulationConfig struct {
	StartPrice    int64         `env:"START_PRICE" envDefault:"10000"` // in ticks
	TickValue     int32         `env:"TICK_VALUE" envDefault:"2"`      // decimal exponent: price = ticks * 10^-TickValue
	Volatility    float64       `env:"VOLATILITY" envDefault:"0.02"`
	SpreadBps     int64         `env:"SPREAD_BPS" envDefault:"10"` // market-maker spread in basis points
	QuoteSize     int64         `env:"QUOTE_SIZE" envDefault:"10"`
	InitialCash   string        `env:"INITIAL_CASH" envDefault:"10000"`
	StepInterval  time.Duration `env:"STEP_INTERVAL" envDefault:"100ms"`
	Steps         int           `env:"STEPS" envDefault:"0"` // 0 means run until interrupted
	Seed          uint64        `env:"SEED" envDefault:"0"`  // 0 means derive from time
	DepthLevels   int           `env:"DEPTH_LEVELS" envDefault:"10"`
	DepthInterval time.Duration `env:"DEPTH_INTERVAL" envDefault:"1s"`
}

// KafkaConfig holds the configuration for the trade feed publisher.
type KafkaConfig struct {
	Enabled bool     `env:"ENABLED" envDefault:"false"`
	Topic   string   `env:"TOPIC" envDefault:"trades"`
	Brokers []string `env:"BROKER" envDefault:"localhost:9092"`
}

// RedisConfig holds the configuration for the market data snapshot store.
type RedisConfig struct {
	Enabled  bool   `env:"ENABLED" envDefault:"false"`
	Addr     string `env:"ADDRESS" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	Username string `env:"USERNAME" envDefault:""`
	DB       int    `env:"DB" envDefault:"0"`
}
