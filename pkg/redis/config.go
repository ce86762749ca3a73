package redis

import "time"

// Config holds connection settings for a standalone Redis instance.
type Config struct {
	Addr            string
	Username        string
	Password        string
	DB              int
	ConnectTimeout  time.Duration
	PoolSize        int
	MinIdleConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PoolTimeout     time.Duration
	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration
}

// DefaultConfig returns a Config with sane defaults for local use.
func DefaultConfig() *Config {
	return &Config{
		Addr:            "localhost:6379",
		ConnectTimeout:  5 * time.Second,
		PoolSize:        10,
		MinIdleConns:    1,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
		PoolTimeout:     5 * time.Second,
		MaxRetries:      3,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
	}
}
