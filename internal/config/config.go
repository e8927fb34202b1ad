// Package config loads runtime configuration from environment variables.
// Every value has a development default, so a bare `go run` against a local
// Redis works without any environment set up.
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration values
type Config struct {
	// HTTPPort is the port the API server listens on
	HTTPPort string

	// RedisAddr is the host:port of the Redis server
	RedisAddr string

	// RedisPassword is the optional Redis password
	RedisPassword string

	// RedisDB is the Redis database number
	RedisDB int

	// AMQPURL is the broker URL for the outbound event queue; empty
	// disables the queue sink
	AMQPURL string

	// QueueName is the queue session events are mirrored onto
	QueueName string

	// HeartbeatPeriod is how often a healthy host client checks in
	HeartbeatPeriod time.Duration

	// UnresponsivenessTimeout is the host silence after which moderation
	// is suspended
	UnresponsivenessTimeout time.Duration

	// ProlongedAbsenceTimeout is the host silence after which participants
	// may force-complete a session
	ProlongedAbsenceTimeout time.Duration

	// SweepInterval is how often the responsiveness sweep runs
	SweepInterval time.Duration
}

// Load reads configuration from environment variables, falling back to
// development defaults for anything unset
func Load() *Config {
	heartbeat := duration("HEARTBEAT_PERIOD", 15*time.Second)
	unresponsive := duration("UNRESPONSIVENESS_TIMEOUT", 4*heartbeat)

	return &Config{
		HTTPPort:                value("HTTP_PORT", "8080"),
		RedisAddr:               value("REDIS_ADDR", "localhost:6379"),
		RedisPassword:           os.Getenv("REDIS_PASSWORD"),
		RedisDB:                 number("REDIS_DB", 0),
		AMQPURL:                 os.Getenv("AMQP_URL"),
		QueueName:               value("EVENT_QUEUE_NAME", "tasting.events"),
		HeartbeatPeriod:         heartbeat,
		UnresponsivenessTimeout: unresponsive,
		ProlongedAbsenceTimeout: duration("PROLONGED_ABSENCE_TIMEOUT", 4*unresponsive),
		SweepInterval:           duration("SWEEP_INTERVAL", heartbeat),
	}
}

func value(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func number(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: invalid int for %s: %q; using %d", key, v, fallback)
		return fallback
	}
	return n
}

func duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: invalid duration for %s: %q; using %s", key, v, fallback)
		return fallback
	}
	return d
}
