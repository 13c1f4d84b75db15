package config

import "time"

// Messaging definition messaging_service YAML structure
type Messaging struct {
	Port string `mapstructure:"port"`

	Mongo    DatabaseConfig `mapstructure:"mongo"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Postgres DatabaseConfig `mapstructure:"pg"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`

	// Typing indicator expiry. The client debounces at 2s; the server
	// clears a silent typist after this duration.
	TypingTTL time.Duration `mapstructure:"typing_ttl"`
}

// RedisConfig definition redis setting
type RedisConfig struct {
	RedisDB int `mapstructure:"redis_db"`
}

// KafkaConfig definition kafka event feed setting
type KafkaConfig struct {
	Brokers       []string `mapstructure:"brokers"`
	Topic         string   `mapstructure:"topic"`
	RetryInterval int      `mapstructure:"retry_interval"`
	RetryCount    int      `mapstructure:"retry_count"`
}

// DatabaseConfig definition db setting
type DatabaseConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	Database      string `mapstructure:"database"`
	RetryInterval int    `mapstructure:"retry_interval"`
	RetryCount    int    `mapstructure:"retry_count"`
}
