package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// NotifierConfig holds the delivery gateway settings loaded from a TOML file.
type NotifierConfig struct {
	Email    GatewayConfig `toml:"email"`
	SMS      GatewayConfig `toml:"sms"`
	Admin    AdminContact  `toml:"admin"`
	Delivery DeliveryConfig `toml:"delivery"`
}

// GatewayConfig points at one outbound channel's HTTP gateway. An empty
// endpoint puts the channel in log-only mode, which is what development runs
// use.
type GatewayConfig struct {
	Endpoint string `toml:"endpoint"`
	APIKey   string `toml:"api_key"`
}

// AdminContact receives stock alerts, which have no patient to address.
type AdminContact struct {
	Email string `toml:"email"`
	Phone string `toml:"phone"`
}

// DeliveryConfig contains timeout settings for gateway calls.
type DeliveryConfig struct {
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// LoadNotifierConfig loads configuration from a TOML file.
func LoadNotifierConfig(filename string) (*NotifierConfig, error) {
	config := &NotifierConfig{}
	_, err := toml.DecodeFile(filename, config)
	if err != nil {
		return nil, fmt.Errorf("failed to load notifier config: %w", err)
	}
	if config.Delivery.TimeoutSeconds <= 0 {
		config.Delivery.TimeoutSeconds = 30
	}
	return config, nil
}

// DefaultNotifierConfig is the log-only fallback used when no config file is
// present.
func DefaultNotifierConfig() *NotifierConfig {
	return &NotifierConfig{
		Delivery: DeliveryConfig{TimeoutSeconds: 30},
	}
}
