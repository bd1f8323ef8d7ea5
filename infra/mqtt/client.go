// Package mqtt holds the shared Paho client configuration used by the
// telemetry and notification adapters.
package mqtt

import (
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/friomar/dispatch/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT client.
type Config struct {
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	QoS      byte   `json:"qos"`
	// TimeoutSeconds bounds connect and publish waits.
	TimeoutSeconds int `json:"timeout_seconds"`
}

// Timeout returns the configured wait bound, defaulting to five seconds.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// NewClientOptions builds mqtt client options from Config. The suffix keeps
// client identifiers unique when several adapters share one broker.
func NewClientOptions(cfg Config, suffix string) *paho.ClientOptions {
	id := cfg.ClientID
	if id == "" {
		id = "dispatch-" + uuid.NewString()
	}
	if suffix != "" {
		id += "-" + suffix
	}
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(id)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	log := logger.New("mqtt_client")
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}
	return opts
}

// Connect creates and connects a client, waiting up to the config timeout.
func Connect(cfg Config, suffix string) (paho.Client, error) {
	cli := paho.NewClient(NewClientOptions(cfg, suffix))
	token := cli.Connect()
	if !token.WaitTimeout(cfg.Timeout()) {
		return nil, fmt.Errorf("mqtt connect to %s: timeout", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect to %s: %w", cfg.Broker, err)
	}
	return cli, nil
}
