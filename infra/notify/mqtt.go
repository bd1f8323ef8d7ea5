// Package notify delivers assignment notifications to drivers' linked
// contact channels over MQTT.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/friomar/dispatch/core/model"
	"github.com/friomar/dispatch/infra/logger"
	infmqtt "github.com/friomar/dispatch/infra/mqtt"
)

const inboxTopic = "drivers/%s/trips"

// tripNotice is the wire payload a driver's device renders.
type tripNotice struct {
	TripID  int64  `json:"trip_id"`
	Client  string `json:"client"`
	Pickup  string `json:"pickup"`
	Dropoff string `json:"dropoff"`
	Cargo   string `json:"cargo,omitempty"`
	Km      int    `json:"km,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// MQTTNotifier publishes trip notices to per-driver inbox topics.
type MQTTNotifier struct {
	cli paho.Client
	cfg infmqtt.Config
	log logger.Logger
}

// NewMQTTNotifier connects to the broker.
func NewMQTTNotifier(cfg infmqtt.Config) (*MQTTNotifier, error) {
	cli, err := infmqtt.Connect(cfg, "notify")
	if err != nil {
		return nil, err
	}
	return &MQTTNotifier{cli: cli, cfg: cfg, log: logger.New("notify")}, nil
}

// Close disconnects from the broker.
func (n *MQTTNotifier) Close() {
	n.cli.Disconnect(250)
}

// Notify publishes the trip details to the driver's inbox topic.
func (n *MQTTNotifier) Notify(ctx context.Context, contactRef string, trip model.Trip) error {
	payload, err := json.Marshal(tripNotice{
		TripID:  trip.ID,
		Client:  trip.Client,
		Pickup:  trip.Pickup,
		Dropoff: trip.Dropoff,
		Cargo:   trip.Cargo,
		Km:      trip.Km,
		Notes:   trip.Notes,
	})
	if err != nil {
		return fmt.Errorf("encode notice: %w", err)
	}
	topic := fmt.Sprintf(inboxTopic, contactRef)
	token := n.cli.Publish(topic, n.cfg.QoS, false, payload)
	if !token.WaitTimeout(n.cfg.Timeout()) {
		return fmt.Errorf("publish %s: timeout", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	n.log.Infof("trip %d notice sent to %s", trip.ID, contactRef)
	return nil
}
