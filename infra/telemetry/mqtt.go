// Package telemetry implements the vehicle tracking provider over MQTT
// request/reply. Each lookup publishes a poll message and waits for the
// on-board unit's response, bounded by the caller's context.
package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	coretelemetry "github.com/friomar/dispatch/core/telemetry"
	"github.com/friomar/dispatch/infra/logger"
	infmqtt "github.com/friomar/dispatch/infra/mqtt"
)

const (
	positionRequestTopic  = "fleet/%s/position/get"
	positionResponseTopic = "fleet/+/position"
	dutyRequestTopic      = "fleet/%s/duty/get"
	dutyResponseTopic     = "fleet/+/duty"
)

type positionMessage struct {
	RequestID string  `json:"request_id"`
	Plate     string  `json:"plate"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Timestamp int64   `json:"timestamp"`
}

type dutyMessage struct {
	RequestID          string  `json:"request_id"`
	Plate              string  `json:"plate"`
	RemainingDutyHours float64 `json:"remaining_duty_hours"`
	MinutesUntilRest   int     `json:"minutes_until_rest"`
}

// MQTTProvider implements telemetry.Provider against the fleet's on-board
// units.
type MQTTProvider struct {
	cli paho.Client
	qos byte
	log logger.Logger

	mu      sync.Mutex
	waiting map[string]chan []byte
}

// NewMQTTProvider connects to the broker and subscribes to the response
// topics.
func NewMQTTProvider(cfg infmqtt.Config) (*MQTTProvider, error) {
	cli, err := infmqtt.Connect(cfg, "telemetry")
	if err != nil {
		return nil, err
	}
	p := &MQTTProvider{
		cli:     cli,
		qos:     cfg.QoS,
		log:     logger.New("telemetry"),
		waiting: make(map[string]chan []byte),
	}
	for _, topic := range []string{positionResponseTopic, dutyResponseTopic} {
		if token := cli.Subscribe(topic, cfg.QoS, p.onResponse); token.Wait() && token.Error() != nil {
			cli.Disconnect(0)
			return nil, fmt.Errorf("subscribe %s: %w", topic, token.Error())
		}
	}
	return p, nil
}

// Close disconnects from the broker.
func (p *MQTTProvider) Close() {
	p.cli.Disconnect(250)
}

func (p *MQTTProvider) onResponse(_ paho.Client, msg paho.Message) {
	var head struct {
		RequestID string `json:"request_id"`
	}
	if err := json.Unmarshal(msg.Payload(), &head); err != nil {
		p.log.Debugf("bad telemetry payload on %s: %v", msg.Topic(), err)
		return
	}
	p.mu.Lock()
	ch, ok := p.waiting[head.RequestID]
	if ok {
		delete(p.waiting, head.RequestID)
	}
	p.mu.Unlock()
	if ok {
		ch <- msg.Payload()
	}
}

// poll publishes a request and waits for the correlated response or context
// expiry.
func (p *MQTTProvider) poll(ctx context.Context, topic string) ([]byte, error) {
	id := uuid.NewString()
	ch := make(chan []byte, 1)
	p.mu.Lock()
	p.waiting[id] = ch
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		delete(p.waiting, id)
		p.mu.Unlock()
	}()

	payload, _ := json.Marshal(map[string]string{"request_id": id})
	token := p.cli.Publish(topic, p.qos, false, payload)
	if !token.WaitTimeout(time.Second) {
		return nil, fmt.Errorf("publish %s: timeout", topic)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("publish %s: %w", topic, err)
	}

	select {
	case body := <-ch:
		return body, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// LastKnownPosition polls the unit for its position.
func (p *MQTTProvider) LastKnownPosition(ctx context.Context, plate string) (coretelemetry.Fix, error) {
	body, err := p.poll(ctx, fmt.Sprintf(positionRequestTopic, plate))
	if err != nil {
		return coretelemetry.Fix{}, err
	}
	var msg positionMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return coretelemetry.Fix{}, fmt.Errorf("position response for %s: %w", plate, err)
	}
	if msg.Timestamp == 0 {
		return coretelemetry.Fix{}, coretelemetry.ErrNoFix
	}
	return coretelemetry.Fix{Lat: msg.Lat, Lon: msg.Lon, Timestamp: time.Unix(msg.Timestamp, 0)}, nil
}

// Availability polls the unit for the driver's tachograph state.
func (p *MQTTProvider) Availability(ctx context.Context, plate string) (coretelemetry.Availability, error) {
	body, err := p.poll(ctx, fmt.Sprintf(dutyRequestTopic, plate))
	if err != nil {
		return coretelemetry.Availability{}, err
	}
	var msg dutyMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return coretelemetry.Availability{}, fmt.Errorf("duty response for %s: %w", plate, err)
	}
	return coretelemetry.Availability{
		RemainingDutyHours:        msg.RemainingDutyHours,
		MinutesUntilMandatoryRest: msg.MinutesUntilRest,
	}, nil
}
