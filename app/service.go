// Package app wires the configured adapters into a running dispatch service.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/friomar/dispatch/config"
	"github.com/friomar/dispatch/core/dispatch"
	"github.com/friomar/dispatch/core/store"
	"github.com/friomar/dispatch/core/telemetry"
	"github.com/friomar/dispatch/infra/logger"
	"github.com/friomar/dispatch/infra/metrics"
	"github.com/friomar/dispatch/infra/mirror"
	infranotify "github.com/friomar/dispatch/infra/notify"
	infratelemetry "github.com/friomar/dispatch/infra/telemetry"
	"github.com/friomar/dispatch/internal/eventbus"
)

// Service orchestrates the dispatch engine and its adapters.
type Service struct {
	Engine   *dispatch.Engine
	Store    closer
	Sessions *dispatch.SessionCache

	provider *infratelemetry.MQTTProvider
	notifier *infranotify.MQTTNotifier
	bus      eventbus.EventBus
	log      logger.Logger

	promEnabled  bool
	promAddr     string
	autoEnabled  bool
	autoInterval time.Duration
}

type closer interface{ Close() error }

// Stores groups the persistence interfaces the engine depends on. The
// sqlite backend satisfies all of them with one value.
type Stores struct {
	Trips   store.TripStore
	Drivers store.DriverStore
}

// New creates a Service from the configuration and an opened store backend.
// storeCloser may be nil for backends without resources to release.
func New(cfg *config.Config, stores Stores, storeCloser closer) (*Service, error) {
	logg := logger.New("service")

	var provider *infratelemetry.MQTTProvider
	var notifier *infranotify.MQTTNotifier
	var tprov telemetry.Provider
	var notif dispatch.Notifier
	if cfg.MQTT.Broker != "" {
		var err error
		provider, err = infratelemetry.NewMQTTProvider(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("telemetry provider: %w", err)
		}
		tprov = provider
		notifier, err = infranotify.NewMQTTNotifier(cfg.MQTT)
		if err != nil {
			provider.Close()
			return nil, fmt.Errorf("notifier: %w", err)
		}
		notif = notifier
	} else {
		logg.Warnf("no MQTT broker configured, running without telemetry and notifications")
	}

	var mir dispatch.Mirror
	if cfg.Mirror.Path != "" {
		var uploader mirror.Uploader
		if cfg.Mirror.UploadURL != "" {
			uploader = &mirror.HTTPUploader{URL: cfg.Mirror.UploadURL}
		}
		mir = mirror.New(cfg.Mirror, uploader)
	}

	sink, err := metrics.FromConfig(cfg.Metrics)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	bus := eventbus.New()
	timeout := time.Duration(cfg.Dispatch.TelemetryTimeoutSeconds) * time.Second
	resolver := dispatch.NewPositionResolver(tprov, stores.Trips, timeout, logger.New("resolver"))
	engine, err := dispatch.NewEngine(stores.Trips, stores.Drivers, resolver,
		mir, notif, sink, bus, logger.New("engine"), cfg.Dispatch)
	if err != nil {
		return nil, fmt.Errorf("dispatch engine: %w", err)
	}

	return &Service{
		Engine:       engine,
		Store:        storeCloser,
		Sessions:     dispatch.NewSessionCache(),
		provider:     provider,
		notifier:     notifier,
		bus:          bus,
		log:          logg,
		promEnabled:  cfg.Metrics.PromEnabled,
		promAddr:     cfg.Metrics.PromAddr,
		autoEnabled:  cfg.Auto.Enabled,
		autoInterval: time.Duration(cfg.Auto.IntervalMinutes) * time.Minute,
	}, nil
}

// Run starts the background loops and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	if s.autoEnabled {
		go s.autoLoop(ctx)
	}
	<-ctx.Done()
	return nil
}

// autoLoop runs the automatic assignment pass on a fixed interval.
func (s *Service) autoLoop(ctx context.Context) {
	ticker := time.NewTicker(s.autoInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			res, err := s.Engine.AutoAssign(ctx)
			if err != nil {
				s.log.Errorf("auto pass: %v", err)
				continue
			}
			s.log.Infof("auto pass: %d pending, %d assigned, %d chained",
				res.Pending, res.Assigned, res.Chained)
		}
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	err := s.Engine.Close()
	if s.provider != nil {
		s.provider.Close()
	}
	if s.notifier != nil {
		s.notifier.Close()
	}
	if s.Store != nil {
		if cerr := s.Store.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
