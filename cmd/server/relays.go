package main

import (
	"context"
	"fmt"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/config"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/events"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/mqtt"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/redis"
)

// AttachRelays connects the bus to other instances: over MQTT when a broker
// is configured, and over Redis pub/sub when Redis backs the store.
func AttachRelays(ctx context.Context, cfg *config.Config, bus *events.Bus) error {
	if cfg.MQTTBrokerURL != "" {
		client, err := mqtt.Connect(cfg.MQTTBrokerURL, cfg.MQTTClientID)
		if err != nil {
			return err
		}
		if err := bus.Attach(ctx, mqtt.NewRelay(client, mqtt.EventsTopic)); err != nil {
			client.Disconnect(250)
			return fmt.Errorf("attach mqtt relay: %w", err)
		}
	}

	if cfg.StoreBackend == config.BackendRedis && redis.Rdb != nil {
		if err := bus.Attach(ctx, redis.NewRelay(redis.Rdb, redis.EventsChannel)); err != nil {
			return fmt.Errorf("attach redis relay: %w", err)
		}
	}
	return nil
}
