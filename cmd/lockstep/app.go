package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/lockstep"
	"github.com/aretw0/lockstep/internal/config"
	"github.com/aretw0/lockstep/pkg/adapters/memory"
	"github.com/aretw0/lockstep/pkg/adapters/mqtt"
	"github.com/aretw0/lockstep/pkg/adapters/redis"
	"github.com/aretw0/lockstep/pkg/bridge"
	"github.com/aretw0/lockstep/pkg/parking"
	"github.com/aretw0/lockstep/pkg/ports"
)

// dialTransport connects the transport named by the configuration.
func dialTransport(ctx context.Context, cfg config.Config) (ports.Transport, error) {
	switch cfg.Transport {
	case config.TransportMQTT:
		t, err := mqtt.Dial(ctx, mqtt.Config{
			URL:      cfg.MQTTURL,
			Username: cfg.MQTTUser,
			Password: cfg.MQTTPassword,
		})
		if err != nil {
			return nil, err
		}
		return t, nil
	case config.TransportRedis:
		t := redis.New(cfg.RedisAddr)
		if err := t.Ping(ctx); err != nil {
			_ = t.Close()
			return nil, fmt.Errorf("redis: %w", err)
		}
		return t, nil
	case config.TransportMemory:
		return memory.NewTransport(), nil
	default:
		return nil, fmt.Errorf("unknown transport %q", cfg.Transport)
	}
}

// offlineApp builds the garage over an in-process transport, for commands
// that inspect the topology without connecting anywhere.
func offlineApp(cfg config.Config) (*parking.App, *lockstep.Engine, error) {
	app, err := parking.NewApp(memory.NewTransport(), cfg.TotalSpaces)
	if err != nil {
		return nil, nil, err
	}
	eng, err := lockstep.New(app.Configuration(), lockstep.WithName("parking"))
	if err != nil {
		return nil, nil, err
	}
	return app, eng, nil
}

func bridgeOptions(logger *slog.Logger, drop bridge.DropHook) []bridge.Option {
	return []bridge.Option{
		bridge.WithLogger(logger),
		bridge.WithDropHook(drop),
	}
}
