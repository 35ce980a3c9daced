// Package cmd provides common initialization functions for command-line applications.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/dukex/projecthub/pkg/channels/gochannel"
	"github.com/dukex/projecthub/pkg/channels/kafka"
	"github.com/dukex/projecthub/pkg/config"
	"github.com/dukex/projecthub/pkg/eventbus"
)

func NewEventBus(cfg config.EventsConfig, serviceName string, logger *slog.Logger) (eventbus.EventBus, error) {
	wmLogger := watermill.NewSlogLogger(logger)

	switch cfg.Bus {
	case config.EventBusKafka:
		pub, sub, err := kafka.CreateChannel(wmLogger, cfg.KafkaBrokers, serviceName)
		if err != nil {
			return nil, fmt.Errorf("failed to create Kafka pub/sub: %w", err)
		}

		return eventbus.NewWatermillEventBus(pub, sub), nil
	case config.EventBusGoChannel, "":
		pub, sub, err := gochannel.CreateChannel(wmLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to create GoChannel pub/sub: %w", err)
		}

		return eventbus.NewWatermillEventBus(pub, sub), nil
	default:
		return nil, fmt.Errorf("unsupported event bus provider: %s", cfg.Bus)
	}
}
