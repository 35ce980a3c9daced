package main

import (
	"context"
	"fmt"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/dukex/projecthub/pkg/channels/kafka"
	"github.com/dukex/projecthub/pkg/config"
	"github.com/dukex/projecthub/pkg/log"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 10 * time.Second

func RunCommand() *cli.Command {
	return &cli.Command{
		Name:    "run",
		Aliases: []string{"r"},
		Usage:   "Start the hub web server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML configuration file; flags override its values",
				Sources: cli.EnvVars("PROJECTHUB_CONFIG"),
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the hub on",
				Value:   config.Default().Port,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "Log format (text, json)",
				Value:   "text",
				Sources: cli.EnvVars("LOG_FORMAT"),
			},
			&cli.FloatFlag{
				Name:    "latency-scale",
				Usage:   "Multiplier for the simulated workflow latency; 0 disables it",
				Value:   1,
				Sources: cli.EnvVars("LATENCY_SCALE"),
			},
			&cli.StringFlag{
				Name:    "catalog",
				Usage:   "Path to a catalog YAML file replacing the built-in demo catalog",
				Sources: cli.EnvVars("CATALOG_PATH"),
			},
			&cli.StringFlag{
				Name:    "session-store",
				Usage:   "Session store (memory, redis)",
				Value:   config.SessionStoreMemory,
				Sources: cli.EnvVars("SESSION_STORE"),
			},
			&cli.DurationFlag{
				Name:    "session-ttl",
				Usage:   "Idle time after which a session expires",
				Value:   config.Default().Session.TTL,
				Sources: cli.EnvVars("SESSION_TTL"),
			},
			&cli.StringFlag{
				Name:    "redis-url",
				Usage:   "Redis connection URL for the redis session store",
				Sources: cli.EnvVars("REDIS_URL"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus type (gochannel, kafka)",
				Value:   config.EventBusGoChannel,
				Sources: cli.EnvVars("EVENT_BUS_TYPE"),
			},
			&cli.StringFlag{
				Name:    "kafka-brokers",
				Usage:   "Comma-separated Kafka brokers for the kafka event bus",
				Sources: cli.EnvVars("KAFKA_BROKERS"),
			},
			&cli.BoolFlag{
				Name:    "tracing",
				Usage:   "Export traces over OTLP/HTTP",
				Sources: cli.EnvVars("TRACING_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "demo-identity",
				Usage:   "Display name of demo-mode sessions",
				Sources: cli.EnvVars("DEMO_IDENTITY"),
			},
			&cli.BoolFlag{
				Name:    "secure-cookie",
				Usage:   "Mark the session cookie Secure (serve behind HTTPS)",
				Sources: cli.EnvVars("SECURE_COOKIE"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			cfg, err := loadConfig(command)
			if err != nil {
				return err
			}

			log.Setup(cfg.LogLevel, cfg.LogFormat)

			logger := log.WithModule("projecthub")
			logger.InfoContext(ctx, "Initializing Project Hub", "version", version, "port", cfg.Port)

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			hub, err := NewHub(ctx, cfg, logger)
			if err != nil {
				return err
			}

			defer hub.Close()

			app := hub.Server.App()

			errCh := make(chan error, 1)

			go func() {
				errCh <- app.Listen(":" + strconv.Itoa(cfg.Port))
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("failed to start hub: %w", err)
				}

				return nil
			case <-ctx.Done():
				logger.Info("Shutting down Project Hub")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := app.ShutdownWithContext(shutdownCtx); err != nil {
				logger.Error("Failed to shut down web server", "error", err)
			}

			return nil
		},
	}
}

// loadConfig reads the optional config file and overlays the flags that were set
// explicitly. Without a file every flag value, default or not, is used.
func loadConfig(command *cli.Command) (config.Config, error) {
	cfg := config.Default()
	fromFile := command.String("config") != ""

	if fromFile {
		loaded, err := config.LoadFile(command.String("config"))
		if err != nil {
			return cfg, err
		}

		cfg = loaded
	}

	use := func(name string) bool {
		return !fromFile || command.IsSet(name)
	}

	if use("port") {
		cfg.Port = command.Int("port")
	}

	if use("log-level") {
		cfg.LogLevel = command.String("log-level")
	}

	if use("log-format") {
		cfg.LogFormat = command.String("log-format")
	}

	if use("latency-scale") {
		cfg.LatencyScale = command.Float("latency-scale")
	}

	if use("catalog") {
		cfg.CatalogPath = command.String("catalog")
	}

	if use("session-store") {
		cfg.Session.Store = command.String("session-store")
	}

	if use("session-ttl") {
		cfg.Session.TTL = command.Duration("session-ttl")
	}

	if use("redis-url") {
		cfg.Session.RedisURL = command.String("redis-url")
	}

	if use("event-bus") {
		cfg.Events.Bus = command.String("event-bus")
	}

	if use("kafka-brokers") {
		cfg.Events.KafkaBrokers = kafka.ParseBrokers(command.String("kafka-brokers"))
	}

	if use("tracing") {
		cfg.Tracing = command.Bool("tracing")
	}

	if use("demo-identity") {
		cfg.DemoIdentity = command.String("demo-identity")
	}

	if use("secure-cookie") {
		cfg.SecureCookie = command.Bool("secure-cookie")
	}

	return cfg, cfg.Validate()
}
