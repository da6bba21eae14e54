package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-docforge/internal/config"
	"github.com/goliatone/go-docforge/internal/httpapi"
	"github.com/goliatone/go-docforge/pkg/catalog"
	"github.com/goliatone/go-docforge/pkg/store"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the editing API server",
		Action: runServe,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "host",
				Value:   "0.0.0.0",
				Usage:   "Listen host",
				Sources: cli.EnvVars("DOCFORGE_HOST"),
			},
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "Listen port",
				Sources: cli.EnvVars("DOCFORGE_PORT"),
			},
			&cli.StringFlag{
				Name:    "templates",
				Value:   "./templates",
				Usage:   "Directory holding template descriptor YAML files",
				Sources: cli.EnvVars("DOCFORGE_TEMPLATES"),
			},
			&cli.BoolFlag{
				Name:    "watch",
				Value:   true,
				Usage:   "Reload templates when descriptor files change",
				Sources: cli.EnvVars("DOCFORGE_WATCH"),
			},
			&cli.StringFlag{
				Name:    "store-driver",
				Value:   config.DriverMemory,
				Usage:   "Document store driver: memory, redis, or sqlite",
				Sources: cli.EnvVars("DOCFORGE_STORE_DRIVER"),
			},
			&cli.StringFlag{
				Name:    "redis-addr",
				Value:   "localhost:6379",
				Usage:   "Redis address for the redis store driver",
				Sources: cli.EnvVars("DOCFORGE_REDIS_ADDR"),
			},
			&cli.IntFlag{
				Name:    "redis-db",
				Value:   0,
				Usage:   "Redis database for the redis store driver",
				Sources: cli.EnvVars("DOCFORGE_REDIS_DB"),
			},
			&cli.StringFlag{
				Name:    "sqlite-path",
				Value:   "./docforge.db",
				Usage:   "Database file for the sqlite store driver",
				Sources: cli.EnvVars("DOCFORGE_SQLITE_PATH"),
			},
			&cli.StringSliceFlag{
				Name:    "allowed-origin",
				Usage:   "Extra origins allowed on preview sockets",
				Sources: cli.EnvVars("DOCFORGE_ALLOWED_ORIGINS"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level: debug, info, warn, or error",
				Sources: cli.EnvVars("DOCFORGE_LOG_LEVEL"),
			},
		},
	}
}

func configFromFlags(cmd *cli.Command) config.Config {
	cfg := config.Default()
	cfg.LogLevel = cmd.String("log-level")
	cfg.HTTP.Host = cmd.String("host")
	cfg.HTTP.Port = int(cmd.Int("port"))
	cfg.Catalog.Dir = cmd.String("templates")
	cfg.Catalog.Watch = cmd.Bool("watch")
	cfg.Store.Driver = cmd.String("store-driver")
	cfg.Store.Redis.Addr = cmd.String("redis-addr")
	cfg.Store.Redis.DB = int(cmd.Int("redis-db"))
	cfg.Store.SQLite.Path = cmd.String("sqlite-path")
	cfg.AllowedOrigins = cmd.StringSlice("allowed-origin")
	return cfg
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg := configFromFlags(cmd)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger := newLogger(cfg.LogLevel)

	cat, err := catalog.NewFSCatalog(os.DirFS(cfg.Catalog.Dir), catalog.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("load template catalog: %w", err)
	}

	docs, cleanup, err := openStore(cfg.Store)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	api := httpapi.NewServer(cat,
		httpapi.WithLogger(logger),
		httpapi.WithDocumentStore(docs),
		httpapi.WithAllowedOrigins(cfg.AllowedOrigins...),
	)
	defer api.Shutdown()

	server := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("server listening", "addr", cfg.HTTP.Addr())
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	if cfg.Catalog.Watch {
		group.Go(func() error {
			return catalog.Watch(groupCtx, cfg.Catalog.Dir, cat, logger)
		})
	}
	return group.Wait()
}

func openStore(cfg config.Store) (store.DocumentStore, func(), error) {
	switch cfg.Driver {
	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		return store.NewRedisStore(client, ""), func() { client.Close() }, nil
	case config.DriverSQLite:
		s, err := store.OpenSQLite(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	default:
		return store.NewMemoryStore(), nil, nil
	}
}
