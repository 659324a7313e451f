// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillboard Contributors

package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/quillboard/quillboard/internal/account"
	accountpg "github.com/quillboard/quillboard/internal/account/postgres"
	accountredis "github.com/quillboard/quillboard/internal/account/redis"
	"github.com/quillboard/quillboard/internal/config"
	"github.com/quillboard/quillboard/internal/graphql"
	"github.com/quillboard/quillboard/internal/logging"
	"github.com/quillboard/quillboard/internal/observability"
	"github.com/quillboard/quillboard/internal/post"
	postpg "github.com/quillboard/quillboard/internal/post/postgres"
	"github.com/quillboard/quillboard/internal/store"
	"github.com/quillboard/quillboard/pkg/errutil"
)

const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the GraphQL API server",
		Long: `Start the Quillboard server: applies pending database migrations,
then serves the GraphQL API and the observability endpoints until
interrupted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	// Flag names mirror config keys so posflag can overlay them.
	cmd.Flags().String("server.listen_addr", "", "GraphQL listen address")
	cmd.Flags().String("server.metrics_addr", "", "metrics/health HTTP address (empty = disabled)")
	cmd.Flags().String("server.cors_origin", "", "allowed browser origin")
	cmd.Flags().String("database.url", "", "PostgreSQL connection URL")
	cmd.Flags().String("redis.url", "", "Redis connection URL")
	cmd.Flags().String("log.format", "", "log format (json or text)")

	return cmd
}

func runServe(ctx context.Context, cfg config.Config) error {
	logging.SetDefault("quillboard", version, cfg.Log.Format)

	slog.Info("starting server",
		"listen_addr", cfg.Server.ListenAddr,
		"metrics_addr", cfg.Server.MetricsAddr,
		"log_format", cfg.Log.Format,
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := store.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer pool.Close()
	slog.Info("connected to database")

	// Apply pending migrations on boot, mirroring the migrate command.
	migrator, err := store.NewMigrator(cfg.Database.URL)
	if err != nil {
		return err
	}
	if err := migrator.Up(); err != nil {
		_ = migrator.Close() //nolint:errcheck // migration error takes precedence
		return err
	}
	if err := migrator.Close(); err != nil {
		return err
	}
	slog.Info("database schema up to date")

	sessions, err := accountredis.New(ctx, cfg.Redis.URL, cfg.Session.TTL)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := sessions.Close(); closeErr != nil {
			slog.Debug("error closing session store", "error", closeErr)
		}
	}()
	slog.Info("connected to session store")

	accountSvc, err := account.NewService(
		accountpg.NewAccountRepository(pool),
		sessions,
		account.NewArgon2idHasher(),
	)
	if err != nil {
		return err
	}

	postSvc, err := post.NewService(postpg.NewPostRepository(pool))
	if err != nil {
		return err
	}

	var metrics *observability.Metrics
	var obsServer *observability.Server
	if cfg.Server.MetricsAddr != "" {
		obsServer = observability.NewServer(cfg.Server.MetricsAddr, func(ctx context.Context) bool {
			return pool.Ping(ctx) == nil && sessions.Ping(ctx) == nil
		})
		metrics = obsServer.Metrics()
	}

	resolver, err := graphql.NewResolver(accountSvc, postSvc, metrics)
	if err != nil {
		return err
	}

	sessionMgr := graphql.NewSessionManager(sessions, cfg.Session.CookieName, cfg.Session.TTL)
	apiServer, err := graphql.NewServer(graphql.ServerConfig{
		Addr:       cfg.Server.ListenAddr,
		CORSOrigin: cfg.Server.CORSOrigin,
	}, resolver, sessionMgr, metrics, slog.Default())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if obsServer != nil {
		obsErrCh, err := obsServer.Start()
		if err != nil {
			return err
		}
		go monitorServerErrors(ctx, cancel, obsErrCh, "observability")
	}

	apiErrCh, err := apiServer.Start()
	if err != nil {
		if obsServer != nil {
			stopServer(obsServer.Stop)
		}
		return err
	}
	go monitorServerErrors(ctx, cancel, apiErrCh, "graphql")

	<-ctx.Done()
	slog.Info("shutting down")

	stopServer(apiServer.Stop)
	if obsServer != nil {
		stopServer(obsServer.Stop)
	}

	return nil
}

// monitorServerErrors cancels the run context when a server reports a
// fatal error after startup.
func monitorServerErrors(ctx context.Context, cancel context.CancelFunc, errCh <-chan error, name string) {
	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			errutil.LogError(slog.Default(), name+" server failed", err)
			cancel()
		}
	case <-ctx.Done():
	}
}

func stopServer(stop func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := stop(ctx); err != nil {
		errutil.LogError(slog.Default(), "server shutdown failed", err)
	}
}
