// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

package main

import (
	"bufio"
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/gachapoint/gachapoint/internal/access"
	"github.com/gachapoint/gachapoint/internal/command"
	"github.com/gachapoint/gachapoint/internal/command/handlers"
	"github.com/gachapoint/gachapoint/internal/config"
	"github.com/gachapoint/gachapoint/internal/economy"
	"github.com/gachapoint/gachapoint/internal/gacha"
	gachapg "github.com/gachapoint/gachapoint/internal/gacha/postgres"
	"github.com/gachapoint/gachapoint/internal/logging"
	"github.com/gachapoint/gachapoint/internal/observability"
	"github.com/gachapoint/gachapoint/internal/store"
	"github.com/gachapoint/gachapoint/internal/world"
)

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the draw-point server",
		Long: `Start the draw-point server: connect to PostgreSQL, ensure the
registry schema, warm the sign cache, expose metrics and health probes,
and accept admin commands on standard input.`,
		RunE: runServe,
	}

	// Flag defaults mirror the built-in configuration so unchanged flags
	// never shadow values read from the config file.
	d := config.Default()
	cmd.Flags().String("database-url", d.DatabaseURL, "PostgreSQL connection URL (falls back to DATABASE_URL)")
	cmd.Flags().Int("query-timeout", d.QueryTimeoutSeconds, "per-statement storage timeout in seconds")
	cmd.Flags().Int("cache-expire-seconds", d.CacheExpireSeconds, "sign cache TTL in seconds")
	cmd.Flags().String("metrics-addr", d.MetricsAddr, "observability listen address")
	cmd.Flags().String("log-format", d.LogFormat, "log format: json or text")

	return cmd
}

// lifecycle implements command.Lifecycle for the running server. Enable
// and disable flip the coordinator's event gate, mirroring the host
// plugin enable/disable switch; reload re-reads the config file and
// rebuilds the sign cache.
type lifecycle struct {
	coordinator *gacha.Coordinator
	cache       *gacha.SignCache
	reload      func(ctx context.Context) error
}

func (l *lifecycle) Enable(ctx context.Context) error {
	if l.coordinator.Enable() {
		slog.InfoContext(ctx, "draw-point handling enabled")
		return l.cache.Refresh(ctx)
	}
	return nil
}

func (l *lifecycle) Disable(ctx context.Context) error {
	if l.coordinator.Disable() {
		slog.InfoContext(ctx, "draw-point handling disabled")
	}
	return nil
}

func (l *lifecycle) Reload(ctx context.Context) error {
	if err := l.reload(ctx); err != nil {
		return err
	}
	return l.cache.Refresh(ctx)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return oops.Code("CONFIG_INVALID").Wrap(err)
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("database URL is required (flag, config file, or DATABASE_URL)")
	}

	logging.SetDefault(logging.Options{
		Service: "gachapoint",
		Version: version,
		Format:  cfg.LogFormat,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := store.Connect(ctx, cfg.DatabaseURL, cfg.QueryTimeout())
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").Wrap(err)
	}
	defer pool.Close()

	repo := gachapg.NewDrawPointRepository(pool, cfg.QueryTimeout())
	if err := repo.Initialize(ctx); err != nil {
		return oops.Code("SCHEMA_ENSURE_FAILED").Wrap(err)
	}

	cache := gacha.NewSignCache(repo, cfg.CacheTTL())
	if err := cache.Refresh(ctx); err != nil {
		// A cold cache self-heals on the next query; do not block startup.
		slog.WarnContext(ctx, "initial cache warm failed", "error", err)
	}

	pending := gacha.NewPendingBinds()
	worldState := world.NewMemory()
	ledger := economy.NewMemoryLedger(cfg.CurrencySymbol)
	ac := access.NewStaticAccessControl()

	coordinator := gacha.NewCoordinator(gacha.CoordinatorConfig{
		Repo:      repo,
		Cache:     cache,
		Pending:   pending,
		Economy:   ledger,
		World:     worldState,
		Messenger: worldState,
		Access:    ac,
		Signs:     cfg.SignFormat(),
		Messages:  cfg.Messages(),
	})

	lc := &lifecycle{
		coordinator: coordinator,
		cache:       cache,
		reload: func(ctx context.Context) error {
			reloaded, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				return oops.Code("CONFIG_INVALID").Wrap(err)
			}
			// Message and sign templates take effect on restart; the
			// cache TTL and timeouts from the new file are logged so the
			// operator can confirm what changed.
			slog.InfoContext(ctx, "configuration reloaded",
				"cache_expire_seconds", reloaded.CacheExpireSeconds,
				"query_timeout_seconds", reloaded.QueryTimeoutSeconds,
			)
			return nil
		},
	}

	registry := command.NewRegistry()
	handlers.RegisterAll(registry)
	dispatcher, err := command.NewDispatcher(registry, ac)
	if err != nil {
		return err
	}

	obs := observability.NewServer(cfg.MetricsAddr, func() bool {
		return pool.Ping(ctx) == nil
	})
	obsErrCh, err := obs.Start()
	if err != nil {
		return oops.Code("OBSERVABILITY_START_FAILED").Wrap(err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = obs.Stop(shutdownCtx)
	}()

	// The console actor is the local operator.
	consoleActor := ulid.Make()
	ac.AssignRole("actor:"+consoleActor.String(), "operator")

	services := &command.Services{
		Coordinator: coordinator,
		Lifecycle:   lc,
		Messages:    cfg.Messages(),
	}

	slog.InfoContext(ctx, "server started",
		"metrics_addr", obs.Addr(),
		"cache_ttl", cfg.CacheTTL().String(),
	)

	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		runConsole(ctx, dispatcher, services, consoleActor)
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	case err := <-obsErrCh:
		if err != nil {
			return oops.Code("OBSERVABILITY_FAILED").Wrap(err)
		}
	case <-consoleDone:
		slog.Info("console closed")
	}

	coordinator.HandleSessionEnd(consoleActor)
	return nil
}

// runConsole reads admin commands from stdin until EOF or cancellation
// and dispatches them as the console actor.
func runConsole(ctx context.Context, d *command.Dispatcher, services *command.Services, actor ulid.ULID) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		exec := &command.Execution{
			Actor:     actor,
			ActorName: "console",
			Output:    os.Stdout,
			Services:  services,
		}
		if err := d.Dispatch(ctx, line, exec); err != nil {
			if _, werr := os.Stdout.WriteString(command.PlayerMessage(err) + "\n"); werr != nil {
				slog.WarnContext(ctx, "failed to write console output", "error", werr)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		slog.WarnContext(ctx, "console read failed", "error", err)
	}
}
