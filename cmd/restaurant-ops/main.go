package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurant-ops/internal/bootstrap"
	"restaurant-ops/internal/common/logger"
	"restaurant-ops/internal/common/mq"
	"restaurant-ops/internal/config"
	"restaurant-ops/internal/httpapi"
	"restaurant-ops/internal/kitchen"
	"restaurant-ops/internal/menu"
	"restaurant-ops/internal/notify"
	"restaurant-ops/internal/restaurant"
	"restaurant-ops/internal/restocklog"
	"restaurant-ops/internal/snapshot"
	"restaurant-ops/internal/staff"
)

// eventStream is what a notifier must offer: order status changes for
// the servers and restock requests for the kitchen.
type eventStream interface {
	staff.Events
	kitchen.RequestSink
}

// multiSink fans a restock request out to the request log and, when the
// broker is up, the event stream.
type multiSink []kitchen.RequestSink

func (m multiSink) Request(ingredient string, quantity, threshold int) error {
	var errs []error
	for _, s := range m {
		if err := s.Request(ingredient, quantity, threshold); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func main() {
	cfgPath := flag.String("config", "", "path to config file (probes config.yaml when empty)")
	port := flag.Int("port", 0, "http port, overrides config")
	dataDir := flag.String("data-dir", "", "directory for catalog files and the request log, overrides config")
	flag.Parse()

	lg := logger.New("restaurant-ops")

	if *cfgPath == "" {
		*cfgPath = config.FindConfig()
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		lg.Error("config_load_failed", err, map[string]any{"path": *cfgPath})
		os.Exit(1)
	}
	if *port != 0 {
		cfg.HTTP.Port = *port
	}
	if *dataDir != "" {
		cfg.Data.Dir = *dataDir
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, lg); err != nil {
		lg.Error("fatal", err, nil)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, lg *logger.Logger) error {
	if err := bootstrap.CreateConfiguration(cfg.Data.Dir); err != nil {
		return fmt.Errorf("bootstrap data files: %w", err)
	}
	catalog, err := menu.Load(bootstrap.FoodPath(cfg.Data.Dir), bootstrap.PricePath(cfg.Data.Dir))
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	requests := restocklog.New(bootstrap.RequestLogPath(cfg.Data.Dir))

	var events eventStream = notify.Nop{}
	if cfg.RabbitMQ.Enabled {
		client, err := mq.Dial(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
		if err != nil {
			return fmt.Errorf("connect rabbitmq: %w", err)
		}
		defer client.Close()
		if err := client.DeclareAll(); err != nil {
			return fmt.Errorf("declare exchanges: %w", err)
		}
		events = notify.NewPublisher(client, lg)
		lg.Info("rabbitmq_connected", "publishing lifecycle events", map[string]any{"host": cfg.RabbitMQ.Host})
	}

	sink := multiSink{requests, events}
	rest := restaurant.New(catalog, sink, requests, events, lg)

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	state, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if state != nil {
		rest.Restore(state)
		lg.Info("snapshot_restored", "resumed previous state",
			map[string]any{"orders": len(state.Orders), "revenue": state.Revenue})
	}

	handler := httpapi.NewRouter(httpapi.NewHandler(rest, lg))
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("service_started", "http server listening", map[string]any{"port": cfg.HTTP.Port})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("shutdown_failed", err, nil)
	}

	rest.Lock()
	state = rest.Snapshot()
	revenue := rest.Revenue()
	rest.Unlock()
	if err := store.Save(shutdownCtx, state); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	lg.Info("service_stopped", "state saved", map[string]any{"revenue": revenue})
	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (snapshot.Store, error) {
	switch cfg.Snapshot.Driver {
	case "postgres":
		store, err := snapshot.NewPGStore(ctx, cfg.Database.Host, cfg.Database.Port,
			cfg.Database.User, cfg.Database.Password, cfg.Database.Database)
		if err != nil {
			return nil, fmt.Errorf("open postgres snapshot store: %w", err)
		}
		return store, nil
	case "", "file":
		return snapshot.NewFileStore(cfg.Snapshot.Path), nil
	default:
		return nil, fmt.Errorf("unknown snapshot driver %q", cfg.Snapshot.Driver)
	}
}
