package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"quickbite/internal/api"
	"quickbite/internal/auth"
	"quickbite/internal/config"
	"quickbite/internal/database"
	"quickbite/internal/feed"
	"quickbite/internal/logging"
	"quickbite/internal/models"
	"quickbite/internal/monitoring"
	"quickbite/internal/ordering"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	configFile  = pflag.StringP("config", "c", "configs/config.yaml", "Path to configuration file")
	port        = pflag.Int("port", 0, "API server port (overrides server.port)")
	metricsPort = pflag.Int("metrics-port", 0, "Metrics server port (overrides server.metrics_port)")
)

func main() {
	pflag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "quickbite: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return err
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort != 0 {
		cfg.Server.MetricsPort = *metricsPort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer logger.Sync()

	gin.SetMode(gin.ReleaseMode)

	catalog, err := models.LoadMenu(cfg.Menu.Path)
	if err != nil {
		return fmt.Errorf("loading menu: %w", err)
	}
	if catalog.Len() == 0 {
		logger.Warn("menu is empty", zap.String("path", cfg.Menu.Path))
	}

	monitor := monitoring.NewMonitor(cfg.Ordering.SlotCapacity)
	hub := feed.NewHub(logger.Named("feed"))
	defer hub.Close()
	observers := []ordering.Observer{monitor, hub}

	deps := api.Deps{
		Catalog: catalog,
		Feed:    hub.Handle,
		Logger:  logger.Named("http"),
	}

	if cfg.Database.Enabled {
		db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN, cfg.Database.LogSQL)
		if err != nil {
			return err
		}
		journal := database.NewJournal(db, logger.Named("journal"))
		defer journal.Close()
		observers = append(observers, journal)
		deps.History = journal
		logger.Info("order journal enabled", zap.String("driver", cfg.Database.Driver))
	}

	base, perItem, perAhead := cfg.Kitchen.PrepDurations()
	deps.Orders = ordering.New(
		ordering.WithCapacity(cfg.Ordering.SlotCapacity),
		ordering.WithEstimator(ordering.Estimator{Base: base, PerItem: perItem, PerOrderAhead: perAhead}),
		ordering.WithObserver(observers...),
		ordering.WithLogger(logger.Named("ordering")),
	)

	deps.Users = auth.NewDirectory(cfg.Auth.BcryptCost)
	admin := cfg.Auth.Admin
	if _, err := deps.Users.SeedAdmin(admin.StudentID, admin.Name, admin.Email, admin.Password); err != nil {
		return fmt.Errorf("creating administrator: %w", err)
	}
	deps.Tokens = auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: api.NewAPI(deps).Router,
	}

	metricsRouter := gin.New()
	metricsRouter.Use(gin.Recovery())
	metricsRouter.GET("/metrics", gin.WrapH(monitor.Handler()))
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: metricsRouter,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting API server", zap.Int("port", cfg.Server.Port), zap.Int("menu_items", catalog.Len()))
		return serve(server)
	})
	g.Go(func() error {
		logger.Info("starting metrics server", zap.Int("port", cfg.Server.MetricsPort))
		return serve(metricsServer)
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down servers")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return errors.Join(server.Shutdown(shutdownCtx), metricsServer.Shutdown(shutdownCtx))
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return err
	}
	logger.Info("servers stopped", zap.Int("orders", deps.Orders.Total()))
	return nil
}

// serve runs srv until it is shut down.
func serve(srv *http.Server) error {
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s: %w", srv.Addr, err)
	}
	return nil
}
