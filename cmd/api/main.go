package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"kleanly/internal/cart"
	"kleanly/internal/checkout"
	"kleanly/internal/config"
	"kleanly/internal/db"
	"kleanly/internal/httpserver"
	"kleanly/internal/notify"
	"kleanly/internal/orderapi"
	"kleanly/internal/payment"
	"kleanly/internal/redisx"
	catalogrepo "kleanly/internal/repository/catalog"
	"kleanly/internal/tracker"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	rdb := redisx.New(cfg.RedisAddr)
	if rdb != nil {
		defer rdb.Close()
	}

	notifier := notify.New(cfg.KafkaBrokers, cfg.NotifyTopic, logger)
	defer notifier.Close()

	catalogRepo := catalogrepo.NewPostgres(dbpool)
	carts := cart.NewManager()
	flows := payment.NewRegistry(payment.Config{
		CashProcessingDelay:  cfg.CashProcessingDelay,
		MpesaProcessingDelay: cfg.MpesaProcessingDelay,
		SuccessLinger:        cfg.SuccessLinger,
		MpesaCountdown:       cfg.MpesaCountdown,
	})
	orderClient := orderapi.New(cfg.OrderAPIBaseURL, cfg.OrderAPIToken, logger)
	checkoutSvc := checkout.New(carts, flows, orderClient, rdb, notifier, logger)
	trackerSvc := tracker.New(orderClient, rdb, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Catalog:  catalogRepo,
		Carts:    carts,
		Checkout: checkoutSvc,
		Flows:    flows,
		Tracker:  trackerSvc,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
