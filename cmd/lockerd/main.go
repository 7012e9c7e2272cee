package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"locker-admin-backend/config"
	"locker-admin-backend/internal/api"
	"locker-admin-backend/internal/db"
	"locker-admin-backend/internal/notification"
	"locker-admin-backend/internal/stats"
	"locker-admin-backend/internal/store"
	"locker-admin-backend/internal/watch"
)

func main() {
	logger := log.New(os.Stdout, "lockerd ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	if cfg.Push.PublicKey == "" || cfg.Push.PrivateKey == "" {
		logger.Fatalf("VAPID keys must be configured. Please generate them and add them to your config file.")
	}

	webpushOptions := webpush.Options{
		VAPIDPublicKey:  cfg.Push.PublicKey,
		VAPIDPrivateKey: cfg.Push.PrivateKey,
		Subscriber:      cfg.Push.Subject,
		TTL:             cfg.Push.TTL,
	}

	// Push-subscription registry (the only local persistence).
	registry, err := db.Init(&cfg.Registry)
	if err != nil {
		logger.Fatalf("failed to initialize registry database: %v", err)
	}
	logger.Println("registry database initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Document store client, constructed once and injected everywhere.
	client, err := store.Connect(ctx, &cfg.Mongo)
	if err != nil {
		logger.Fatalf("failed to connect to document store: %v", err)
	}
	appStore := store.NewMongoStore(client, &cfg.Mongo)
	logger.Println("document store connected")

	mongoDB := client.Database(cfg.Mongo.Database)
	lockerWatcher := watch.New("lockers",
		watch.CollectionOpener(mongoDB.Collection(cfg.Mongo.LockersCollection)),
		appStore.Lockers)
	reservationWatcher := watch.New("reservations",
		watch.CollectionOpener(mongoDB.Collection(cfg.Mongo.ReservationsCollection)),
		appStore.Reservations)

	tracker := stats.NewTracker()

	if cfg.Watcher.Enabled {
		go lockerWatcher.Run(ctx)
		go reservationWatcher.Run(ctx)

		reservationFeed, _ := reservationWatcher.Subscribe()
		go tracker.Run(ctx, reservationFeed)

		workerPool := notification.NewWorkerPool(cfg.WorkerPool.Size, registry, &webpushOptions)
		workerPool.Start(ctx)
		monitor := notification.NewMonitor(workerPool, cfg.Watcher.AlertStatuses)
		lockerFeed, _ := lockerWatcher.Subscribe()
		go monitor.Run(ctx, lockerFeed)
	} else {
		logger.Println("Watcher is disabled. Serving writes only; snapshots will stay empty.")
	}

	router := api.NewRouter(&cfg.Server, appStore, lockerWatcher, tracker, registry, &webpushOptions)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		logger.Printf("document store disconnect: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
