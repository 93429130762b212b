/*
Package main is the entry point for the InstaVista server.

It is responsible for loading configuration, initializing the global logging
system, connecting to MongoDB and object storage, starting the real-time
gateway, and gracefully handling operating system interrupt signals
(SIGINT, SIGTERM) to ensure a smooth server shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TaiefArnob/InstaVista/internal/app/db"
	"github.com/TaiefArnob/InstaVista/internal/app/realtime"
	"github.com/TaiefArnob/InstaVista/internal/app/storage"
	"github.com/TaiefArnob/InstaVista/internal/app/store"
	"github.com/TaiefArnob/InstaVista/internal/configs"
	"github.com/TaiefArnob/InstaVista/internal/handler"
	"github.com/TaiefArnob/InstaVista/internal/pkg/logx"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("mongo_database", cfg.MongoDatabase).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mdb, err := db.Connect(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logx.Fatal(err, "Failed to connect to MongoDB")
	}

	storageService, err := storage.NewStorageService(storage.ServiceConfig{
		S3BucketName:      cfg.S3BucketName,
		S3Endpoint:        cfg.S3Endpoint,
		S3AccessKeyID:     cfg.S3AccessKeyID,
		S3SecretAccessKey: cfg.S3SecretAccessKey,
		S3PublicBaseURL:   cfg.S3PublicBaseURL,
	})
	if err != nil {
		logx.Fatal(err, "Failed to initialize object storage")
	}

	users := store.NewUserStore(mdb)
	comments := store.NewCommentStore(mdb, users)
	posts := store.NewPostStore(mdb, users, comments)
	messages := store.NewMessageStore(mdb)

	// Initialize the presence registry and the real-time gateway
	gateway := realtime.NewGateway(realtime.NewRegistry())

	deps := &handler.AppDeps{
		Gateway:        gateway,
		Config:         cfg,
		StorageService: storageService,
		Users:          users,
		Posts:          posts,
		Comments:       comments,
		Messages:       messages,
	}

	router := handler.Router(deps)

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("InstaVista Server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	gateway.Shutdown()

	if err := db.Disconnect(shutdownCtx, mdb); err != nil {
		logx.Error(err, "MongoDB disconnect failed")
	}

	logx.Info("Server gracefully stopped.")
}
