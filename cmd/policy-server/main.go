package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/iam-policy-generator/internal/audit"
	"github.com/iam-policy-generator/internal/auth"
	"github.com/iam-policy-generator/internal/catalog"
	"github.com/iam-policy-generator/internal/config"
	"github.com/iam-policy-generator/internal/server"
)

func main() {
	flags := pflag.NewFlagSet("policy-server", pflag.ExitOnError)
	configPath := flags.String("config", "", "Path to generator configuration file (defaults apply when empty)")
	port := flags.Int("port", 0, "Override server.port from the configuration")
	flags.Parse(os.Args[1:])

	cfg := config.DefaultGeneratorConfig()
	if *configPath != "" {
		loaded, err := config.LoadGeneratorConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		cfg = loaded
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	log.Printf("Starting IAM policy generator on port %d (catalog %s)", cfg.Server.Port, catalog.Version)

	// A nil key store leaves the API unauthenticated
	var keys auth.KeyStore
	if cfg.CredentialsFile != "" {
		store, err := auth.NewInMemoryKeyStore(cfg.CredentialsFile)
		if err != nil {
			log.Fatalf("Failed to initialize key store: %v", err)
		}
		keys = store
		log.Printf("Loaded API keys from %s", cfg.CredentialsFile)
	} else {
		log.Printf("No credentialsFile configured, API authentication disabled")
	}

	auditLogger, err := audit.NewLogger(&cfg.Audit)
	if err != nil {
		log.Fatalf("Failed to initialize audit logger: %v", err)
	}
	defer auditLogger.Close()
	if cfg.Audit.Enabled {
		log.Printf("Audit logging enabled, output: %s", cfg.Audit.Output)
	}

	handler := server.New(catalog.Default(), keys, auditLogger, cfg.Server.MaxBodyBytes)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// SIGHUP reloads API keys
	reload := make(chan os.Signal, 1)
	signal.Notify(reload, syscall.SIGHUP)

wait:
	for {
		select {
		case <-reload:
			if keys == nil {
				continue
			}
			if err := keys.Reload(); err != nil {
				log.Printf("Failed to reload API keys: %v", err)
			} else {
				log.Printf("Reloaded API keys from %s", cfg.CredentialsFile)
			}
		case <-quit:
			break wait
		}
	}

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
