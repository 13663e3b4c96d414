package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"box-depot/internal/db"
	"box-depot/internal/server"
)

func main() {
	addr := getenvDefault("BXD_ADDR", ":8080")

	build := server.BuildInfo{
		Version: getenvDefault("BXD_VERSION", "dev"),
		Commit:  getenvDefault("BXD_COMMIT", "unknown"),
	}

	// Database
	dsn := getenvDefault("DATABASE_URL", "")
	dbConn, err := server.OpenDB(dsn)
	if err != nil {
		log.Printf("service=backend msg=%q err=%v", "db_connect_failed", err)
		os.Exit(1)
	}
	defer func() { _ = dbConn.Close() }()

	// Run migrations
	log.Printf("service=backend msg=%q", "running_migrations")
	if err := db.RunMigrations(dbConn); err != nil {
		log.Printf("service=backend msg=%q err=%v", "migration_failed", err)
		os.Exit(1)
	}
	log.Printf("service=backend msg=%q", "migrations_complete")

	// Object storage
	minioClient, bucket, err := server.NewMinioClientFromEnv()
	if err != nil {
		log.Printf("service=backend msg=%q err=%v", "minio_connect_failed", err)
		os.Exit(1)
	}

	srv := server.New(server.Config{
		Addr:   addr,
		Build:  build,
		DB:     dbConn,
		Boxes:  server.NewPGBoxStore(dbConn),
		Images: server.NewMinioImageStore(minioClient, bucket),
		Minio:  minioClient,
		Bucket: bucket,
	})

	// Start the HTTP server in a background goroutine so we can listen
	// for OS signals while it runs.
	errCh := make(chan error, 1)
	go func() {
		log.Printf("service=backend msg=%q addr=%s version=%s commit=%s",
			"starting", addr, build.Version, build.Commit)
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	// Block until either a shutdown signal is received or the server fails.
	select {
	case sig := <-sigCh:
		log.Printf("service=backend msg=%q signal=%s", "shutting_down", sig.String())
		// Give the server 5 seconds to finish in-flight requests.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("service=backend msg=%q err=%v", "shutdown_error", err)
			os.Exit(1)
		}
		log.Printf("service=backend msg=%q", "shutdown_complete")
	case err := <-errCh:
		if err != nil {
			log.Printf("service=backend msg=%q err=%v", "server_error", err)
			os.Exit(1)
		}
	}
}

// getenvDefault reads an environment variable and returns a default value
// if not set.
func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
