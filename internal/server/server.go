package server

import (
	"context"
	"database/sql"
	"net"
	"net/http"
	"time"

	"github.com/minio/minio-go/v7"
)

// BuildInfo carries version metadata surfaced by the health endpoint.
type BuildInfo struct {
	Version string
	Commit  string
}

type Config struct {
	Addr  string // e.g. ":8080"
	Build BuildInfo

	DB     *sql.DB
	Boxes  BoxStore
	Images ImageStore

	// Minio/Bucket are only consulted by the health endpoint; the
	// request path goes through the Images port.
	Minio  *minio.Client
	Bucket string
}

type Server struct {
	httpServer *http.Server

	db          *sql.DB
	minioClient *minio.Client
	bucketName  string
	version     string
}

func New(cfg Config) *Server {
	s := &Server{
		db:          cfg.DB,
		minioClient: cfg.Minio,
		bucketName:  cfg.Bucket,
		version:     cfg.Build.Version,
	}

	mux := http.NewServeMux()
	mux.Handle("/status", statusHandler())
	mux.HandleFunc("/health", s.HandleHealth)
	mux.Handle("/boxes", cfg.createBoxHandler())
	mux.Handle("/images/", cfg.getImageHandler())

	// Wrap middleware: requestID -> logging -> mux
	var handler http.Handler = mux
	handler = loggingMiddleware(handler)
	handler = requestIDMiddleware(handler)

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// Handler exposes the full middleware-wrapped handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.httpServer.Serve(ln)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
