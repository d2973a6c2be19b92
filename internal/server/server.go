package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/dishly/backend/config"
	"github.com/dishly/backend/internal/router"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	http *http.Server
	db   *gorm.DB
}

// New builds the server from configuration and an open database handle.
func New(cfg *config.Config, db *gorm.DB, s3cfg *config.S3Config) *Server {
	engine := router.SetupRouter(db, cfg, s3cfg)

	return &Server{
		http: &http.Server{
			Addr:    fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
			Handler: engine,
		},
		db: db,
	}
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
