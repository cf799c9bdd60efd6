// Package server boots and runs the HTTP application.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	"github.com/aldeanavidad/tienda/app/routes"
	"github.com/aldeanavidad/tienda/app/services"
	"github.com/aldeanavidad/tienda/config"
	"github.com/aldeanavidad/tienda/pkg/auth"
	"github.com/aldeanavidad/tienda/pkg/cache"
	"github.com/aldeanavidad/tienda/pkg/database"
	"github.com/aldeanavidad/tienda/pkg/event"
	"github.com/aldeanavidad/tienda/pkg/logger"
	"github.com/aldeanavidad/tienda/pkg/metrics"
	"github.com/aldeanavidad/tienda/pkg/middleware"
	"github.com/aldeanavidad/tienda/pkg/migration"
	"github.com/aldeanavidad/tienda/pkg/reqid"
	"github.com/aldeanavidad/tienda/pkg/router"
	"github.com/aldeanavidad/tienda/pkg/storage"
	"github.com/aldeanavidad/tienda/pkg/ws"
)

// Server holds the application's long-lived pieces.
type Server struct {
	db     *gorm.DB
	hub    *ws.Hub
	router *router.Router
	http   *http.Server
}

// New wires the whole application: config, secret check, database,
// migrations, cache, storage, live feed, routes.
func New() (*Server, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("server: load config: %w", err)
	}

	// A missing JWT secret must stop the boot, not surface later as
	// unverifiable tokens.
	if err := auth.CheckSecret(); err != nil {
		return nil, err
	}

	db, err := database.Connect()
	if err != nil {
		return nil, fmt.Errorf("server: database: %w", err)
	}

	if err := migration.New(db).Run(); err != nil {
		return nil, err
	}

	// Cache is best-effort: the storefront works without Redis.
	if err := cache.Connect(); err != nil {
		logger.Warn("server: cache disabled", "error", err)
	}

	storage.Connect()

	hub := ws.NewHub()
	go hub.Run()

	// Every committed checkout is pushed to the admin live feed.
	event.Listen(services.EventOrderCreated, func(payload interface{}) {
		hub.BroadcastJSON(map[string]interface{}{
			"tipo":   "pedido.creado",
			"pedido": payload,
		})
	})

	r := router.New()
	r.Use(
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		metrics.Middleware(),
	)

	routes.Register(r, db, hub)

	// Uploaded images from the local disk.
	if root := storage.LocalRoot(); root != "" {
		r.Mount("/uploads", http.StripPrefix("/uploads", http.FileServer(http.Dir(root))))
	}

	return &Server{
		db:     db,
		hub:    hub,
		router: r,
		http: &http.Server{
			Addr:              ":" + config.AppPort(),
			Handler:           r.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// DB exposes the database handle for CLI commands.
func (s *Server) DB() *gorm.DB { return s.db }

// Router exposes the route table for route:list.
func (s *Server) Router() *router.Router { return s.router }

// Run serves HTTP until SIGINT/SIGTERM, then drains for up to 10s.
func (s *Server) Run() error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", s.http.Addr, "env", config.AppEnv())
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("server: shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}

	event.Flush()
	cache.Disconnect()
	if sqlDB, err := s.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}
