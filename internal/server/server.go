package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/valentinpelus/faqbot/internal/handler"
	"github.com/valentinpelus/faqbot/internal/middleware"
	"github.com/valentinpelus/faqbot/internal/processor"
)

// Server wraps the HTTP server
type Server struct {
	port           string
	chatHandler    *handler.ChatHandler
	adminHandler   *handler.AdminHandler
	authMiddleware *middleware.AuthMiddleware
	logger         *zap.Logger
	httpServer     *http.Server
}

// New creates a new HTTP server
func New(port string, authToken string, chatProcessor *processor.ChatProcessor, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		port:           port,
		chatHandler:    handler.NewChatHandler(chatProcessor, logger),
		adminHandler:   handler.NewAdminHandler(chatProcessor, logger),
		authMiddleware: middleware.NewAuthMiddleware(authToken),
		logger:         logger.Named("server"),
	}
	s.httpServer = &http.Server{
		Addr:              ":" + port,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Routes builds the router
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", handler.HandleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", s.chatHandler.HandleChat)
		r.Post("/feedback", s.chatHandler.HandleFeedback)
		r.Get("/stats", s.chatHandler.HandleStats)
		r.Get("/analysis", s.chatHandler.HandleAnalysis)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware.Handler)
			r.Get("/feedback/export", s.adminHandler.HandleExport)
			r.Post("/feedback/import", s.adminHandler.HandleImport)
			r.Post("/kb/refresh", s.adminHandler.HandleRefreshKnowledge)
		})
	})

	return r
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
