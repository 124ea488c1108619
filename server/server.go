// Package server assembles the HTTP server.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/lehuyanh/trogiang/internal/profile"
	"github.com/lehuyanh/trogiang/plugin/ai/persona"
	"github.com/lehuyanh/trogiang/server/ai"
	apiv1 "github.com/lehuyanh/trogiang/server/router/api/v1"
	"github.com/lehuyanh/trogiang/server/service/chat"
	"github.com/lehuyanh/trogiang/store"
)

type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
}

func NewServer(ctx context.Context, profile *profile.Profile, store *store.Store, llm ai.ChatService) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.Gzip())
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout:      2 * time.Minute,
		ErrorMessage: "request timeout",
	}))

	s := &Server{
		Profile:    profile,
		Store:      store,
		echoServer: e,
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "Service ready.")
	})

	profiles := persona.NewService(store)
	learner := persona.NewLearner(profiles, persona.NewKeywordDetector())
	chatService := chat.NewService(store, llm, profiles, learner)

	rootGroup := e.Group("/api/v1")
	apiV1Service := apiv1.NewAPIV1Service(profile, store, chatService, profiles)
	apiV1Service.RegisterRoutes(rootGroup)

	return s, nil
}

func (s *Server) Start(ctx context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	slog.Info("server started", "address", address, "mode", s.Profile.Mode, "version", s.Profile.Version)
	if err := s.echoServer.Start(address); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "failed to start echo server")
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}
	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close database", "error", err)
	}
	slog.Info("server shutdown")
}
