// Package server exposes schedule generation over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/homeplan/internal/constants"
	"github.com/julianstephens/homeplan/internal/logger"
	"github.com/julianstephens/homeplan/internal/storage"
)

func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/healthcheck", HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/profiles", h.SaveProfile)
		api.GET("/profiles/:id", h.GetProfile)
		api.POST("/profiles/:id/schedule", h.GenerateSchedule)
		api.GET("/profiles/:id/schedule", h.GetSchedule)
		api.GET("/profiles/:id/insights", h.GetInsights)
		api.GET("/profiles/:id/reminders", h.GetReminders)
	}
	return router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status())
	}
}

// Run serves the API on addr until ctx is canceled, then shuts down
// gracefully.
func Run(ctx context.Context, store storage.Provider, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: NewRouter(NewHandler(store)),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	logger.Info("http server shutting down")
	return srv.Shutdown(shutdownCtx)
}
