package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/sudhakarreddy2005/heart-disease-Rf-ml/internal/app"
	"github.com/sudhakarreddy2005/heart-disease-Rf-ml/internal/config"
	"github.com/sudhakarreddy2005/heart-disease-Rf-ml/internal/logger"
	"github.com/sudhakarreddy2005/heart-disease-Rf-ml/internal/predict"
	"github.com/sudhakarreddy2005/heart-disease-Rf-ml/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger.Init(cfg.Logger)
	gin.SetMode(cfg.GinMode)

	a, err := app.Open(context.Background(), cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer a.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(cfg, a),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	log.Infof("server listening on :%s", cfg.Port)
	waitForShutdown(srv)
}

func newRouter(cfg *config.Config, a *app.App) *gin.Engine {
	opts := server.Options{ShowConfidence: cfg.Display.ShowConfidence}
	if cfg.EnableDB && a.Pool != nil {
		opts.DB = a.Pool
	}
	if hc, ok := a.Resources.Model.(server.HealthChecker); ok {
		opts.Model = hc
	}
	return server.NewRouter(predict.NewService(a.Resources), opts)
}

func waitForShutdown(srv *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("graceful shutdown failed: %v", err)
	}
}
