// Package server exposes the prediction form over HTTP: an HTML page for
// people and a JSON API for programs.
package server

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sudhakarreddy2005/heart-disease-Rf-ml/internal/artifact"
	"github.com/sudhakarreddy2005/heart-disease-Rf-ml/internal/patient"
	"github.com/sudhakarreddy2005/heart-disease-Rf-ml/internal/predict"
)

//go:embed templates
var assets embed.FS

type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Predictor is the request-path view of predict.Service.
type Predictor interface {
	Predict(ctx context.Context, form patient.Form) (*predict.Prediction, error)
	Info() artifact.Info
}

type Options struct {
	ShowConfidence bool
	// DB and Model are optional readiness dependencies.
	DB    HealthChecker
	Model HealthChecker
}

type handler struct {
	svc  Predictor
	opts Options
}

func NewRouter(svc Predictor, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(
		requestID(),
		accessLog(),
		gin.Recovery(),
		limitBodySize(1<<20), // 1MB max body
		cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", headerRequestID},
			MaxAge:       12 * time.Hour,
		}),
	)

	router.SetHTMLTemplate(template.Must(template.ParseFS(assets, "templates/*.html")))
	static, err := fs.Sub(assets, "templates/static")
	if err != nil {
		panic(fmt.Sprintf("static assets: %v", err))
	}
	router.StaticFS("/static", http.FS(static))

	h := &handler{svc: svc, opts: opts}

	router.GET("/", h.index)
	router.POST("/predict", h.submit)

	api := router.Group("/api/v1")
	api.GET("/schema", h.schema)
	api.POST("/predict", h.predictJSON)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/readyz", h.ready)

	return router
}

func (h *handler) ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	body := gin.H{"status": "ok", "model": h.svc.Info().Kind, "db": "disabled"}
	status := http.StatusOK

	if h.opts.DB != nil {
		body["db"] = "ok"
		if err := h.opts.DB.Ping(ctx); err != nil {
			body["db"] = fmt.Sprintf("unhealthy: %v", err)
			body["status"] = "degraded"
			status = http.StatusServiceUnavailable
		}
	}
	if h.opts.Model != nil {
		if err := h.opts.Model.Ping(ctx); err != nil {
			body["model_status"] = fmt.Sprintf("unhealthy: %v", err)
			body["status"] = "degraded"
			status = http.StatusServiceUnavailable
		}
	}

	c.JSON(status, body)
}

func (h *handler) schema(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"fields":          patient.Fields(),
		"columns":         patient.ColumnNames(),
		"model":           h.svc.Info(),
		"show_confidence": h.opts.ShowConfidence,
	})
}
