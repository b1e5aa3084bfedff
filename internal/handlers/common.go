package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lehigh-university-libraries/entryeval/internal/config"
	"github.com/lehigh-university-libraries/entryeval/internal/storage"
)

type Handler struct {
	store   *storage.Store
	cfg     *config.Config
	metrics *Metrics
	logger  *slog.Logger
}

// New creates the review API handlers. cfg names the inputs POST /api/runs
// evaluates.
func New(store *storage.Store, cfg *config.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:   store,
		cfg:     cfg,
		metrics: NewMetrics(),
		logger:  logger,
	}
}

// Router returns the engine with every route mounted.
func (h *Handler) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthcheck", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	router.GET("/metrics", gin.WrapH(h.metrics.Handler()))

	api := router.Group("/api/runs")
	api.GET("", h.HandleListRuns)
	api.POST("", h.HandleCreateRun)
	api.GET("/:id", h.HandleRun)
	api.GET("/:id/summary", h.HandleRunSummary)
	api.GET("/:id/rows/:pos", h.HandleRow)

	return router
}

func (h *Handler) writeError(c *gin.Context, code int, message string, err error) {
	if code >= http.StatusInternalServerError {
		h.logger.Error(message, "path", c.Request.URL.Path, "err", err)
	}
	c.JSON(code, gin.H{"error": message})
}

// storeError maps a storage error onto a response.
func (h *Handler) storeError(c *gin.Context, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		h.writeError(c, http.StatusNotFound, err.Error(), err)
		return
	}
	h.writeError(c, http.StatusInternalServerError, "database error", err)
}

func runID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return 0, false
	}
	return id, true
}
