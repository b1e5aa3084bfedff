package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lehigh-university-libraries/entryeval/internal/eval/summary"
	"github.com/lehigh-university-libraries/entryeval/internal/evaluation"
)

type createRunRequest struct {
	Name string `json:"name"`
}

func (h *Handler) HandleListRuns(c *gin.Context) {
	runs, err := h.store.ListRuns(c.Request.Context())
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, runs)
}

func (h *Handler) HandleRun(c *gin.Context) {
	id, ok := runID(c)
	if !ok {
		return
	}
	run, err := h.store.Run(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, run)
}

func (h *Handler) HandleRunSummary(c *gin.Context) {
	id, ok := runID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if _, err := h.store.Run(ctx, id); err != nil {
		h.storeError(c, err)
		return
	}
	rows, err := h.store.Rows(ctx, id)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary.Summarize(rows))
}

// HandleCreateRun evaluates the configured inputs and stores the result.
// The body is optional and may only rename the run.
func (h *Handler) HandleCreateRun(c *gin.Context) {
	cfg := *h.cfg
	if c.Request.ContentLength > 0 {
		var req createRunRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.writeError(c, http.StatusBadRequest, "invalid request body", err)
			return
		}
		if req.Name != "" {
			cfg.Name = req.Name
		}
	}

	out, err := evaluation.Execute(&cfg, h.logger)
	if err != nil {
		h.writeError(c, http.StatusInternalServerError, "evaluation failed", err)
		return
	}
	h.metrics.observeRun(out.Run)

	ctx := c.Request.Context()
	id, err := h.store.SaveRun(ctx, out.Run, out.Meta)
	if err != nil {
		h.storeError(c, err)
		return
	}
	stored, err := h.store.Run(ctx, id)
	if err != nil {
		h.storeError(c, err)
		return
	}
	h.logger.Info("Run stored", "run_id", id, "matched", out.Run.Stats.Matched)
	c.JSON(http.StatusCreated, stored)
}
