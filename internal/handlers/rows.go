package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lehigh-university-libraries/entryeval/internal/models"
	"github.com/lehigh-university-libraries/entryeval/internal/storage"
)

// HandleRow serves one row of a run by its 0-based position.
func (h *Handler) HandleRow(c *gin.Context) {
	id, ok := runID(c)
	if !ok {
		return
	}
	pos, err := strconv.Atoi(c.Param("pos"))
	if err != nil || pos < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid row position"})
		return
	}

	row, err := h.store.Row(c.Request.Context(), id, pos)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.metrics.observeLookup("not_found")
		} else {
			h.metrics.observeLookup("error")
		}
		h.storeError(c, err)
		return
	}
	h.metrics.observeLookup("found")
	c.JSON(http.StatusOK, models.NewRowDetail(id, pos, row))
}
