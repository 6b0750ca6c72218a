package artifact

import (
	"context"
	"net/http"

	"smartcart/internal/recommend"

	"github.com/gin-gonic/gin"
)

// RunLister is the read side of the run repository.
type RunLister interface {
	ListRuns(ctx context.Context) ([]RunRecord, error)
}

// BundleLoader fetches a persisted bundle by snapshot ID.
type BundleLoader interface {
	LoadBundle(ctx context.Context, snapshotID string) (*Bundle, error)
}

type Handler struct {
	runs   RunLister
	loader BundleLoader
	models *recommend.Service
}

func NewHandler(runs RunLister, loader BundleLoader, models *recommend.Service) *Handler {
	return &Handler{runs: runs, loader: loader, models: models}
}

// --------------------------------------------------
// Admin: list snapshot builds and their evaluations
// --------------------------------------------------
func (h *Handler) ListRuns(c *gin.Context) {
	records, err := h.runs.ListRuns(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if records == nil {
		records = []RunRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"runs": records})
}

type loadRequest struct {
	SnapshotID string `json:"snapshot_id"`
}

// --------------------------------------------------
// Admin: restore a persisted snapshot as the current model
// --------------------------------------------------
func (h *Handler) LoadModel(c *gin.Context) {
	var req loadRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SnapshotID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "snapshot_id is required"})
		return
	}

	bundle, err := h.loader.LoadBundle(c.Request.Context(), req.SnapshotID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "bundle not found: " + err.Error()})
		return
	}

	model, err := bundle.ToModel()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.models.SetModel(model)
	c.JSON(http.StatusOK, gin.H{
		"snapshot_id": model.SnapshotID,
		"built_at":    model.BuiltAt,
		"items":       model.Catalog.Len(),
		"orders":      model.OrderCount,
	})
}
