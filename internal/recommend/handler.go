package recommend

import (
	"errors"
	"net/http"

	"smartcart/internal/comatrix"
	"smartcart/internal/ingest"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service     *Service
	ordersPath  string
	orderColumn string
}

func NewHandler(service *Service, ordersPath, orderColumn string) *Handler {
	if orderColumn == "" {
		orderColumn = ingest.DefaultOrderColumn
	}
	return &Handler{
		service:     service,
		ordersPath:  ordersPath,
		orderColumn: orderColumn,
	}
}

type recommendRequest struct {
	Items []string `json:"items"`
}

// --------------------------------------------------
// Interactive recommendation (public)
// --------------------------------------------------
func (h *Handler) Recommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	recs, err := h.service.Recommend(req.Items)
	if err != nil {
		switch {
		case errors.Is(err, ErrCartTooLarge):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrNoModel):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "model not built yet"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	// Empty list signals "no recommendation available".
	if recs == nil {
		recs = []Recommendation{}
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

// --------------------------------------------------
// Model status (public)
// --------------------------------------------------
func (h *Handler) Status(c *gin.Context) {
	m := h.service.Current()
	if m == nil {
		c.JSON(http.StatusOK, gin.H{"loaded": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"loaded":      true,
		"snapshot_id": m.SnapshotID,
		"built_at":    m.BuiltAt,
		"items":       m.Catalog.Len(),
		"orders":      m.OrderCount,
		"sample_n":    m.BuildOpts.SampleN,
	})
}

type buildRequest struct {
	SampleN int   `json:"sample_n"`
	Seed    int64 `json:"seed"`
	Shards  int   `json:"shards"`
}

// --------------------------------------------------
// Admin: rebuild the snapshot from the order dataset
// --------------------------------------------------
func (h *Handler) Build(c *gin.Context) {
	var req buildRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	orders, err := ingest.LoadOrders(h.ordersPath, h.orderColumn)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	model, err := h.service.Build(c.Request.Context(), orders, comatrix.BuildOptions{
		SampleN: req.SampleN,
		Seed:    req.Seed,
		Shards:  req.Shards,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"snapshot_id": model.SnapshotID,
		"orders":      model.OrderCount,
		"items":       model.Catalog.Len(),
		"sample_n":    model.BuildOpts.SampleN,
		"seed":        model.BuildOpts.Seed,
	})
}
