package evaluate

import (
	"errors"
	"net/http"

	"smartcart/internal/ingest"
	"smartcart/internal/recommend"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service     *Service
	testPath    string
	cartColumn  string
	truthColumn string
}

func NewHandler(service *Service, testPath, cartColumn, truthColumn string) *Handler {
	return &Handler{
		service:     service,
		testPath:    testPath,
		cartColumn:  cartColumn,
		truthColumn: truthColumn,
	}
}

// --------------------------------------------------
// Admin: run the batch evaluation on the test dataset
// --------------------------------------------------
func (h *Handler) Run(c *gin.Context) {
	rows, err := ingest.LoadTestRows(h.testPath, h.cartColumn, h.truthColumn)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	report, err := h.service.Run(c.Request.Context(), rows)
	if err != nil {
		if errors.Is(err, recommend.ErrNoModel) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "model not built yet"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rows":           report.RowCount,
		"recall_at_3":    report.Recall3,
		"precision_at_3": report.Precision3,
		"top1_accuracy":  report.Top1,
		"empty_carts":    report.EmptyCarts,
	})
}
