package ledger

import (
	"net/http"
	"strconv"

	"warungpos/internal/money"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	ledger *Ledger
}

func NewHandler(l *Ledger) *Handler {
	return &Handler{ledger: l}
}

// --------------------------------------------------
// GET /reports/sales?limit=5
// --------------------------------------------------
func (h *Handler) Sales(c *gin.Context) {
	limit := DefaultBestSellerLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	summary := h.ledger.Summary(limit)

	resp := gin.H{
		"summary": summary,
		"display": gin.H{
			"total_sales":         money.Format(summary.TotalSales),
			"average_order_value": money.Format(summary.AverageOrderValue),
		},
	}
	if summary.NoData {
		resp["message"] = "No sales data yet"
	}

	c.JSON(http.StatusOK, resp)
}
