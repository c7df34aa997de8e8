package menu

import (
	"net/http"
	"strconv"

	"warungpos/internal/poserr"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// GET /menu
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.service.List()})
}

// --------------------------------------------------
// GET /menu/:id
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	id, ok := itemIDParam(c)
	if !ok {
		return
	}

	view, err := h.service.Get(id)
	if err != nil {
		c.JSON(poserr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

// --------------------------------------------------
// POST /inventory/:id/restock
// --------------------------------------------------
func (h *Handler) Restock(c *gin.Context) {
	id, ok := itemIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	view, err := h.service.Restock(c.Request.Context(), id, req.Quantity)
	if err != nil {
		c.JSON(poserr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

// --------------------------------------------------
// PUT /inventory/:id/stock
// --------------------------------------------------
func (h *Handler) SetStock(c *gin.Context) {
	id, ok := itemIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Stock *int `json:"stock"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Stock == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stock is required"})
		return
	}

	view, err := h.service.SetStock(c.Request.Context(), id, *req.Stock)
	if err != nil {
		c.JSON(poserr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

// --------------------------------------------------
// GET /inventory/low-stock
// --------------------------------------------------
func (h *Handler) LowStock(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"threshold": h.service.LowStockThreshold(),
		"items":     h.service.LowStock(),
	})
}

func itemIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return 0, false
	}
	return id, true
}
