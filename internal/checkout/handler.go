package checkout

import (
	"errors"
	"net/http"
	"strconv"

	"warungpos/internal/poserr"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func statusOf(err error) int {
	if errors.Is(err, ErrUnknownPaymentMethod) {
		return http.StatusBadRequest
	}
	return poserr.HTTPStatus(err)
}

func respondError(c *gin.Context, err error) {
	body := gin.H{"error": err.Error()}

	var oos *poserr.OutOfStockError
	if errors.As(err, &oos) {
		body["item_id"] = oos.ItemID
		body["available"] = oos.Available
	}

	var short *poserr.InsufficientPaymentError
	if errors.As(err, &short) {
		body["required"] = short.Required
	}

	c.JSON(statusOf(err), body)
}

// --------------------------------------------------
// GET /cart
// --------------------------------------------------
func (h *Handler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Cart())
}

// --------------------------------------------------
// GET /payment-methods
// --------------------------------------------------
func (h *Handler) PaymentMethods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"methods": h.service.PaymentMethods()})
}

// --------------------------------------------------
// POST /cart/items
// --------------------------------------------------
func (h *Handler) AddItem(c *gin.Context) {
	var req struct {
		ItemID   int  `json:"item_id" binding:"required"`
		Quantity *int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_id is required"})
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	cart, err := h.service.AddItem(req.ItemID, quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

// --------------------------------------------------
// PATCH /cart/items/:item_id
// --------------------------------------------------
func (h *Handler) UpdateItem(c *gin.Context) {
	itemID, ok := intParam(c, "item_id")
	if !ok {
		return
	}

	var req struct {
		Quantity *int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity is required"})
		return
	}

	cart, err := h.service.UpdateQuantity(itemID, *req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

// --------------------------------------------------
// DELETE /cart/items/:item_id
// --------------------------------------------------
func (h *Handler) RemoveItem(c *gin.Context) {
	itemID, ok := intParam(c, "item_id")
	if !ok {
		return
	}

	cart, err := h.service.RemoveItem(itemID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

// --------------------------------------------------
// DELETE /cart
// --------------------------------------------------
func (h *Handler) ClearCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Clear())
}

// --------------------------------------------------
// POST /cart/checkout
// --------------------------------------------------
func (h *Handler) Checkout(c *gin.Context) {
	var req struct {
		Amount *decimal.Decimal `json:"amount"`
		Method string           `json:"method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Amount == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount and method are required"})
		return
	}

	result, err := h.service.Checkout(c.Request.Context(), *req.Amount, req.Method)
	if err != nil {
		if result != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":    err.Error(),
				"order_id": result.OrderID,
				"change":   result.Change,
				"receipt":  result.Receipt,
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// --------------------------------------------------
// GET /orders/:id/receipt
// --------------------------------------------------
func (h *Handler) Receipt(c *gin.Context) {
	orderID, ok := intParam(c, "id")
	if !ok {
		return
	}

	text, err := h.service.Receipt(orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.String(http.StatusOK, text)
}

func intParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
