package httpserver

import (
	"net/http"

	cartsvc "storefront/internal/service/cart"

	"github.com/gin-gonic/gin"
)

type addItemRequest struct {
	ID        string `json:"id" binding:"required"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
	// OpenCart mirrors the storefront UI, which opens the sidebar right
	// after adding. Kept as a request flag so the two operations stay
	// independent.
	OpenCart bool `json:"openCart"`
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *handlers) cartSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.deps.CartSvc.Snapshot(c.Request.Context(), visitorID(c)))
}

func (h *handlers) addCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "id is required"})
		return
	}

	ctx := c.Request.Context()
	visitor := visitorID(c)
	snap := h.deps.CartSvc.AddItem(ctx, visitor, cartsvc.Candidate{
		ID:        req.ID,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		Image:     req.Image,
		Quantity:  req.Quantity,
	})
	if req.OpenCart {
		snap = h.deps.CartSvc.Toggle(ctx, visitor)
	}
	c.JSON(http.StatusOK, snap)
}

func (h *handlers) updateCartItem(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "quantity is required"})
		return
	}
	snap := h.deps.CartSvc.UpdateQuantity(c.Request.Context(), visitorID(c), c.Param("id"), *req.Quantity)
	c.JSON(http.StatusOK, snap)
}

func (h *handlers) removeCartItem(c *gin.Context) {
	snap := h.deps.CartSvc.RemoveItem(c.Request.Context(), visitorID(c), c.Param("id"))
	c.JSON(http.StatusOK, snap)
}

func (h *handlers) toggleCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.deps.CartSvc.Toggle(c.Request.Context(), visitorID(c)))
}
