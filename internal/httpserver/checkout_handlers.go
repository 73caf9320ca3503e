package httpserver

import (
	"errors"
	"net/http"

	checkoutsvc "storefront/internal/service/checkout"

	"github.com/gin-gonic/gin"
)

type checkoutRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Email     string `json:"email"`
	Address   string `json:"address" binding:"required"`
	City      string `json:"city" binding:"required"`
	Postcode  string `json:"postcode"`
}

func (h *handlers) placeOrder(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name, phone, address, and city are required"})
		return
	}

	ctx := c.Request.Context()
	visitor := visitorID(c)
	token := h.deps.SessionSvc.Get(ctx, visitor).Token

	confirmation, err := h.deps.CheckoutSvc.PlaceOrder(ctx, visitor, token, checkoutsvc.Input{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		City:      req.City,
		Postcode:  req.Postcode,
	})
	if err != nil {
		if errors.Is(err, checkoutsvc.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "cart is empty"})
			return
		}
		h.remoteFailure(c, "could not place order", err)
		return
	}
	c.JSON(http.StatusCreated, confirmation)
}
