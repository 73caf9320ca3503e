package httpserver

import (
	"errors"
	"net/http"

	"storefront/internal/domain"
	otpsvc "storefront/internal/service/otp"

	"github.com/gin-gonic/gin"
)

type sendOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type verifyOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

func (h *handlers) sendOTP(c *gin.Context) {
	var req sendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "phone is required"})
		return
	}

	msg, err := h.deps.OTPSvc.Send(c.Request.Context(), req.Phone)
	if err != nil {
		if errors.Is(err, otpsvc.ErrInvalidPhone) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		h.remoteFailure(c, "could not send verification code", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

func (h *handlers) verifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "phone and code are required"})
		return
	}

	ctx := c.Request.Context()
	res, err := h.deps.OTPSvc.Verify(ctx, req.Phone, req.Code)
	if err != nil {
		if errors.Is(err, otpsvc.ErrInvalidPhone) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		h.remoteFailure(c, "could not verify code", err)
		return
	}
	if !res.Success {
		c.JSON(http.StatusUnauthorized, gin.H{"message": res.Message})
		return
	}

	session := h.deps.SessionSvc.Login(ctx, visitorID(c), *res.User, res.Token)
	c.JSON(http.StatusOK, session)
}

func (h *handlers) logout(c *gin.Context) {
	c.JSON(http.StatusOK, h.deps.SessionSvc.Logout(c.Request.Context(), visitorID(c)))
}

func (h *handlers) me(c *gin.Context) {
	c.JSON(http.StatusOK, h.deps.SessionSvc.Get(c.Request.Context(), visitorID(c)))
}

// technicianDashboard gates the staff-only surface on the cached session
// role. The content backend still enforces its own permissions on any call
// made with the session token.
func (h *handlers) technicianDashboard(c *gin.Context) {
	session := h.deps.SessionSvc.Get(c.Request.Context(), visitorID(c))
	if !session.IsLoggedIn || session.User == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "login required"})
		return
	}
	switch session.User.Role {
	case domain.RoleTechnician, domain.RoleAdministrator:
	default:
		c.JSON(http.StatusForbidden, gin.H{"message": "technician access required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": session.User})
}
