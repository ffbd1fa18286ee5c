package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kleanly/internal/checkout"
	"kleanly/internal/domain"
	"kleanly/internal/payment"
)

// userIDHeader carries the identity established by the external auth
// layer. This service never verifies credentials itself.
const userIDHeader = "X-User-ID"

type checkoutRequest struct {
	SessionID string           `json:"sessionId" binding:"required"`
	OrderType domain.OrderType `json:"orderType"`
	Category  domain.Category  `json:"category" binding:"required"`
	Address   string           `json:"address"`
	Phone     string           `json:"phone"`
}

func checkoutHandler(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(userIDHeader)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
			return
		}

		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sessionId and category are required"})
			return
		}
		if !req.Category.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category", "field": "category"})
			return
		}

		flow, err := svc.Checkout(checkout.Input{
			SessionID: req.SessionID,
			UserID:    userID,
			OrderType: req.OrderType,
			Category:  req.Category,
			Address:   req.Address,
			Phone:     req.Phone,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, flow.State())
	}
}

func getFlowHandler(flows *payment.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		flow, err := flows.Get(c.Param("flowID"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, flow.State())
	}
}

type chooseMethodRequest struct {
	Method payment.Method `json:"method" binding:"required"`
}

func chooseMethodHandler(flows *payment.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		flow, err := flows.Get(c.Param("flowID"))
		if err != nil {
			respondError(c, err)
			return
		}

		var req chooseMethodRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "method required", "field": "method"})
			return
		}

		if err := flow.ChooseMethod(req.Method); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, flow.State())
	}
}

type submitDetailsRequest struct {
	MpesaNumber string `json:"mpesaNumber" binding:"required"`
}

func submitDetailsHandler(flows *payment.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		flow, err := flows.Get(c.Param("flowID"))
		if err != nil {
			respondError(c, err)
			return
		}

		var req submitDetailsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "mpesaNumber required", "field": "mpesaNumber"})
			return
		}

		if err := flow.SubmitDetails(req.MpesaNumber); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, flow.State())
	}
}

func confirmPaymentHandler(flows *payment.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		flow, err := flows.Get(c.Param("flowID"))
		if err != nil {
			respondError(c, err)
			return
		}
		if err := flow.Confirm(); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, flow.State())
	}
}

func cancelPaymentHandler(flows *payment.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		flow, err := flows.Get(c.Param("flowID"))
		if err != nil {
			respondError(c, err)
			return
		}
		if err := flow.Cancel(); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, flow.State())
	}
}

func closeFlowHandler(flows *payment.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		flows.Remove(c.Param("flowID"))
		c.Status(http.StatusNoContent)
	}
}
