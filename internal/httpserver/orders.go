package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"kleanly/internal/domain"
	"kleanly/internal/tracker"
)

func listOrdersHandler(svc *tracker.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders := svc.Orders()
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

func refreshOrdersHandler(svc *tracker.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(userIDHeader)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
			return
		}

		if err := svc.Refresh(c.Request.Context(), userID); err != nil {
			// Stale cache stays visible; the client shows a banner.
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": svc.Orders()})
	}
}

type trackResponse struct {
	Order             domain.Order         `json:"order"`
	ShortID           string               `json:"shortId"`
	Steps             []tracker.StatusStep `json:"steps"`
	Cancelled         bool                 `json:"cancelled"`
	EstimatedDelivery time.Time            `json:"estimatedDelivery"`
}

func trackOrderHandler(svc *tracker.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.Search(c.Query("q"))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, trackResponse{
			Order:             *order,
			ShortID:           order.ShortID(),
			Steps:             tracker.StatusSteps(order.Status),
			Cancelled:         order.Status == domain.StatusCancelled,
			EstimatedDelivery: tracker.EstimatedDelivery(*order),
		})
	}
}
