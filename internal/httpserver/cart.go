package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kleanly/internal/cart"
	"kleanly/internal/domain"
)

type cartResponse struct {
	OrderType domain.OrderType  `json:"orderType"`
	Lines     []domain.CartLine `json:"lines"`
	Total     int64             `json:"total"`
	Count     int               `json:"count"`
}

func toCartResponse(typ domain.OrderType, c domain.Cart) cartResponse {
	lines := c.Lines
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return cartResponse{OrderType: typ, Lines: lines, Total: c.Total(), Count: c.Count()}
}

func getCartHandler(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		typ := orderTypeFromQuery(c)
		current := carts.Get(c.Param("sessionID"), typ)
		c.JSON(http.StatusOK, toCartResponse(typ, current))
	}
}

type addCartItemRequest struct {
	OrderType domain.OrderType `json:"orderType"`
	ItemID    string           `json:"itemId" binding:"required"`
}

func addCartItemHandler(carts *cart.Manager, catalog catalogReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "itemId required", "field": "itemId"})
			return
		}
		if !req.OrderType.Valid() {
			req.OrderType = domain.OrderTypePerItem
		}

		sessionID := c.Param("sessionID")
		ctx := c.Request.Context()

		switch req.OrderType {
		case domain.OrderTypePerBag:
			bag, err := catalog.GetBag(ctx, req.ItemID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					c.JSON(http.StatusNotFound, gin.H{"error": "unknown bag service"})
					return
				}
				respondError(c, err)
				return
			}
			carts.Add(sessionID, req.OrderType, bag.ID, bag.Name, bag.Price)
		default:
			item, err := catalog.GetItem(ctx, req.ItemID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					c.JSON(http.StatusNotFound, gin.H{"error": "unknown catalog item"})
					return
				}
				respondError(c, err)
				return
			}
			carts.Add(sessionID, req.OrderType, item.ID, item.Name, item.Price)
		}

		c.JSON(http.StatusOK, toCartResponse(req.OrderType, carts.Get(sessionID, req.OrderType)))
	}
}

func removeCartItemHandler(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		typ := orderTypeFromQuery(c)
		sessionID := c.Param("sessionID")

		// Removing an unknown id is a no-op by contract.
		carts.Remove(sessionID, typ, c.Param("itemID"))
		c.JSON(http.StatusOK, toCartResponse(typ, carts.Get(sessionID, typ)))
	}
}
