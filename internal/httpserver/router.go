package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"kleanly/internal/cart"
	"kleanly/internal/checkout"
	"kleanly/internal/domain"
	"kleanly/internal/payment"
	"kleanly/internal/tracker"
)

type catalogReader interface {
	ListItems(ctx context.Context, category domain.Category) ([]domain.CatalogItem, error)
	ListBags(ctx context.Context, category domain.Category) ([]domain.BagService, error)
	GetItem(ctx context.Context, id string) (*domain.CatalogItem, error)
	GetBag(ctx context.Context, id string) (*domain.BagService, error)
}

// Deps carries the wired services into the router.
type Deps struct {
	Catalog  catalogReader
	Carts    *cart.Manager
	Checkout *checkout.Service
	Flows    *payment.Registry
	Tracker  *tracker.Service
}

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.GET("/catalog/items", listItemsHandler(deps.Catalog))
	router.GET("/catalog/bags", listBagsHandler(deps.Catalog))

	router.GET("/carts/:sessionID", getCartHandler(deps.Carts))
	router.POST("/carts/:sessionID/items", addCartItemHandler(deps.Carts, deps.Catalog))
	router.DELETE("/carts/:sessionID/items/:itemID", removeCartItemHandler(deps.Carts))

	router.POST("/checkout", checkoutHandler(deps.Checkout))
	router.GET("/payments/:flowID", getFlowHandler(deps.Flows))
	router.POST("/payments/:flowID/method", chooseMethodHandler(deps.Flows))
	router.POST("/payments/:flowID/details", submitDetailsHandler(deps.Flows))
	router.POST("/payments/:flowID/confirm", confirmPaymentHandler(deps.Flows))
	router.POST("/payments/:flowID/cancel", cancelPaymentHandler(deps.Flows))
	router.DELETE("/payments/:flowID", closeFlowHandler(deps.Flows))

	router.GET("/orders", listOrdersHandler(deps.Tracker))
	router.POST("/orders/refresh", refreshOrdersHandler(deps.Tracker))
	router.GET("/orders/track", trackOrderHandler(deps.Tracker))

	return router
}

// respondError maps the error taxonomy onto HTTP statuses. Nothing in
// this service is fatal; everything maps to a client-recoverable code.
func respondError(c *gin.Context, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message, "field": vErr.Field})
		return
	}

	var subErr *domain.SubmissionError
	if errors.As(err, &subErr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": subErr.Error(), "retryable": true})
		return
	}

	var fetchErr *domain.FetchError
	if errors.As(err, &fetchErr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": fetchErr.Error(), "retryable": true})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrCardDisabled):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "card_disabled"})
	case errors.Is(err, payment.ErrInvalidMsisdn):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "mpesaNumber"})
	case errors.Is(err, payment.ErrInvalidStep):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func orderTypeFromQuery(c *gin.Context) domain.OrderType {
	typ := domain.OrderType(c.Query("type"))
	if !typ.Valid() {
		return domain.OrderTypePerItem
	}
	return typ
}
