// Package api serves resolution over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/branched-services/go-ensresolve"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Service is the resolution surface the API exposes. *ensresolve.Resolver
// implements it.
type Service interface {
	DiscoverResolver(ctx context.Context, name string) *ensresolve.ResolverHandle
	ResolveAddress(ctx context.Context, name string, coinType ensresolve.CoinType) (*ensresolve.AddressRecord, error)
	LookupName(ctx context.Context, address string, coinType ensresolve.CoinType) (string, error)
}

var _ Service = (*ensresolve.Resolver)(nil)

// Handler handles lookup requests.
type Handler struct {
	svc         Service
	logger      *zap.Logger
	callTimeout time.Duration
}

// NewHandler creates a Handler. Each request is bounded by callTimeout when
// it is positive.
func NewHandler(svc Service, callTimeout time.Duration, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger, callTimeout: callTimeout}
}

// Register mounts the lookup routes on the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/addr/:name", h.ResolveAddress)
	rg.GET("/name/:address", h.LookupName)
	rg.GET("/resolver/:name", h.DiscoverResolver)
}

func (h *Handler) context(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.callTimeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.callTimeout)
}

func coinTypeParam(c *gin.Context) (ensresolve.CoinType, bool) {
	coinType, err := ensresolve.ParseCoinType(c.Query("coinType"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return 0, false
	}
	return coinType, true
}

// ResolveAddress handles GET /addr/:name?coinType=.
func (h *Handler) ResolveAddress(c *gin.Context) {
	name := c.Param("name")
	coinType, ok := coinTypeParam(c)
	if !ok {
		return
	}

	ctx, cancel := h.context(c)
	defer cancel()

	rec, err := h.svc.ResolveAddress(ctx, name, coinType)
	if err != nil {
		h.fail(c, err)
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":     name,
		"coinType": uint64(coinType),
		"address":  rec.String(),
	})
}

// LookupName handles GET /name/:address?coinType=.
func (h *Handler) LookupName(c *gin.Context) {
	address := c.Param("address")
	coinType, ok := coinTypeParam(c)
	if !ok {
		return
	}

	ctx, cancel := h.context(c)
	defer cancel()

	name, err := h.svc.LookupName(ctx, address, coinType)
	if err != nil {
		h.fail(c, err)
		return
	}
	if name == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "no record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"address":  address,
		"coinType": uint64(coinType),
		"name":     name,
	})
}

// DiscoverResolver handles GET /resolver/:name.
func (h *Handler) DiscoverResolver(c *gin.Context) {
	name := c.Param("name")

	ctx, cancel := h.context(c)
	defer cancel()

	handle := h.svc.DiscoverResolver(ctx, name)
	if handle == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no resolver"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":     handle.Name,
		"address":  handle.Address.Hex(),
		"node":     handle.Node.Hex(),
		"extended": handle.Extended,
	})
}

// fail maps a lookup error to a status code.
func (h *Handler) fail(c *gin.Context, err error) {
	var integrityErr *ensresolve.IntegrityError
	switch {
	case errors.As(err, &integrityErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "reverse record does not resolve back to the address",
			"name":    integrityErr.Name,
			"checked": integrityErr.Checked,
		})
	case errors.Is(err, ensresolve.ErrInvalidArgument), errors.Is(err, ensresolve.ErrLegacyUnavailable):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "lookup timed out"})
	default:
		h.logger.Error("lookup failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err),
		)
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream lookup failed"})
	}
}
