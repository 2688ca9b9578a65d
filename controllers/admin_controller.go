package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kudoshq/recognition-bff/clients"
	"github.com/kudoshq/recognition-bff/middleware"
	"github.com/kudoshq/recognition-bff/services"
)

// AdminController proxies catalog management and fulfilment updates to the
// platform. The BFF adds no business rules here; it forwards the body,
// relays the upstream response, and invalidates the affected cache tags on
// success.
type AdminController struct {
	platform clients.PlatformClient
	cache    services.Cache
	logger   *zap.Logger
}

// NewAdminController creates a new AdminController.
func NewAdminController(platform clients.PlatformClient, cache services.Cache, logger *zap.Logger) *AdminController {
	return &AdminController{platform: platform, cache: cache, logger: logger}
}

// CreatePrize handles POST /bff/admin/prizes.
func (ac *AdminController) CreatePrize(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	resp, status, err := ac.platform.CreatePrize(ctx.Request.Context(), userID, body)
	ac.relay(ctx, resp, status, err, services.TagCatalog)
}

// UpdatePrize handles PUT /bff/admin/prizes/:id.
func (ac *AdminController) UpdatePrize(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	resp, status, err := ac.platform.UpdatePrize(ctx.Request.Context(), userID, ctx.Param("id"), body)
	ac.relay(ctx, resp, status, err, services.TagCatalog)
}

// UpdateRedemptionStatus handles PATCH /bff/admin/redemptions/:id/status.
func (ac *AdminController) UpdateRedemptionStatus(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "A status value is required"})
		return
	}

	if err := ac.platform.UpdateRedemptionStatus(ctx.Request.Context(), userID, ctx.Param("id"), req.Status); err != nil {
		ac.relayError(ctx, err)
		return
	}

	ac.cache.InvalidateTags(ctx.Request.Context(), services.TagRedemptions)
	ctx.JSON(http.StatusOK, gin.H{"message": "Redemption status updated"})
}

// relay writes the upstream response through unchanged and bumps the given
// cache tags when the upstream accepted the change.
func (ac *AdminController) relay(ctx *gin.Context, resp []byte, status int, err error, tags ...string) {
	if err != nil {
		ac.relayError(ctx, err)
		return
	}
	if status >= 200 && status < 300 {
		ac.cache.InvalidateTags(ctx.Request.Context(), tags...)
	}
	ctx.Data(status, "application/json", resp)
}

func (ac *AdminController) relayError(ctx *gin.Context, err error) {
	var upstream *clients.UpstreamError
	if errors.As(err, &upstream) {
		ctx.JSON(upstream.StatusCode, gin.H{"error": upstream.Message})
		return
	}
	ac.logger.Error("admin proxy request failed", zap.Error(err))
	ctx.JSON(http.StatusBadGateway, gin.H{"error": "Upstream service unavailable"})
}
