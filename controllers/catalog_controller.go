package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kudoshq/recognition-bff/middleware"
	"github.com/kudoshq/recognition-bff/models"
	"github.com/kudoshq/recognition-bff/services"
)

// CatalogController handles HTTP requests for the prize catalog.
type CatalogController struct {
	catalogService services.CatalogService
}

// NewCatalogController creates a new CatalogController.
func NewCatalogController(catalogService services.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// ListPrizes handles GET /bff/catalog.
func (cc *CatalogController) ListPrizes(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	prizes, svcErr := cc.catalogService.ListPrizes(ctx.Request.Context(), userID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"items": prizes})
}

// GetPrize handles GET /bff/catalog/:id.
func (cc *CatalogController) GetPrize(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	prize, svcErr := cc.catalogService.GetPrize(ctx.Request.Context(), userID, ctx.Param("id"))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"prize": prize})
}

// Redeem handles POST /bff/catalog/:id/redeem.
func (cc *CatalogController) Redeem(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// The body is optional: variantless items redeem with no payload.
	var req models.RedeemRequest
	if ctx.Request.Body != nil && ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}
	}

	redemption, svcErr := cc.catalogService.Redeem(ctx.Request.Context(), userID, ctx.Param("id"), req.VariantID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"redemption": redemption})
}
