package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kudoshq/recognition-bff/middleware"
	"github.com/kudoshq/recognition-bff/services"
)

// BalanceController exposes the caller's coin balances.
type BalanceController struct {
	balanceService services.BalanceService
}

// NewBalanceController creates a new BalanceController.
func NewBalanceController(balanceService services.BalanceService) *BalanceController {
	return &BalanceController{balanceService: balanceService}
}

// Get handles GET /bff/balance.
func (bc *BalanceController) Get(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	balance, svcErr := bc.balanceService.Get(ctx.Request.Context(), userID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"balance": balance})
}
