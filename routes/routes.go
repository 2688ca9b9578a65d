package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kudoshq/recognition-bff/controllers"
	"github.com/kudoshq/recognition-bff/middleware"
)

// Controllers bundles the handlers wired into the router.
type Controllers struct {
	Catalog    *controllers.CatalogController
	Redemption *controllers.RedemptionController
	Balance    *controllers.BalanceController
	Praise     *controllers.PraiseController
	Admin      *controllers.AdminController
}

// RegisterRoutes mounts all HTTP endpoints on the router.
func RegisterRoutes(router *gin.Engine, c Controllers, jwtSecret string) {
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	bff := router.Group("/bff")
	bff.Use(middleware.AuthMiddleware(jwtSecret))
	{
		bff.GET("/catalog", c.Catalog.ListPrizes)
		bff.GET("/catalog/:id", c.Catalog.GetPrize)
		bff.POST("/catalog/:id/redeem", c.Catalog.Redeem)

		bff.GET("/redemptions", c.Redemption.List)
		bff.GET("/redemptions/:id", c.Redemption.Get)
		bff.POST("/redemptions/:id/cancel", c.Redemption.Cancel)

		bff.GET("/balance", c.Balance.Get)

		bff.POST("/praise/sessions", c.Praise.Start)
		bff.GET("/praise/sessions/:id", c.Praise.Get)
		bff.POST("/praise/sessions/:id/next", c.Praise.Next)
		bff.POST("/praise/sessions/:id/back", c.Praise.Back)
		bff.POST("/praise/sessions/:id/submit", c.Praise.Submit)

		admin := bff.Group("/admin")
		admin.Use(middleware.AdminOnly())
		{
			admin.POST("/prizes", c.Admin.CreatePrize)
			admin.PUT("/prizes/:id", c.Admin.UpdatePrize)
			admin.PATCH("/redemptions/:id/status", c.Admin.UpdateRedemptionStatus)
		}
	}
}
