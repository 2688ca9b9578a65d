package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kudoshq/recognition-bff/middleware"
	"github.com/kudoshq/recognition-bff/models"
	"github.com/kudoshq/recognition-bff/services"
)

// PraiseController drives the multi-step praise composition flow over
// server-side sessions.
type PraiseController struct {
	praiseService services.PraiseService
}

// NewPraiseController creates a new PraiseController.
func NewPraiseController(praiseService services.PraiseService) *PraiseController {
	return &PraiseController{praiseService: praiseService}
}

// Start handles POST /bff/praise/sessions.
func (pc *PraiseController) Start(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	view, svcErr := pc.praiseService.Start(ctx.Request.Context(), userID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"session": view})
}

// Get handles GET /bff/praise/sessions/:id.
func (pc *PraiseController) Get(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	view, svcErr := pc.praiseService.Get(ctx.Request.Context(), userID, ctx.Param("id"))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"session": view})
}

// Next handles POST /bff/praise/sessions/:id/next. The body carries the
// value for the current step only; other fields are ignored.
func (pc *PraiseController) Next(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input models.PraiseStepInput
	if ctx.Request.Body != nil && ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&input); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}
	}

	view, svcErr := pc.praiseService.Next(ctx.Request.Context(), userID, ctx.Param("id"), input)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"session": view})
}

// Back handles POST /bff/praise/sessions/:id/back.
func (pc *PraiseController) Back(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	view, svcErr := pc.praiseService.Back(ctx.Request.Context(), userID, ctx.Param("id"))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"session": view})
}

// Submit handles POST /bff/praise/sessions/:id/submit.
func (pc *PraiseController) Submit(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	compliment, svcErr := pc.praiseService.Submit(ctx.Request.Context(), userID, ctx.Param("id"))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"compliment": compliment})
}
