package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kudoshq/recognition-bff/middleware"
	"github.com/kudoshq/recognition-bff/models"
	"github.com/kudoshq/recognition-bff/services"
)

var (
	errInvalidRange  = errors.New("custom period requires valid RFC3339 from and to parameters")
	errInvalidOffset = errors.New("offset must be a non-negative integer")
	errUnknownPeriod = errors.New("period must be one of ALL, today, week, month, custom")
)

// RedemptionController handles HTTP requests for redemption history and
// cancellation.
type RedemptionController struct {
	redemptionService services.RedemptionService
}

// NewRedemptionController creates a new RedemptionController.
func NewRedemptionController(redemptionService services.RedemptionService) *RedemptionController {
	return &RedemptionController{redemptionService: redemptionService}
}

// List handles GET /bff/redemptions. Filter state is rebuilt from query
// params on every request; any filter differing from the default resets
// the offset through the FilterState setters.
func (rc *RedemptionController) List(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	filter, parseErr := parseFilterState(ctx)
	if parseErr != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": parseErr.Error()})
		return
	}

	result, svcErr := rc.redemptionService.List(ctx.Request.Context(), userID, filter)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"items": result.Items,
		"meta": gin.H{
			"offset":         result.Offset,
			"limit":          result.Limit,
			"has_more":       result.HasMore,
			"active_filters": filter.HasActiveFilters(),
		},
	})
}

// Get handles GET /bff/redemptions/:id.
func (rc *RedemptionController) Get(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	view, svcErr := rc.redemptionService.Get(ctx.Request.Context(), userID, ctx.Param("id"))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"redemption": view})
}

// Cancel handles POST /bff/redemptions/:id/cancel.
func (rc *RedemptionController) Cancel(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CancelRedemptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "A cancellation reason is required"})
		return
	}

	result, svcErr := rc.redemptionService.Cancel(ctx.Request.Context(), userID, ctx.Param("id"), req.Reason)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// parseFilterState rebuilds the listing filter from query parameters,
// going through the FilterState setters so the offset-reset rules apply.
func parseFilterState(ctx *gin.Context) (services.FilterState, error) {
	filter := services.NewFilterState()
	if search := ctx.Query("search"); search != "" {
		filter = filter.WithSearch(search)
	}
	if status := ctx.Query("status"); status != "" {
		filter = filter.WithStatus(status)
	}

	period := ctx.DefaultQuery("period", services.PeriodAll)
	switch period {
	case services.PeriodCustom:
		from, err := time.Parse(time.RFC3339, ctx.Query("from"))
		if err != nil {
			return filter, errInvalidRange
		}
		to, err := time.Parse(time.RFC3339, ctx.Query("to"))
		if err != nil {
			return filter, errInvalidRange
		}
		filter = filter.WithCustomRange(from, to)
	case services.PeriodAll, services.PeriodToday, services.PeriodWeek, services.PeriodMonth:
		filter = filter.WithPeriod(period)
	default:
		return filter, errUnknownPeriod
	}

	// Offset is applied last: the setters above reset it deliberately, and
	// an explicit offset only makes sense for an unchanged filter.
	if offsetStr := ctx.Query("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return filter, errInvalidOffset
		}
		filter.Offset = offset
	}
	return filter, nil
}
