package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gspavan07/StudentCodingDashboard/internal/app/models/dto"
	"github.com/gspavan07/StudentCodingDashboard/internal/app/services"
	"github.com/gspavan07/StudentCodingDashboard/internal/middleware"
)

// RankingController serves the leaderboard endpoint.
type RankingController struct {
	rankingService *services.RankingService
}

// NewRankingController creates a new RankingController
func NewRankingController(rankingService *services.RankingService) *RankingController {
	return &RankingController{rankingService: rankingService}
}

// GetRankings returns the leaderboard
// @Summary Get rankings
// @Description Returns students sorted by score descending, optionally filtered by branch, year, and a name/roll-number search
// @Tags rankings
// @Produce json
// @Param branch query string false "Branch code"
// @Param year query string false "Year of study (requires branch)"
// @Param q query string false "Case-insensitive substring match on name or roll number"
// @Param limit query int false "Maximum rows to return; 0 means unlimited"
// @Success 200 {object} dto.APIResponse{data=[]dto.RankedStudent} "Rankings retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Year filter without branch"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /rankings [get]
func (c *RankingController) GetRankings(ctx *gin.Context) {
	var req dto.RankingRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid ranking query").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	ranked, err := c.rankingService.GetRankings(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(ranked))
}
