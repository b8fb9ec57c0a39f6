package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gspavan07/StudentCodingDashboard/internal/app/models/dto"
	"github.com/gspavan07/StudentCodingDashboard/internal/app/services"
	"github.com/gspavan07/StudentCodingDashboard/internal/middleware"
)

// MetaController serves the about-page developer list and visitor feedback.
type MetaController struct {
	metaService *services.MetaService
}

// NewMetaController creates a new MetaController
func NewMetaController(metaService *services.MetaService) *MetaController {
	return &MetaController{metaService: metaService}
}

// GetDevelopers lists the site developers
// @Summary List developers
// @Description Returns the developer profiles shown on the about page
// @Tags meta
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Developer} "Developers retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /developers [get]
func (c *MetaController) GetDevelopers(ctx *gin.Context) {
	developers, err := c.metaService.GetDevelopers(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(developers))
}

// SubmitFeedback stores a feedback message
// @Summary Submit feedback
// @Description Stores one visitor feedback message
// @Tags meta
// @Accept json
// @Produce json
// @Param request body dto.FeedbackRequest true "Feedback"
// @Success 201 {object} dto.APIResponse{data=models.Feedback} "Feedback stored"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /feedback [post]
func (c *MetaController) SubmitFeedback(ctx *gin.Context) {
	var req dto.FeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid feedback data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	fb, err := c.metaService.SubmitFeedback(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(fb))
}
