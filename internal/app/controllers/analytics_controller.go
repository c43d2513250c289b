package controllers

import (
	"net/http"

	"github.com/edupulse/edupulse/internal/app/models/dto"
	"github.com/edupulse/edupulse/internal/app/services"
	"github.com/edupulse/edupulse/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AnalyticsController exposes risk prediction and sentiment scoring
type AnalyticsController struct {
	analyticsService services.AnalyticsService
	logger           zerolog.Logger
}

// NewAnalyticsController creates a new AnalyticsController
func NewAnalyticsController(analyticsService services.AnalyticsService, logger zerolog.Logger) *AnalyticsController {
	return &AnalyticsController{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// Predict scores a student's risk and stores the record
// @Summary Predict student risk
// @Tags analytics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PredictRequest true "Scores"
// @Success 200 {object} dto.APIResponse{data=dto.PredictResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /predict [post]
func (c *AnalyticsController) Predict(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	var req dto.PredictRequest
	if !bindJSON(ctx, c.logger, &req) {
		return
	}

	resp, err := c.analyticsService.Predict(ctx.Request.Context(), identity, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// RiskHistory lists a student's stored predictions
// @Summary Student risk history
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.RiskHistoryResponse}
// @Failure 403 {object} dto.APIResponse
// @Router /students/{studentId}/risk [get]
func (c *AnalyticsController) RiskHistory(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	resp, err := c.analyticsService.RiskHistory(ctx.Request.Context(), identity, ctx.Param("studentId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// Sentiment scores a piece of feedback text
// @Summary Sentiment analysis
// @Tags analytics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SentimentRequest true "Text"
// @Success 200 {object} dto.APIResponse{data=analytics.SentimentResult}
// @Router /sentiment [post]
func (c *AnalyticsController) Sentiment(ctx *gin.Context) {
	var req dto.SentimentRequest
	if !bindJSON(ctx, c.logger, &req) {
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.analyticsService.Sentiment(req.Text), ""))
}
