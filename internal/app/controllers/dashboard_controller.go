package controllers

import (
	"net/http"

	"github.com/edupulse/edupulse/internal/app/models/dto"
	"github.com/edupulse/edupulse/internal/app/services"
	"github.com/edupulse/edupulse/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// DashboardController serves the per-role dashboards and the mentor directory
type DashboardController struct {
	dashboardService services.DashboardService
	logger           zerolog.Logger
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService, logger zerolog.Logger) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// Admin godoc
// @Summary Admin dashboard
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AdminDashboardResponse}
// @Failure 403 {object} dto.APIResponse
// @Router /dashboard/admin [get]
func (c *DashboardController) Admin(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	resp, err := c.dashboardService.Admin(ctx.Request.Context(), identity)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// Student godoc
// @Summary Student dashboard
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentDashboardResponse}
// @Failure 403 {object} dto.APIResponse
// @Router /dashboard/student [get]
func (c *DashboardController) Student(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	resp, err := c.dashboardService.Student(ctx.Request.Context(), identity)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// Mentor godoc
// @Summary Mentor dashboard
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.MentorDashboardResponse}
// @Failure 403 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse "Mentor profile not found"
// @Router /dashboard/mentor [get]
func (c *DashboardController) Mentor(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	resp, err := c.dashboardService.Mentor(ctx.Request.Context(), identity)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// ListMentors godoc
// @Summary Mentor directory
// @Tags mentor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.UserResponse}
// @Router /mentors [get]
func (c *DashboardController) ListMentors(ctx *gin.Context) {
	mentors, err := c.dashboardService.ListMentors(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list mentors")
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(mentors, ""))
}
