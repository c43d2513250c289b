package controllers

import (
	"net/http"

	"github.com/edupulse/edupulse/internal/app/models/dto"
	"github.com/edupulse/edupulse/internal/app/services"
	"github.com/edupulse/edupulse/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// MentorshipController drives the session workflow and the video call entry
type MentorshipController struct {
	mentorshipService services.MentorshipService
	logger            zerolog.Logger
}

// NewMentorshipController creates a new MentorshipController
func NewMentorshipController(mentorshipService services.MentorshipService, logger zerolog.Logger) *MentorshipController {
	return &MentorshipController{
		mentorshipService: mentorshipService,
		logger:            logger,
	}
}

// Request creates a pending session with a mentor
// @Summary Request a mentorship session
// @Tags mentorship
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.MentorshipRequest true "Session request"
// @Success 201 {object} dto.APIResponse{data=dto.MentorshipRequestResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.APIResponse "Mentor not found"
// @Router /mentorship/request [post]
func (c *MentorshipController) Request(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	var req dto.MentorshipRequest
	if !bindJSON(ctx, c.logger, &req) {
		return
	}

	session, err := c.mentorshipService.Request(ctx.Request.Context(), identity, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Str("sessionID", session.SessionID).
		Str("studentID", session.StudentID).
		Str("mentorID", session.MentorID).
		Msg("Mentorship session requested")

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.MentorshipRequestResponse{
		SessionID: session.SessionID,
		CostUSD:   session.CostUSD,
		CostINR:   session.CostINR,
		Session:   session,
	}, "Session request sent successfully"))
}

// Accept approves a pending session
// @Summary Accept a session request
// @Tags mentorship
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SessionActionRequest true "Session"
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse}
// @Failure 409 {object} dto.APIResponse "Session is not pending approval"
// @Router /mentorship/accept [post]
func (c *MentorshipController) Accept(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	var req dto.SessionActionRequest
	if !bindJSON(ctx, c.logger, &req) {
		return
	}

	session, err := c.mentorshipService.Accept(ctx.Request.Context(), identity, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SessionResponse{Session: session}, "Session approved"))
}

// Reject declines a pending session
// @Summary Reject a session request
// @Tags mentorship
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SessionActionRequest true "Session"
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse}
// @Failure 409 {object} dto.APIResponse "Session is not pending approval"
// @Router /mentorship/reject [post]
func (c *MentorshipController) Reject(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	var req dto.SessionActionRequest
	if !bindJSON(ctx, c.logger, &req) {
		return
	}

	session, err := c.mentorshipService.Reject(ctx.Request.Context(), identity, req.SessionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SessionResponse{Session: session}, "Session rejected"))
}

// Complete closes an active session
// @Summary Complete a session
// @Tags mentorship
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SessionActionRequest true "Session"
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse}
// @Failure 409 {object} dto.APIResponse "Session is not active"
// @Router /mentorship/complete [post]
func (c *MentorshipController) Complete(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	var req dto.SessionActionRequest
	if !bindJSON(ctx, c.logger, &req) {
		return
	}

	session, err := c.mentorshipService.Complete(ctx.Request.Context(), identity, req.SessionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SessionResponse{Session: session}, "Session completed"))
}

// GetSession godoc
// @Summary Session detail
// @Tags mentorship
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse}
// @Failure 403 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /mentorship/sessions/{sessionId} [get]
func (c *MentorshipController) GetSession(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	session, err := c.mentorshipService.GetSession(ctx.Request.Context(), identity, ctx.Param("sessionId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SessionResponse{Session: session}, ""))
}

// VideoCall lets a session party enter the call, activating a scheduled session
// @Summary Enter video call
// @Tags video
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Success 200 {object} dto.APIResponse{data=dto.VideoCallResponse}
// @Failure 403 {object} dto.APIResponse
// @Failure 409 {object} dto.APIResponse "Session is not ready for a call"
// @Router /video/{sessionId} [get]
func (c *MentorshipController) VideoCall(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	session, err := c.mentorshipService.EnterVideoCall(ctx.Request.Context(), identity, ctx.Param("sessionId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.VideoCallResponse{
		Session:     session,
		MeetingLink: session.MeetingLink,
		ChatRoom:    session.ChatRoom,
	}, ""))
}
