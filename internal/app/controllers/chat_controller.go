package controllers

import (
	"net/http"

	"github.com/edupulse/edupulse/internal/app/models/dto"
	"github.com/edupulse/edupulse/internal/app/services"
	"github.com/edupulse/edupulse/internal/middleware"
	"github.com/edupulse/edupulse/internal/pkg/websocket"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ChatController serves session chat rooms over REST and WebSocket
type ChatController struct {
	chatService services.ChatService
	wsHandler   *websocket.Handler
	logger      zerolog.Logger
}

// NewChatController creates a new ChatController
func NewChatController(chatService services.ChatService, wsHandler *websocket.Handler, logger zerolog.Logger) *ChatController {
	return &ChatController{
		chatService: chatService,
		wsHandler:   wsHandler,
		logger:      logger,
	}
}

// GetRoom godoc
// @Summary Chat room
// @Description Returns the session behind the room and its full message log
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param room path string true "Room name, session_<id>"
// @Success 200 {object} dto.APIResponse{data=dto.ChatRoomResponse}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail} "Forbidden: not a party of the session"
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail} "Chat room not found"
// @Router /chat/{room} [get]
func (c *ChatController) GetRoom(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	resp, err := c.chatService.Room(ctx.Request.Context(), identity, ctx.Param("room"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// PostMessage godoc
// @Summary Post a chat message
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param room path string true "Room name"
// @Param request body dto.PostChatMessageRequest true "Message"
// @Success 201 {object} dto.APIResponse{data=models.ChatMessage}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /chat/{room}/messages [post]
func (c *ChatController) PostMessage(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	req, ok := middleware.ValidatedBody[dto.PostChatMessageRequest](ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Invalid request format")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	message, err := c.chatService.PostMessage(ctx.Request.Context(), identity, ctx.Param("room"), req.Text)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(message, ""))
}

// Connect upgrades to a WebSocket attached to the room. The caller joins on
// connect and leaves on disconnect.
// @Summary Chat WebSocket
// @Tags chat
// @Security BearerAuth
// @Param room path string true "Room name"
// @Param token query string false "Access token for browsers that cannot set headers"
// @Success 101
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /chat/{room}/ws [get]
func (c *ChatController) Connect(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	room := ctx.Param("room")

	if _, err := c.chatService.Authorize(ctx.Request.Context(), identity, room); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	participant := c.chatService.Participant(identity, room)
	if err := c.wsHandler.Serve(ctx.Writer, ctx.Request, room, identity.DisplayName(), participant); err != nil {
		c.logger.Warn().Err(err).Str("room", room).Str("username", identity.Username).Msg("WebSocket connection failed")
	}
}
