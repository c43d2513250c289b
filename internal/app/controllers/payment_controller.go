package controllers

import (
	"net/http"

	"github.com/edupulse/edupulse/internal/app/models/dto"
	"github.com/edupulse/edupulse/internal/app/services"
	"github.com/edupulse/edupulse/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// PaymentController records payments for approved sessions
type PaymentController struct {
	paymentService services.PaymentService
	logger         zerolog.Logger
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(paymentService services.PaymentService, logger zerolog.Logger) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
		logger:         logger,
	}
}

// Process pays an approved session and schedules it
// @Summary Process payment
// @Tags payment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PaymentRequest true "Payment"
// @Success 200 {object} dto.APIResponse{data=dto.PaymentResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.APIResponse "Payment can only be processed for approved sessions"
// @Router /payment/process [post]
func (c *PaymentController) Process(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	var req dto.PaymentRequest
	if !bindJSON(ctx, c.logger, &req) {
		return
	}

	resp, err := c.paymentService.Pay(ctx.Request.Context(), identity, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Str("sessionID", req.SessionID).
		Str("paymentID", resp.PaymentID).
		Msg("Payment processed")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Payment processed successfully"))
}
