// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/edupulse/edupulse/internal/app/auth"
	"github.com/edupulse/edupulse/internal/app/models/dto"
	"github.com/edupulse/edupulse/internal/app/services"
	"github.com/edupulse/edupulse/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// requireIdentity returns the authenticated caller, answering 401 when the
// route was reached without JWTAuth having stored one
func requireIdentity(ctx *gin.Context) (auth.Identity, bool) {
	identity, ok := middleware.CurrentIdentity(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return auth.Identity{}, false
	}
	return identity, true
}

// bindJSON binds the body into req and answers 400 on failure
func bindJSON(ctx *gin.Context, logger zerolog.Logger, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		logger.Warn().Err(err).Str("path", ctx.FullPath()).Msg("Invalid request payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}

// AuthController handles authentication related operations
type AuthController struct {
	authService services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Login handles user login
// @Summary User login
// @Description Authenticates a user and returns an access token carrying their identity
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or validation error"
// @Failure 401 {object} dto.APIResponse "Invalid username or password"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(ctx, c.logger, &req) {
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("username", req.Username).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("username", req.Username).Str("role", string(resp.User.Role)).Msg("User logged in")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Login successful"))
}

// Signup handles user registration
// @Summary Register a new user
// @Description Creates a student, mentor or admin account. Student and mentor ids are generated.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "User registration information"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or invalid role"
// @Failure 409 {object} dto.APIResponse "Username already exists"
// @Router /auth/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if !bindJSON(ctx, c.logger, &req) {
		return
	}

	user, err := c.authService.Signup(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("username", req.Username).Msg("Signup failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("User registered")
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(user, "Account created successfully"))
}

// Logout revokes the token the request was made with
// @Summary Logout
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	if err := c.authService.Logout(ctx.Request.Context(), middleware.CurrentClaims(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Logged out successfully"}, ""))
}

// Me returns the caller's identity and stored user
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.IdentityResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	resp, err := c.authService.Me(ctx.Request.Context(), identity)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// UpdateMentorProfile updates the calling mentor's profile
// @Summary Update mentor profile
// @Tags mentor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateMentorProfileRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse "Mentor not found"
// @Router /mentor/profile [put]
func (c *AuthController) UpdateMentorProfile(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	var req dto.UpdateMentorProfileRequest
	if !bindJSON(ctx, c.logger, &req) {
		return
	}

	user, err := c.authService.UpdateMentorProfile(ctx.Request.Context(), identity, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("mentorID", identity.MentorID).Msg("Mentor profile updated")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user, "Profile updated successfully"))
}
