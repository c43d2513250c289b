package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	appauth "github.com/edupulse/edupulse/internal/app/auth"
	"github.com/edupulse/edupulse/internal/app/models"
	"github.com/edupulse/edupulse/internal/app/models/dto"
	"github.com/edupulse/edupulse/internal/app/repositories"
	"github.com/edupulse/edupulse/internal/pkg/apperrors"
	"github.com/edupulse/edupulse/internal/pkg/auth"
	"github.com/edupulse/edupulse/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

// Defaults of a freshly signed up account
const (
	defaultStudentYear  = 1
	defaultMentorRating = 5.0
)

// AuthService handles authentication and account operations
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	Me(ctx context.Context, id appauth.Identity) (*dto.IdentityResponse, error)
	UpdateMentorProfile(ctx context.Context, id appauth.Identity, req *dto.UpdateMentorProfileRequest) (*dto.UserResponse, error)
}

type authServiceImpl struct {
	userRepo   *repositories.UserRepository
	jwtService *auth.JWTService
	passwords  *auth.PasswordHasher
	now        func() time.Time
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *repositories.UserRepository,
	jwtService *auth.JWTService,
	passwords *auth.PasswordHasher,
	now func() time.Time,
	logger zerolog.Logger,
) AuthService {
	if passwords == nil {
		passwords = auth.NewPasswordHasher(false)
	}
	return &authServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		passwords:  passwords,
		now:        now,
		logger:     logger,
	}
}

// Login authenticates a user by username and password
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewUnauthorizedError("Invalid username or password")
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !s.passwords.Verify(user.Password, req.Password) {
		s.logger.Warn().Str("username", req.Username).Msg("Login failed: wrong password")
		return nil, apperrors.NewUnauthorizedError("Invalid username or password")
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	s.logger.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("User logged in")
	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   int64(expiresIn),
		},
		User: dto.NewUserResponse(user),
	}, nil
}

// Signup creates an account with the profile of its role
func (s *authServiceImpl) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, apperrors.NewValidationError("username", "username is required")
	}

	password, err := s.passwords.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:  username,
		Password:  password,
		Role:      req.Role,
		Email:     req.Email,
		Name:      req.Name,
		CreatedAt: helpers.FormatTimestamp(s.now()),
	}

	switch req.Role {
	case models.RoleStudent:
		year := req.Year
		if year <= 0 {
			year = defaultStudentYear
		}
		user.StudentProfile = &models.StudentProfile{
			StudentID:  helpers.NewRoleID("S"),
			Department: req.Department,
			Year:       year,
		}
	case models.RoleMentor:
		availability := req.Availability
		if availability == nil {
			availability = []string{}
		}
		user.MentorProfile = &models.MentorProfile{
			MentorID:       helpers.NewRoleID("M"),
			Specialization: req.Specialization,
			Experience:     req.Experience,
			HourlyRate:     req.HourlyRate,
			Availability:   availability,
			Rating:         defaultMentorRating,
		}
	case models.RoleAdmin:
	default:
		return nil, apperrors.NewValidationError("role", "role must be one of: admin student mentor")
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("user creation error: %w", err)
	}

	s.logger.Info().
		Str("username", user.Username).
		Str("role", string(user.Role)).
		Str("roleID", user.RoleID()).
		Msg("Account created")
	return dto.NewUserResponse(user), nil
}

// Logout revokes the token the request was made with
func (s *authServiceImpl) Logout(_ context.Context, claims *auth.Claims) error {
	if claims == nil {
		return apperrors.NewUnauthorizedError("Authentication required")
	}
	s.jwtService.Revoke(claims)
	s.logger.Info().Str("username", claims.Username).Msg("User logged out")
	return nil
}

func (s *authServiceImpl) Me(ctx context.Context, id appauth.Identity) (*dto.IdentityResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, id.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewResourceNotFoundError("User not found")
		}
		return nil, err
	}
	return &dto.IdentityResponse{
		Username:  id.Username,
		Name:      id.DisplayName(),
		Role:      id.Role,
		StudentID: id.StudentID,
		MentorID:  id.MentorID,
		User:      dto.NewUserResponse(user),
	}, nil
}

// UpdateMentorProfile replaces the editable fields of the caller's mentor profile.
// A zero hourly rate keeps the current one.
func (s *authServiceImpl) UpdateMentorProfile(ctx context.Context, id appauth.Identity, req *dto.UpdateMentorProfileRequest) (*dto.UserResponse, error) {
	if err := id.RequireRole(models.RoleMentor, "update a mentor profile"); err != nil {
		return nil, err
	}

	availability := req.Availability
	if availability == nil {
		availability = []string{}
	}

	user, err := s.userRepo.UpdateMentorProfile(ctx, id.MentorID, func(profile *models.MentorProfile) {
		profile.Specialization = req.Specialization
		profile.Experience = req.Experience
		if req.HourlyRate > 0 {
			profile.HourlyRate = req.HourlyRate
		}
		profile.PaymentDetails = req.PaymentDetails
		profile.Availability = availability
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("mentorID", id.MentorID).Msg("Mentor profile updated")
	return dto.NewUserResponse(user), nil
}
