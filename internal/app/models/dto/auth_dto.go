package dto

import "github.com/edupulse/edupulse/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignupRequest creates an account. Student and mentor fields are read only
// for the matching role.
type SignupRequest struct {
	Username string      `json:"username" binding:"required,max=64"`
	Password string      `json:"password" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Name     string      `json:"name" binding:"required"`
	Role     models.Role `json:"role" binding:"required,oneof=admin student mentor"`

	// Student fields
	Department string `json:"department"`
	Year       int    `json:"year" binding:"omitempty,min=1"`

	// Mentor fields
	Specialization string   `json:"specialization"`
	Experience     int      `json:"experience" binding:"omitempty,min=0"`
	HourlyRate     float64  `json:"hourly_rate" binding:"omitempty,min=0"`
	Availability   []string `json:"availability"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// UserResponse is a user without its password. Profile fields are flattened
// the same way they are stored.
type UserResponse struct {
	Username  string      `json:"username"`
	Role      models.Role `json:"role"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	CreatedAt string      `json:"created_at,omitempty"`

	*models.StudentProfile
	*models.MentorProfile
}

// NewUserResponse drops the password of user
func NewUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		Username:       user.Username,
		Role:           user.Role,
		Email:          user.Email,
		Name:           user.Name,
		CreatedAt:      user.CreatedAt,
		StudentProfile: user.StudentProfile,
		MentorProfile:  user.MentorProfile,
	}
}

// NewUserResponses converts a user list
func NewUserResponses(users []models.User) []*UserResponse {
	out := make([]*UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  *UserResponse `json:"user"`
}

// IdentityResponse describes the caller of /auth/me
type IdentityResponse struct {
	Username  string        `json:"username"`
	Name      string        `json:"name"`
	Role      models.Role   `json:"role"`
	StudentID string        `json:"student_id,omitempty"`
	MentorID  string        `json:"mentor_id,omitempty"`
	User      *UserResponse `json:"user"`
}

// UpdateMentorProfileRequest replaces the editable mentor fields
type UpdateMentorProfileRequest struct {
	Specialization string   `json:"specialization" binding:"required"`
	Experience     int      `json:"experience" binding:"min=0"`
	HourlyRate     float64  `json:"hourly_rate" binding:"min=0"`
	PaymentDetails string   `json:"payment_details"`
	Availability   []string `json:"availability"`
}
