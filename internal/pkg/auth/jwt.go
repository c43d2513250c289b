package auth

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/edupulse/edupulse/internal/app/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWT errors
var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token expired")
	ErrRevokedToken  = errors.New("token revoked")
	ErrInvalidFormat = errors.New("invalid token format")
)

// JWTConfig defines JWT configuration settings
type JWTConfig struct {
	SecretKey      string
	AccessTokenExp time.Duration
	TokenIssuer    string
}

// JWTService issues, validates and revokes access tokens.
// Revocations live in memory and are forgotten once the token would have expired anyway.
type JWTService struct {
	config JWTConfig
	now    func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewJWTService creates a new JWT service
func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{
		config:  config,
		now:     time.Now,
		revoked: make(map[string]time.Time),
	}
}

// Claims carries the identity of a logged in user
type Claims struct {
	Username  string `json:"username"`
	Role      string `json:"role"`
	Name      string `json:"name"`
	StudentID string `json:"studentId,omitempty"`
	MentorID  string `json:"mentorId,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed access token for user and returns its lifetime in seconds
func (s *JWTService) GenerateToken(user *models.User) (string, int, error) {
	now := s.now()
	claims := &Claims{
		Username: user.Username,
		Role:     string(user.Role),
		Name:     user.DisplayName(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.AccessTokenExp)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.TokenIssuer,
			Subject:   user.Username,
			ID:        uuid.New().String(),
		},
	}

	switch user.Role {
	case models.RoleStudent:
		claims.StudentID = user.RoleID()
	case models.RoleMentor:
		claims.MentorID = user.RoleID()
	case models.RoleAdmin:
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", 0, fmt.Errorf("failed to create access token: %w", err)
	}

	return signed, int(s.config.AccessTokenExp.Seconds()), nil
}

// ValidateToken parses and verifies a token, rejecting revoked ones
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	}, jwt.WithTimeFunc(s.now), jwt.WithIssuer(s.config.TokenIssuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Username == "" || !models.Role(claims.Role).Valid() {
		return nil, ErrInvalidToken
	}

	if s.isRevoked(claims.ID) {
		return nil, ErrRevokedToken
	}

	return claims, nil
}

// Revoke invalidates the token id until its expiry
func (s *JWTService) Revoke(claims *Claims) {
	if claims == nil || claims.ID == "" {
		return
	}
	expires := s.now().Add(s.config.AccessTokenExp)
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, exp := range s.revoked {
		if now.After(exp) {
			delete(s.revoked, id)
		}
	}
	s.revoked[claims.ID] = expires
}

func (s *JWTService) isRevoked(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[id]
	return ok
}

// ExtractBearerToken extracts the token from the Authorization header
func ExtractBearerToken(authHeader string) (string, error) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", ErrInvalidFormat
	}

	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")), nil
	}

	return authHeader, nil
}
