package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/edupulse/edupulse/internal/app/models"
	"github.com/edupulse/edupulse/internal/app/models/dto"
	"github.com/edupulse/edupulse/internal/pkg/apperrors"
	pkgauth "github.com/edupulse/edupulse/internal/pkg/auth"
	"github.com/edupulse/edupulse/internal/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type errorBody struct {
	Success bool `json:"success"`
	Error   struct {
		Code    dto.ErrorCode `json:"code"`
		Message string        `json:"message"`
		Field   string        `json:"field"`
	} `json:"error"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    dto.ErrorCode
		message string
		field   string
	}{
		{"not found", apperrors.NewResourceNotFoundError("Session not found"), http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Session not found", ""},
		{"forbidden", apperrors.NewForbiddenError("Only mentors can accept sessions"), http.StatusForbidden, dto.ErrorCodeForbidden, "Only mentors can accept sessions", ""},
		{"unauthorized", apperrors.NewUnauthorizedError("Invalid username or password"), http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid username or password", ""},
		{"invalid state", apperrors.NewInvalidStateError("Payment can only be processed for approved sessions"), http.StatusConflict, dto.ErrorCodeInvalidState, "Payment can only be processed for approved sessions", ""},
		{"conflict", apperrors.NewConflictError("Username already exists"), http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Username already exists", ""},
		{"validation", apperrors.NewValidationError("student_id", "student_id is required"), http.StatusBadRequest, dto.ErrorCodeValidationFailed, "student_id is required", "student_id"},
		{"bad request", apperrors.NewBadRequestError("Malformed room"), http.StatusBadRequest, dto.ErrorCodeBadRequest, "Malformed room", ""},
		{"bare sentinel", apperrors.ErrTooManyRequests, http.StatusTooManyRequests, dto.ErrorCodeTooManyRequests, "Too many requests", ""},
		{"wrapped", fmt.Errorf("load: %w", apperrors.NewResourceNotFoundError("Mentor not found")), http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Mentor not found", ""},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			body := decodeError(t, w)
			assert.False(t, body.Success)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.Equal(t, tt.message, body.Error.Message)
			assert.Equal(t, tt.field, body.Error.Field)
		})
	}
}

func newJWT() *pkgauth.JWTService {
	return pkgauth.NewJWTService(pkgauth.JWTConfig{
		SecretKey:      "middleware-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "edupulse-test",
	})
}

func studentToken(t *testing.T, jwt *pkgauth.JWTService) string {
	t.Helper()
	token, _, err := jwt.GenerateToken(&models.User{
		Username:       "student",
		Name:           "John Student",
		Role:           models.RoleStudent,
		StudentProfile: &models.StudentProfile{StudentID: "S12345"},
	})
	require.NoError(t, err)
	return token
}

func authRouter(jwt *pkgauth.JWTService) *gin.Engine {
	m := NewAuthMiddleware(jwt)
	r := gin.New()
	r.GET("/me", m.JWTAuth(), func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": id.Username, "studentId": id.StudentID, "hasClaims": CurrentClaims(c) != nil})
	})
	r.GET("/mentor-only", m.JWTAuth(), m.RoleRequired(models.RoleMentor), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestJWTAuth(t *testing.T) {
	jwt := newJWT()
	r := authRouter(jwt)
	token := studentToken(t, jwt)

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeUnauthorized, decodeError(t, w).Error.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeInvalidToken, decodeError(t, w).Error.Code)
	})

	t.Run("bearer header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"username":"student","studentId":"S12345","hasClaims":true}`, w.Body.String())
	})

	t.Run("query token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me?token="+token, nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong role", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/mentor-only", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, dto.ErrorCodeForbidden, decodeError(t, w).Error.Code)
	})
}

func TestJWTAuthRejectsRevokedToken(t *testing.T) {
	jwt := newJWT()
	r := authRouter(jwt)
	token := studentToken(t, jwt)

	claims, err := jwt.ValidateToken(token)
	require.NoError(t, err)
	jwt.Revoke(claims)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(0.001, 2)
	r := gin.New()
	r.POST("/login", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// other clients have their own bucket
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiterDisabled(t *testing.T) {
	limiter := NewRateLimiter(0, 1)
	for i := 0; i < 50; i++ {
		assert.True(t, limiter.Allow("10.0.0.1"))
	}
}

type bindTarget struct {
	SessionID string `json:"session_id" binding:"required"`
	Currency  string `json:"currency" binding:"omitempty,oneof=USD INR"`
}

func TestValidationReportsJSONFieldNames(t *testing.T) {
	require.NoError(t, ConfigureValidator())

	r := gin.New()
	r.POST("/pay", ValidateRequest[bindTarget](), func(c *gin.Context) {
		body, ok := ValidatedBody[bindTarget](c)
		require.True(t, ok)
		c.JSON(http.StatusOK, body)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/pay", strings.NewReader(`{"currency":"EUR"}`)))
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Error struct {
			Code    dto.ErrorCode `json:"code"`
			Details []struct {
				Field   string `json:"field"`
				Message string `json:"message"`
			} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, dto.ErrorCodeValidationFailed, body.Error.Code)
	require.Len(t, body.Error.Details, 2)
	assert.Equal(t, "session_id", body.Error.Details[0].Field)
	assert.Equal(t, "session_id is required", body.Error.Details[0].Message)
	assert.Equal(t, "currency", body.Error.Details[1].Field)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/pay", strings.NewReader(`{"session_id":"ABCD1234","currency":"INR"}`)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"session_id":"ABCD1234","currency":"INR"}`, w.Body.String())
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	m := metrics.NewMetrics()
	r := gin.New()
	r.Use(Metrics(m), RequestLogger(zerolog.Nop()))
	r.GET("/video/:sessionId", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/video/:sessionId", "200"))
	for _, id := range []string{"AAAA1111", "BBBB2222"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/video/"+id, nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
	after := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/video/:sessionId", "200"))
	assert.Equal(t, 2.0, after-before)
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:3000"}))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.test")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
