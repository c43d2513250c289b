package middleware

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/edupulse/edupulse/internal/app/models/dto"
	"github.com/edupulse/edupulse/internal/pkg/validation"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	configureOnce sync.Once
	configureErr  error
)

// ConfigureValidator adds the custom rules to the binding validator and makes
// it report fields by their json name, so error details say "session_id"
// rather than "SessionID"
func ConfigureValidator() error {
	configureOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			configureErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		if configureErr = validation.Register(v); configureErr != nil {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
	})
	return configureErr
}

// ValidateRequest binds the JSON body into a fresh T and stores it under
// "validatedBody" for the handler
func ValidateRequest[T any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		body := new(T)
		if err := c.ShouldBindJSON(body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
			return
		}
		c.Set("validatedBody", body)
		c.Next()
	}
}

// ValidatedBody returns the request bound by ValidateRequest
func ValidatedBody[T any](c *gin.Context) (*T, bool) {
	value, exists := c.Get("validatedBody")
	if !exists {
		return nil, false
	}
	body, ok := value.(*T)
	return body, ok
}
