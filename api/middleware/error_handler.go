// api/middleware/error_handler.go
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Annany2002/nebula-connector/internal/auth"
	"github.com/Annany2002/nebula-connector/internal/connection"
	"github.com/Annany2002/nebula-connector/internal/ddl"
	"github.com/Annany2002/nebula-connector/internal/secrets"
	"github.com/Annany2002/nebula-connector/internal/storage"
)

// ErrBadRequestBody marks a request body that could not be decoded.
var ErrBadRequestBody = errors.New("invalid request body")

// ErrorHandler creates a Gin middleware for centralized error handling.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		// Only the last error shapes the response.
		err := c.Errors.Last().Err
		customLog.Printf("[ErrorHandler] Detected error: %v | Type: %T", err, err)

		statusCode, errorType := http.StatusInternalServerError, "InternalError"
		userMessage := err.Error()

		var validationErrs validator.ValidationErrors
		switch {
		case errors.Is(err, connection.ErrConfiguration):
			statusCode, errorType = http.StatusBadRequest, "ConfigurationError"
		case errors.Is(err, secrets.ErrSecretNotFound):
			statusCode, errorType = http.StatusBadRequest, "ConfigurationError"
		case errors.Is(err, ddl.ErrValidation):
			statusCode, errorType = http.StatusBadRequest, "ValidationError"
		case errors.Is(err, ddl.ErrDuplicateTable):
			statusCode, errorType = http.StatusConflict, "DuplicateTableError"
		case errors.Is(err, ddl.ErrExecution):
			statusCode, errorType = http.StatusBadGateway, "ExecutionError"
		case errors.Is(err, storage.ErrConnect):
			statusCode, errorType = http.StatusBadGateway, "ConnectionError"
		case errors.Is(err, auth.ErrTokenMalformed),
			errors.Is(err, auth.ErrTokenInvalid),
			errors.Is(err, auth.ErrTokenClaimsInvalid),
			errors.Is(err, auth.ErrUnexpectedSigningMethod),
			errors.Is(err, auth.ErrUnauthorized):
			statusCode, errorType = http.StatusUnauthorized, "AuthenticationError"
			userMessage = "Invalid or malformed authentication token."
		case errors.Is(err, auth.ErrTokenExpired):
			statusCode, errorType = http.StatusUnauthorized, "AuthenticationError"
			userMessage = "Authentication token has expired."
		case errors.As(err, &validationErrs):
			statusCode, errorType = http.StatusBadRequest, "ValidationError"
			userMessage = "Validation failed. Please check your input."
			for _, fe := range validationErrs {
				customLog.Printf("Validation Error: Field %s failed on %s", fe.Field(), fe.Tag())
			}
		case errors.Is(err, ErrBadRequestBody):
			statusCode, errorType = http.StatusBadRequest, "ValidationError"
		default:
			userMessage = "An unexpected internal server error occurred."
			customLog.Warnf("Unhandled error type: %T, Error: %v", err, err)
		}

		if !c.Writer.Written() {
			c.AbortWithStatusJSON(statusCode, gin.H{
				"error":      userMessage,
				"error_type": errorType,
				"request_id": c.GetString(RequestIDKey),
			})
		} else {
			customLog.Warnf("[ErrorHandler] Warning: Response already written before handling error.")
		}
	}
}
