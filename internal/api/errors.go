package api

import (
	"net/http"

	"smartsheetsvc/internal/errors"

	"github.com/gin-gonic/gin"
)

// statusFor maps an AppError code to an HTTP status. A sheet that no longer
// matches the expected layout is the upstream's fault, so it is a 502.
func statusFor(code string) int {
	switch code {
	case errors.CodeInvalidInput:
		return http.StatusBadRequest
	case errors.CodeSchemaInvalid, errors.CodeRowLookup:
		return http.StatusBadGateway
	case errors.CodeRecordInvalid:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	if code == "UNKNOWN" {
		code = errors.CodeInternalError
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("%s %s [%s]: %v", c.Request.Method, c.Request.URL.Path, c.GetString(requestIDKey), err)
	} else {
		s.logger.Warn("%s %s [%s]: %v", c.Request.Method, c.Request.URL.Path, c.GetString(requestIDKey), err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": code, "message": err.Error()})
}
