package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainagg "github.com/smartmeal/smartmeal-backend/internal/domain/aggregates"
)

type APIError struct {
	Message   string `json:"message"`
	Code      string `json:"code,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondDomainError translates aggregate error codes to HTTP statuses.
// Conflicts and retryable failures are flagged so clients can retry the same
// request verbatim.
func RespondDomainError(c *gin.Context, err error) {
	code := domainagg.CodeOf(err)
	status := http.StatusInternalServerError
	retryable := false
	switch code {
	case domainagg.CodeValidation:
		status = http.StatusBadRequest
	case domainagg.CodeNotFound:
		status = http.StatusNotFound
	case domainagg.CodeConflict:
		status = http.StatusConflict
		retryable = true
	case domainagg.CodeRetryable:
		status = http.StatusServiceUnavailable
		retryable = true
	case domainagg.CodeDegraded:
		status = http.StatusServiceUnavailable
	}
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message:   msg,
			Code:      string(code),
			Retryable: retryable,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
