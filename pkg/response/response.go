package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/kbhandari/portfolio-api/pkg/errors"
)

// Envelope is the single response shape used by every endpoint, success or
// failure. Errors lists itemized reasons, MessageID references the stored
// submission on the happy path.
type Envelope struct {
	Success   bool     `json:"success"`
	Message   string   `json:"message,omitempty"`
	Errors    []string `json:"errors,omitempty"`
	MessageID string   `json:"messageId,omitempty"`
}

// OK writes a success envelope with the given user-facing message.
func OK(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: message,
	})
}

// Created writes a success envelope referencing a newly stored submission.
func Created(c *gin.Context, message, messageID string) {
	c.JSON(http.StatusOK, Envelope{
		Success:   true,
		Message:   message,
		MessageID: messageID,
	})
}

// Error writes a failure envelope derived from an AppError. Unknown error
// values degrade to the generic 500 body so internals never reach clients.
func Error(c *gin.Context, err error) {
	if err == nil {
		err = appErrors.ErrInternalServer
	}

	appErr := appErrors.FromError(err)
	status := appErr.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}

	c.JSON(status, Envelope{
		Success: false,
		Message: appErr.Message,
		Errors:  appErr.Errors,
	})
}
