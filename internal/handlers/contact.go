package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kbhandari/portfolio-api/internal/services"
	appErrors "github.com/kbhandari/portfolio-api/pkg/errors"
	"github.com/kbhandari/portfolio-api/pkg/response"
)

// ContactHandler exposes the submission and confirmation workflows.
type ContactHandler struct {
	service *services.ContactService
}

// NewContactHandler constructs a contact handler.
func NewContactHandler(service *services.ContactService) (*ContactHandler, error) {
	if service == nil {
		return nil, errors.New("contact handler: service is required")
	}
	return &ContactHandler{service: service}, nil
}

// Submit handles POST /api/submit-form.
func (h *ContactHandler) Submit(c *gin.Context) {
	var input services.SubmissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.NewBadRequest(
			"Validation failed",
			"Request body must be valid JSON",
		))
		return
	}

	msg, err := h.service.Submit(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Message received! Check your email to verify.", msg.ID)
}

// Verify handles GET /api/verify-email?token=.
func (h *ContactHandler) Verify(c *gin.Context) {
	if err := h.service.Confirm(c.Request.Context(), c.Query("token")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Email verified! Your message has been sent successfully.")
}
