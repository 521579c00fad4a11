package services

import (
	"strings"

	appValidator "github.com/kbhandari/portfolio-api/pkg/validator"
)

// SubmissionInput carries the four contact-form fields. Validation tags
// encode the acceptance rules; Normalize must run before ValidateSubmission
// so length checks see trimmed values.
type SubmissionInput struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,relaxed_email"`
	Subject string `json:"subject" validate:"required,min=3"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

// Normalize trims surrounding whitespace from every field.
func (in *SubmissionInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
}

// ValidateSubmission checks every rule and returns the human-readable
// reasons in field order (name, email, subject, message). No rule
// short-circuits another: a short name and a short message yield two
// distinct entries. An empty result means the input passed.
func ValidateSubmission(in SubmissionInput) []string {
	err := appValidator.ValidateStruct(in)
	if err == nil {
		return nil
	}

	failures, ok := err.(appValidator.ValidationErrors)
	if !ok {
		return []string{"Invalid request payload"}
	}

	reasons := make([]string, 0, len(failures))
	for _, failure := range failures {
		reasons = append(reasons, submissionErrorMessage(failure))
	}
	return reasons
}

func submissionErrorMessage(failure appValidator.ValidationError) string {
	switch failure.Field {
	case "name":
		if failure.Tag == "required" {
			return "Name is required"
		}
		return "Name must be at least 2 characters"
	case "email":
		return "Valid email address is required"
	case "subject":
		if failure.Tag == "required" {
			return "Subject is required"
		}
		return "Subject must be at least 3 characters"
	case "message":
		switch failure.Tag {
		case "required":
			return "Message is required"
		case "max":
			return "Message must not exceed 5000 characters"
		default:
			return "Message must be at least 10 characters"
		}
	default:
		return "Invalid request payload"
	}
}
