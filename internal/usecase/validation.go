package usecase

import (
	"strings"

	"github.com/go-playground/validator/v10"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
)

var validate = validator.New()

// ValidateDraft runs the client-side checks a draft must pass before any
// network call: non-empty customer name, an email-shaped address, and a
// non-negative total. Fail-fast: the first violation is returned.
func ValidateDraft(draft model.OrderDraft) error {
	if strings.TrimSpace(draft.CustomerName) == "" {
		return &domainErrors.ValidationError{Field: "customer name", Reason: "must not be empty"}
	}
	if err := validate.Var(draft.CustomerEmail, "required,email"); err != nil {
		return &domainErrors.ValidationError{Field: "customer email", Reason: "must be a valid email address"}
	}
	if draft.TotalAmount.IsNegative() {
		return &domainErrors.ValidationError{Field: "total amount", Reason: "must not be negative"}
	}
	return nil
}
