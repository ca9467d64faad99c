package directory

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"gorm.io/gorm"
)

// ValidationError marks a request that is well-formed HTTP but fails a
// business rule. Handlers map it to a 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

var employeeNumberPattern = regexp.MustCompile(`^\d{4,10}$`)

// ValidateTeacherEmployeeNumber is the hard gate before a Teacher satellite
// may be created during explicit user provisioning. It checks the number's
// shape, its presence as an active catalog entry, and that it is not already
// claimed by a different user. Note the lazy-sync path deliberately skips
// this gate: satellites created there are empty and carry no number.
func (s *Service) ValidateTeacherEmployeeNumber(ctx context.Context, employeeNumber, userID string) error {
	if employeeNumber == "" {
		return &ValidationError{Message: "Missing employee_number for role teacher"}
	}
	if !employeeNumberPattern.MatchString(employeeNumber) {
		return &ValidationError{Message: "Invalid employee number, expected 4 to 10 digits"}
	}

	entry, err := s.store.GetCatalogEntry(ctx, employeeNumber)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &ValidationError{Message: "Employee number is not registered in the catalog"}
	}
	if err != nil {
		return fmt.Errorf("could not check teacher catalog: %w", err)
	}
	if !entry.IsActive {
		return &ValidationError{Message: "This employee number is inactive"}
	}

	existing, err := s.store.GetTeacherByEmployeeNumber(ctx, employeeNumber)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("could not check existing teachers: %w", err)
	}
	if err == nil && existing.UserID != userID {
		return &ValidationError{Message: "This employee number already belongs to another user"}
	}

	return nil
}
