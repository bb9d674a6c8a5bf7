package middleware

import (
	"fmt"
	"strings"
)

// ValidationError marks bad request input; the router maps it to HTTP 400.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

const maxCompanyNameLen = 200

// ValidateCompanyName checks the analyze request's company name.
func ValidateCompanyName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &ValidationError{Field: "company_name", Reason: "must not be empty"}
	}
	if len(name) > maxCompanyNameLen {
		return &ValidationError{Field: "company_name", Reason: fmt.Sprintf("must be at most %d characters", maxCompanyNameLen)}
	}
	return nil
}

// ValidateCriteriaList rejects blank entries in sector/industry overrides.
func ValidateCriteriaList(field string, items []string) error {
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			return &ValidationError{Field: field, Reason: "entries must not be blank"}
		}
	}
	return nil
}
