package validation

import (
	"errors"
	"fmt"
	"strings"

	"jobflix-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	"SalaryMin":    "Minimum salary",
	"SalaryMax":    "Maximum salary",
	"CompanyID":    "Company",
	"UserID":       "User",
	"JobID":        "Job",
	"FullName":     "Full name",
	"ProfileImage": "Profile image",
	"CoverLetter":  "Cover letter",
	"IsRecruiter":  "Recruiter flag",
	"ExpiresAt":    "Expiry date",
}

// FormatValidationErrors converts validator.ValidationErrors to readable messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at least %s", label, param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at most %s", label, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", label, param)
	case "gte":
		return fmt.Sprintf("%s must be %s or more", label, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(param, " ", ", "))
	case "email":
		return fmt.Sprintf("%s must be a valid email address", label)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", label)
	case "job_type":
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(domain.JobTypes, ", "))
	case "job_level":
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(domain.JobLevels, ", "))
	case "company_size":
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(domain.CompanySizes, ", "))
	case "application_status":
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(domain.ApplicationStatuses, ", "))
	case "valid_name":
		return fmt.Sprintf("%s may only contain letters, digits, spaces and . ' - / & ( ) ,", label)
	case "no_emoji":
		return fmt.Sprintf("%s must not contain emoji or symbols", label)
	case "max_current_year":
		return fmt.Sprintf("%s cannot be in the future", label)
	default:
		return fmt.Sprintf("%s failed validation (%s)", label, e.Tag())
	}
}

func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase turns "CamelCase" into "Camel case".
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
			r += 'a' - 'A'
		}
		result.WriteRune(r)
	}
	return result.String()
}
