package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	// User
	"FullName":    "Full name",
	"EmailAddr":   "Email",
	"PhoneNumber": "Phone number",
	"Password":    "Password",
	"Sex":         "Sex",
	"BirthDate":   "Birth date",
	"Address":     "Address",

	// Candidate
	"UserID":         "User ID",
	"CandidateID":    "Candidate ID",
	"CurrentTitle":   "Current title",
	"SelfIntro":      "Self introduction",
	"TotalYearOfExp": "Total years of experience",
	"PostID":         "Posting ID",

	// Children
	"JobTitle":     "Job title",
	"CompanyName":  "Company name",
	"SchoolName":   "School name",
	"CertName":     "Certificate name",
	"Organization": "Organization",
	"CertURL":      "Certificate URL",
	"CvName":       "CV name",
	"CvURL":        "CV URL",
	"FileName":     "File name",
	"Language":     "Language",
	"Level":        "Level",

	// Posting
	"PostName":    "Posting title",
	"SalaryMin":   "Minimum salary",
	"SalaryMax":   "Maximum salary",
	"Position":    "Position",
	"Location":    "Location",
	"WorkForm":    "Work form",
	"Domain":      "Domain",
	"PostDesc":    "Description",
	"EndDate":     "End date",
	"StartDate":   "Start date",
	"EmployerID":  "Employer ID",
	"ModStaffID":  "Moderator ID",
	"Description": "Description",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
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

// Message joins FormatValidationErrors into one line.
func Message(err error) string {
	return strings.Join(FormatValidationErrors(err), "; ")
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
	case "lte":
		return fmt.Sprintf("%s must be %s or less", label, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(strings.Fields(param), ", "))
	case "email":
		return fmt.Sprintf("%s is not a valid email address", label)
	case "url":
		return fmt.Sprintf("%s is not a valid URL", label)
	case "valid_name":
		return fmt.Sprintf("%s may only contain letters, spaces and common punctuation (. ' - /)", label)
	case "valid_phone":
		return fmt.Sprintf("%s is not a valid phone number (7-15 digits, optional +)", label)
	case "no_emoji":
		return fmt.Sprintf("%s must not contain emoji or special symbols", label)
	case "gtefield":
		return fmt.Sprintf("%s must be greater than or equal to %s", label, getFieldLabel(param))
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

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
