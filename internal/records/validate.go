package records

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/desertthunder/umx/internal/models"
)

// FieldError describes a single schema violation on a record.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError aggregates every schema violation found on one record.
type ValidationError struct {
	UserID string       `json:"userId"`
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	reasons := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		reasons[i] = fmt.Sprintf("%s: %s", f.Field, f.Reason)
	}
	return fmt.Sprintf("record %q failed validation: %s", e.UserID, strings.Join(reasons, "; "))
}

// Validate normalizes and validates one merged record against the submission
// schema: required non-empty userId, required well-formed email, optional
// names and password, optional phone numbers with no empty entries.
//
// On success the returned record has leading/trailing whitespace stripped from
// userId and email. On failure the error is a [*ValidationError] listing every
// violated field.
func Validate(record models.UserRecord) (models.UserRecord, error) {
	record.UserID = strings.TrimSpace(record.UserID)
	record.Email = strings.TrimSpace(record.Email)

	var fields []FieldError

	if record.UserID == "" {
		fields = append(fields, FieldError{Field: "userId", Reason: "required"})
	}

	if record.Email == "" {
		fields = append(fields, FieldError{Field: "email", Reason: "required"})
	} else if !validEmail(record.Email) {
		fields = append(fields, FieldError{Field: "email", Reason: "not a valid email address"})
	}

	for i, phone := range record.PhoneNumber {
		if strings.TrimSpace(phone) == "" {
			fields = append(fields, FieldError{
				Field:  fmt.Sprintf("phoneNumber[%d]", i),
				Reason: "must be a non-empty string",
			})
		}
	}

	if len(fields) > 0 {
		return record, &ValidationError{UserID: record.UserID, Fields: fields}
	}

	return record, nil
}

// validEmail reports whether s is a bare, well-formed address. Addresses with
// display names ("Name <a@b.c>") are rejected because the export carries
// addresses only.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s
}
