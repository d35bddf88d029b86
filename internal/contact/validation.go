package contact

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrMalformedBody is returned when the request body is not a JSON object.
var ErrMalformedBody = errors.New("malformed request body")

// Field names in schema order. Errors are always reported in this order.
var fieldOrder = []string{"name", "email", "company", "projectType", "budget", "message"}

var fieldMessages = map[string]string{
	"name":        "Name must be at least 2 characters",
	"email":       "Please enter a valid email address",
	"company":     "Company must be a string",
	"projectType": "Please select a project type",
	"budget":      "Please select a valid budget range",
	"message":     "Message must be at least 10 characters",
}

// FieldError is a single field failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors holds every failing field of one submission, in schema order.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, len(fe))
	for i, e := range fe {
		parts[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields returns the failing field names in order.
func (fe FieldErrors) Fields() []string {
	fields := make([]string, len(fe))
	for i, e := range fe {
		fields[i] = e.Field
	}
	return fields
}

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report json names instead of Go field names
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := validate.RegisterValidation("email_domain", validateEmailDomain); err != nil {
		panic(fmt.Sprintf("register email_domain validation: %v", err))
	}
}

// validateEmailDomain requires the domain part to be dotted with non-empty
// labels, e.g. "x.com". The built-in email tag accepts bare hosts like "x".
func validateEmailDomain(fl validator.FieldLevel) bool {
	email := fl.Field().String()
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return false
	}
	labels := strings.Split(email[at+1:], ".")
	if len(labels) < 2 {
		return false
	}
	for _, l := range labels {
		if l == "" {
			return false
		}
	}
	return true
}

// Validate decodes and validates a raw JSON request body.
//
// A body that is not a JSON object yields an error wrapping ErrMalformedBody.
// Otherwise every failing field is reported as a FieldErrors value. Unknown
// fields are ignored. A JSON null counts as absent, and an absent or empty
// budget means no budget was given.
func Validate(body []byte) (*Submission, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: body is null", ErrMalformedBody)
	}

	failed := make(map[string]bool)
	values := make(map[string]string, len(fieldOrder))

	for _, field := range fieldOrder {
		msg, ok := raw[field]
		if !ok || string(msg) == "null" {
			continue
		}
		var s string
		if err := json.Unmarshal(msg, &s); err != nil {
			failed[field] = true
			continue
		}
		values[field] = s
	}

	sub := &Submission{
		Name:        values["name"],
		Email:       values["email"],
		Company:     values["company"],
		ProjectType: ProjectType(values["projectType"]),
		Budget:      Budget(values["budget"]),
		Message:     values["message"],
	}

	if err := validate.Struct(sub); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, fmt.Errorf("validate submission: %w", err)
		}
		for _, fe := range verrs {
			failed[fe.Field()] = true
		}
	}

	if len(failed) == 0 {
		return sub, nil
	}

	errs := make(FieldErrors, 0, len(failed))
	for _, field := range fieldOrder {
		if failed[field] {
			errs = append(errs, FieldError{Field: field, Message: fieldMessages[field]})
		}
	}
	return nil, errs
}
