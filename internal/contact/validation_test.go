package contact

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

const validBody = `{"name":"Jo","email":"jo@x.com","projectType":"web","message":"Hello there, interested."}`

// TestValidate_Accepts tests payloads that must pass validation
func TestValidate_Accepts(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Submission
	}{
		{
			name: "required fields only",
			body: validBody,
			want: Submission{Name: "Jo", Email: "jo@x.com", ProjectType: ProjectWeb, Message: "Hello there, interested."},
		},
		{
			name: "all fields",
			body: `{"name":"Ada Lovelace","email":"ada@engine.co.uk","company":"Analytical","projectType":"both","budget":"100k+","message":"We need a new platform."}`,
			want: Submission{Name: "Ada Lovelace", Email: "ada@engine.co.uk", Company: "Analytical", ProjectType: ProjectBoth, Budget: Budget100kPlus, Message: "We need a new platform."},
		},
		{
			name: "empty budget means not provided",
			body: `{"name":"Jo","email":"jo@x.com","projectType":"system","budget":"","message":"Hello there, interested."}`,
			want: Submission{Name: "Jo", Email: "jo@x.com", ProjectType: ProjectSystem, Message: "Hello there, interested."},
		},
		{
			name: "null optional fields are absent",
			body: `{"name":"Jo","email":"jo@x.com","company":null,"projectType":"consultation","budget":null,"message":"Hello there, interested."}`,
			want: Submission{Name: "Jo", Email: "jo@x.com", ProjectType: ProjectConsultation, Message: "Hello there, interested."},
		},
		{
			name: "unknown fields ignored",
			body: `{"name":"Jo","email":"jo@x.com","projectType":"web","message":"Hello there, interested.","phone":12345}`,
			want: Submission{Name: "Jo", Email: "jo@x.com", ProjectType: ProjectWeb, Message: "Hello there, interested."},
		},
		{
			name: "multibyte name counts characters",
			body: `{"name":"李雷","email":"li@example.cn","projectType":"web","message":"Hello there, interested."}`,
			want: Submission{Name: "李雷", Email: "li@example.cn", ProjectType: ProjectWeb, Message: "Hello there, interested."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate([]byte(tt.body))
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if *got != tt.want {
				t.Errorf("Validate() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

// TestValidate_FieldErrors tests every failing field is reported in schema order
func TestValidate_FieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{
			name:   "every field invalid",
			body:   `{"name":"J","email":"bad","projectType":"nope","message":"hi"}`,
			fields: []string{"name", "email", "projectType", "message"},
		},
		{
			name:   "empty object",
			body:   `{}`,
			fields: []string{"name", "email", "projectType", "message"},
		},
		{
			name:   "unlisted budget",
			body:   `{"name":"Jo","email":"jo@x.com","projectType":"web","budget":"5k","message":"Hello there, interested."}`,
			fields: []string{"budget"},
		},
		{
			name:   "email without dotted domain",
			body:   `{"name":"Jo","email":"jo@localhost","projectType":"web","message":"Hello there, interested."}`,
			fields: []string{"email"},
		},
		{
			name:   "email with empty domain label",
			body:   `{"name":"Jo","email":"jo@x..com","projectType":"web","message":"Hello there, interested."}`,
			fields: []string{"email"},
		},
		{
			name:   "non-string values",
			body:   `{"name":42,"email":"jo@x.com","company":true,"projectType":"web","budget":10000,"message":["Hello there, interested."]}`,
			fields: []string{"name", "company", "budget", "message"},
		},
		{
			name:   "null required field",
			body:   `{"name":null,"email":"jo@x.com","projectType":"web","message":"Hello there, interested."}`,
			fields: []string{"name"},
		},
		{
			name:   "message one short",
			body:   `{"name":"Jo","email":"jo@x.com","projectType":"web","message":"123456789"}`,
			fields: []string{"message"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate([]byte(tt.body))
			if got != nil {
				t.Errorf("Validate() = %+v, want nil", got)
			}

			var fe FieldErrors
			if !errors.As(err, &fe) {
				t.Fatalf("Validate() error = %v, want FieldErrors", err)
			}
			if !reflect.DeepEqual(fe.Fields(), tt.fields) {
				t.Errorf("fields = %v, want %v", fe.Fields(), tt.fields)
			}
			for _, e := range fe {
				if e.Message != fieldMessages[e.Field] {
					t.Errorf("field %s message = %q, want %q", e.Field, e.Message, fieldMessages[e.Field])
				}
			}
		})
	}
}

// TestValidate_Messages tests the exact user facing messages
func TestValidate_Messages(t *testing.T) {
	_, err := Validate([]byte(`{"name":"J","email":"bad","projectType":"nope","message":"hi"}`))

	var fe FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("error = %v, want FieldErrors", err)
	}

	want := FieldErrors{
		{Field: "name", Message: "Name must be at least 2 characters"},
		{Field: "email", Message: "Please enter a valid email address"},
		{Field: "projectType", Message: "Please select a project type"},
		{Field: "message", Message: "Message must be at least 10 characters"},
	}
	if !reflect.DeepEqual(fe, want) {
		t.Errorf("FieldErrors = %+v, want %+v", fe, want)
	}
	if !strings.HasPrefix(fe.Error(), "validation failed: name:") {
		t.Errorf("Error() = %q", fe.Error())
	}
}

// TestValidate_Malformed tests bodies that are not JSON objects
func TestValidate_Malformed(t *testing.T) {
	bodies := []string{``, `not json`, `{"name":`, `[]`, `"text"`, `null`, `42`}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			_, err := Validate([]byte(body))
			if !errors.Is(err, ErrMalformedBody) {
				t.Errorf("Validate(%q) error = %v, want ErrMalformedBody", body, err)
			}
		})
	}
}

// TestLabels tests option labels used by the CLI
func TestLabels(t *testing.T) {
	if got := ProjectBoth.Label(); got != "Full Stack (Web + System)" {
		t.Errorf("ProjectBoth.Label() = %q", got)
	}
	if got := Budget50To100k.Label(); got != "$50K - $100K" {
		t.Errorf("Budget50To100k.Label() = %q", got)
	}
	if got := Budget("").Label(); got != "Not specified" {
		t.Errorf("empty Budget.Label() = %q", got)
	}
}

// TestNewID tests identifier format and uniqueness
func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id, err := NewID()
		if err != nil {
			t.Fatalf("NewID() error = %v", err)
		}
		if !strings.HasPrefix(id, "contact_") || len(id) != len("contact_")+36 {
			t.Fatalf("NewID() = %q, want contact_<uuid>", id)
		}
		if seen[id] {
			t.Fatalf("NewID() returned duplicate %q", id)
		}
		seen[id] = true
	}
}

// TestLogNotifier tests the log notifier accepts any receipt
func TestLogNotifier(t *testing.T) {
	r := Receipt{
		Submission: Submission{Name: "Jo", Email: "jo@x.com", ProjectType: ProjectWeb, Message: "Hello there, interested."},
		ID:         "contact_test",
		ClientKey:  "203.0.113.1",
	}
	if err := (LogNotifier{}).Notify(context.Background(), r); err != nil {
		t.Errorf("Notify() error = %v", err)
	}
}
