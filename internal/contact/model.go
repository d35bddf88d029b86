// Package contact defines the contact form submission, its validation rules
// and the collaborator that is told about accepted submissions.
package contact

import "time"

// ProjectType is the kind of engagement the visitor is asking about.
type ProjectType string

const (
	ProjectWeb          ProjectType = "web"
	ProjectSystem       ProjectType = "system"
	ProjectBoth         ProjectType = "both"
	ProjectConsultation ProjectType = "consultation"
)

// ProjectTypes lists the accepted project types in form order.
var ProjectTypes = []ProjectType{ProjectWeb, ProjectSystem, ProjectBoth, ProjectConsultation}

// Label returns the human readable name shown on the site's form.
func (p ProjectType) Label() string {
	switch p {
	case ProjectWeb:
		return "Web Design"
	case ProjectSystem:
		return "System Architecture"
	case ProjectBoth:
		return "Full Stack (Web + System)"
	case ProjectConsultation:
		return "Consultation"
	default:
		return string(p)
	}
}

// Budget is the visitor's indicated budget range.
type Budget string

const (
	Budget10To25k  Budget = "10-25k"
	Budget25To50k  Budget = "25-50k"
	Budget50To100k Budget = "50-100k"
	Budget100kPlus Budget = "100k+"
)

// Budgets lists the accepted budget ranges in form order.
var Budgets = []Budget{Budget10To25k, Budget25To50k, Budget50To100k, Budget100kPlus}

// Label returns the human readable range, or "Not specified" for the empty budget.
func (b Budget) Label() string {
	switch b {
	case "":
		return "Not specified"
	case Budget10To25k:
		return "$10K - $25K"
	case Budget25To50k:
		return "$25K - $50K"
	case Budget50To100k:
		return "$50K - $100K"
	case Budget100kPlus:
		return "$100K+"
	default:
		return string(b)
	}
}

// Submission is a validated contact form payload.
type Submission struct {
	Name        string      `json:"name" validate:"required,min=2"`
	Email       string      `json:"email" validate:"required,email,email_domain"`
	Company     string      `json:"company,omitempty"`
	ProjectType ProjectType `json:"projectType" validate:"required,oneof=web system both consultation"`
	Budget      Budget      `json:"budget,omitempty" validate:"omitempty,oneof=10-25k 25-50k 50-100k 100k+"`
	Message     string      `json:"message" validate:"required,min=10"`
}

// Receipt is an accepted submission stamped with its identity.
type Receipt struct {
	Submission

	ID          string    `json:"id"`
	SubmittedAt time.Time `json:"submittedAt"`

	// ClientKey is the rate limit key the submission was admitted under.
	ClientKey string `json:"-"`
}
