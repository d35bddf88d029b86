package contact

import (
	"context"
	"fmt"

	"github.com/aeternum/contact/internal/logging"
	"github.com/google/uuid"
)

// Notifier is told about each accepted submission. Email, CRM or chat
// integrations implement it; a failing Notifier turns the request into an
// internal error.
type Notifier interface {
	Notify(ctx context.Context, r Receipt) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, r Receipt) error

func (f NotifierFunc) Notify(ctx context.Context, r Receipt) error {
	return f(ctx, r)
}

// LogNotifier writes accepted submissions to the service log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, r Receipt) error {
	company := r.Company
	if company == "" {
		company = "-"
	}
	logging.Info("Contact submission %s from %s <%s> (company=%s, project=%s, budget=%s, client=%s)",
		r.ID, r.Name, r.Email, company, r.ProjectType.Label(), r.Budget.Label(),
		logging.FormatClientKey(r.ClientKey))
	logging.Debug("Contact submission %s message: %q", r.ID, r.Message)
	return nil
}

// NewID returns a time-ordered submission identifier of the form
// "contact_<uuid v7>".
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate submission id: %w", err)
	}
	return "contact_" + id.String(), nil
}
