package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns the patients visible to the caller (created by them or
	// shared with them), optionally filtered by a case-insensitive name
	// substring, plus the total count for pagination.
	List(ctx context.Context, callerID, nameContains string, limit, offset int) ([]*Patient, int, error)

	// FindForCaller is the assistant's retrieval path: same visibility rule
	// as List, ordered by last update, each patient carrying its ActivePlan.
	FindForCaller(ctx context.Context, callerID, nameContains string, limit int) ([]*Patient, error)

	// GetForCaller fetches one patient with its ActivePlan, applying the same
	// visibility rule as FindForCaller. Returns nil, nil when the patient is
	// missing or not visible to the caller.
	GetForCaller(ctx context.Context, id uuid.UUID, callerID string) (*Patient, error)

	HasAccess(ctx context.Context, patientID uuid.UUID, callerID string) (bool, error)
	AddCollaborator(ctx context.Context, patientID uuid.UUID, userID string) error
	RemoveCollaborator(ctx context.Context, patientID uuid.UUID, userID string) error
	Collaborators(ctx context.Context, patientID uuid.UUID) ([]string, error)
}
