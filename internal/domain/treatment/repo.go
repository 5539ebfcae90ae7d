package treatment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, t *Treatment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Treatment, error)
	Update(ctx context.Context, t *Treatment) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Treatment, error)
	// MostRecentActive returns the most recently updated active canvas for
	// the patient, or nil when the patient has none.
	MostRecentActive(ctx context.Context, patientID uuid.UUID) (*Treatment, error)
	// ActiveByPatients batches MostRecentActive over several patients in a
	// single query. Patients without an active canvas are absent from the map.
	ActiveByPatients(ctx context.Context, patientIDs []uuid.UUID) (map[uuid.UUID]*Treatment, error)
	CreateActivities(ctx context.Context, activities []*CareActivity) error
}
