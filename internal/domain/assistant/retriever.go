package assistant

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sonia-health/sonia/internal/domain/patient"
)

// Retrieval caps. Keeping the grounding context small matters more than
// completeness: the model only needs a handful of records per turn.
const (
	maxAllPatients = 20
	maxByName      = 5
)

// Store is the read path the retriever needs from the patient repository.
type Store interface {
	FindForCaller(ctx context.Context, callerID, nameContains string, limit int) ([]*patient.Patient, error)
	GetForCaller(ctx context.Context, id uuid.UUID, callerID string) (*patient.Patient, error)
}

type Retriever struct {
	store Store
	log   zerolog.Logger
}

func NewRetriever(store Store, log zerolog.Logger) *Retriever {
	return &Retriever{store: store, log: log}
}

// Retrieve fetches the records an intent calls for, scoped to the caller and
// capped. A failed store call is logged and yields an empty result: the chat
// turn goes on without grounding context instead of failing outright.
func (r *Retriever) Retrieve(ctx context.Context, intent Intent, callerID string) []*patient.Patient {
	var (
		items []*patient.Patient
		err   error
	)
	switch intent.Kind {
	case LookupAllPatients:
		items, err = r.store.FindForCaller(ctx, callerID, "", maxAllPatients)
	case LookupSpecificPatient:
		items, err = r.store.FindForCaller(ctx, callerID, intent.PatientNameHint, maxByName)
	default:
		return nil
	}
	if err != nil {
		r.log.Error().Err(err).Str("caller_id", callerID).Msg("patient lookup failed, answering without context")
		return nil
	}
	return items
}

// ByID fetches a single patient the client pinned explicitly. Same failure
// semantics as Retrieve.
func (r *Retriever) ByID(ctx context.Context, id uuid.UUID, callerID string) []*patient.Patient {
	p, err := r.store.GetForCaller(ctx, id, callerID)
	if err != nil {
		r.log.Error().Err(err).Str("caller_id", callerID).Stringer("patient_id", id).Msg("patient lookup failed, answering without context")
		return nil
	}
	if p == nil {
		return nil
	}
	return []*patient.Patient{p}
}
