package treatment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PatientAccess answers whether a caller may work with a patient's records.
// Implemented by the patient service; kept as a local interface so this
// package stays decoupled from it.
type PatientAccess interface {
	CanAccess(ctx context.Context, patientID uuid.UUID, callerID, role string) (bool, error)
	// IsCreator is stricter than CanAccess: collaborators and admins do not
	// qualify.
	IsCreator(ctx context.Context, patientID uuid.UUID, callerID string) (bool, error)
}

type Service struct {
	repo   Repository
	access PatientAccess
}

func NewService(repo Repository, access PatientAccess) *Service {
	return &Service{repo: repo, access: access}
}

// ErrForbidden is returned when the caller has no access to the patient.
var ErrForbidden = fmt.Errorf("paciente no encontrado")

func (s *Service) checkAccess(ctx context.Context, patientID uuid.UUID, callerID, role string) error {
	ok, err := s.access.CanAccess(ctx, patientID, callerID, role)
	if err != nil {
		return err
	}
	if !ok {
		// Indistinguishable from a missing patient on purpose.
		return ErrForbidden
	}
	return nil
}

func (s *Service) Create(ctx context.Context, t *Treatment, callerID, role string) error {
	if t.PatientID == uuid.Nil {
		return fmt.Errorf("patientId es obligatorio")
	}
	if err := s.checkAccess(ctx, t.PatientID, callerID, role); err != nil {
		return err
	}
	return s.repo.Create(ctx, t)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, callerID, role string) ([]*Treatment, error) {
	if err := s.checkAccess(ctx, patientID, callerID, role); err != nil {
		return nil, err
	}
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) Update(ctx context.Context, t *Treatment, callerID, role string) error {
	existing, err := s.repo.GetByID(ctx, t.ID)
	if err != nil {
		return fmt.Errorf("tratamiento no encontrado")
	}
	if existing.PatientID != t.PatientID {
		return fmt.Errorf("tratamiento no encontrado")
	}
	if err := s.checkAccess(ctx, t.PatientID, callerID, role); err != nil {
		return err
	}
	return s.repo.Update(ctx, t)
}

// defaultPlanName names the canvas auto-created when activities arrive for a
// patient who has none yet.
const defaultPlanName = "Plan de Tratamiento Principal"

// AddActivities attaches care activities to the patient's active canvas,
// creating a default one when the patient has none. Only the patient's
// creator may post activities.
func (s *Service) AddActivities(ctx context.Context, patientID uuid.UUID, activities []*CareActivity, callerID string) ([]*CareActivity, error) {
	ok, err := s.access.IsCreator(ctx, patientID, callerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	if len(activities) == 0 {
		return nil, fmt.Errorf("actividades es obligatorio")
	}
	for _, a := range activities {
		if a.Type == "" || a.Title == "" {
			return nil, fmt.Errorf("tipo y titulo son obligatorios")
		}
	}

	plan, err := s.repo.MostRecentActive(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		name := defaultPlanName
		plan = &Treatment{PatientID: patientID, Name: &name, Active: true}
		if err := s.repo.Create(ctx, plan); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	for _, a := range activities {
		a.TreatmentID = plan.ID
		a.PatientID = patientID
		a.Recurring = true
		if a.StartDate.IsZero() {
			a.StartDate = now
		}
	}
	if err := s.repo.CreateActivities(ctx, activities); err != nil {
		return nil, err
	}
	return activities, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID, callerID, role string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("tratamiento no encontrado")
	}
	if err := s.checkAccess(ctx, existing.PatientID, callerID, role); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
