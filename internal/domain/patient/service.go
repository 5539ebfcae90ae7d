package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sonia-health/sonia/internal/platform/auth"
)

var (
	ErrNotFound   = fmt.Errorf("paciente no encontrado")
	ErrValidation = fmt.Errorf("nombre y edad son obligatorios")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CanAccess reports whether the caller may read or modify the patient.
// Admins see everything; everyone else must have created the record or be
// listed as a collaborator. Satisfies treatment.PatientAccess.
func (s *Service) CanAccess(ctx context.Context, patientID uuid.UUID, callerID, role string) (bool, error) {
	if role == auth.RoleAdmin {
		_, err := s.repo.GetByID(ctx, patientID)
		if err != nil {
			return false, nil
		}
		return true, nil
	}
	return s.repo.HasAccess(ctx, patientID, callerID)
}

// IsCreator reports whether the caller created the patient. Unlike CanAccess
// it does not admit collaborators or admins.
func (s *Service) IsCreator(ctx context.Context, patientID uuid.UUID, callerID string) (bool, error) {
	p, err := s.repo.GetByID(ctx, patientID)
	if err != nil {
		return false, nil
	}
	return p.CreatorID == callerID, nil
}

func (s *Service) Create(ctx context.Context, p *Patient, callerID string) error {
	if p.Name == "" || p.Age <= 0 {
		return ErrValidation
	}
	p.CreatorID = callerID
	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID, callerID, role string) (*Patient, error) {
	ok, err := s.CanAccess(ctx, id, callerID, role)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, p *Patient, callerID, role string) error {
	if p.Name == "" || p.Age <= 0 {
		return ErrValidation
	}
	ok, err := s.CanAccess(ctx, p.ID, callerID, role)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return s.repo.Update(ctx, p)
}

// Delete removes a patient. Only the creator and admins may delete; a
// collaborator with read/write access is not enough.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, callerID, role string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}
	if role != auth.RoleAdmin && p.CreatorID != callerID {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, callerID, search string, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, callerID, search, limit, offset)
}

func (s *Service) AddCollaborator(ctx context.Context, patientID uuid.UUID, callerID, role, userID string) error {
	if userID == "" {
		return fmt.Errorf("userId es obligatorio")
	}
	ok, err := s.CanAccess(ctx, patientID, callerID, role)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return s.repo.AddCollaborator(ctx, patientID, userID)
}

func (s *Service) RemoveCollaborator(ctx context.Context, patientID uuid.UUID, callerID, role, userID string) error {
	ok, err := s.CanAccess(ctx, patientID, callerID, role)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return s.repo.RemoveCollaborator(ctx, patientID, userID)
}

func (s *Service) Collaborators(ctx context.Context, patientID uuid.UUID, callerID, role string) ([]string, error) {
	ok, err := s.CanAccess(ctx, patientID, callerID, role)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return s.repo.Collaborators(ctx, patientID)
}
