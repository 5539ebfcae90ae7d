package user

import (
	"context"
	"fmt"

	"github.com/sonia-health/sonia/internal/platform/auth"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the caller's stored profile, or a minimal one built from the
// token when nothing has been saved yet.
func (s *Service) Get(ctx context.Context, callerID, tokenRole string) (*Profile, error) {
	p, err := s.repo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		role := tokenRole
		if role == "" {
			role = auth.RoleCuidador
		}
		p = &Profile{ID: callerID, Role: role}
	}
	return p, nil
}

func (s *Service) Save(ctx context.Context, p *Profile, callerID string) error {
	p.ID = callerID
	if p.Role == "" {
		p.Role = auth.RoleCuidador
	}
	if !auth.ValidRole(p.Role) {
		return fmt.Errorf("rol desconocido: %s", p.Role)
	}
	// Professional fields and the patient relation are mutually exclusive by
	// role; whatever does not apply is stored as NULL.
	if p.Role != auth.RoleProfesional {
		p.Specialty = nil
		p.Institution = nil
	}
	if p.Role != auth.RoleCuidador && p.Role != auth.RoleFamiliar {
		p.PatientRelation = nil
	}
	return s.repo.Upsert(ctx, p)
}
