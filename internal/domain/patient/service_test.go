package patient

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/sonia-health/sonia/internal/platform/auth"
)

type mockRepo struct {
	byID          map[uuid.UUID]*Patient
	access        map[uuid.UUID]map[string]bool
	collaborators map[uuid.UUID][]string
	created       *Patient
	deleted       []uuid.UUID
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		byID:          map[uuid.UUID]*Patient{},
		access:        map[uuid.UUID]map[string]bool{},
		collaborators: map[uuid.UUID][]string{},
	}
}

func (m *mockRepo) add(p *Patient, callers ...string) {
	m.byID[p.ID] = p
	m.access[p.ID] = map[string]bool{}
	for _, c := range callers {
		m.access[p.ID][c] = true
	}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	m.created = p
	m.add(p, p.CreatorID)
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	return p, nil
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error { return nil }

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, callerID, _ string, _, _ int) ([]*Patient, int, error) {
	var out []*Patient
	for id, p := range m.byID {
		if m.access[id][callerID] {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

func (m *mockRepo) FindForCaller(_ context.Context, callerID, _ string, _ int) ([]*Patient, error) {
	items, _, err := m.List(context.Background(), callerID, "", 0, 0)
	return items, err
}

func (m *mockRepo) GetForCaller(_ context.Context, id uuid.UUID, callerID string) (*Patient, error) {
	if !m.access[id][callerID] {
		return nil, nil
	}
	return m.byID[id], nil
}

func (m *mockRepo) HasAccess(_ context.Context, id uuid.UUID, callerID string) (bool, error) {
	return m.access[id][callerID], nil
}

func (m *mockRepo) AddCollaborator(_ context.Context, id uuid.UUID, userID string) error {
	m.collaborators[id] = append(m.collaborators[id], userID)
	m.access[id][userID] = true
	return nil
}

func (m *mockRepo) RemoveCollaborator(_ context.Context, id uuid.UUID, userID string) error {
	delete(m.access[id], userID)
	return nil
}

func (m *mockRepo) Collaborators(_ context.Context, id uuid.UUID) ([]string, error) {
	return m.collaborators[id], nil
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newMockRepo())

	cases := []*Patient{
		{Name: "", Age: 70},
		{Name: "Ana", Age: 0},
		{Name: "Ana", Age: -1},
	}
	for _, p := range cases {
		if err := svc.Create(context.Background(), p, "caller-1"); !errors.Is(err, ErrValidation) {
			t.Errorf("Create(%+v) err = %v, want ErrValidation", p, err)
		}
	}
}

func TestCreateSetsCreator(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	p := &Patient{Name: "Ana Torres", Age: 70}
	if err := svc.Create(context.Background(), p, "caller-1"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if repo.created.CreatorID != "caller-1" {
		t.Errorf("CreatorID = %q, want caller-1", repo.created.CreatorID)
	}
}

func TestGetScopedToCaller(t *testing.T) {
	repo := newMockRepo()
	p := &Patient{ID: uuid.New(), Name: "Ana", Age: 70, CreatorID: "owner"}
	repo.add(p, "owner", "colaborador")
	svc := NewService(repo)

	if _, err := svc.Get(context.Background(), p.ID, "owner", auth.RoleCuidador); err != nil {
		t.Errorf("owner Get: %v", err)
	}
	if _, err := svc.Get(context.Background(), p.ID, "colaborador", auth.RoleFamiliar); err != nil {
		t.Errorf("collaborator Get: %v", err)
	}
	if _, err := svc.Get(context.Background(), p.ID, "extraño", auth.RoleCuidador); !errors.Is(err, ErrNotFound) {
		t.Errorf("stranger Get err = %v, want ErrNotFound", err)
	}
	// admin sees every existing patient
	if _, err := svc.Get(context.Background(), p.ID, "extraño", auth.RoleAdmin); err != nil {
		t.Errorf("admin Get: %v", err)
	}
}

func TestAdminAccessStillRequiresExistence(t *testing.T) {
	svc := NewService(newMockRepo())
	if _, err := svc.Get(context.Background(), uuid.New(), "admin", auth.RoleAdmin); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing patient err = %v, want ErrNotFound", err)
	}
}

func TestDeleteRequiresCreator(t *testing.T) {
	repo := newMockRepo()
	p := &Patient{ID: uuid.New(), Name: "Ana", Age: 70, CreatorID: "dueño"}
	repo.add(p, "dueño", "colaborador")
	svc := NewService(repo)
	ctx := context.Background()

	// a collaborator can read and edit but never delete
	if err := svc.Delete(ctx, p.ID, "colaborador", auth.RoleCuidador); !errors.Is(err, ErrNotFound) {
		t.Errorf("collaborator Delete err = %v, want ErrNotFound", err)
	}
	if len(repo.deleted) != 0 {
		t.Fatalf("patient deleted by collaborator: %v", repo.deleted)
	}

	if err := svc.Delete(ctx, p.ID, "dueño", auth.RoleCuidador); err != nil {
		t.Errorf("creator Delete: %v", err)
	}
	if err := svc.Delete(ctx, p.ID, "otro-admin", auth.RoleAdmin); err != nil {
		t.Errorf("admin Delete: %v", err)
	}
}

func TestIsCreator(t *testing.T) {
	repo := newMockRepo()
	p := &Patient{ID: uuid.New(), Name: "Ana", Age: 70, CreatorID: "dueño"}
	repo.add(p, "dueño", "colaborador")
	svc := NewService(repo)
	ctx := context.Background()

	if ok, _ := svc.IsCreator(ctx, p.ID, "dueño"); !ok {
		t.Error("IsCreator(creator) = false")
	}
	if ok, _ := svc.IsCreator(ctx, p.ID, "colaborador"); ok {
		t.Error("IsCreator(collaborator) = true")
	}
	if ok, _ := svc.IsCreator(ctx, uuid.New(), "dueño"); ok {
		t.Error("IsCreator(missing patient) = true")
	}
}

func TestCollaboratorLifecycle(t *testing.T) {
	repo := newMockRepo()
	p := &Patient{ID: uuid.New(), Name: "Ana", Age: 70, CreatorID: "owner"}
	repo.add(p, "owner")
	svc := NewService(repo)
	ctx := context.Background()

	if err := svc.AddCollaborator(ctx, p.ID, "owner", auth.RoleCuidador, "colega"); err != nil {
		t.Fatalf("AddCollaborator: %v", err)
	}
	if _, err := svc.Get(ctx, p.ID, "colega", auth.RoleCuidador); err != nil {
		t.Errorf("new collaborator cannot read patient: %v", err)
	}
	if err := svc.AddCollaborator(ctx, p.ID, "owner", auth.RoleCuidador, ""); err == nil {
		t.Error("AddCollaborator accepted empty user id")
	}
	if err := svc.RemoveCollaborator(ctx, p.ID, "owner", auth.RoleCuidador, "colega"); err != nil {
		t.Fatalf("RemoveCollaborator: %v", err)
	}
	if _, err := svc.Get(ctx, p.ID, "colega", auth.RoleCuidador); !errors.Is(err, ErrNotFound) {
		t.Errorf("removed collaborator Get err = %v, want ErrNotFound", err)
	}
}
