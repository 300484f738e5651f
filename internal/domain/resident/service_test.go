package resident

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock repository --

type mockRepo struct {
	residents map[uuid.UUID]*Resident
}

func newMockRepo() *mockRepo {
	return &mockRepo{residents: make(map[uuid.UUID]*Resident)}
}

func (m *mockRepo) Create(_ context.Context, r *Resident) error {
	r.ID = uuid.New()
	r.CreatedAt = time.Now()
	r.UpdatedAt = time.Now()
	m.residents[r.ID] = r
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Resident, error) {
	r, ok := m.residents[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Resident, int, error) {
	all := make([]*Resident, 0, len(m.residents))
	for _, r := range m.residents {
		all = append(all, r)
	}
	return all, len(all), nil
}

// -- Tests --

func TestCreateResident(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	r := &Resident{Name: "Kim Yeong-hee", BedNumber: "203-1"}
	if err := svc.Create(context.Background(), r); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if r.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}

	got, err := svc.Get(context.Background(), r.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "Kim Yeong-hee" || got.BedNumber != "203-1" {
		t.Errorf("unexpected resident: %+v", got)
	}
}

func TestCreateResidentRequiresName(t *testing.T) {
	svc := NewService(newMockRepo())

	err := svc.Create(context.Background(), &Resident{BedNumber: "101-2"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestGetResidentNotFound(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Get(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListResidents(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	for _, name := range []string{"Park Jun-ho", "Lee Soon-ja"} {
		if err := svc.Create(context.Background(), &Resident{Name: name}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	list, total, err := svc.List(context.Background(), 50, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Errorf("expected 2 residents, got total=%d len=%d", total, len(list))
	}
}
