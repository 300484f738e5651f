package catalog

import (
	"context"
	"testing"
	"time"

	"errors"

	"github.com/google/uuid"

	"github.com/carehome/emar/pkg/caldate"
)

// -- Mock repository --

type mockRepo struct {
	meds map[uuid.UUID]*Medication
}

func newMockRepo() *mockRepo {
	return &mockRepo{meds: make(map[uuid.UUID]*Medication)}
}

func (m *mockRepo) Create(_ context.Context, med *Medication) error {
	med.ID = uuid.New()
	med.CreatedAt = time.Now()
	med.UpdatedAt = time.Now()
	m.meds[med.ID] = med
	return nil
}

func (m *mockRepo) Update(_ context.Context, med *Medication) error {
	if _, ok := m.meds[med.ID]; !ok {
		return ErrNotFound
	}
	m.meds[med.ID] = med
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Medication, error) {
	med, ok := m.meds[id]
	if !ok {
		return nil, ErrNotFound
	}
	return med, nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Medication, int, error) {
	all, _ := m.ListAll(context.Background())
	total := len(all)
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockRepo) ListAll(_ context.Context) ([]*Medication, error) {
	var result []*Medication
	for _, med := range m.meds {
		result = append(result, med)
	}
	return result, nil
}

// -- Tests --

func validMed() *Medication {
	return &Medication{
		Name:       "Aspirin",
		Category:   "analgesic",
		DoseAmount: "100",
		Unit:       "mg",
		Stock:      120,
		MinStock:   30,
		ExpiryDate: caldate.New(2026, 12, 31),
	}
}

func TestUpsert_CreatesWithFreshID(t *testing.T) {
	svc := NewService(newMockRepo())

	m := validMed()
	if err := svc.Upsert(context.Background(), m); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if m.ID == uuid.Nil {
		t.Error("expected a fresh id to be assigned")
	}
}

func TestUpsert_UpdatesExisting(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	m := validMed()
	if err := svc.Upsert(context.Background(), m); err != nil {
		t.Fatalf("create: %v", err)
	}

	m.Stock = 80
	if err := svc.Upsert(context.Background(), m); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := svc.Get(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Stock != 80 {
		t.Errorf("expected stock 80 after update, got %d", got.Stock)
	}
}

func TestUpsert_RejectsNegativeStock(t *testing.T) {
	svc := NewService(newMockRepo())

	m := validMed()
	m.Stock = -1
	err := svc.Upsert(context.Background(), m)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for negative stock, got %v", err)
	}

	m = validMed()
	m.MinStock = -5
	err = svc.Upsert(context.Background(), m)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for negative min_stock, got %v", err)
	}
}

func TestUpsert_RejectsEmptyName(t *testing.T) {
	svc := NewService(newMockRepo())

	m := validMed()
	m.Name = ""
	if err := svc.Upsert(context.Background(), m); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for empty name, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Get(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
