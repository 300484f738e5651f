package administration

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/carehome/emar/internal/domain/schedule"
	"github.com/carehome/emar/pkg/caldate"
)

// -- Mock repositories --

type mockRecordRepo struct {
	records []*Record
}

func (m *mockRecordRepo) Create(_ context.Context, r *Record) error {
	r.ID = uuid.New()
	r.CreatedAt = time.Now()
	cp := *r
	m.records = append(m.records, &cp)
	return nil
}

func (m *mockRecordRepo) List(_ context.Context, limit, offset int) ([]*Record, int, error) {
	return m.records, len(m.records), nil
}

func (m *mockRecordRepo) ListForDate(_ context.Context, d caldate.Date) ([]*Record, error) {
	var result []*Record
	for _, r := range m.records {
		if r.Date.Equal(d) {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *mockRecordRepo) Exists(_ context.Context, scheduleID uuid.UUID, d caldate.Date, timing string) (bool, error) {
	for _, r := range m.records {
		if r.ScheduleID == scheduleID && r.Date.Equal(d) && r.Timing == timing && r.Administered {
			return true, nil
		}
	}
	return false, nil
}

type mockScheduleRepo struct {
	schedules map[uuid.UUID]*schedule.Schedule
}

func (m *mockScheduleRepo) Create(_ context.Context, s *schedule.Schedule) error {
	s.ID = uuid.New()
	m.schedules[s.ID] = s
	return nil
}

func (m *mockScheduleRepo) Update(_ context.Context, s *schedule.Schedule) error { return nil }

func (m *mockScheduleRepo) GetByID(_ context.Context, id uuid.UUID) (*schedule.Schedule, error) {
	s, ok := m.schedules[id]
	if !ok {
		return nil, schedule.ErrNotFound
	}
	return s, nil
}

func (m *mockScheduleRepo) List(_ context.Context, limit, offset int) ([]*schedule.Schedule, int, error) {
	return nil, 0, nil
}

func (m *mockScheduleRepo) ListActiveOn(_ context.Context, d caldate.Date) ([]*schedule.Schedule, error) {
	var result []*schedule.Schedule
	for _, s := range m.schedules {
		if s.ActiveOn(d) {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.schedules, id)
	return nil
}

// -- Fixture --

func newFixture(t *testing.T) (*Service, *mockRecordRepo, *schedule.Schedule) {
	t.Helper()

	records := &mockRecordRepo{}
	schedules := &mockScheduleRepo{schedules: make(map[uuid.UUID]*schedule.Schedule)}

	sch := &schedule.Schedule{
		ResidentName:   "Kim",
		MedicationName: "Aspirin",
		Dose:           "100 mg",
		Timings:        []string{"morning", "evening"},
		StartDate:      caldate.New(2025, 1, 1),
		EndDate:        caldate.New(2025, 12, 31),
	}
	if err := schedules.Create(context.Background(), sch); err != nil {
		t.Fatal(err)
	}

	return NewService(records, schedules, nil), records, sch
}

// -- Tests --

func TestRecord_MarksSlotAdministered(t *testing.T) {
	svc, _, sch := newFixture(t)
	d := caldate.New(2025, 6, 1)

	given, err := svc.IsAdministered(context.Background(), sch.ID, d, "morning")
	if err != nil {
		t.Fatalf("IsAdministered: %v", err)
	}
	if given {
		t.Fatal("slot should not be administered before any record")
	}

	rec, err := svc.Record(context.Background(), sch.ID, d, "morning", "nurseA", nil)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if !rec.Administered {
		t.Error("record should be flagged administered")
	}
	if rec.ResidentName != "Kim" || rec.MedicationName != "Aspirin" {
		t.Errorf("expected snapshot names, got %q / %q", rec.ResidentName, rec.MedicationName)
	}
	if rec.AdministeredBy != "nurseA" {
		t.Errorf("expected actor nurseA, got %q", rec.AdministeredBy)
	}

	given, err = svc.IsAdministered(context.Background(), sch.ID, d, "morning")
	if err != nil {
		t.Fatalf("IsAdministered: %v", err)
	}
	if !given {
		t.Error("slot should be administered after the record")
	}
}

func TestRecord_DuplicateRefused(t *testing.T) {
	svc, records, sch := newFixture(t)
	d := caldate.New(2025, 6, 1)

	if _, err := svc.Record(context.Background(), sch.ID, d, "morning", "nurseA", nil); err != nil {
		t.Fatalf("first Record: %v", err)
	}

	_, err := svc.Record(context.Background(), sch.ID, d, "morning", "nurseB", nil)
	if !errors.Is(err, ErrDuplicateAdministration) {
		t.Fatalf("expected ErrDuplicateAdministration, got %v", err)
	}

	// Exactly one matching record remains.
	count := 0
	for _, r := range records.records {
		if r.ScheduleID == sch.ID && r.Timing == "morning" && r.Date.Equal(d) {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly 1 record, got %d", count)
	}
}

func TestRecord_SameSlotDifferentDate(t *testing.T) {
	svc, _, sch := newFixture(t)

	if _, err := svc.Record(context.Background(), sch.ID, caldate.New(2025, 6, 1), "morning", "nurseA", nil); err != nil {
		t.Fatalf("day one: %v", err)
	}
	if _, err := svc.Record(context.Background(), sch.ID, caldate.New(2025, 6, 2), "morning", "nurseA", nil); err != nil {
		t.Fatalf("day two should be independent: %v", err)
	}
}

func TestRecord_UnknownSchedule(t *testing.T) {
	svc, records, _ := newFixture(t)

	_, err := svc.Record(context.Background(), uuid.New(), caldate.New(2025, 6, 1), "morning", "nurseA", nil)
	if !errors.Is(err, ErrUnknownSchedule) {
		t.Fatalf("expected ErrUnknownSchedule, got %v", err)
	}
	if len(records.records) != 0 {
		t.Error("failed call must leave the ledger unchanged")
	}
}

func TestRecord_InvalidTiming(t *testing.T) {
	svc, records, sch := newFixture(t)

	_, err := svc.Record(context.Background(), sch.ID, caldate.New(2025, 6, 1), "noon", "nurseA", nil)
	if !errors.Is(err, ErrInvalidTiming) {
		t.Fatalf("expected ErrInvalidTiming, got %v", err)
	}
	if len(records.records) != 0 {
		t.Error("failed call must leave the ledger unchanged")
	}
}

func TestRecord_RequiresActor(t *testing.T) {
	svc, _, sch := newFixture(t)

	_, err := svc.Record(context.Background(), sch.ID, caldate.New(2025, 6, 1), "morning", "", nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestListForDate(t *testing.T) {
	svc, _, sch := newFixture(t)

	if _, err := svc.Record(context.Background(), sch.ID, caldate.New(2025, 6, 1), "morning", "nurseA", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Record(context.Background(), sch.ID, caldate.New(2025, 6, 2), "morning", "nurseA", nil); err != nil {
		t.Fatal(err)
	}

	records, err := svc.ListForDate(context.Background(), caldate.New(2025, 6, 1))
	if err != nil {
		t.Fatalf("ListForDate: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected 1 record for the date, got %d", len(records))
	}
}

// indexBackedRepo models the partial unique index: Exists answers from a
// stale snapshot while Create rejects a second administered row for the
// same slot, the way postgres does when two writers race past the check.
type indexBackedRepo struct {
	mockRecordRepo
}

func (m *indexBackedRepo) Exists(_ context.Context, _ uuid.UUID, _ caldate.Date, _ string) (bool, error) {
	return false, nil
}

func (m *indexBackedRepo) Create(ctx context.Context, r *Record) error {
	for _, existing := range m.records {
		if existing.ScheduleID == r.ScheduleID && existing.Date.Equal(r.Date) &&
			existing.Timing == r.Timing && existing.Administered {
			return fmt.Errorf("%w: schedule %s, %s, %s",
				ErrDuplicateAdministration, r.ScheduleID, r.Date, r.Timing)
		}
	}
	return m.mockRecordRepo.Create(ctx, r)
}

// A racing writer that slipped past the existence check must still be
// rejected by the insert, with exactly one record on the ledger.
func TestRecord_RaceLoserRejectedByInsert(t *testing.T) {
	records := &indexBackedRepo{}
	schedules := &mockScheduleRepo{schedules: make(map[uuid.UUID]*schedule.Schedule)}

	sch := &schedule.Schedule{
		ResidentName:   "Kim",
		MedicationName: "Aspirin",
		Timings:        []string{"morning"},
		StartDate:      caldate.New(2025, 1, 1),
		EndDate:        caldate.New(2025, 12, 31),
	}
	if err := schedules.Create(context.Background(), sch); err != nil {
		t.Fatal(err)
	}

	svc := NewService(records, schedules, nil)
	d := caldate.New(2025, 6, 1)

	if _, err := svc.Record(context.Background(), sch.ID, d, "morning", "Nurse Choi", nil); err != nil {
		t.Fatalf("first Record failed: %v", err)
	}

	// Exists still reports false, so only the insert can stop the duplicate.
	_, err := svc.Record(context.Background(), sch.ID, d, "morning", "Nurse Park", nil)
	if !errors.Is(err, ErrDuplicateAdministration) {
		t.Fatalf("expected ErrDuplicateAdministration, got %v", err)
	}
	if len(records.records) != 1 {
		t.Errorf("expected exactly 1 record on the ledger, got %d", len(records.records))
	}
}
