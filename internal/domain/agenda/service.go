// Package agenda derives the day's dosing agenda from active schedules and
// the administration ledger. Nothing here is stored: expanding (active
// schedules x timing slots) on every query avoids a nightly materialization
// job, at the price of doing the date-range arithmetic on each call.
package agenda

import (
	"context"

	"github.com/google/uuid"

	"github.com/carehome/emar/internal/domain/administration"
	"github.com/carehome/emar/internal/domain/schedule"
	"github.com/carehome/emar/pkg/caldate"
)

// Item is one agenda row: a single due dose and its administered status.
type Item struct {
	Schedule     *schedule.Schedule `json:"schedule"`
	Timing       string             `json:"timing"`
	Administered bool               `json:"administered"`
}

// DayStats aggregates a date's dosing progress.
type DayStats struct {
	TotalDoses     int `json:"total_doses"`
	CompletedDoses int `json:"completed_doses"`
	PendingDoses   int `json:"pending_doses"`
}

type Service struct {
	schedules schedule.Repository
	ledger    *administration.Service
}

func NewService(schedules schedule.Repository, ledger *administration.Service) *Service {
	return &Service{schedules: schedules, ledger: ledger}
}

type slotKey struct {
	scheduleID uuid.UUID
	timing     string
}

func (s *Service) administeredSlots(ctx context.Context, d caldate.Date) (map[slotKey]bool, []*administration.Record, error) {
	records, err := s.ledger.ListForDate(ctx, d)
	if err != nil {
		return nil, nil, err
	}
	given := make(map[slotKey]bool, len(records))
	for _, r := range records {
		if r.Administered {
			given[slotKey{r.ScheduleID, r.Timing}] = true
		}
	}
	return given, records, nil
}

// ForDate expands every schedule active on d into one row per timing slot,
// joined against the ledger's administered status.
func (s *Service) ForDate(ctx context.Context, d caldate.Date) ([]Item, error) {
	active, err := s.schedules.ListActiveOn(ctx, d)
	if err != nil {
		return nil, err
	}
	given, _, err := s.administeredSlots(ctx, d)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(active))
	for _, sch := range active {
		for _, timing := range sch.Timings {
			items = append(items, Item{
				Schedule:     sch,
				Timing:       timing,
				Administered: given[slotKey{sch.ID, timing}],
			})
		}
	}
	return items, nil
}

// StatsForDate returns the day's dose counts. Pending is clamped at zero:
// completed doses can exceed the visible total when a schedule was shortened
// or deleted after some of its doses were already recorded.
func (s *Service) StatsForDate(ctx context.Context, d caldate.Date) (*DayStats, error) {
	active, err := s.schedules.ListActiveOn(ctx, d)
	if err != nil {
		return nil, err
	}
	_, records, err := s.administeredSlots(ctx, d)
	if err != nil {
		return nil, err
	}

	stats := &DayStats{}
	for _, sch := range active {
		stats.TotalDoses += len(sch.Timings)
	}
	for _, r := range records {
		if r.Administered {
			stats.CompletedDoses++
		}
	}
	stats.PendingDoses = stats.TotalDoses - stats.CompletedDoses
	if stats.PendingDoses < 0 {
		stats.PendingDoses = 0
	}
	return stats, nil
}

// Administer records a dose through the ledger; its errors pass through
// unchanged so callers can distinguish the failure modes.
func (s *Service) Administer(ctx context.Context, scheduleID uuid.UUID, timing string, d caldate.Date, actor string, note *string) (*administration.Record, error) {
	return s.ledger.Record(ctx, scheduleID, d, timing, actor, note)
}
