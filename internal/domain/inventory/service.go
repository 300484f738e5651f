// Package inventory raises stock and expiry alerts over the medication
// catalog. It stores nothing and never mutates the catalog.
package inventory

import (
	"context"

	"github.com/carehome/emar/internal/domain/catalog"
	"github.com/carehome/emar/pkg/caldate"
)

// DefaultHorizonDays is the facility default for the expiry lookahead.
const DefaultHorizonDays = 90

type Service struct {
	medications catalog.Repository
	horizonDays int
	today       func() caldate.Date
}

func NewService(medications catalog.Repository, horizonDays int) *Service {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	return &Service{
		medications: medications,
		horizonDays: horizonDays,
		today:       caldate.Today,
	}
}

// LowStock returns catalog entries whose stock is at or below the minimum
// threshold. The boundary stock == minStock counts as low.
func (s *Service) LowStock(ctx context.Context) ([]*catalog.Medication, error) {
	meds, err := s.medications.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var result []*catalog.Medication
	for _, m := range meds {
		if m.Stock <= m.MinStock {
			result = append(result, m)
		}
	}
	return result, nil
}

// ExpiringWithin returns unexpired catalog entries that expire within the
// given number of days (0 < days-until-expiry <= days). Non-positive days
// falls back to the configured horizon. Already-expired entries are excluded;
// Expired surfaces those separately.
func (s *Service) ExpiringWithin(ctx context.Context, days int) ([]*catalog.Medication, error) {
	if days <= 0 {
		days = s.horizonDays
	}
	meds, err := s.medications.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	today := s.today()
	var result []*catalog.Medication
	for _, m := range meds {
		if m.ExpiryDate.IsZero() {
			continue
		}
		diff := today.DaysUntil(m.ExpiryDate)
		if diff > 0 && diff <= days {
			result = append(result, m)
		}
	}
	return result, nil
}

// Expired returns catalog entries whose expiry date is today or in the past.
func (s *Service) Expired(ctx context.Context) ([]*catalog.Medication, error) {
	meds, err := s.medications.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	today := s.today()
	var result []*catalog.Medication
	for _, m := range meds {
		if m.ExpiryDate.IsZero() {
			continue
		}
		if today.DaysUntil(m.ExpiryDate) <= 0 {
			result = append(result, m)
		}
	}
	return result, nil
}
