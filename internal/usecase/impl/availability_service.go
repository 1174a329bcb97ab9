package impl

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"billmap/internal/domain/entity"
	domainerrors "billmap/internal/domain/errors"
	"billmap/internal/domain/repository"
	"billmap/internal/usecase"
)

// periodRe matches one declared interval, e.g. "Disponibil: 01/10/25 : 15/10/25".
var periodRe = regexp.MustCompile(`Disponibil:\s*(\d{2}/\d{2}/\d{2})\s*:\s*(\d{2}/\d{2}/\d{2})`)

const inputLayout = "2006-01-02"

// parsePeriodDate parses a dd/mm/yy date. Two-digit years always land in the
// 2000s, regardless of the pivot time.Parse would apply.
func parsePeriodDate(s string) (time.Time, error) {
	return time.Parse("02/01/2006", s[:6]+"20"+s[6:])
}

type availabilityService struct {
	logger *slog.Logger
	items  repository.InventoryRepository
}

// NewAvailabilityService creates a new availability service instance
func NewAvailabilityService(logger *slog.Logger, items repository.InventoryRepository) usecase.AvailabilityUsecase {
	return &availabilityService{
		logger: logger,
		items:  items,
	}
}

// Filter returns the items declaring at least one free interval overlapping
// the closed query window.
func (s *availabilityService) Filter(_ context.Context, input *usecase.AvailabilityInput) ([]usecase.AvailabilityMatch, error) {
	start, err := time.Parse(inputLayout, input.Start)
	if err != nil {
		return nil, domainerrors.ErrInvalidDateRange.WithDetails("start date must be in 2006-01-02 form")
	}
	end, err := time.Parse(inputLayout, input.End)
	if err != nil {
		return nil, domainerrors.ErrInvalidDateRange.WithDetails("end date must be in 2006-01-02 form")
	}
	if end.Before(start) {
		return nil, domainerrors.ErrInvalidDateRange.WithDetails("end date precedes start date")
	}

	var matches []usecase.AvailabilityMatch
	for _, item := range s.items.List() {
		periods := s.Periods(item.RawPeriods)
		if len(periods) == 0 {
			continue
		}

		for _, p := range periods {
			if p.Overlaps(start, end) {
				matches = append(matches, usecase.AvailabilityMatch{Item: item, Periods: periods})
				break
			}
		}
	}
	return matches, nil
}

// Periods parses the declared intervals of a raw booking text. Segments are
// separated by semicolons; unparseable segments are skipped.
func (s *availabilityService) Periods(raw string) []entity.Period {
	if raw == "" {
		return nil
	}

	var out []entity.Period
	for _, segment := range strings.Split(raw, ";") {
		m := periodRe.FindStringSubmatch(strings.TrimSpace(segment))
		if m == nil {
			continue
		}

		start, err := parsePeriodDate(m[1])
		if err != nil {
			continue
		}
		end, err := parsePeriodDate(m[2])
		if err != nil {
			continue
		}
		if end.Before(start) {
			continue
		}
		out = append(out, entity.Period{Start: start, End: end})
	}
	return out
}
