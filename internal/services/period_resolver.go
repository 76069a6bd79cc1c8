package services

import (
	"time"

	"github.com/tuifinancial/finserv/internal/models"
)

// PeriodParams are the caller-declared period coordinates. Month is read
// only for monthly periods and Quarter only for quarterly ones.
type PeriodParams struct {
	Type    models.PeriodType
	Year    int
	Month   int
	Quarter int
}

// PeriodWindow is the half-open [Start, End) date range of a period.
type PeriodWindow struct {
	Start time.Time
	End   time.Time
}

// ResolvePeriodWindow computes the canonical window for the params. Monthly
// windows span one calendar month, quarterly windows three; both roll over
// into the next year at the boundary.
func ResolvePeriodWindow(params PeriodParams) (PeriodWindow, error) {
	switch params.Type {
	case models.PeriodMonthly:
		if params.Month < 1 || params.Month > 12 {
			return PeriodWindow{}, NewValidationError("invalid month: must be between 1 and 12")
		}
		start := time.Date(params.Year, time.Month(params.Month), 1, 0, 0, 0, 0, time.UTC)
		return PeriodWindow{Start: start, End: start.AddDate(0, 1, 0)}, nil
	case models.PeriodQuarterly:
		if params.Quarter < 1 || params.Quarter > 4 {
			return PeriodWindow{}, NewValidationError("invalid quarter: must be between 1 and 4")
		}
		startMonth := (params.Quarter-1)*3 + 1
		start := time.Date(params.Year, time.Month(startMonth), 1, 0, 0, 0, 0, time.UTC)
		return PeriodWindow{Start: start, End: start.AddDate(0, 3, 0)}, nil
	default:
		return PeriodWindow{}, NewValidationError("invalid period type: must be monthly or quarterly")
	}
}

type PeriodLookup interface {
	FindByIdentity(periodType models.PeriodType, year int, month *int, quarter *int) (*models.FinancialPeriod, error)
}

// PeriodResolver derives canonical period identities and detects collisions
// against already stored periods.
type PeriodResolver struct {
	periods PeriodLookup
}

func NewPeriodResolver(periods PeriodLookup) *PeriodResolver {
	return &PeriodResolver{periods: periods}
}

// Resolve validates the params and builds an unsaved period carrying the
// canonical identity and window.
func (resolver *PeriodResolver) Resolve(params PeriodParams) (*models.FinancialPeriod, error) {
	window, err := ResolvePeriodWindow(params)
	if err != nil {
		return nil, err
	}

	period := &models.FinancialPeriod{
		PeriodType: params.Type,
		Year:       params.Year,
		StartDate:  window.Start,
		EndDate:    window.End,
	}
	switch params.Type {
	case models.PeriodMonthly:
		month := params.Month
		period.Month = &month
	case models.PeriodQuarterly:
		quarter := params.Quarter
		period.Quarter = &quarter
	}
	return period, nil
}

// CheckDuplicate returns the already stored period with the same identity,
// or nil when none exists.
func (resolver *PeriodResolver) CheckDuplicate(period *models.FinancialPeriod) (*models.FinancialPeriod, error) {
	return resolver.periods.FindByIdentity(period.PeriodType, period.Year, period.Month, period.Quarter)
}
