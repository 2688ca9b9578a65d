package services

import (
	"strings"
	"time"

	"github.com/kudoshq/recognition-bff/models"
)

// Period presets for the redemption listing filter.
const (
	PeriodAll    = "ALL"
	PeriodToday  = "today"
	PeriodWeek   = "week"
	PeriodMonth  = "month"
	PeriodCustom = "custom"
)

// StatusAll matches every redemption status.
const StatusAll = "ALL"

// PageSize is the fixed listing page size.
const PageSize = 10

// FilterState is the ephemeral listing filter. It is rebuilt into a
// normalized ListQuery on every change and never persisted. Every setter
// resets Offset to 0 so pagination state is never carried across a filter
// change. The reset and the new filter land in the same value, so there is
// no window where a stale page meets a new filter.
type FilterState struct {
	Search string
	Status string
	Period string

	// Custom period bounds, used only when Period == PeriodCustom.
	CustomFrom time.Time
	CustomTo   time.Time

	Offset int
}

// NewFilterState returns the documented defaults.
func NewFilterState() FilterState {
	return FilterState{Status: StatusAll, Period: PeriodAll}
}

// WithSearch returns the state with a new search term and pagination reset.
func (f FilterState) WithSearch(search string) FilterState {
	f.Search = strings.TrimSpace(search)
	f.Offset = 0
	return f
}

// WithStatus returns the state with a new status filter and pagination reset.
func (f FilterState) WithStatus(status string) FilterState {
	if status == "" {
		status = StatusAll
	}
	f.Status = status
	f.Offset = 0
	return f
}

// WithPeriod returns the state with a new period preset and pagination reset.
func (f FilterState) WithPeriod(period string) FilterState {
	if period == "" {
		period = PeriodAll
	}
	f.Period = period
	f.Offset = 0
	return f
}

// WithCustomRange selects the custom period with explicit bounds.
func (f FilterState) WithCustomRange(from, to time.Time) FilterState {
	f.Period = PeriodCustom
	f.CustomFrom = from
	f.CustomTo = to
	f.Offset = 0
	return f
}

// NextPage advances the offset by one page, but only when the previous page
// came back full, the heuristic for "there may be more" on
// endpoints that report no total count.
func (f FilterState) NextPage(lastItemsCount int) FilterState {
	if lastItemsCount == PageSize {
		f.Offset += PageSize
	}
	return f
}

// HasActiveFilters reports whether any field differs from the defaults.
// Drives the "clear filters" affordance and the empty-state copy.
func (f FilterState) HasActiveFilters() bool {
	return f.Search != "" || f.Status != StatusAll || f.Period != PeriodAll
}

// BuildQuery converts the filter state into the normalized query sent to
// the listing API. The period preset is resolved against the supplied
// wall-clock now; identical state and now produce deep-equal queries.
func (f FilterState) BuildQuery(now time.Time) models.ListQuery {
	q := models.ListQuery{
		Search: f.Search,
		Offset: f.Offset,
		Limit:  PageSize,
	}
	if f.Status != StatusAll && f.Status != "" {
		q.Status = strings.ToLower(f.Status)
	}

	var from, to time.Time
	switch f.Period {
	case PeriodToday:
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		to = now
	case PeriodWeek:
		from = now.AddDate(0, 0, -7)
		to = now
	case PeriodMonth:
		from = now.AddDate(0, -1, 0)
		to = now
	case PeriodCustom:
		from = f.CustomFrom
		to = f.CustomTo
	}
	if !from.IsZero() {
		q.From = from.Format(time.RFC3339)
	}
	if !to.IsZero() {
		q.To = to.Format(time.RFC3339)
	}
	return q
}
