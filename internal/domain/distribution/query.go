package distribution

import (
	"time"

	"github.com/essentials/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// DateRange bounds a reporting window on the effective issue date,
// which falls back to the creation time when issued-at is null.
// Start is exclusive when StartExclusive is set, otherwise inclusive;
// End is always inclusive.
type DateRange struct {
	Start          time.Time
	End            time.Time
	StartExclusive bool
}

// Contains reports whether t falls inside the range
func (r DateRange) Contains(t time.Time) bool {
	if r.StartExclusive {
		if !t.After(r.Start) {
			return false
		}
	} else if t.Before(r.Start) {
		return false
	}
	return !t.After(r.End)
}

// Query is the filter set for listing distributions. Zero-value fields
// are not applied.
type Query struct {
	Range               *DateRange
	ItemID              *uuid.UUID
	PartnerID           *uuid.UUID
	StorageLocationID   *uuid.UUID
	ReportingCategories []catalog.ReportingCategory
	State               *State
	OrderByIssuedAtAsc  bool
}

// During restricts the query to distributions issued inside [start, end]
func (q Query) During(start, end time.Time) Query {
	q.Range = &DateRange{Start: start, End: end}
	return q
}

// ThisWeek restricts the query to the current calendar week, Monday
// through Sunday, and orders the results by issue date ascending.
func (q Query) ThisWeek(now time.Time) Query {
	r := WeekWindow(now)
	q.Range = &r
	q.OrderByIssuedAtAsc = true
	return q
}

// InLast12Months restricts the query to the trailing twelve months,
// exclusive of the boundary instant a year ago and inclusive of now.
func (q Query) InLast12Months(now time.Time) Query {
	q.Range = &DateRange{Start: now.AddDate(0, -12, 0), End: now, StartExclusive: true}
	return q
}

// ByItem restricts the query to distributions containing the item
func (q Query) ByItem(itemID uuid.UUID) Query {
	q.ItemID = &itemID
	return q
}

// ByPartner restricts the query to one partner
func (q Query) ByPartner(partnerID uuid.UUID) Query {
	q.PartnerID = &partnerID
	return q
}

// ByStorageLocation restricts the query to one source location
func (q Query) ByStorageLocation(storageLocationID uuid.UUID) Query {
	q.StorageLocationID = &storageLocationID
	return q
}

// ByState restricts the query to one lifecycle state
func (q Query) ByState(state State) Query {
	q.State = &state
	return q
}

// WithDiapers restricts the query to diaper reporting categories
func (q Query) WithDiapers() Query {
	q.ReportingCategories = catalog.DiaperCategories()
	return q
}

// WithPeriodSupplies restricts the query to period supply categories
func (q Query) WithPeriodSupplies() Query {
	q.ReportingCategories = catalog.PeriodSupplyCategories()
	return q
}

// WeekWindow computes the calendar week containing now: Monday 00:00:00
// through the last nanosecond of Sunday, in now's location.
func WeekWindow(now time.Time) DateRange {
	daysSinceMonday := (int(now.Weekday()) + 6) % 7
	year, month, day := now.AddDate(0, 0, -daysSinceMonday).Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	return DateRange{Start: start, End: end}
}
