package sales

import (
	"sort"
	"time"
)

type Period string

const (
	PeriodDay    Period = "day"
	PeriodWeek   Period = "week"
	PeriodMonth  Period = "month"
	PeriodYear   Period = "year"
	PeriodCustom Period = "custom"
)

// Filter selects which sales the history shows. From/To only apply to the
// custom period; a zero bound means that side is unbounded.
type Filter struct {
	Period Period
	From   time.Time
	To     time.Time
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Matches reports whether a sale made at saleAt falls inside the filter's
// period, evaluated against now.
func (f Filter) Matches(saleAt, now time.Time) bool {
	switch f.Period {
	case PeriodDay:
		return dayStart(saleAt).Equal(dayStart(now))

	case PeriodWeek:
		// calendar-day granularity, today-7 inclusive
		weekAgo := dayStart(now).AddDate(0, 0, -7)
		return !dayStart(saleAt).Before(weekAgo)

	case PeriodMonth:
		return saleAt.Month() == now.Month() && saleAt.Year() == now.Year()

	case PeriodYear:
		return saleAt.Year() == now.Year()

	case PeriodCustom:
		if f.From.IsZero() || f.To.IsZero() {
			return true
		}
		from := dayStart(f.From)
		to := time.Date(f.To.Year(), f.To.Month(), f.To.Day(), 23, 59, 59, 0, f.To.Location())
		return !saleAt.Before(from) && !saleAt.After(to)

	default:
		return true
	}
}

// RangeFor returns the [from, to] dates a preset period corresponds to.
// Selecting a preset resets the custom date fields to this range.
func RangeFor(p Period, now time.Time) (time.Time, time.Time) {
	today := dayStart(now)

	switch p {
	case PeriodWeek:
		return today.AddDate(0, 0, -7), today
	case PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), today
	case PeriodYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), today
	default:
		return today, today
	}
}

// Apply filters the sales against now and returns the matches most recent
// first.
func (f Filter) Apply(all []Sale, now time.Time) []Sale {
	matched := make([]Sale, 0, len(all))
	for _, s := range all {
		if f.Matches(s.CreatedAt, now) {
			matched = append(matched, s)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return matched
}
