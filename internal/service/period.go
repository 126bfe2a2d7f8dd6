package service

import "time"

const (
	PeriodAll   = "all"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// Interval is a closed timestamp range. Bounded false means "all time".
type Interval struct {
	Start   time.Time
	End     time.Time
	Bounded bool
}

func (i Interval) StartPtr() *time.Time {
	if !i.Bounded {
		return nil
	}
	start := i.Start
	return &start
}

func (i Interval) EndPtr() *time.Time {
	if !i.Bounded {
		return nil
	}
	end := i.End
	return &end
}

// ResolvePeriod maps a period selector to a concrete interval relative to now.
// "month" covers the first calendar day 00:00:00 through the last calendar day
// 23:59:59 of now's month, "year" covers Jan 1 through Dec 31 23:59:59.
// Unrecognized selectors fall back to the unbounded "all" interval; that is a
// deliberate policy, not an error.
func ResolvePeriod(period string, now time.Time) Interval {
	switch period {
	case PeriodMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 1, 0).Add(-time.Second)
		return Interval{Start: start, End: end, Bounded: true}
	case PeriodYear:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		end := time.Date(now.Year(), time.December, 31, 23, 59, 59, 0, now.Location())
		return Interval{Start: start, End: end, Bounded: true}
	default:
		return Interval{}
	}
}

// CanonicalPeriod normalizes a period selector to the value actually applied.
func CanonicalPeriod(period string) string {
	switch period {
	case PeriodMonth, PeriodYear:
		return period
	default:
		return PeriodAll
	}
}
