package timeutils

import (
	"errors"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

var (
	ErrEmptyDate      = errors.New("empty date")
	ErrEndBeforeStart = errors.New("end date is before start date")
)

// DateRange covers whole calendar days: Start is 00:00:00 UTC on the start
// day and End is 23:59:59 UTC on the end day. Both bounds are inclusive.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func NewDateRange(startDate string, endDate string) (DateRange, error) {
	if startDate == "" || endDate == "" {
		return DateRange{}, ErrEmptyDate
	}
	start, err := time.ParseInLocation(dateLayout, startDate, time.UTC)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	end, err := time.ParseInLocation(dateLayout, endDate, time.UTC)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}
	end = end.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	if end.Before(start) {
		return DateRange{}, ErrEndBeforeStart
	}
	return DateRange{Start: start, End: end}, nil
}

func (dr DateRange) StartRFC3339() string {
	return dr.Start.Format(time.RFC3339)
}

func (dr DateRange) EndRFC3339() string {
	return dr.End.Format(time.RFC3339)
}
