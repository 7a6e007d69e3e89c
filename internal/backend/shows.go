package backend

import (
	"time"

	"github.com/metinatakli/concert-booking/internal/domain"
)

const (
	DateLayout = "02/01/2006"
	TimeLayout = "15:04"

	invalidDate = "Invalid Date"
	invalidTime = "Invalid Time"
)

var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

func flattenConcerts(concerts []domain.Concert, loc *time.Location) []domain.Show {
	shows := make([]domain.Show, 0, len(concerts))

	for _, concert := range concerts {
		for _, s := range concert.Shows {
			shows = append(shows, domain.Show{
				ID:        s.ID,
				Artist:    concert.Artist,
				Location:  concert.Location.Name,
				Date:      FormatDate(s.Start, loc),
				Start:     FormatTime(s.Start, loc),
				End:       FormatTime(s.End, loc),
				ConcertID: concert.ID,
			})
		}
	}

	return shows
}

// ParseInstant parses the timestamps the API emits. Values without a zone are
// read in loc.
func ParseInstant(value string, loc *time.Location) (time.Time, bool) {
	for _, layout := range instantLayouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func FormatDate(value string, loc *time.Location) string {
	t, ok := ParseInstant(value, loc)
	if !ok {
		return invalidDate
	}

	return t.In(loc).Format(DateLayout)
}

func FormatTime(value string, loc *time.Location) string {
	t, ok := ParseInstant(value, loc)
	if !ok {
		return invalidTime
	}

	return t.In(loc).Format(TimeLayout)
}
