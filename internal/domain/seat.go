package domain

import "slices"

type RowSeats struct {
	Total       int   `json:"total"`
	Unavailable []int `json:"unavailable"`
}

// Row is one seating row of a show. Unavailable is the server's snapshot of
// taken seats at fetch time.
type Row struct {
	ID    int      `json:"id"`
	Name  string   `json:"name"`
	Seats RowSeats `json:"seats"`
}

func (r Row) IsUnavailable(seat int) bool {
	return slices.Contains(r.Seats.Unavailable, seat)
}

// HasSeat reports whether seat numbers 1..Total contain seat.
func (r Row) HasSeat(seat int) bool {
	return seat >= 1 && seat <= r.Seats.Total
}

type SelectedSeat struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}
