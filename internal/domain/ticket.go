package domain

type TicketRow struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type TicketConcert struct {
	ID       int      `json:"id"`
	Artist   string   `json:"artist"`
	Location Location `json:"location"`
}

type TicketShow struct {
	ID      int           `json:"id"`
	Start   string        `json:"start"`
	End     string        `json:"end"`
	Concert TicketConcert `json:"concert"`
}

// Ticket is owned by the remote API and is only ever retrieved by a name and
// code pair, never created locally.
type Ticket struct {
	ID        int        `json:"id"`
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	CreatedAt string     `json:"created_at"`
	Row       TicketRow  `json:"row"`
	Seat      int        `json:"seat"`
	Show      TicketShow `json:"show"`
	Address   string     `json:"address,omitempty"`
	City      string     `json:"city,omitempty"`
	Zip       string     `json:"zip,omitempty"`
	Country   string     `json:"country,omitempty"`
}

type BookingDetails struct {
	Name    string
	Address string
	City    string
	Zip     string
	Country string
}

type BookingRequest struct {
	ReservationToken string `json:"reservation_token"`
	Name             string `json:"name"`
	Address          string `json:"address"`
	City             string `json:"city"`
	Zip              string `json:"zip"`
	Country          string `json:"country"`
}

type TicketCredentials struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
