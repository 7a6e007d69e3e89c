package domain

// Show is a single performance of a concert, flattened from the nested
// concerts -> shows listing. Date is formatted dd/mm/yyyy, Start and End HH:MM.
type Show struct {
	ID        int    `json:"id"`
	Artist    string `json:"artist"`
	Location  string `json:"location"`
	Date      string `json:"date"`
	Start     string `json:"start"`
	End       string `json:"end"`
	ConcertID int    `json:"concertId"`
}

type Location struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Concert struct {
	ID       int           `json:"id"`
	Artist   string        `json:"artist"`
	Location Location      `json:"location"`
	Shows    []ConcertShow `json:"shows"`
}

type ConcertShow struct {
	ID    int    `json:"id"`
	Start string `json:"start"`
	End   string `json:"end"`
}
