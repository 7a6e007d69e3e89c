package integration_test

const (
	TestConcertID       = 1
	TestShowID          = 10
	TestArtist          = "Radiohead"
	TestLocation        = "Berlin"
	TestShowStart       = "2095-06-14T19:30:00Z"
	TestShowEnd         = "2095-06-14T22:00:00Z"
	TestSecondConcertID = 2
	TestSecondShowID    = 20
	TestSecondArtist    = "Björk"
	TestSecondLocation  = "Amsterdam"

	TestRowID       = 1
	TestRowName     = "A"
	TestRowSeats    = 10
	TestTakenSeat   = 3
	TestTicketName  = "Jane Doe"
	TestTicketCode  = "CODE-1"
	TestHoldMinutes = 10
)
