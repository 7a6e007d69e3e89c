package booking

import "errors"

var (
	ErrNoShowEntered           = errors.New("open the show's booking page before selecting seats")
	ErrReservationInFlight     = errors.New("your reservation is being updated, please wait")
	ErrDetailsActive           = errors.New("seats can't be added while entering booking details")
	ErrNoSeatsSelected         = errors.New("please select at least one seat")
	ErrReservationNotConfirmed = errors.New("your reservation is not confirmed or has expired, please select seats again")
	ErrReservationMissing      = errors.New("reservation token is missing, please select your seats again")
	ErrSelectionExpired        = errors.New("no seats selected, your reservation might have expired")
	ErrTicketCredentials       = errors.New("name and code are required")
	ErrTicketsNotFound         = errors.New("could not find tickets with these details")
	ErrTicketLookupFailed      = errors.New("an error occurred while retrieving tickets")
)
