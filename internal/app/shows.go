package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/concert-booking/api"
	"github.com/metinatakli/concert-booking/internal/domain"
)

const showsFetchFailedMessage = "Failed to fetch concerts."

func (app *Application) GetShows(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	// a failed fetch is reported inline with an empty directory
	err := app.shows.FetchShows(r.Context())
	if err != nil {
		logger.Warn("failed to fetch shows", "error", err)
	}

	query := r.URL.Query()
	snap := app.shows.Snapshot()

	resp := api.ShowListResponse{
		Shows:     app.shows.FilterShows(query.Get("artist"), query.Get("location"), query.Get("date")),
		Artists:   snap.Artists,
		Locations: snap.Locations,
	}

	if snap.Err != nil {
		resp.Error = domain.ErrorMessage(snap.Err, showsFetchFailedMessage)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetShow(w http.ResponseWriter, r *http.Request) {
	show, ok := app.showFromRequest(w, r)
	if !ok {
		return
	}

	err := app.writeJSON(w, http.StatusOK, api.ShowResponse{Show: show}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showFromRequest resolves the showId path parameter against the directory
// and writes the error response itself when that fails.
func (app *Application) showFromRequest(w http.ResponseWriter, r *http.Request) (domain.Show, bool) {
	showID, err := app.readIntParam(r, "showId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return domain.Show{}, false
	}

	err = app.shows.FetchShows(r.Context())
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return domain.Show{}, false
	}

	show, err := app.shows.ShowByID(showID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			app.contextGetLogger(r).Warn("show not found", "show_id", showID)
			app.notFoundResponse(w, r)
			return domain.Show{}, false
		}

		app.serverErrorResponse(w, r, err)
		return domain.Show{}, false
	}

	return show, true
}
