package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/tennis-league/models"
	"github.com/Dosada05/tennis-league/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(ss services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: ss}
}

// Standings godoc
// @Summary League tables
// @Description Teams ordered by wins, then goal difference, then name.
// @Tags standings
// @Produce json
// @Param league_id query string false "Only this league"
// @Success 200 {object} map[string]interface{}
// @Router /standings [get]
func (h *StandingsHandler) Standings(w http.ResponseWriter, r *http.Request) {
	standings, err := h.standingsService.Standings(r.Context(), optionalQuery(r, "league_id"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"standings": standings})
}

// ScheduleDates godoc
// @Summary Dates that have matches
// @Tags schedule
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /schedule/dates [get]
func (h *StandingsHandler) ScheduleDates(w http.ResponseWriter, r *http.Request) {
	dates, err := h.standingsService.ScheduleDates(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"dates": dates})
}

// Schedule godoc
// @Summary Day schedule grid by time slot and court
// @Tags schedule
// @Produce json
// @Param date query string true "YYYY-MM-DD"
// @Param league query string false "League tag"
// @Success 200 {object} scoring.ScheduleGrid
// @Router /schedule [get]
func (h *StandingsHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	date := optionalQuery(r, "date")
	if date == nil {
		badRequestResponse(w, r, errors.New("date query parameter is required"))
		return
	}
	var league *models.LeagueTag
	if l := optionalQuery(r, "league"); l != nil {
		v := models.LeagueTag(*l)
		league = &v
	}

	grid, err := h.standingsService.Schedule(r.Context(), *date, league)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, grid)
}
