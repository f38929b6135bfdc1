package handlers

import (
	"net/http"

	"github.com/Dosada05/tennis-league/services"
)

type LeagueHandler struct {
	leagueService services.LeagueService
}

func NewLeagueHandler(ls services.LeagueService) *LeagueHandler {
	return &LeagueHandler{leagueService: ls}
}

// ListLeagues godoc
// @Summary List leagues
// @Tags leagues
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /leagues [get]
func (h *LeagueHandler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	leagues, err := h.leagueService.ListLeagues(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"leagues": leagues})
}

// GetLeague godoc
// @Summary Get one league
// @Tags leagues
// @Produce json
// @Param leagueID path string true "League ID"
// @Success 200 {object} map[string]interface{}
// @Router /leagues/{leagueID} [get]
func (h *LeagueHandler) GetLeague(w http.ResponseWriter, r *http.Request) {
	leagueID, err := getIDFromURL(r, "leagueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	league, err := h.leagueService.GetLeague(r.Context(), leagueID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"league": league})
}

// CreateLeague godoc
// @Summary Create a league
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param league body services.LeagueInput true "League"
// @Success 201 {object} map[string]interface{}
// @Router /admin/leagues [post]
func (h *LeagueHandler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	var input services.LeagueInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	league, err := h.leagueService.CreateLeague(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"league": league})
}

// UpdateLeague godoc
// @Summary Edit a league
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param leagueID path string true "League ID"
// @Param league body services.UpdateLeagueInput true "Changed fields"
// @Success 200 {object} map[string]interface{}
// @Router /admin/leagues/{leagueID} [patch]
func (h *LeagueHandler) UpdateLeague(w http.ResponseWriter, r *http.Request) {
	leagueID, err := getIDFromURL(r, "leagueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateLeagueInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	league, err := h.leagueService.UpdateLeague(r.Context(), leagueID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"league": league})
}

// DeleteLeague godoc
// @Summary Delete a league
// @Tags admin
// @Security BearerAuth
// @Param leagueID path string true "League ID"
// @Success 204
// @Router /admin/leagues/{leagueID} [delete]
func (h *LeagueHandler) DeleteLeague(w http.ResponseWriter, r *http.Request) {
	leagueID, err := getIDFromURL(r, "leagueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.leagueService.DeleteLeague(r.Context(), leagueID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
