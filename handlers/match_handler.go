package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Dosada05/tennis-league/models"
	"github.com/Dosada05/tennis-league/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(ms services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: ms}
}

// ListMatches godoc
// @Summary List matches
// @Tags matches
// @Produce json
// @Param status query string false "upcoming, ongoing or completed"
// @Success 200 {object} map[string]interface{}
// @Router /matches [get]
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	var status *models.MatchStatus
	if s := optionalQuery(r, "status"); s != nil {
		v := models.MatchStatus(*s)
		status = &v
	}

	matches, err := h.matchService.ListMatches(r.Context(), status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"matches": matches})
}

// GetMatch godoc
// @Summary Get one match
// @Tags matches
// @Produce json
// @Param matchID path string true "Match ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /matches/{matchID} [get]
func (h *MatchHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.GetMatch(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"match": match})
}

// ListAdminMatches godoc
// @Summary Admin match table with filters and sorting
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param league query string false "League tag filter"
// @Param court query string false "Court filter"
// @Param date query string false "Date filter (YYYY-MM-DD)"
// @Param sort query string false "Sort column"
// @Param order query string false "asc or desc"
// @Success 200 {object} map[string]interface{}
// @Router /admin/matches [get]
func (h *MatchHandler) ListAdminMatches(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.MatchFilter{
		Court:  optionalQuery(r, "court"),
		Date:   optionalQuery(r, "date"),
		SortBy: strings.TrimSpace(q.Get("sort")),
	}
	if s := optionalQuery(r, "status"); s != nil {
		v := models.MatchStatus(*s)
		filter.Status = &v
	}
	if l := optionalQuery(r, "league"); l != nil {
		v := models.LeagueTag(*l)
		filter.League = &v
	}
	switch order := strings.ToLower(strings.TrimSpace(q.Get("order"))); order {
	case "", "asc":
	case "desc":
		filter.Descending = true
	default:
		badRequestResponse(w, r, fmt.Errorf("invalid order %q: use asc or desc", order))
		return
	}

	matches, err := h.matchService.ListAdminMatches(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"matches": matches})
}

// CreateMatch godoc
// @Summary Create a match
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param match body services.CreateMatchInput true "Match"
// @Success 201 {object} map[string]interface{}
// @Router /admin/matches [post]
func (h *MatchHandler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var input services.CreateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.matchService.CreateMatch(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, writeResultResponse(result))
}

// UpdateMatch godoc
// @Summary Edit a match
// @Description Stats follow the edit. If a team name cannot be resolved the match is still saved and a warning is returned.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param matchID path string true "Match ID"
// @Param patch body services.UpdateMatchInput true "Changed fields"
// @Success 200 {object} map[string]interface{}
// @Router /admin/matches/{matchID} [patch]
func (h *MatchHandler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.matchService.UpdateMatch(r.Context(), matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, writeResultResponse(result))
}

// DeleteMatch godoc
// @Summary Delete a match
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param matchID path string true "Match ID"
// @Success 200 {object} map[string]interface{}
// @Router /admin/matches/{matchID} [delete]
func (h *MatchHandler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.matchService.DeleteMatch(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, writeResultResponse(result))
}

func writeResultResponse(result *services.MatchWriteResult) jsonResponse {
	resp := jsonResponse{
		"match": result.Match,
		"stats": result.Stats,
	}
	if len(result.Renames) > 0 {
		resp["renames"] = result.Renames
	}
	if w := result.Warning(); w != "" {
		resp["warning"] = w
	}
	return resp
}
