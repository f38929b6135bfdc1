package handlers

import (
	"net/http"

	"github.com/Dosada05/tennis-league/services"
)

type TeamHandler struct {
	teamService services.TeamService
}

func NewTeamHandler(ts services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: ts}
}

// ListTeams godoc
// @Summary List teams
// @Tags teams
// @Produce json
// @Param league_id query string false "Only teams of this league"
// @Success 200 {object} map[string]interface{}
// @Router /teams [get]
func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.ListTeams(r.Context(), optionalQuery(r, "league_id"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"teams": teams})
}

// GetTeam godoc
// @Summary Get one team
// @Tags teams
// @Produce json
// @Param teamID path string true "Team ID"
// @Success 200 {object} map[string]interface{}
// @Router /teams/{teamID} [get]
func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.GetTeam(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"team": team})
}

// CreateTeam godoc
// @Summary Create a team
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param team body services.CreateTeamInput true "Team"
// @Success 201 {object} map[string]interface{}
// @Router /admin/teams [post]
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.CreateTeam(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"team": team})
}

// UpdateTeam godoc
// @Summary Edit a team
// @Description A new name is carried into every match that used the old one.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamID path string true "Team ID"
// @Param team body services.UpdateTeamInput true "Changed fields"
// @Success 200 {object} map[string]interface{}
// @Router /admin/teams/{teamID} [patch]
func (h *TeamHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.teamService.UpdateTeam(r.Context(), teamID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{
		"team":            result.Team,
		"matches_renamed": result.MatchesRenamed,
	})
}

// DeleteTeam godoc
// @Summary Delete a team
// @Tags admin
// @Security BearerAuth
// @Param teamID path string true "Team ID"
// @Success 204
// @Router /admin/teams/{teamID} [delete]
func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.teamService.DeleteTeam(r.Context(), teamID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type renameTeamRequest struct {
	OldName        string `json:"old_name"`
	NewName        string `json:"new_name"`
	ExcludeMatchID string `json:"exclude_match_id,omitempty"`
}

// RenameTeam godoc
// @Summary Rename a team name across matches and team records
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param rename body renameTeamRequest true "Old and new name"
// @Success 200 {object} services.RenameResult
// @Router /admin/teams/rename [post]
func (h *TeamHandler) RenameTeam(w http.ResponseWriter, r *http.Request) {
	var input renameTeamRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.teamService.PropagateRename(r.Context(), input.OldName, input.NewName, input.ExcludeMatchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, result)
}
