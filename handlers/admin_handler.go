package handlers

import (
	"net/http"

	"github.com/Dosada05/tennis-league/services"
)

// AdminHandler serves the maintenance operations of the admin screen.
type AdminHandler struct {
	statsService services.StatsService
	seedService  services.SeedService
}

func NewAdminHandler(stats services.StatsService, seed services.SeedService) *AdminHandler {
	return &AdminHandler{statsService: stats, seedService: seed}
}

// RecalculateStats godoc
// @Summary Rebuild every team's stats from completed matches
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.RecalculationReport
// @Failure 403 {object} map[string]string
// @Router /admin/stats/recalculate [post]
func (h *AdminHandler) RecalculateStats(w http.ResponseWriter, r *http.Request) {
	report, err := h.statsService.RecalculateAll(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, report)
}

// Setup godoc
// @Summary Load the built-in leagues, teams and matches into an empty database
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.SeedReport
// @Router /admin/setup [post]
func (h *AdminHandler) Setup(w http.ResponseWriter, r *http.Request) {
	report, err := h.seedService.Initialize(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, report)
}

// ResetMatches godoc
// @Summary Replace all matches with the tournament-day schedule
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.ResetReport
// @Router /admin/reset-matches [post]
func (h *AdminHandler) ResetMatches(w http.ResponseWriter, r *http.Request) {
	report, err := h.seedService.ResetMatches(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, report)
}
