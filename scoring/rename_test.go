package scoring

import (
	"testing"

	"github.com/Dosada05/tennis-league/models"
	"github.com/stretchr/testify/assert"
)

func teamsNamed(names ...string) []models.Team {
	teams := make([]models.Team, 0, len(names))
	for i, n := range names {
		teams = append(teams, models.Team{ID: string(rune('a' + i)), Name: n})
	}
	return teams
}

func TestResolveRenameTargets(t *testing.T) {
	tests := []struct {
		name       string
		teams      []models.Team
		oldName    string
		wantNames  []string
		wantMethod RenameMethod
	}{
		{
			name:       "exact wins over looser methods",
			teams:      teamsNamed("Aces", "aces", "Aces Club"),
			oldName:    "Aces",
			wantNames:  []string{"Aces"},
			wantMethod: RenameExact,
		},
		{
			name:       "case insensitive when no exact hit",
			teams:      teamsNamed("ACES", "Aces Club"),
			oldName:    "aces",
			wantNames:  []string{"ACES"},
			wantMethod: RenameCaseInsensitive,
		},
		{
			name:       "substring either way returns every hit",
			teams:      teamsNamed("Net Rushers", "Rushers", "Baseliners"),
			oldName:    "Net Rushers B",
			wantNames:  []string{"Net Rushers", "Rushers"},
			wantMethod: RenameSubstring,
		},
		{
			name:       "case insensitive substring last",
			teams:      teamsNamed("NET RUSHERS", "Baseliners"),
			oldName:    "rushers",
			wantNames:  []string{"NET RUSHERS"},
			wantMethod: RenameCaseInsensitiveSubstring,
		},
		{
			name:       "no hit",
			teams:      teamsNamed("A1", "A2"),
			oldName:    "Ghost",
			wantMethod: RenameNoMatch,
		},
		{
			name:       "blank old name never matches",
			teams:      teamsNamed("A1"),
			oldName:    "  ",
			wantMethod: RenameNoMatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits, method := ResolveRenameTargets(tt.teams, tt.oldName)
			var names []string
			for _, h := range hits {
				names = append(names, h.Name)
			}
			assert.Equal(t, tt.wantMethod, method)
			assert.Equal(t, tt.wantNames, names)
		})
	}
}
