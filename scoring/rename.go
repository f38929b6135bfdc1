package scoring

import (
	"strings"

	"github.com/Dosada05/tennis-league/models"
)

type RenameMethod string

const (
	RenameExact                    RenameMethod = "exact"
	RenameCaseInsensitive          RenameMethod = "case_insensitive"
	RenameSubstring                RenameMethod = "substring"
	RenameCaseInsensitiveSubstring RenameMethod = "case_insensitive_substring"
	RenameNoMatch                  RenameMethod = ""
)

var renameCascade = []struct {
	method RenameMethod
	match  func(teamName, oldName string) bool
}{
	{RenameExact, func(t, o string) bool { return t == o }},
	{RenameCaseInsensitive, strings.EqualFold},
	{RenameSubstring, func(t, o string) bool {
		return strings.Contains(t, o) || strings.Contains(o, t)
	}},
	{RenameCaseInsensitiveSubstring, func(t, o string) bool {
		lt, lo := strings.ToLower(t), strings.ToLower(o)
		return strings.Contains(lt, lo) || strings.Contains(lo, lt)
	}},
}

// ResolveRenameTargets picks the teams a rename of oldName should touch.
// Methods are tried from strict to loose; the first one with any hit wins
// and all of its hits are returned.
func ResolveRenameTargets(teams []models.Team, oldName string) ([]models.Team, RenameMethod) {
	if strings.TrimSpace(oldName) == "" {
		return nil, RenameNoMatch
	}
	for _, step := range renameCascade {
		var hits []models.Team
		for _, t := range teams {
			if t.Name == "" {
				continue
			}
			if step.match(t.Name, oldName) {
				hits = append(hits, t)
			}
		}
		if len(hits) > 0 {
			return hits, step.method
		}
	}
	return nil, RenameNoMatch
}
