package models

type League struct {
	ID          string   `json:"id" db:"id"`
	Name        string   `json:"name" db:"name"`
	Color       string   `json:"color" db:"color"`
	TeamIDs     []string `json:"teams" db:"team_ids"`
	Description *string  `json:"description,omitempty" db:"description"`
}
