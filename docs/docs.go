// Package docs registers the OpenAPI document served under /swagger.
// It is maintained by hand in the swag template format; keep every path in
// step with the @Router annotations in package handlers.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign in as league admin",
                "parameters": [{"description": "Email and password", "name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.LoginInput"}}],
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}, "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/matches": {
            "get": {
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "List matches",
                "parameters": [{"type": "string", "description": "upcoming, ongoing or completed", "name": "status", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/matches/{matchID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Get one match",
                "parameters": [{"type": "string", "description": "Match ID", "name": "matchID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}, "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/schedule": {
            "get": {
                "produces": ["application/json"],
                "tags": ["schedule"],
                "summary": "Day schedule grid by time slot and court",
                "parameters": [
                    {"type": "string", "description": "YYYY-MM-DD", "name": "date", "in": "query", "required": true},
                    {"type": "string", "description": "League tag", "name": "league", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/scoring.ScheduleGrid"}}}
            }
        },
        "/schedule/dates": {
            "get": {
                "produces": ["application/json"],
                "tags": ["schedule"],
                "summary": "Dates that have matches",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/standings": {
            "get": {
                "description": "Teams ordered by wins, then goal difference, then name.",
                "produces": ["application/json"],
                "tags": ["standings"],
                "summary": "League tables",
                "parameters": [{"type": "string", "description": "Only this league", "name": "league_id", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/teams": {
            "get": {
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "List teams",
                "parameters": [{"type": "string", "description": "Only teams of this league", "name": "league_id", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/leagues": {
            "get": {
                "produces": ["application/json"],
                "tags": ["leagues"],
                "summary": "List leagues",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/admin/matches": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Admin match table with filters and sorting",
                "parameters": [
                    {"type": "string", "description": "Status filter", "name": "status", "in": "query"},
                    {"type": "string", "description": "League tag filter", "name": "league", "in": "query"},
                    {"type": "string", "description": "Court filter", "name": "court", "in": "query"},
                    {"type": "string", "description": "Date filter (YYYY-MM-DD)", "name": "date", "in": "query"},
                    {"type": "string", "description": "Sort column", "name": "sort", "in": "query"},
                    {"type": "string", "description": "asc or desc", "name": "order", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Create a match",
                "parameters": [{"description": "Match", "name": "match", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.CreateMatchInput"}}],
                "responses": {"201": {"description": "Created", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/admin/matches/{matchID}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "description": "Stats follow the edit. If a team name cannot be resolved the match is still saved and a warning is returned.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Edit a match",
                "parameters": [
                    {"type": "string", "description": "Match ID", "name": "matchID", "in": "path", "required": true},
                    {"description": "Changed fields", "name": "patch", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.UpdateMatchInput"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Delete a match",
                "parameters": [{"type": "string", "description": "Match ID", "name": "matchID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/teams/{teamID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "Get one team",
                "parameters": [{"type": "string", "description": "Team ID", "name": "teamID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}, "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/leagues/{leagueID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["leagues"],
                "summary": "Get one league",
                "parameters": [{"type": "string", "description": "League ID", "name": "leagueID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}, "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/admin/teams": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Create a team",
                "parameters": [{"description": "Team", "name": "team", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.CreateTeamInput"}}],
                "responses": {"201": {"description": "Created", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/admin/teams/{teamID}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Edit a team",
                "parameters": [{"type": "string", "description": "Team ID", "name": "teamID", "in": "path", "required": true}, {"description": "Changed fields", "name": "team", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.UpdateTeamInput"}}],
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Delete a team",
                "parameters": [{"type": "string", "description": "Team ID", "name": "teamID", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/admin/leagues": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Create a league",
                "parameters": [{"description": "League", "name": "league", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.LeagueInput"}}],
                "responses": {"201": {"description": "Created", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/admin/leagues/{leagueID}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Edit a league",
                "parameters": [{"type": "string", "description": "League ID", "name": "leagueID", "in": "path", "required": true}, {"description": "Changed fields", "name": "league", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.UpdateLeagueInput"}}],
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Delete a league",
                "parameters": [{"type": "string", "description": "League ID", "name": "leagueID", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/admin/teams/rename": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Rename a team name across matches and team records",
                "parameters": [{"description": "Old and new name", "name": "rename", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.renameTeamRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/services.RenameResult"}}}
            }
        },
        "/admin/stats/recalculate": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Rebuild every team's stats from completed matches",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/services.RecalculationReport"}}, "403": {"description": "Forbidden", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/admin/setup": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Load the built-in leagues, teams and matches into an empty database",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/services.SeedReport"}}}
            }
        },
        "/admin/reset-matches": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Replace all matches with the tournament-day schedule",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/services.ResetReport"}}}
            }
        }
    },
    "definitions": {
        "handlers.renameTeamRequest": {
            "type": "object",
            "properties": {"exclude_match_id": {"type": "string"}, "new_name": {"type": "string"}, "old_name": {"type": "string"}}
        },
        "scoring.ScheduleGrid": {
            "type": "object",
            "properties": {"courts": {"type": "array", "items": {"type": "string"}}, "date": {"type": "string"}, "slots": {"type": "array", "items": {"type": "object"}}}
        },
        "services.CreateMatchInput": {
            "type": "object",
            "properties": {
                "away_score": {"type": "integer"}, "away_team": {"type": "string"}, "court": {"type": "string"}, "date": {"type": "string"},
                "end_time": {"type": "string"}, "home_score": {"type": "integer"}, "home_team": {"type": "string"},
                "league": {"type": "string", "enum": ["menA", "menB", "beginners"]}, "start_time": {"type": "string"},
                "status": {"type": "string", "enum": ["upcoming", "ongoing", "completed"]}
            }
        },
        "services.CreateTeamInput": {
            "type": "object",
            "properties": {"league_id": {"type": "string"}, "name": {"type": "string"}, "players": {"type": "array", "items": {"type": "string"}}}
        },
        "services.LeagueInput": {
            "type": "object",
            "properties": {"color": {"type": "string"}, "description": {"type": "string"}, "name": {"type": "string"}}
        },
        "services.LoginInput": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "services.RecalculationReport": {
            "type": "object",
            "properties": {"matches_applied": {"type": "integer"}, "matches_skipped": {"type": "array", "items": {"type": "object"}}, "teams_failed": {"type": "array", "items": {"type": "string"}}, "teams_reset": {"type": "integer"}}
        },
        "services.RenameResult": {
            "type": "object",
            "properties": {"matches_updated": {"type": "integer"}, "method": {"type": "string"}, "teams_renamed": {"type": "array", "items": {"type": "string"}}, "teams_skipped": {"type": "array", "items": {"type": "string"}}, "warning": {"type": "string"}}
        },
        "services.ResetReport": {
            "type": "object",
            "properties": {"archive_key": {"type": "string"}, "archive_url": {"type": "string"}, "matches_created": {"type": "integer"}, "matches_deleted": {"type": "integer"}, "teams_reset": {"type": "integer"}}
        },
        "services.SeedReport": {
            "type": "object",
            "properties": {"leagues_created": {"type": "integer"}, "matches_created": {"type": "integer"}, "skipped": {"type": "boolean"}, "teams_created": {"type": "integer"}, "warnings": {"type": "array", "items": {"type": "string"}}}
        },
        "services.UpdateLeagueInput": {
            "type": "object",
            "properties": {"color": {"type": "string"}, "description": {"type": "string"}, "name": {"type": "string"}}
        },
        "services.UpdateMatchInput": {
            "type": "object",
            "properties": {
                "away_score": {"type": "integer"}, "away_team": {"type": "string"}, "court": {"type": "string"}, "date": {"type": "string"},
                "end_time": {"type": "string"}, "home_score": {"type": "integer"}, "home_team": {"type": "string"}, "league": {"type": "string"},
                "propagate_renames": {"type": "boolean"}, "start_time": {"type": "string"}, "status": {"type": "string"}
            }
        },
        "services.UpdateTeamInput": {
            "type": "object",
            "properties": {"league_id": {"type": "string"}, "name": {"type": "string"}, "players": {"type": "array", "items": {"type": "string"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Tennis League API",
	Description:      "Match results, league tables and schedules for a doubles tennis league.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
