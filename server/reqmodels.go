package server

import "time"

// File reqmodels.go has the request and response body models of the API.

// CommandRequestBody is one line of player input to run in a session.
type CommandRequestBody struct {
	Input string `json:"input"`
}

// SessionModel is the API representation of a game session.
type SessionModel struct {
	ID      string    `json:"id"`
	Created time.Time `json:"created"`
	Room    string    `json:"room,omitempty"`
	Score   int       `json:"score"`
	Moves   int       `json:"moves"`
}

// SessionCreatedModel is returned when a session is created: the session plus
// the opening narration.
type SessionCreatedModel struct {
	SessionModel
	Output string `json:"output"`
}

// CommandModel is the API representation of one executed command.
type CommandModel struct {
	ID      string    `json:"id"`
	Seq     int       `json:"seq"`
	Input   string    `json:"input"`
	Output  string    `json:"output"`
	Created time.Time `json:"created"`
}

// InfoModel is version information about the running server.
type InfoModel struct {
	Version       string `json:"version"`
	ServerVersion string `json:"server_version"`
	WorldFile     string `json:"world_file"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}
