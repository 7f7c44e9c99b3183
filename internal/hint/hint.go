// Package hint produces the clue shown at the start of each round. Remote
// hints come from a text-generation endpoint; anything missing, malformed or
// leaking coordinates is replaced by a geometry-derived fallback.
package hint

import "errors"

// Source says where a Hint came from.
type Source string

const (
	SourceRemote   Source = "remote"
	SourceCache    Source = "cache"
	SourceFallback Source = "fallback"
)

// Hint is a short explanation plus a one-line caption.
type Hint struct {
	Text    string `json:"hint"`
	Caption string `json:"caption"`
	Source  Source `json:"-"`
}

var (
	// ErrMalformed is returned when the remote response carries no usable
	// {"hint", "caption"} object.
	ErrMalformed = errors.New("hint: malformed response")
	// ErrFiltered is returned when a remote hint mentions coordinates.
	ErrFiltered = errors.New("hint: coordinate language rejected")
	// ErrDisabled is returned by a client with no API key.
	ErrDisabled = errors.New("hint: remote disabled")
)
