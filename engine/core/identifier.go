package core

import "github.com/google/uuid"

// NewSessionID returns an identifier for one mount of a widget. It shows up in
// log lines so interleaved remounts can be told apart.
func NewSessionID() string {
	return uuid.NewString()
}

// ShortID trims an identifier for display in the HUD.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
