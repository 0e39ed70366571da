package admin

import "github.com/nexpetcare/nexpetcare/internal/provider"

// Handler serves the staff-facing management APIs.
type Handler struct {
	*provider.Container
}

// New creates the admin handler
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
