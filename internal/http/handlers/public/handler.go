package public

import "github.com/nexpetcare/nexpetcare/internal/provider"

// Handler serves storefront, customer and platform-onboarding APIs.
type Handler struct {
	*provider.Container
}

// New creates the public handler
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
