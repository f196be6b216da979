package public

import "github.com/sheddy174/E-Commerce-Lab-sub001/internal/provider"

// Handler serves the storefront and customer-facing API.
type Handler struct {
	*provider.Container
}

// New creates the storefront handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
