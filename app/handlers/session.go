package handlers

import (
	"net/http"

	"github.com/SumanthCsy/Mens-Club-sub000/app/helpers"
	"github.com/SumanthCsy/Mens-Club-sub000/app/services"
)

// syncSession returns the attached cart and wishlist session of the
// signed-in user.
func syncSession(registry *services.SyncRegistry, r *http.Request) (*services.Session, error) {
	user := helpers.GetUserFromContext(r.Context())
	if user == nil {
		return nil, services.ErrNotAuthenticated
	}
	return registry.Acquire(r.Context(), user)
}
