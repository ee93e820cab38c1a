package middlewares

import (
	"net/http"

	"github.com/SumanthCsy/Mens-Club-sub000/app/helpers"
	"github.com/SumanthCsy/Mens-Club-sub000/app/repositories"
	"github.com/SumanthCsy/Mens-Club-sub000/app/services"
	"github.com/SumanthCsy/Mens-Club-sub000/app/utils/sessions"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

// SessionAuthMiddleware loads the signed-in user into the request context.
// Anonymous requests pass through untouched.
func SessionAuthMiddleware(sessionStore sessions.SessionStore, userRepo repositories.UserRepositoryImpl) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sessionStore.GetUserID(r)
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				zap.S().Warnf("SessionAuthMiddleware: loading user %s: %v", userID, err)
				next.ServeHTTP(w, r)
				return
			}
			if user == nil {
				zap.S().Infof("SessionAuthMiddleware: session for unknown user %s cleared", userID)
				_ = sessionStore.ClearSession(w, r)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(helpers.WithUser(r.Context(), user)))
		})
	}
}

func RequireAuth(rd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if helpers.GetUserFromContext(r.Context()) == nil {
				helpers.WriteError(rd, w, r, services.ErrNotAuthenticated)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func AdminAuthMiddleware(rd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := helpers.GetUserFromContext(r.Context())
			if user == nil {
				helpers.WriteError(rd, w, r, services.ErrNotAuthenticated)
				return
			}
			if !user.IsAdmin() {
				zap.S().Warnf("AdminAuthMiddleware: user %s (%s) denied %s", user.ID, user.Email, r.URL.Path)
				helpers.WriteError(rd, w, r, services.ErrAccessDenied)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
