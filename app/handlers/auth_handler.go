package handlers

import (
	"net/http"

	"github.com/SumanthCsy/Mens-Club-sub000/app/helpers"
	"github.com/SumanthCsy/Mens-Club-sub000/app/services"
	"github.com/SumanthCsy/Mens-Club-sub000/app/utils/sessions"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type AuthHandler struct {
	render       *render.Render
	authService  *services.AuthService
	sessionStore sessions.SessionStore
	registry     *services.SyncRegistry
}

func NewAuthHandler(r *render.Render, authService *services.AuthService, sessionStore sessions.SessionStore, registry *services.SyncRegistry) *AuthHandler {
	return &AuthHandler{
		render:       r,
		authService:  authService,
		sessionStore: sessionStore,
		registry:     registry,
	}
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *AuthHandler) SignUpPost(w http.ResponseWriter, r *http.Request) {
	var in services.SignUpInput
	if err := helpers.DecodeJSON(r, &in); err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}

	user, err := h.authService.SignUp(r.Context(), in)
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		zap.S().Errorf("AuthHandler.SignUpPost: saving session for %s: %v", user.ID, err)
		helpers.WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, NewUserResponse(user))
}

func (h *AuthHandler) SignInPost(w http.ResponseWriter, r *http.Request) {
	var in signInRequest
	if err := helpers.DecodeJSON(r, &in); err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}

	user, err := h.authService.SignIn(r.Context(), in.Email, in.Password)
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		zap.S().Errorf("AuthHandler.SignInPost: saving session for %s: %v", user.ID, err)
		helpers.WriteError(h.render, w, r, err)
		return
	}
	zap.S().Infof("AuthHandler.SignInPost: user %s signed in", user.ID)
	_ = h.render.JSON(w, http.StatusOK, NewUserResponse(user))
}

// SignOutPost detaches the user's cart and wishlist before dropping the
// session cookie.
func (h *AuthHandler) SignOutPost(w http.ResponseWriter, r *http.Request) {
	if userID := helpers.GetUserIDFromContext(r.Context()); userID != "" {
		h.registry.Release(userID)
	}
	if err := h.sessionStore.ClearSession(w, r); err != nil {
		zap.S().Warnf("AuthHandler.SignOutPost: clearing session: %v", err)
	}
	helpers.WriteNotice(h.render, w, http.StatusOK, "Signed out.")
}

func (h *AuthHandler) MeGet(w http.ResponseWriter, r *http.Request) {
	user := helpers.GetUserFromContext(r.Context())
	if user == nil {
		helpers.WriteError(h.render, w, r, services.ErrNotAuthenticated)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, NewUserResponse(user))
}

func (h *AuthHandler) ChangePasswordPost(w http.ResponseWriter, r *http.Request) {
	var in changePasswordRequest
	if err := helpers.DecodeJSON(r, &in); err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	userID := helpers.GetUserIDFromContext(r.Context())
	if err := h.authService.ChangePassword(r.Context(), userID, in.CurrentPassword, in.NewPassword); err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	helpers.WriteNotice(h.render, w, http.StatusOK, "Password updated.")
}
