package admin

import (
	"net/http"

	"github.com/SumanthCsy/Mens-Club-sub000/app/handlers"
	"github.com/SumanthCsy/Mens-Club-sub000/app/helpers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type roleRequest struct {
	Role string `json:"role"`
}

func (h *AdminHandler) UsersGet(w http.ResponseWriter, r *http.Request) {
	users, err := h.authService.ListUsers(r.Context())
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, handlers.NewUserResponses(users))
}

func (h *AdminHandler) UserRolePatch(w http.ResponseWriter, r *http.Request) {
	var in roleRequest
	if err := helpers.DecodeJSON(r, &in); err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	userID := mux.Vars(r)["id"]
	user, err := h.authService.SetRole(r.Context(), h.admin(r), userID, in.Role)
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	zap.S().Infof("AdminHandler.UserRolePatch: user %s is now %s (by %s)", user.ID, user.Role, h.admin(r).ID)
	_ = h.render.JSON(w, http.StatusOK, handlers.NewUserResponse(user))
}
