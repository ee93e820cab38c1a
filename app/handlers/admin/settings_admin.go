package admin

import (
	"net/http"

	"github.com/SumanthCsy/Mens-Club-sub000/app/helpers"
	"github.com/SumanthCsy/Mens-Club-sub000/app/models"
)

func (h *AdminHandler) SettingsGet(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.Get(r.Context())
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, settings)
}

func (h *AdminHandler) SettingsPut(w http.ResponseWriter, r *http.Request) {
	var in models.StoreSettings
	if err := helpers.DecodeJSON(r, &in); err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	settings, err := h.settingsService.Update(r.Context(), in)
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, settings)
}
