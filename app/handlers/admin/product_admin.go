package admin

import (
	"net/http"

	"github.com/SumanthCsy/Mens-Club-sub000/app/helpers"
	"github.com/SumanthCsy/Mens-Club-sub000/app/models"
	"github.com/SumanthCsy/Mens-Club-sub000/app/services"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func (h *AdminHandler) ProductsGet(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.ListProducts(r.Context(), services.ProductFilter{Search: r.URL.Query().Get("q")})
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, products)
}

func (h *AdminHandler) ProductPost(w http.ResponseWriter, r *http.Request) {
	var p models.Product
	if err := helpers.DecodeJSON(r, &p); err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	created, err := h.productService.CreateProduct(r.Context(), &p)
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	zap.S().Infof("AdminHandler.ProductPost: product %s created by %s", created.ID, h.admin(r).ID)
	_ = h.render.JSON(w, http.StatusCreated, created)
}

func (h *AdminHandler) ProductPut(w http.ResponseWriter, r *http.Request) {
	var p models.Product
	if err := helpers.DecodeJSON(r, &p); err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	updated, err := h.productService.UpdateProduct(r.Context(), mux.Vars(r)["id"], &p)
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, updated)
}

func (h *AdminHandler) ProductDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.productService.DeleteProduct(r.Context(), id); err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	zap.S().Infof("AdminHandler.ProductDelete: product %s deleted by %s", id, h.admin(r).ID)
	helpers.WriteNotice(h.render, w, http.StatusOK, "Product deleted.")
}
