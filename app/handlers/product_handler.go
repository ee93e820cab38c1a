package handlers

import (
	"net/http"

	"github.com/SumanthCsy/Mens-Club-sub000/app/helpers"
	"github.com/SumanthCsy/Mens-Club-sub000/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type ProductHandler struct {
	render         *render.Render
	productService *services.ProductService
}

func NewProductHandler(r *render.Render, productService *services.ProductService) *ProductHandler {
	return &ProductHandler{render: r, productService: productService}
}

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *ProductHandler) ListGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products, err := h.productService.ListProducts(r.Context(), services.ProductFilter{
		Category: q.Get("category"),
		Brand:    q.Get("brand"),
		Search:   q.Get("q"),
	})
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, products)
}

func (h *ProductHandler) DetailGet(w http.ResponseWriter, r *http.Request) {
	product, err := h.productService.GetProduct(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, product)
}

func (h *ProductHandler) ReviewPost(w http.ResponseWriter, r *http.Request) {
	var in reviewRequest
	if err := helpers.DecodeJSON(r, &in); err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	user := helpers.GetUserFromContext(r.Context())
	product, err := h.productService.AddReview(r.Context(), user, mux.Vars(r)["id"], in.Rating, in.Comment)
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, product)
}
