package handlers

import (
	"net/http"

	"github.com/SumanthCsy/Mens-Club-sub000/app/helpers"
	"github.com/SumanthCsy/Mens-Club-sub000/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type WishlistHandler struct {
	render         *render.Render
	registry       *services.SyncRegistry
	productService *services.ProductService
}

func NewWishlistHandler(r *render.Render, registry *services.SyncRegistry, productService *services.ProductService) *WishlistHandler {
	return &WishlistHandler{render: r, registry: registry, productService: productService}
}

func (h *WishlistHandler) WishlistGet(w http.ResponseWriter, r *http.Request) {
	session, err := syncSession(h.registry, r)
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, NewWishlistResponse(session.Wishlist))
}

func (h *WishlistHandler) AddPost(w http.ResponseWriter, r *http.Request) {
	session, err := syncSession(h.registry, r)
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	product, err := h.productService.GetProduct(r.Context(), mux.Vars(r)["productId"])
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	if err := session.Wishlist.AddToWishlist(r.Context(), product.ID); err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	helpers.WriteNotice(h.render, w, http.StatusOK, product.Name+" saved to your wishlist.")
}

func (h *WishlistHandler) RemoveDelete(w http.ResponseWriter, r *http.Request) {
	session, err := syncSession(h.registry, r)
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	if err := session.Wishlist.RemoveFromWishlist(r.Context(), mux.Vars(r)["productId"]); err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	helpers.WriteNotice(h.render, w, http.StatusOK, "Removed from your wishlist.")
}
