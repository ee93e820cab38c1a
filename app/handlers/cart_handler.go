package handlers

import (
	"net/http"

	"github.com/SumanthCsy/Mens-Club-sub000/app/helpers"
	"github.com/SumanthCsy/Mens-Club-sub000/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type CartHandler struct {
	render         *render.Render
	registry       *services.SyncRegistry
	productService *services.ProductService
}

func NewCartHandler(r *render.Render, registry *services.SyncRegistry, productService *services.ProductService) *CartHandler {
	return &CartHandler{render: r, registry: registry, productService: productService}
}

type addToCartRequest struct {
	ProductID     string `json:"productId"`
	SelectedSize  string `json:"selectedSize"`
	SelectedColor string `json:"selectedColor"`
	Quantity      int    `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartGet returns the mirrored cart. Writes made in the last moments may
// not be reflected yet.
func (h *CartHandler) CartGet(w http.ResponseWriter, r *http.Request) {
	session, err := syncSession(h.registry, r)
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, NewCartResponse(session.Cart))
}

func (h *CartHandler) AddItemPost(w http.ResponseWriter, r *http.Request) {
	var in addToCartRequest
	if err := helpers.DecodeJSON(r, &in); err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	session, err := syncSession(h.registry, r)
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	product, err := h.productService.GetProduct(r.Context(), in.ProductID)
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}

	limited, err := session.Cart.AddToCart(r.Context(), product, in.SelectedSize, in.SelectedColor, in.Quantity)
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	msg := product.Name + " added to cart."
	if limited {
		zap.S().Debugf("CartHandler.AddItemPost: quantity of %s capped at stock for %s", product.ID, helpers.GetUserIDFromContext(r.Context()))
		msg = "Only the available stock of " + product.Name + " was added to your cart."
	}
	helpers.WriteNotice(h.render, w, http.StatusOK, msg)
}

func (h *CartHandler) UpdateItemPatch(w http.ResponseWriter, r *http.Request) {
	var in updateQuantityRequest
	if err := helpers.DecodeJSON(r, &in); err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	session, err := syncSession(h.registry, r)
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	limited, err := session.Cart.UpdateCartItemQuantity(r.Context(), mux.Vars(r)["id"], in.Quantity)
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	msg := "Cart updated."
	if limited {
		msg = "Quantity limited to the available stock."
	}
	helpers.WriteNotice(h.render, w, http.StatusOK, msg)
}

func (h *CartHandler) RemoveItemDelete(w http.ResponseWriter, r *http.Request) {
	session, err := syncSession(h.registry, r)
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	if err := session.Cart.RemoveFromCart(r.Context(), mux.Vars(r)["id"]); err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	helpers.WriteNotice(h.render, w, http.StatusOK, "Item removed from cart.")
}

func (h *CartHandler) ClearDelete(w http.ResponseWriter, r *http.Request) {
	session, err := syncSession(h.registry, r)
	if err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	if err := session.Cart.ClearCart(r.Context()); err != nil {
		helpers.WriteError(h.render, w, r, err)
		return
	}
	helpers.WriteNotice(h.render, w, http.StatusOK, "Cart cleared.")
}
