package helpers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SumanthCsy/Mens-Club-sub000/app/models"
	"github.com/SumanthCsy/Mens-Club-sub000/app/services"
	"github.com/SumanthCsy/Mens-Club-sub000/app/utils/renderer"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{services.ErrNotAuthenticated, http.StatusUnauthorized},
		{fmt.Errorf("wrapped: %w", services.ErrAccessDenied), http.StatusForbidden},
		{services.ErrOrderNotFound, http.StatusNotFound},
		{services.ErrCouponExpired, http.StatusUnprocessableEntity},
		{&services.SupportContactError{Status: models.OrderStatusShipped}, http.StatusConflict},
		{fmt.Errorf("op: %w: %w", services.ErrPersistence, errors.New("dial tcp")), http.StatusServiceUnavailable},
		{fmt.Errorf("%w: eof", ErrMalformedBody), http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestFormatValidationErrors(t *testing.T) {
	err := validator.New().Struct(models.ShippingAddress{PostalCode: "12"})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	msgs := FormatValidationErrors(verrs)
	assert.Equal(t, "Full name is required.", msgs["fullName"])
	assert.Equal(t, "Postal code must be exactly 6 characters.", msgs["postalCode"])
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Quantity int `json:"quantity"`
	}
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"quantity":3}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, 3, dst.Quantity)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"quantity":`))
	assert.ErrorIs(t, DecodeJSON(r, &dst), ErrMalformedBody)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("  "))
	assert.ErrorIs(t, DecodeJSON(r, &dst), ErrMalformedBody)
}

func TestUserContext(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, GetUserFromContext(ctx))
	assert.Empty(t, GetUserIDFromContext(ctx))

	ctx = WithUser(ctx, &models.User{ID: "u1"})
	assert.Equal(t, "u1", GetUserIDFromContext(ctx))
	assert.Equal(t, "u1", GetUserFromContext(ctx).ID)
}

func TestWriteError_SupportContact(t *testing.T) {
	rd := renderer.New(false)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/orders/o1/cancel", nil)

	WriteError(rd, w, r, &services.SupportContactError{Status: models.OrderStatusShipped, ContactPhone: "0872", WhatsappNumber: "9199"})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"whatsapp":"9199"`)
	assert.Contains(t, w.Body.String(), `"status":"error"`)
}

func TestWriteError_HidesInternalDetails(t *testing.T) {
	rd := renderer.New(false)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/orders", nil)

	WriteError(rd, w, r, fmt.Errorf("op: %w: %w", services.ErrPersistence, errors.New("dial tcp 10.0.0.1")))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.1")
}
