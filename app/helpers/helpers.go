package helpers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/SumanthCsy/Mens-Club-sub000/app/models"
	"github.com/SumanthCsy/Mens-Club-sub000/app/services"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
)

type contextKey string

const (
	ContextKeyUserID contextKey = "userID"
	ContextKeyUser   contextKey = "userObject"
)

const maxBodyBytes = 1 << 20

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary

	ErrMalformedBody = errors.New("malformed request body")
)

func WithUser(ctx context.Context, user *models.User) context.Context {
	ctx = context.WithValue(ctx, ContextKeyUserID, user.ID)
	return context.WithValue(ctx, ContextKeyUser, user)
}

func GetUserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(ContextKeyUserID).(string)
	return userID
}

func GetUserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(ContextKeyUser).(*models.User)
	return user
}

// DecodeJSON reads a single JSON value from the request body into v.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("%w: empty body", ErrMalformedBody)
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return fmt.Errorf("%w: empty body", ErrMalformedBody)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return nil
}

func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := lowerFirst(err.Field())
		label := humanize(err.Field())
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s is required.", label)
		case "email":
			errorMessages[field] = fmt.Sprintf("%s must be a valid email address.", label)
		case "numeric":
			errorMessages[field] = fmt.Sprintf("%s must contain digits only.", label)
		case "len":
			errorMessages[field] = fmt.Sprintf("%s must be exactly %s characters.", label, err.Param())
		case "min":
			errorMessages[field] = fmt.Sprintf("%s must be at least %s characters.", label, err.Param())
		case "max":
			errorMessages[field] = fmt.Sprintf("%s must be at most %s characters.", label, err.Param())
		case "oneof":
			errorMessages[field] = fmt.Sprintf("%s must be one of: %s.", label, err.Param())
		default:
			errorMessages[field] = fmt.Sprintf("%s failed the %s check.", label, err.Tag())
		}
	}
	return errorMessages
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// humanize turns "PostalCode" into "Postal code".
func humanize(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var statusTable = []struct {
	err    error
	status int
}{
	{ErrMalformedBody, http.StatusBadRequest},
	{services.ErrNotAuthenticated, http.StatusUnauthorized},
	{services.ErrInvalidCredentials, http.StatusUnauthorized},
	{services.ErrAccessDenied, http.StatusForbidden},
	{services.ErrProductNotFound, http.StatusNotFound},
	{services.ErrCouponNotFound, http.StatusNotFound},
	{services.ErrOrderNotFound, http.StatusNotFound},
	{services.ErrUserNotFound, http.StatusNotFound},
	{services.ErrEmailTaken, http.StatusConflict},
	{services.ErrCouponCodeTaken, http.StatusConflict},
	{services.ErrCancellationRequiresSupport, http.StatusConflict},
	{services.ErrCancellationNotAllowed, http.StatusConflict},
	{services.ErrOutOfStock, http.StatusUnprocessableEntity},
	{services.ErrCouponExpired, http.StatusUnprocessableEntity},
	{services.ErrCouponInactive, http.StatusUnprocessableEntity},
	{services.ErrMinimumPurchaseNotMet, http.StatusUnprocessableEntity},
	{services.ErrEmptyCart, http.StatusUnprocessableEntity},
	{services.ErrInvalidInput, http.StatusBadRequest},
	{services.ErrInvalidCartItem, http.StatusBadRequest},
	{services.ErrInvalidShippingAddress, http.StatusBadRequest},
	{services.ErrInvalidPaymentMethod, http.StatusBadRequest},
	{services.ErrInvalidStatus, http.StatusBadRequest},
	{services.ErrInvalidCoupon, http.StatusBadRequest},
	{services.ErrInvalidRole, http.StatusBadRequest},
	{services.ErrCancellationReasonRequired, http.StatusBadRequest},
	{services.ErrPersistence, http.StatusServiceUnavailable},
}

// StatusFor maps a service error to the HTTP status sent to the client.
func StatusFor(err error) int {
	for _, e := range statusTable {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}
