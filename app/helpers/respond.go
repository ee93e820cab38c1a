package helpers

import (
	"errors"
	"net/http"

	"github.com/SumanthCsy/Mens-Club-sub000/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

// Notice is the JSON body of every non-data response.
type Notice struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
	Support *SupportContact   `json:"support,omitempty"`
}

type SupportContact struct {
	Phone    string `json:"phone,omitempty"`
	Whatsapp string `json:"whatsapp,omitempty"`
}

func WriteNotice(rd *render.Render, w http.ResponseWriter, status int, message string) {
	kind := "success"
	if status >= http.StatusBadRequest {
		kind = "error"
	}
	_ = rd.JSON(w, status, Notice{Status: kind, Message: message})
}

// WriteError reports err to the client. Server-side failures are logged
// and their details withheld.
func WriteError(rd *render.Render, w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	notice := Notice{Status: "error", Message: err.Error()}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		notice.Errors = FormatValidationErrors(verrs)
		for _, sentinel := range []error{services.ErrInvalidShippingAddress, services.ErrInvalidInput} {
			if errors.Is(err, sentinel) {
				notice.Message = sentinel.Error()
				break
			}
		}
	}

	var support *services.SupportContactError
	if errors.As(err, &support) {
		notice.Support = &SupportContact{Phone: support.ContactPhone, Whatsapp: support.WhatsappNumber}
	}

	switch {
	case status == http.StatusServiceUnavailable:
		zap.S().Errorf("%s %s: %v", r.Method, r.URL.Path, err)
		notice.Message = "The store is temporarily unavailable. Please try again."
	case status >= http.StatusInternalServerError:
		zap.S().Errorf("%s %s: %v", r.Method, r.URL.Path, err)
		notice.Message = "Something went wrong. Please try again."
	}
	_ = rd.JSON(w, status, notice)
}
