package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/palfi-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/palfi-booking/internal/httperr"
	"github.com/BruksfildServices01/palfi-booking/internal/session"
	uc "github.com/BruksfildServices01/palfi-booking/internal/usecase/appointment"
)

const (
	CodeInvalidRequest = "invalid_request"
	MsgInvalidRequest  = "Hiányzó vagy érvénytelen adatok."
)

// statusFor maps a business code to its HTTP status.
func statusFor(code string) int {
	switch code {
	case domain.CodeSlotConflict, uc.CodeConfirmationRequired:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

type bookingErrorResponse struct {
	httperr.HTTPError
	Feedback     session.Feedback `json:"feedback"`
	Availability []uc.SlotOption  `json:"availability,omitempty"`
	Form         *FormValues      `json:"form,omitempty"`
}

// writeBookingError reports a rejected submission together with the
// feedback and picker state the form should show.
func writeBookingError(c *gin.Context, err error, res *uc.CreateAppointmentResult) {
	be, ok := httperr.AsBusiness(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Váratlan hiba történt.")
		return
	}

	out := bookingErrorResponse{
		HTTPError: httperr.HTTPError{Code: be.Code, Message: be.Message},
	}
	if res != nil {
		out.Feedback = res.Feedback
		out.Availability = res.Availability
		form := formValues(res.Form)
		out.Form = &form
	}
	c.JSON(statusFor(be.Code), out)
}

func writeBusinessError(c *gin.Context, err error) {
	if be, ok := httperr.AsBusiness(err); ok {
		httperr.Write(c, statusFor(be.Code), be.Code, be.Message)
		return
	}
	httperr.Internal(c, "internal_error", "Váratlan hiba történt.")
}

func invalidRequest(c *gin.Context) {
	httperr.BadRequest(c, CodeInvalidRequest, MsgInvalidRequest)
}
