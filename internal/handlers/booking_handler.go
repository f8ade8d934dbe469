package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/palfi-booking/internal/catalog"
	"github.com/BruksfildServices01/palfi-booking/internal/httpresp"
	"github.com/BruksfildServices01/palfi-booking/internal/middleware"
	"github.com/BruksfildServices01/palfi-booking/internal/models"
	"github.com/BruksfildServices01/palfi-booking/internal/session"
	"github.com/BruksfildServices01/palfi-booking/internal/timezone"
	uc "github.com/BruksfildServices01/palfi-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	catalog      *catalog.Catalog
	loc          *time.Location
	now          func() time.Time
	create       *uc.CreateAppointment
	availability *uc.GetAvailability
}

func NewBookingHandler(
	cat *catalog.Catalog,
	loc *time.Location,
	create *uc.CreateAppointment,
	availability *uc.GetAvailability,
) *BookingHandler {
	return &BookingHandler{
		catalog:      cat,
		loc:          loc,
		now:          time.Now,
		create:       create,
		availability: availability,
	}
}

// ======================================================
// REQUESTS / RESPONSES
// ======================================================

type CreateAppointmentRequest struct {
	Name    string `json:"name" form:"name" binding:"required"`
	Phone   string `json:"phone" form:"phone" binding:"required"`
	Email   string `json:"email" form:"email"`
	Service string `json:"service" form:"service" binding:"required"`
	Date    string `json:"date" form:"date" binding:"required"`
	Time    string `json:"time" form:"time" binding:"required"`
	Notes   string `json:"notes" form:"notes"`
}

type FormResponse struct {
	Services  []catalog.Service `json:"services"`
	TimeSlots []string          `json:"time_slots"`
	MinDate   string            `json:"min_date"`
}

// FormValues is what the form inputs should show after a submission.
type FormValues struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Service string `json:"service"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Notes   string `json:"notes"`
}

type CreateAppointmentResponse struct {
	Data         models.Appointment `json:"data"`
	Feedback     session.Feedback   `json:"feedback"`
	Availability []uc.SlotOption    `json:"availability"`
	Form         FormValues         `json:"form"`
}

type FeedbackResponse struct {
	Feedback *session.Feedback `json:"feedback"`
}

// ======================================================
// FORM
// ======================================================

func (h *BookingHandler) Form(c *gin.Context) {
	httpresp.OK(c, FormResponse{
		Services:  h.catalog.Services,
		TimeSlots: h.catalog.TimeSlots,
		MinDate:   timezone.Today(h.now(), h.loc),
	})
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *BookingHandler) Availability(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	opts, err := h.availability.Execute(c.Request.Context(), sess, c.Query("date"))
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	httpresp.List(c, opts)
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidRequest(c)
		return
	}

	service := strings.TrimSpace(req.Service)
	if !h.catalog.HasService(service) || !h.catalog.HasTime(req.Time) {
		invalidRequest(c)
		return
	}

	res, err := h.create.Execute(c.Request.Context(), sess, uc.CreateAppointmentInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Service: service,
		Date:    req.Date,
		Time:    req.Time,
		Notes:   req.Notes,
	})
	if err != nil {
		writeBookingError(c, err, res)
		return
	}

	c.JSON(http.StatusCreated, CreateAppointmentResponse{
		Data:         *res.Appointment,
		Feedback:     res.Feedback,
		Availability: res.Availability,
		Form:         formValues(res.Form),
	})
}

func formValues(in uc.CreateAppointmentInput) FormValues {
	return FormValues{
		Name:    in.Name,
		Phone:   in.Phone,
		Email:   in.Email,
		Service: in.Service,
		Date:    in.Date,
		Time:    in.Time,
		Notes:   in.Notes,
	}
}

// ======================================================
// FEEDBACK
// ======================================================

// Feedback returns the booking message until it is dismissed.
func (h *BookingHandler) Feedback(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	sess.Lock()
	fb, ok := sess.Feedback(session.ChannelBooking, h.now())
	sess.Unlock()

	if !ok {
		httpresp.OK(c, FeedbackResponse{})
		return
	}
	httpresp.OK(c, FeedbackResponse{Feedback: &fb})
}
