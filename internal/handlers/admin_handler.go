package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/palfi-booking/internal/audit"
	"github.com/BruksfildServices01/palfi-booking/internal/auth"
	"github.com/BruksfildServices01/palfi-booking/internal/httperr"
	"github.com/BruksfildServices01/palfi-booking/internal/httpresp"
	"github.com/BruksfildServices01/palfi-booking/internal/metrics"
	"github.com/BruksfildServices01/palfi-booking/internal/middleware"
	"github.com/BruksfildServices01/palfi-booking/internal/models"
	"github.com/BruksfildServices01/palfi-booking/internal/session"
	uc "github.com/BruksfildServices01/palfi-booking/internal/usecase/appointment"
)

const (
	CodeInvalidCredentials = "invalid_credentials"
	MsgInvalidCredentials  = "Helytelen jelszó!"
)

// ======================================================
// HANDLER
// ======================================================

type AdminHandler struct {
	authn  auth.Authenticator
	tokens *auth.TokenIssuer
	list   *uc.ListAppointments
	delete *uc.DeleteAppointment
	audit  *audit.Dispatcher
	log    zerolog.Logger
	now    func() time.Time
}

type AdminHandlerDeps struct {
	Authenticator auth.Authenticator
	Tokens        *auth.TokenIssuer
	List          *uc.ListAppointments
	Delete        *uc.DeleteAppointment
	Audit         *audit.Dispatcher
	Log           zerolog.Logger
}

func NewAdminHandler(d AdminHandlerDeps) *AdminHandler {
	return &AdminHandler{
		authn:  d.Authenticator,
		tokens: d.Tokens,
		list:   d.List,
		delete: d.Delete,
		audit:  d.Audit,
		log:    d.Log,
		now:    time.Now,
	}
}

// ======================================================
// REQUESTS / RESPONSES
// ======================================================

type LoginRequest struct {
	Password string `json:"password" form:"password" binding:"required"`
}

type SessionResponse struct {
	LoggedIn bool              `json:"logged_in"`
	Feedback *session.Feedback `json:"feedback,omitempty"`
}

type ListingResponse struct {
	httpresp.ListResponse[models.Appointment]
	Feedback *session.Feedback `json:"feedback,omitempty"`
}

// ======================================================
// LOGIN / LOGOUT
// ======================================================

func (h *AdminHandler) Login(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidRequest(c)
		return
	}

	if err := h.authn.Authenticate(c.Request.Context(), req.Password); err != nil {
		metrics.IncAdminLogin("failure")
		h.dispatch(sess.ID, "admin_login_failed")

		if errors.Is(err, auth.ErrInvalidCredentials) {
			httperr.Unauthorized(c, CodeInvalidCredentials, MsgInvalidCredentials)
			return
		}
		h.log.Error().Err(err).Msg("authenticator failed")
		httperr.Internal(c, "internal_error", "Váratlan hiba történt.")
		return
	}

	token, jti, err := h.tokens.Issue(sess.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to sign admin token")
		httperr.Internal(c, "failed_to_generate_token", "Váratlan hiba történt.")
		return
	}

	sess.Lock()
	sess.GrantAdmin(jti)
	sess.Unlock()

	setAdminCookie(c, token, false)
	metrics.IncAdminLogin("success")
	h.dispatch(sess.ID, "admin_login")

	l := h.list.Execute(c.Request.Context(), sess)
	c.JSON(http.StatusOK, ListingResponse{
		ListResponse: listResponse(l),
	})
}

func (h *AdminHandler) Logout(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	sess.Lock()
	wasAdmin := sess.LoggedIn()
	sess.RevokeAdmin()
	sess.Unlock()

	setAdminCookie(c, "", true)
	if wasAdmin {
		h.dispatch(sess.ID, "admin_logout")
	}
	c.Status(http.StatusNoContent)
}

// Session reports whether this browser session has passed the gate.
func (h *AdminHandler) Session(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	loggedIn := false
	if raw, err := c.Cookie(middleware.AdminCookie); err == nil {
		if claims, err := h.tokens.Verify(raw); err == nil && claims.SessionID == sess.ID {
			sess.Lock()
			loggedIn = sess.IsAdmin(claims.ID)
			sess.Unlock()
		}
	}

	out := SessionResponse{LoggedIn: loggedIn}
	if loggedIn {
		out.Feedback = h.adminFeedback(sess)
	}
	httpresp.OK(c, out)
}

// ======================================================
// LISTING
// ======================================================

func (h *AdminHandler) List(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	l := h.list.Execute(c.Request.Context(), sess)
	c.JSON(http.StatusOK, ListingResponse{
		ListResponse: listResponse(l),
		Feedback:     h.adminFeedback(sess),
	})
}

func (h *AdminHandler) Refresh(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	l, fb := h.list.Refresh(c.Request.Context(), sess)
	c.JSON(http.StatusOK, ListingResponse{
		ListResponse: listResponse(l),
		Feedback:     &fb,
	})
}

func (h *AdminHandler) Delete(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Érvénytelen azonosító.")
		return
	}

	if confirmed, _ := strconv.ParseBool(c.Query("confirm")); !confirmed {
		httperr.Conflict(c, uc.CodeConfirmationRequired, uc.MsgConfirmDelete)
		return
	}

	l, fb := h.delete.Execute(c.Request.Context(), sess, id)
	c.JSON(http.StatusOK, ListingResponse{
		ListResponse: listResponse(l),
		Feedback:     &fb,
	})
}

// Export returns the collection exactly as it is written to the slot.
func (h *AdminHandler) Export(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	data, err := h.list.Export(sess)
	if err != nil {
		h.log.Error().Err(err).Str("session", sess.ID).Msg("export failed")
		httperr.Internal(c, "export_failed", "Váratlan hiba történt.")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="foglalasok.json"`)
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// ======================================================
// HELPERS
// ======================================================

func (h *AdminHandler) adminFeedback(sess *session.Session) *session.Feedback {
	sess.Lock()
	defer sess.Unlock()

	fb, ok := sess.Feedback(session.ChannelAdmin, h.now())
	if !ok {
		return nil
	}
	return &fb
}

func (h *AdminHandler) dispatch(sessionID, action string) {
	if h.audit == nil {
		return
	}
	h.audit.Dispatch(audit.Event{
		SessionID: sessionID,
		Action:    action,
		Entity:    "admin_session",
	})
}

func listResponse(l uc.Listing) httpresp.ListResponse[models.Appointment] {
	data := l.Appointments
	if data == nil {
		data = []models.Appointment{}
	}
	return httpresp.ListResponse[models.Appointment]{
		Data:    data,
		Total:   len(data),
		Message: l.Message,
	}
}

// setAdminCookie writes the admin token as a browser-session cookie.
func setAdminCookie(c *gin.Context, token string, clear bool) {
	ck := &http.Cookie{
		Name:     middleware.AdminCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if clear {
		ck.MaxAge = -1
	}
	http.SetCookie(c.Writer, ck)
}
