package controllers

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
)

// RegisterRequest is the request body for POST /api/register.
type RegisterRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Mobile  string `json:"mobile"`
	Message string `json:"message"`
	EventID string `json:"eventId"`
}

// DeleteAllResponse is the response body for DELETE /api/registrations/event/{eventId}.
type DeleteAllResponse struct {
	Message       string `json:"message"`
	RestoredSeats int    `json:"restoredSeats"`
}

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register for an event
// @Description Reserves one seat. A confirmation email is sent in the background.
// @Tags registrations
// @Accept json
// @Produce json
// @Param registration body RegisterRequest true "Registrant details"
// @Success 201 {object} domain.Registration
// @Failure 400 {object} helpers.ErrorResponse "validation failed or no seats left"
// @Failure 404 {object} helpers.ErrorResponse "event not found"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/register [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	const failed = "Registration failed"
	var req RegisterRequest
	if !helpers.DecodeAndValidate(w, r, &req, failed) {
		return
	}
	reg, err := c.Service.Register(r.Context(), &domain.RegistrationInput{
		Name:    req.Name,
		Email:   req.Email,
		Mobile:  req.Mobile,
		Message: req.Message,
		EventID: req.EventID,
	})
	if err != nil {
		writeError(w, r, c.Logger, err, failure{notFound: "Event not found", failed: failed})
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, reg)
}

// ListAll godoc
// @Summary List all registrations
// @Description Returns every registration, newest first, with the title of its event (empty when the event was deleted).
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.RegistrationWithEvent
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/registrations [get]
func (c *RegistrationController) ListAll(w http.ResponseWriter, r *http.Request) {
	regs, err := c.Service.ListAll(r.Context())
	if err != nil {
		writeError(w, r, c.Logger, err, failure{failed: "Failed to fetch registrants"})
		return
	}
	if regs == nil {
		regs = []*domain.RegistrationWithEvent{}
	}
	helpers.WriteJSON(w, http.StatusOK, regs)
}

// ListByEvent godoc
// @Summary List registrations of an event
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param eventId path string true "Event ID"
// @Success 200 {array} domain.Registration
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/registrations/event/{eventId} [get]
func (c *RegistrationController) ListByEvent(w http.ResponseWriter, r *http.Request) {
	c.listByEvent(w, r, r.PathValue("eventId"), "Failed to fetch event registrants")
}

// ListByEventQuery godoc
// @Summary List registrations of an event by query
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param eventId query string true "Event ID"
// @Success 200 {array} domain.Registration
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/register [get]
func (c *RegistrationController) ListByEventQuery(w http.ResponseWriter, r *http.Request) {
	const failed = "Error fetching registrations"
	eventID := r.URL.Query().Get("eventId")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, failed, "eventId is required")
		return
	}
	c.listByEvent(w, r, eventID, failed)
}

func (c *RegistrationController) listByEvent(w http.ResponseWriter, r *http.Request, eventID, failed string) {
	regs, err := c.Service.ListByEvent(r.Context(), eventID)
	if err != nil {
		writeError(w, r, c.Logger, err, failure{failed: failed})
		return
	}
	if regs == nil {
		regs = []*domain.Registration{}
	}
	helpers.WriteJSON(w, http.StatusOK, regs)
}

// Delete godoc
// @Summary Delete a registration
// @Description Deletes one registration and gives its seat back to the event, if the event still exists.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Registration ID"
// @Success 200 {object} helpers.MessageResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/registrations/{id} [delete]
func (c *RegistrationController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, c.Logger, err, failure{notFound: "Registrant not found", failed: "Failed to delete registrant"})
		return
	}
	helpers.WriteMessage(w, http.StatusOK, "Registrant deleted and seat restored")
}

// DeleteAllForEvent godoc
// @Summary Delete every registration of an event
// @Description Deletes all registrations of the event and restores their seats.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param eventId path string true "Event ID"
// @Success 200 {object} controllers.DeleteAllResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/registrations/event/{eventId} [delete]
func (c *RegistrationController) DeleteAllForEvent(w http.ResponseWriter, r *http.Request) {
	n, err := c.Service.DeleteAllForEvent(r.Context(), r.PathValue("eventId"))
	if err != nil {
		writeError(w, r, c.Logger, err, failure{failed: "Failed to delete registrants"})
		return
	}
	helpers.WriteJSON(w, http.StatusOK, DeleteAllResponse{Message: "All registrants deleted", RestoredSeats: n})
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Export godoc
// @Summary Export registrations of an event as CSV
// @Tags registrations
// @Produce text/csv
// @Security BearerAuth
// @Param eventId path string true "Event ID"
// @Success 200 {string} string "CSV with columns name,email,mobile,message,registeredAt"
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/registrations/event/{eventId}/export [get]
func (c *RegistrationController) Export(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventId")
	regs, err := c.Service.ListByEvent(r.Context(), eventID)
	if err != nil {
		writeError(w, r, c.Logger, err, failure{failed: "Failed to fetch event registrants"})
		return
	}
	name := unsafeFilename.ReplaceAllString(eventID, "")
	if name == "" {
		name = "event"
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="registrants-%s.csv"`, name))
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"name", "email", "mobile", "message", "registeredAt"})
	for _, reg := range regs {
		_ = cw.Write([]string{reg.Name, reg.Email, reg.Mobile, reg.Message, reg.RegisteredAt.UTC().Format(time.RFC3339)})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		c.Logger.ErrorContext(r.Context(), "csv export interrupted", "event_id", eventID, "err", err)
	}
}
