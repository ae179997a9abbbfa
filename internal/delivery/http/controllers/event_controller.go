package controllers

import (
	"log/slog"
	"net/http"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
)

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// ListEvents godoc
// @Summary List events
// @Description Returns every event, newest first, with current seat availability.
// @Tags events
// @Produce json
// @Success 200 {array} domain.Event
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListEvents(r.Context())
	if err != nil {
		writeError(w, r, c.Logger, err, failure{failed: "Error fetching events"})
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	helpers.WriteJSON(w, http.StatusOK, events)
}

// GetEvent godoc
// @Summary Get an event
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} domain.Event
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/events/{id} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.GetEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, c.Logger, err, failure{notFound: "Event not found", failed: "Failed to fetch event"})
		return
	}
	helpers.WriteJSON(w, http.StatusOK, event)
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an event from a multipart form. leftSeats starts equal to totalSeats; any leftSeats field is ignored.
// @Tags events
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param date formData string true "Date"
// @Param time formData string true "Time"
// @Param location formData string true "Location"
// @Param totalSeats formData int true "Seat capacity"
// @Param tags formData string false "Tags"
// @Param description formData string false "Description"
// @Param highlights formData string false "Highlights"
// @Param organizer formData string false "Organizer"
// @Param banner formData file false "Banner image (jpeg, png or webp, max 2 MB)"
// @Success 201 {object} domain.Event
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	const failed = "Failed to create event"
	form, err := parseEventForm(w, r)
	if err != nil {
		writeError(w, r, c.Logger, err, failure{failed: failed})
		return
	}
	defer form.Close()
	in, err := form.input()
	if err != nil {
		writeError(w, r, c.Logger, err, failure{failed: failed})
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), in)
	if err != nil {
		writeError(w, r, c.Logger, err, failure{failed: failed})
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, event)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Partial update. When totalSeats is present, leftSeats is recomputed from the live registration count. Send removeBanner=true to clear the banner or a new banner file to replace it.
// @Tags events
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param totalSeats formData int false "Seat capacity"
// @Param removeBanner formData bool false "Remove the current banner"
// @Param banner formData file false "Replacement banner image"
// @Success 200 {object} domain.Event
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/events/{id} [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	f := failure{notFound: "Event not found", failed: "Failed to update event"}
	form, err := parseEventForm(w, r)
	if err != nil {
		writeError(w, r, c.Logger, err, f)
		return
	}
	defer form.Close()
	event, err := c.Service.UpdateEvent(r.Context(), r.PathValue("id"), form.edit())
	if err != nil {
		writeError(w, r, c.Logger, err, f)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes the event and its banner. Registrations of the event are kept.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} helpers.MessageResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/events/{id} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.DeleteEvent(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, c.Logger, err, failure{notFound: "Event not found", failed: "Failed to delete event"})
		return
	}
	helpers.WriteMessage(w, http.StatusOK, "Event and banner deleted successfully")
}
