package controllers

import (
	"log/slog"
	"net/http"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
)

// ContactRequest is the request body for POST /api/contact.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Mobile  string `json:"mobile"`
	Message string `json:"message"`
}

type ContactController struct {
	Logger  *slog.Logger
	Service domain.ContactService
}

func NewContactController(logger *slog.Logger, svc domain.ContactService) *ContactController {
	return &ContactController{
		Logger:  logger,
		Service: svc,
	}
}

// Submit godoc
// @Summary Submit the contact form
// @Tags contact
// @Accept json
// @Produce json
// @Param message body ContactRequest true "Contact message"
// @Success 201 {object} domain.ContactMessage
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/contact [post]
func (c *ContactController) Submit(w http.ResponseWriter, r *http.Request) {
	const failed = "Failed to submit contact form"
	var req ContactRequest
	if !helpers.DecodeAndValidate(w, r, &req, failed) {
		return
	}
	msg, err := c.Service.Submit(r.Context(), &domain.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Mobile:  req.Mobile,
		Message: req.Message,
	})
	if err != nil {
		writeError(w, r, c.Logger, err, failure{failed: failed})
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, msg)
}

// List godoc
// @Summary List contact messages
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.ContactMessage
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/contact [get]
func (c *ContactController) List(w http.ResponseWriter, r *http.Request) {
	msgs, err := c.Service.List(r.Context())
	if err != nil {
		writeError(w, r, c.Logger, err, failure{failed: "Failed to fetch messages"})
		return
	}
	if msgs == nil {
		msgs = []*domain.ContactMessage{}
	}
	helpers.WriteJSON(w, http.StatusOK, msgs)
}

// MarkRead godoc
// @Summary Mark a contact message as read
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Param id path string true "Message ID"
// @Success 200 {object} domain.ContactMessage
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/contact/{id}/read [patch]
func (c *ContactController) MarkRead(w http.ResponseWriter, r *http.Request) {
	msg, err := c.Service.MarkRead(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, c.Logger, err, failure{notFound: "Message not found", failed: "Failed to mark as read"})
		return
	}
	helpers.WriteJSON(w, http.StatusOK, msg)
}

// Delete godoc
// @Summary Delete a contact message
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Param id path string true "Message ID"
// @Success 200 {object} helpers.MessageResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/contact/{id} [delete]
func (c *ContactController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, c.Logger, err, failure{notFound: "Message not found", failed: "Failed to delete message"})
		return
	}
	helpers.WriteMessage(w, http.StatusOK, "Message deleted")
}
