package controllers

import (
	"log/slog"
	"net/http"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
)

// FeedbackRequest is the request body for POST /api/feedback.
type FeedbackRequest struct {
	Name    string `json:"name"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type FeedbackController struct {
	Logger  *slog.Logger
	Service domain.FeedbackService
}

func NewFeedbackController(logger *slog.Logger, svc domain.FeedbackService) *FeedbackController {
	return &FeedbackController{
		Logger:  logger,
		Service: svc,
	}
}

// Submit godoc
// @Summary Submit feedback
// @Description New feedback is hidden until an admin verifies it.
// @Tags feedback
// @Accept json
// @Produce json
// @Param feedback body FeedbackRequest true "Feedback"
// @Success 201 {object} helpers.MessageResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/feedback [post]
func (c *FeedbackController) Submit(w http.ResponseWriter, r *http.Request) {
	const failed = "Failed to submit feedback"
	var req FeedbackRequest
	if !helpers.DecodeAndValidate(w, r, &req, failed) {
		return
	}
	_, err := c.Service.Submit(r.Context(), &domain.Feedback{Name: req.Name, Rating: req.Rating, Comment: req.Comment})
	if err != nil {
		writeError(w, r, c.Logger, err, failure{failed: failed})
		return
	}
	helpers.WriteMessage(w, http.StatusCreated, "Feedback submitted successfully")
}

// ListVerified godoc
// @Summary List verified feedback
// @Tags feedback
// @Produce json
// @Success 200 {array} domain.Feedback
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/feedback/verified [get]
func (c *FeedbackController) ListVerified(w http.ResponseWriter, r *http.Request) {
	list, err := c.Service.ListVerified(r.Context())
	if err != nil {
		writeError(w, r, c.Logger, err, failure{failed: "Failed to fetch verified feedback"})
		return
	}
	writeFeedback(w, list)
}

// ListAll godoc
// @Summary List all feedback
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Feedback
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/feedback/admin [get]
func (c *FeedbackController) ListAll(w http.ResponseWriter, r *http.Request) {
	list, err := c.Service.ListAll(r.Context())
	if err != nil {
		writeError(w, r, c.Logger, err, failure{failed: "Failed to fetch feedback"})
		return
	}
	writeFeedback(w, list)
}

// Verify godoc
// @Summary Verify feedback
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param id path string true "Feedback ID"
// @Success 200 {object} helpers.MessageResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/feedback/verify/{id} [patch]
func (c *FeedbackController) Verify(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.Verify(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, c.Logger, err, failure{notFound: "Feedback not found", failed: "Failed to verify feedback"})
		return
	}
	helpers.WriteMessage(w, http.StatusOK, "Feedback verified")
}

// Delete godoc
// @Summary Delete feedback
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param id path string true "Feedback ID"
// @Success 200 {object} helpers.MessageResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/feedback/{id} [delete]
func (c *FeedbackController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, c.Logger, err, failure{notFound: "Feedback not found", failed: "Failed to delete feedback"})
		return
	}
	helpers.WriteMessage(w, http.StatusOK, "Feedback deleted")
}

func writeFeedback(w http.ResponseWriter, list []*domain.Feedback) {
	if list == nil {
		list = []*domain.Feedback{}
	}
	helpers.WriteJSON(w, http.StatusOK, list)
}
