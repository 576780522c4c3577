package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"health-ai-server/internal/middleware"
	"health-ai-server/internal/utils"
	"health-ai-server/internal/workflow"
)

// FeedbackHandler handles the provider feedback loop.
type FeedbackHandler struct {
	Service *workflow.FeedbackService
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(service *workflow.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{Service: service}
}

// SaveFeedbackRequest represents the request body for provider feedback.
// InsightID is optional; ad-hoc feedback is stored without a link. Rating
// is clamped into [1,5], never rejected for being out of range.
type SaveFeedbackRequest struct {
	PatientID string `json:"patientId" binding:"required"`
	InsightID string `json:"insightId"`
	Text      string `json:"text" binding:"required"`
	Rating    *int   `json:"rating"`
}

// SaveFeedback records a provider's reply to a patient.
func (h *FeedbackHandler) SaveFeedback(c *gin.Context) {
	var req SaveFeedbackRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	providerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User ID not found in token")
		return
	}

	entry, err := h.Service.Save(c.Request.Context(), workflow.FeedbackInput{
		ProviderID: providerID,
		PatientID:  req.PatientID,
		InsightID:  req.InsightID,
		Text:       req.Text,
		Rating:     req.Rating,
	})
	if err != nil {
		if errors.Is(err, workflow.ErrEmptyFeedback) {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.InternalServerError(c, "Failed to save feedback: "+err.Error())
		return
	}

	utils.Created(c, "Feedback saved successfully", entry)
}

// ListFeedback returns feedback addressed to the authenticated patient,
// newest-first. Unlinked entries carry an empty insightId and render
// generically on the client.
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User ID not found in token")
		return
	}

	entries, err := h.Service.ForPatient(c.Request.Context(), patientID)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch feedback: "+err.Error())
		return
	}

	utils.Success(c, "Feedback fetched successfully", entries)
}
