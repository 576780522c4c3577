package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"health-ai-server/internal/middleware"
	"health-ai-server/internal/store"
	"health-ai-server/internal/utils"
	"health-ai-server/internal/workflow"
)

// SubmissionHandler handles the send-to-provider workflow.
type SubmissionHandler struct {
	Service *workflow.SubmissionService
	History store.HistoryStore
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(service *workflow.SubmissionService, history store.HistoryStore) *SubmissionHandler {
	return &SubmissionHandler{Service: service, History: history}
}

// SendToProviderRequest represents the request body for routing an
// assessment to a provider.
type SendToProviderRequest struct {
	ProviderID   string `json:"providerId" binding:"required"`
	AssessmentID string `json:"assessmentId" binding:"required"`
}

// SendToProvider copies one of the patient's own assessments into the
// chosen provider's inbox. Retrying the same send is safe: the submission
// is keyed by (patient, provider, assessment) and upserted.
//
// A response with success=false and HTTP 200 means the write was rejected
// transiently; the client should offer a retry rather than report failure.
func (h *SubmissionHandler) SendToProvider(c *gin.Context) {
	var req SendToProviderRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User ID not found in token")
		return
	}

	// Ownership check happens here: the lookup is scoped to the caller.
	assessment, err := h.History.Get(c.Request.Context(), patientID, req.AssessmentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "Assessment not found")
			return
		}
		utils.InternalServerError(c, "Failed to load assessment: "+err.Error())
		return
	}

	result, err := h.Service.Send(c.Request.Context(), patientID, req.ProviderID, assessment)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUnknownProvider):
			utils.NotFound(c, "Provider not found")
		case errors.Is(err, store.ErrDirectoryUnavailable):
			utils.ServiceUnavailable(c, "Provider directory is temporarily unavailable, please retry")
		default:
			utils.InternalServerError(c, "Failed to send assessment: "+err.Error())
		}
		return
	}

	utils.Success(c, "Submission processed", result)
}

// Inbox returns the authenticated provider's received submissions,
// newest-first.
func (h *SubmissionHandler) Inbox(c *gin.Context) {
	providerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User ID not found in token")
		return
	}

	limit := parseLimit(c.Query("limit"), defaultHistoryLimit, maxHistoryLimit)
	submissions, err := h.Service.Inbox(c.Request.Context(), providerID, limit)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch inbox: "+err.Error())
		return
	}

	utils.Success(c, "Inbox fetched successfully", submissions)
}
