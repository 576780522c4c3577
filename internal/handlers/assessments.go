package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"health-ai-server/internal/inference"
	"health-ai-server/internal/middleware"
	"health-ai-server/internal/store"
	"health-ai-server/internal/utils"
)

// History fetch limits. The UI pages in small chunks; the cap keeps a
// misbehaving client from pulling the whole table.
const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// AssessmentHandler handles symptom assessment and history requests.
type AssessmentHandler struct {
	Engine  *inference.Engine
	History store.HistoryStore
	Logger  *zap.Logger
}

// NewAssessmentHandler creates a new AssessmentHandler.
func NewAssessmentHandler(engine *inference.Engine, history store.HistoryStore, logger *zap.Logger) *AssessmentHandler {
	return &AssessmentHandler{Engine: engine, History: history, Logger: logger}
}

// CreateAssessmentRequest represents the request body for a new assessment.
type CreateAssessmentRequest struct {
	Symptoms []string `json:"symptoms" binding:"required,min=1"`
}

// CreateAssessment runs the inference engine over the submitted symptoms
// and appends the result to the patient's history.
func (h *AssessmentHandler) CreateAssessment(c *gin.Context) {
	var req CreateAssessmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User ID not found in token")
		return
	}

	assessment, err := h.Engine.Assess(userID, req.Symptoms)
	if err != nil {
		if errors.Is(err, inference.ErrNoSymptoms) {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.InternalServerError(c, "Failed to assess symptoms: "+err.Error())
		return
	}

	if err := h.History.Append(c.Request.Context(), assessment); err != nil {
		h.Logger.Error("failed to persist assessment",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		utils.InternalServerError(c, "Failed to save assessment")
		return
	}

	utils.Created(c, "Assessment created successfully", assessment)
}

// GetHistory returns the patient's assessments newest-first.
func (h *AssessmentHandler) GetHistory(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User ID not found in token")
		return
	}

	limit := parseLimit(c.Query("limit"), defaultHistoryLimit, maxHistoryLimit)
	assessments, err := h.History.List(c.Request.Context(), userID, limit)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch history: "+err.Error())
		return
	}

	utils.Success(c, "History fetched successfully", assessments)
}

// GetAssessmentByID returns one of the patient's own assessments. Another
// user's assessment id resolves to 404, never to the record.
func (h *AssessmentHandler) GetAssessmentByID(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User ID not found in token")
		return
	}

	assessment, err := h.History.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "Assessment not found")
			return
		}
		utils.InternalServerError(c, "Failed to fetch assessment: "+err.Error())
		return
	}

	utils.Success(c, "Assessment fetched successfully", assessment)
}

// ListSymptoms returns the symptom taxonomy for the selection screen.
func (h *AssessmentHandler) ListSymptoms(c *gin.Context) {
	utils.Success(c, "Symptoms fetched successfully", h.Engine.Taxonomy())
}

func parseLimit(raw string, fallback, max int) int {
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return fallback
	}
	if limit > max {
		return max
	}
	return limit
}
