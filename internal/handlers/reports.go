package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"health-ai-server/internal/middleware"
	"health-ai-server/internal/report"
	"health-ai-server/internal/store"
	"health-ai-server/internal/utils"
)

// reportLimit caps how much history one export pulls.
const reportLimit = 500

// ReportHandler renders assessment history as downloadable artifacts.
// Sharing/transport of the files is the client's concern; this subsystem
// only produces them.
type ReportHandler struct {
	History store.HistoryStore
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(history store.HistoryStore) *ReportHandler {
	return &ReportHandler{History: history}
}

// ExportCSV streams the patient's history as the flat delimited report.
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User ID not found in token")
		return
	}

	assessments, err := h.History.List(c.Request.Context(), userID, reportLimit)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch history: "+err.Error())
		return
	}

	rows := report.BuildRows(c.Query("patientName"), assessments)

	c.Header("Content-Disposition", `attachment; filename="assessments.csv"`)
	c.Header("Content-Type", "text/csv")
	c.Status(http.StatusOK)
	if err := report.WriteCSV(c.Writer, rows); err != nil {
		// Headers are out; all we can do is log through gin's error list.
		_ = c.Error(err)
	}
}

// ExportXLSX streams the history workbook with the summary sheet.
func (h *ReportHandler) ExportXLSX(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User ID not found in token")
		return
	}

	assessments, err := h.History.List(c.Request.Context(), userID, reportLimit)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch history: "+err.Error())
		return
	}

	rows := report.BuildRows(c.Query("patientName"), assessments)
	summary := report.Summarize(assessments)

	c.Header("Content-Disposition", `attachment; filename="assessments.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)
	if err := report.WriteXLSX(c.Writer, rows, summary); err != nil {
		_ = c.Error(err)
	}
}
