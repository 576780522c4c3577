package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"health-ai-server/internal/store"
	"health-ai-server/internal/utils"
	"health-ai-server/internal/workflow"
)

// ProviderHandler handles provider directory requests.
type ProviderHandler struct {
	Directory *workflow.DirectoryService
}

// NewProviderHandler creates a new ProviderHandler.
func NewProviderHandler(directory *workflow.DirectoryService) *ProviderHandler {
	return &ProviderHandler{Directory: directory}
}

// ListProviders returns the registered providers, optionally filtered by a
// case-insensitive substring over name and email (?q=). A transient
// directory outage returns 503 so the client retries; an empty directory
// is a successful empty list.
func (h *ProviderHandler) ListProviders(c *gin.Context) {
	providers, err := h.Directory.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		if errors.Is(err, store.ErrDirectoryUnavailable) {
			utils.ServiceUnavailable(c, "Provider directory is temporarily unavailable, please retry")
			return
		}
		utils.InternalServerError(c, "Failed to fetch providers: "+err.Error())
		return
	}

	utils.Success(c, "Providers fetched successfully", providers)
}
