package workflow

import (
	"context"
	"strings"

	"health-ai-server/internal/models"
	"health-ai-server/internal/store"
)

// DirectoryService fronts the provider directory for patient-initiated
// search. The directory itself only lists; the substring filter is applied
// here, on the consuming side.
type DirectoryService struct {
	directory store.ProviderDirectory
}

// NewDirectoryService wires the provider search.
func NewDirectoryService(directory store.ProviderDirectory) *DirectoryService {
	return &DirectoryService{directory: directory}
}

// Search returns providers whose name or email contains the query,
// case-insensitively. An empty query returns the full directory. A fetch
// failure surfaces store.ErrDirectoryUnavailable; an empty directory is a
// successful empty result.
func (s *DirectoryService) Search(ctx context.Context, query string) ([]models.Provider, error) {
	providers, err := s.directory.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return FilterProviders(providers, query), nil
}

// FilterProviders applies the case-insensitive substring match over name
// and email.
func FilterProviders(providers []models.Provider, query string) []models.Provider {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return providers
	}
	out := make([]models.Provider, 0, len(providers))
	for _, p := range providers {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Email), query) {
			out = append(out, p)
		}
	}
	return out
}
