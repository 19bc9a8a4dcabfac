// Package export produces the downloadable account backup.
package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/quietpage/quietpage/internal/models"
)

// Build assembles the export document for one account: profile (without the
// password), every private page, and the published story records.
func Build(user models.User, pages []models.Page, stories []models.PublishedStory) models.ExportDocument {
	if pages == nil {
		pages = []models.Page{}
	}
	if stories == nil {
		stories = []models.PublishedStory{}
	}
	return models.ExportDocument{
		User: models.ExportUser{
			Name:      user.Name,
			Email:     user.Email,
			Bio:       user.Bio,
			CreatedAt: user.CreatedAt,
		},
		Stories:          pages,
		PublishedStories: stories,
	}
}

// WriteFile writes the document as indented JSON to path.
func WriteFile(path string, doc models.ExportDocument) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}
