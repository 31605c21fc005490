package config

import (
	"encoding/json"
	"log/slog"
	"os"

	"whatsapp-bot/models"
)

// LoadCatalog reads the static matching tables from a JSON file. A missing
// or unreadable file is not fatal: the bot keeps serving with empty tables,
// every matcher simply reports no match.
func LoadCatalog(path string) *models.Catalog {
	catalog := &models.Catalog{}

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("Catalog file not loaded, serving with empty tables", "path", path, "error", err)
		return catalog
	}

	if err := json.Unmarshal(data, catalog); err != nil {
		slog.Error("Failed to parse catalog file, serving with empty tables", "path", path, "error", err)
		return &models.Catalog{}
	}

	slog.Info("Catalog loaded",
		"path", path,
		"faqEntries", len(catalog.FAQ),
		"topics", len(catalog.Topics),
		"abuseTerms", len(catalog.AbuseTerms),
	)
	return catalog
}
