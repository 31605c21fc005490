package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	data := `{
		"faq": [
			{"category": "shipping", "keywords": ["order status"], "response": "Ships in 2-3 days."}
		],
		"topics": [
			{"name": "skin", "keywords": ["skin", "glow"], "product": {"name": "Kumkumadi Oil", "url": "https://example.com/k"}}
		],
		"abuse_terms": ["idiot"]
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	catalog := LoadCatalog(path)

	require.Len(t, catalog.FAQ, 1)
	assert.Equal(t, "shipping", catalog.FAQ[0].Category)
	require.Len(t, catalog.Topics, 1)
	require.NotNil(t, catalog.Topics[0].Product)
	assert.Equal(t, "Kumkumadi Oil", catalog.Topics[0].Product.Name)
	assert.Equal(t, []string{"idiot"}, catalog.AbuseTerms)
}

func TestLoadCatalogMissingFileDegradesToEmpty(t *testing.T) {
	catalog := LoadCatalog(filepath.Join(t.TempDir(), "does-not-exist.json"))

	assert.NotNil(t, catalog)
	assert.Empty(t, catalog.FAQ)
	assert.Empty(t, catalog.Topics)
	assert.Empty(t, catalog.AbuseTerms)
}

func TestLoadCatalogCorruptFileDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	catalog := LoadCatalog(path)

	assert.NotNil(t, catalog)
	assert.Empty(t, catalog.FAQ)
}
