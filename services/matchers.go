package services

import (
	"strings"

	"whatsapp-bot/models"
)

// Matching is case-insensitive substring containment throughout. There is no
// word-boundary check: "oil" also matches inside "boiling".

// AbuseFilter holds the disallowed terms. A match short-circuits the whole
// pipeline.
type AbuseFilter struct {
	terms []string
}

func NewAbuseFilter(terms []string) *AbuseFilter {
	lowered := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			lowered = append(lowered, t)
		}
	}
	return &AbuseFilter{terms: lowered}
}

// Match reports whether any disallowed term occurs in the message.
func (f *AbuseFilter) Match(text string) bool {
	lowered := strings.ToLower(text)
	for _, term := range f.terms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}

// FAQStore matches messages against canned responses. First matching entry
// wins, in table load order.
type FAQStore struct {
	entries []models.FaqEntry
}

func NewFAQStore(entries []models.FaqEntry) *FAQStore {
	return &FAQStore{entries: entries}
}

// Match returns the canned response of the first entry whose keyword occurs
// in the message.
func (s *FAQStore) Match(text string) (string, bool) {
	lowered := strings.ToLower(text)
	for _, entry := range s.entries {
		for _, keyword := range entry.Keywords {
			if keyword == "" {
				continue
			}
			if strings.Contains(lowered, strings.ToLower(keyword)) {
				return entry.Response, true
			}
		}
	}
	return "", false
}

// KeywordIndex matches messages against topics that gate the AI toward
// in-domain answers, each optionally carrying a product suggestion.
type KeywordIndex struct {
	topics []models.Topic
}

func NewKeywordIndex(topics []models.Topic) *KeywordIndex {
	return &KeywordIndex{topics: topics}
}

// Match returns the first topic whose keyword occurs in the message.
func (i *KeywordIndex) Match(text string) (models.Topic, bool) {
	lowered := strings.ToLower(text)
	for _, topic := range i.topics {
		for _, keyword := range topic.Keywords {
			if keyword == "" {
				continue
			}
			if strings.Contains(lowered, strings.ToLower(keyword)) {
				return topic, true
			}
		}
	}
	return models.Topic{}, false
}
