package services

import (
	"strings"

	"whatsapp-bot/config"
	"whatsapp-bot/models"
)

// quizStartPhrases enter the quiz when a whole (normalized) message equals
// one of them.
var quizStartPhrases = map[string]bool{
	"start quiz": true,
	"quiz":       true,
	"start":      true,
	"1":          true,
}

// Quiz is the multi-step discovery quiz state machine. It is a pure function
// of (stage, normalized input); session bookkeeping is the router's job.
type Quiz struct {
	script config.QuizScript
}

func NewQuiz(script config.QuizScript) *Quiz {
	return &Quiz{script: script}
}

// Normalize lower-cases a message, strips punctuation and trims whitespace,
// matching how quiz answers and start phrases are compared.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if strings.ContainsRune(`!"#$%&'()*+,-./:;<=>?@[\]^_`+"`"+`{|}~`, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// IsStartPhrase reports whether a normalized message enters the quiz.
func (q *Quiz) IsStartPhrase(normalized string) bool {
	return quizStartPhrases[normalized]
}

// Intro is the first quiz prompt.
func (q *Quiz) Intro() string {
	return q.script.Intro
}

// Step advances the quiz by one message. An answer outside the stage's
// options re-prompts the same stage; terminal answers return StageNone
// together with the final recommendation.
func (q *Quiz) Step(stage models.QuizStage, normalized string) (models.QuizStage, string) {
	switch stage {
	case models.StageQuizStarted:
		switch normalized {
		case "1":
			return models.StageQuizSkin, q.script.SkinPrompt
		case "2":
			return models.StageNone, q.script.HairRecommendation
		case "3":
			return models.StageNone, q.script.WellnessRecommendation
		case "4":
			return models.StageNone, q.script.ConsultationRecommendation
		default:
			return models.StageQuizStarted, q.script.Intro
		}

	case models.StageQuizSkin:
		switch normalized {
		case "1", "2", "3", "4":
			idx := int(normalized[0] - '1')
			return models.StageNone, q.script.SkinRecommendations[idx]
		default:
			return models.StageQuizSkin, q.script.SkinPrompt
		}
	}

	// Not mid-quiz: nothing to do. The router handles start phrases.
	return models.StageNone, ""
}
