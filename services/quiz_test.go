package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"whatsapp-bot/config"
	"whatsapp-bot/models"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Start Quiz!", "start quiz"},
		{"  QUIZ  ", "quiz"},
		{"1.", "1"},
		{"hello, there?", "hello there"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in))
	}
}

func TestQuizStartPhrases(t *testing.T) {
	quiz := NewQuiz(config.DefaultQuizScript())

	for _, phrase := range []string{"start quiz", "quiz", "start", "1"} {
		assert.True(t, quiz.IsStartPhrase(phrase), phrase)
	}
	assert.False(t, quiz.IsStartPhrase("2"))
	assert.False(t, quiz.IsStartPhrase("start the quiz now"))
}

func TestQuizStep(t *testing.T) {
	script := config.DefaultQuizScript()
	quiz := NewQuiz(script)

	t.Run("skin track advances", func(t *testing.T) {
		stage, reply := quiz.Step(models.StageQuizStarted, "1")
		assert.Equal(t, models.StageQuizSkin, stage)
		assert.Equal(t, script.SkinPrompt, reply)
	})

	t.Run("hair track is terminal", func(t *testing.T) {
		stage, reply := quiz.Step(models.StageQuizStarted, "2")
		assert.Equal(t, models.StageNone, stage)
		assert.Equal(t, script.HairRecommendation, reply)
	})

	t.Run("wellness and consultation are terminal", func(t *testing.T) {
		stage, reply := quiz.Step(models.StageQuizStarted, "3")
		assert.Equal(t, models.StageNone, stage)
		assert.Equal(t, script.WellnessRecommendation, reply)

		stage, reply = quiz.Step(models.StageQuizStarted, "4")
		assert.Equal(t, models.StageNone, stage)
		assert.Equal(t, script.ConsultationRecommendation, reply)
	})

	t.Run("invalid answer re-prompts without advancing", func(t *testing.T) {
		stage, reply := quiz.Step(models.StageQuizStarted, "banana")
		assert.Equal(t, models.StageQuizStarted, stage)
		assert.Equal(t, script.Intro, reply)

		stage, reply = quiz.Step(models.StageQuizSkin, "7")
		assert.Equal(t, models.StageQuizSkin, stage)
		assert.Equal(t, script.SkinPrompt, reply)
	})

	t.Run("skin answers are terminal", func(t *testing.T) {
		for i, answer := range []string{"1", "2", "3", "4"} {
			stage, reply := quiz.Step(models.StageQuizSkin, answer)
			assert.Equal(t, models.StageNone, stage)
			assert.Equal(t, script.SkinRecommendations[i], reply)
		}
	})

	t.Run("transitions are deterministic", func(t *testing.T) {
		s1, r1 := quiz.Step(models.StageQuizStarted, "1")
		s2, r2 := quiz.Step(models.StageQuizStarted, "1")
		assert.Equal(t, s1, s2)
		assert.Equal(t, r1, r2)
	})
}
