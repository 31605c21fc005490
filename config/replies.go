package config

// ReplyTexts contains the fixed replies the bot sends when a matcher
// short-circuits or a collaborator call fails. Every degraded path in the
// router ends in one of these, never in a raw error.
type ReplyTexts struct {
	// Deescalation is sent when the abuse filter matches. Nothing else runs.
	Deescalation string

	// NoOrdersFound is sent when an order lookup succeeds but returns nothing.
	NoOrdersFound string

	// OrderLookupApology is sent when the order lookup itself fails.
	OrderLookupApology string

	// ExpertFollowUp replaces a failed AI answer on a matched topic.
	ExpertFollowUp string

	// CatchAllApology replaces a failed unrestricted AI fallback.
	CatchAllApology string
}

// DefaultReplyTexts returns the stock reply set for the TAC support bot.
func DefaultReplyTexts() ReplyTexts {
	return ReplyTexts{
		Deescalation: `We're here to help, but we can only continue this conversation respectfully. ` +
			`If something went wrong with your order or products, tell us what happened and we'll sort it out. 🙏`,

		NoOrdersFound: `No recent orders found for this number. ` +
			`Please double-check the number, or share your order ID (for example #TAC1234) and we'll look again.`,

		OrderLookupApology: `Sorry, we couldn't look up your order right now. ` +
			`Please try again in a few minutes, or share your order ID and our team will check it for you.`,

		ExpertFollowUp: `Thanks for your question! 🌿 Our Ayurvedic expert will follow up with a detailed answer shortly.`,

		CatchAllApology: `⚠️ Sorry, I couldn't understand that. I can help with our products, ` +
			`your orders (just send the phone number used at checkout), or booking an Ayurvedic consultation.`,
	}
}

// GeminiSystemInstruction restricts AI answers to the brand's domain when a
// topic keyword matched. Taken from the production prompt.
const GeminiSystemInstruction = `You are an Ayurvedic expert at The Ayurveda Co. (TACX), trained to answer only queries related to Ayurveda x Science.
- Keep answers under 7 lines.
- Always include an Ayurvedic product recommendation (name + short benefit).
- If the question is about wellness, skin, hair, herbs or body type, answer smartly.
- Avoid price or shopping queries directly, but you can mention benefits of products.
Respond like a friendly, knowledgeable Ayurvedic assistant in a conversational tone with emoji.`

// QuizScript contains the prompts and terminal recommendations for the
// discovery quiz. The state machine in services/quiz.go walks these texts.
type QuizScript struct {
	// Intro is sent when a start phrase enters the quiz.
	Intro string

	// SkinPrompt is sent when the user picks the skin track.
	SkinPrompt string

	// SkinRecommendations maps the skin-track options 1-4 to a final answer.
	SkinRecommendations [4]string

	// HairRecommendation ends the quiz for the hair track.
	HairRecommendation string

	// WellnessRecommendation ends the quiz for the wellness track.
	WellnessRecommendation string

	// ConsultationRecommendation ends the quiz for the consultation track.
	ConsultationRecommendation string
}

// DefaultQuizScript returns the stock discovery quiz.
func DefaultQuizScript() QuizScript {
	return QuizScript{
		Intro: `🌿 Welcome to the TAC Discovery Quiz! What would you like help with?
1. Skin care
2. Hair care
3. Daily wellness
4. Book a consultation
Reply with a number (1-4).`,

		SkinPrompt: `Great choice! ✨ What best describes your skin?
1. Dry or flaky
2. Oily or acne-prone
3. Sensitive, easily irritated
4. Dull, uneven tone
Reply with a number (1-4).`,

		SkinRecommendations: [4]string{
			`Dry skin usually points to a Vata imbalance. 🌾 Try our Kumkumadi Face Oil — deep nourishment that restores the skin barrier overnight.`,
			`Oily, breakout-prone skin is classic Pitta. 🔥 Our Neem & Tea Tree Face Wash keeps oil in check without stripping the skin.`,
			`Sensitive skin needs calming herbs. 🌸 Go for our Rose & Aloe Soothing Gel — cooling, fragrance-light and gentle enough for daily use.`,
			`For dull skin, gentle exfoliation works best. ✨ Our Ubtan Face Mask with turmeric and sandalwood brings back the natural glow in 2-3 uses a week.`,
		},

		HairRecommendation: `For stronger, healthier hair try our Bhringraj Hair Oil 🌿 — massage twice a week to reduce hair fall and support new growth. Pair it with the Amla Shikakai Shampoo for best results.`,

		WellnessRecommendation: `Start your day the Ayurvedic way 🌞 — our Ashwagandha Tablets support calm energy and better sleep. One tablet after breakfast is all it takes.`,

		ConsultationRecommendation: `Our Ayurvedic doctors offer free 15-minute consultations. 👩‍⚕️ Book a slot at https://theayurvedaco.com/pages/consultation and we'll take it from there.`,
	}
}
