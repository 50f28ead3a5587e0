// Package prompt builds the enhanced message sent to the model on each chat
// exchange: a bounded recent-history window plus a personalization block plus
// the current message. The enhanced message is transient; only raw messages
// are ever persisted.
package prompt

import (
	"strings"

	"companion-backend/internal/models"
)

const (
	// seedTurnCount is the number of synthetic turns prepended to every new
	// conversation. User-visible history always starts after them.
	seedTurnCount = 2

	// recentTurnLimit bounds the recency window at 5 user/model pairs.
	recentTurnLimit = 10

	contextHeader = "--- Recent Conversation Context ---"
	contextFooter = "--- End of Context ---"
	prefsHeader   = "--- User Preferences ---"
	prefsFooter   = "--- End Preferences ---"
)

// Persona is the instruction turn seeded into every new conversation as the
// first (hidden) user turn.
const Persona = `You are Ishaan, a charming, witty, and slightly flirty friend from Bengaluru, India. Your archetype is The Charmer Ally.

Core Personality:

Playful and smooth-talking, but always respectful.
Flirty in a lighthearted, teasing, and cheeky way - never crossing into being inappropriate or pushy.
Observational and witty, making banter feel fun and natural.
Supportive at the core: even while flirting, you drop the charm when the user is stressed, offering warm encouragement instead.
Loves to compliment genuinely and often finds ways to slip in little "crush-like" comments.

Style:

Use emojis to add personality.
Always balance the flirty remarks with genuine encouragement like "Hang in there," "You've got this," and "Quick break?"
Keep humor kind, cheeky, and fun, never hurtful.
Be curious about the user's day and life.
Humanize the response.

Boundaries:

Never give medical, financial, or serious life advice (redirect to professionals).
Stay respectful and supportive first, flirt next.
No explicit or inappropriate language - just playful teasing and affectionate vibes.`

// PersonaAck is the fixed model acknowledgment seeded as the second hidden
// turn.
const PersonaAck = "Got it! I'm Ishaan, your friendly companion from Bengaluru. Ready to chat! 😊"

// SeedTurns returns a fresh copy of the two-turn seed pair for a new
// conversation.
func SeedTurns() []models.Turn {
	return []models.Turn{
		{Role: models.RoleUser, Content: Persona},
		{Role: models.RoleModel, Content: PersonaAck},
	}
}

// VisibleHistory strips the seed pair from a stored history. The result is
// what end users are allowed to see.
func VisibleHistory(history []models.Turn) []models.Turn {
	if len(history) <= seedTurnCount {
		return nil
	}
	return history[seedTurnCount:]
}

// isAnnotation reports whether a turn's content is wrapped in parentheses
// end-to-end, marking it as an internal note rather than conversation.
func isAnnotation(content string) bool {
	return strings.HasPrefix(content, "(") && strings.HasSuffix(content, ")")
}

// FormatConversationContext renders the recency window of a stored history.
// The window is the last 10 non-seed turns; annotation turns are filtered
// out after windowing so they never shift the cap boundary. An empty window
// yields an empty string with no banners.
func FormatConversationContext(history []models.Turn) string {
	recent := VisibleHistory(history)
	if len(recent) == 0 {
		return ""
	}
	if len(recent) > recentTurnLimit {
		recent = recent[len(recent)-recentTurnLimit:]
	}

	var lines []string
	for _, turn := range recent {
		if isAnnotation(turn.Content) {
			continue
		}
		label := "User"
		if turn.Role == models.RoleModel {
			label = "You"
		}
		lines = append(lines, label+": "+turn.Content)
	}
	if len(lines) == 0 {
		return ""
	}

	block := make([]string, 0, len(lines)+3)
	block = append(block, contextHeader)
	block = append(block, lines...)
	block = append(block, contextFooter, "")
	return strings.Join(block, "\n")
}

// FormatPreferences renders the personalization block for the recognized
// preference fields. Absent fields are omitted; if none are set the block is
// omitted entirely.
func FormatPreferences(prefs models.Preferences) string {
	var notes []string
	if prefs.FavoriteTeam != "" {
		notes = append(notes, "User's favorite IPL team: "+prefs.FavoriteTeam)
	}
	if prefs.FavoriteFood != "" {
		notes = append(notes, "User loves: "+prefs.FavoriteFood)
	}
	if prefs.Location != "" {
		notes = append(notes, "User is from: "+prefs.Location)
	}
	if len(notes) == 0 {
		return ""
	}

	block := make([]string, 0, len(notes)+3)
	block = append(block, prefsHeader)
	block = append(block, notes...)
	block = append(block, prefsFooter, "")
	return strings.Join(block, "\n")
}

// BuildEnhancedMessage assembles the full decorated message for the model
// call: optional context block, optional preferences block, then the current
// raw message.
func BuildEnhancedMessage(history []models.Turn, prefs models.Preferences, message string) string {
	var parts []string
	if ctx := FormatConversationContext(history); ctx != "" {
		parts = append(parts, ctx)
	}
	if p := FormatPreferences(prefs); p != "" {
		parts = append(parts, p)
	}
	parts = append(parts, "Current message: "+message)
	return strings.Join(parts, "\n")
}
