package imagegen

import "strings"

const (
	// SafetyInstruction is appended to every prompt sent to the provider.
	SafetyInstruction = "Preserve the subject's facial identity and proportions; do not alter face shape, skin tone, or key features."

	// DefaultPrompt replaces an empty user prompt.
	DefaultPrompt = "Create a bold, playful variation of this photo."
)

// BuildPrompt derives the final prompt from the user's input.
// A non-empty prompt gets the safety clause as its own paragraph. An empty
// prompt becomes fallback, or DefaultPrompt followed by the safety clause when
// fallback is empty.
func BuildPrompt(prompt, fallback string) string {
	userPrompt := strings.TrimSpace(prompt)
	if userPrompt != "" {
		return userPrompt + "\n\n" + SafetyInstruction
	}
	if fallback = strings.TrimSpace(fallback); fallback != "" {
		return fallback
	}
	return DefaultPrompt + " " + SafetyInstruction
}
