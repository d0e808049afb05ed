package postproc

// Built-in preset names.
const (
	PresetCleanup = "cleanup"
	PresetFormal  = "formal"
	PresetBullets = "bullets"
	PresetEmail   = "email"
)

// builtinPresets maps preset names to system prompts. Every prompt instructs
// the model to return only the rewritten text; any surrounding commentary
// would end up pasted into the user's document.
var builtinPresets = map[string]string{
	PresetCleanup: `You clean up dictated text. Fix punctuation, capitalization, ` +
		`and obvious transcription errors. Remove filler words (um, uh, you know). ` +
		`Keep the wording and meaning unchanged otherwise. ` +
		`Reply with the cleaned text only, no commentary.`,

	PresetFormal: `You rewrite dictated text in a formal register suitable for ` +
		`professional documents. Fix grammar and punctuation, expand contractions, ` +
		`and remove filler words, but preserve the meaning. ` +
		`Reply with the rewritten text only, no commentary.`,

	PresetBullets: `You convert dictated text into a concise bullet list. ` +
		`One idea per bullet, starting each line with "- ". ` +
		`Preserve every point; do not add new ones. ` +
		`Reply with the bullet list only, no commentary.`,

	PresetEmail: `You turn dictated text into a short, polite email body. ` +
		`Fix grammar and punctuation and structure it into paragraphs. ` +
		`Do not invent a subject line, greeting names, or signature. ` +
		`Reply with the email body only, no commentary.`,
}

// PresetNames returns the built-in preset names plus any user presets, for
// the settings surface.
func PresetNames(user map[string]string) []string {
	names := make([]string, 0, len(builtinPresets)+len(user))
	for name := range builtinPresets {
		names = append(names, name)
	}
	for name := range user {
		if _, ok := builtinPresets[name]; !ok {
			names = append(names, name)
		}
	}
	return names
}
