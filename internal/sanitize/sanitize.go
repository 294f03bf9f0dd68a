// Package sanitize guards free-text user input that ends up inside an AI
// prompt. It strips known prompt-injection markers, restricts the character
// set, and bounds the length, while preserving the semantic content.
package sanitize

import (
	"regexp"
	"strings"
)

// MaxInputLength is the rune ceiling applied as the final pipeline step.
const MaxInputLength = 500

// Pre-compiled regular expressions. The allowed-set class keeps word
// characters, whitespace, and basic punctuation; everything else — including
// quotes, angle brackets, semicolons, and colons — is removed, which is what
// neutralizes <script> tags and SQL fragment syntax.
var (
	reDisallowed = regexp.MustCompile(`[^\w\s.,!?_()\[\]{}-]`)

	reDropTable = regexp.MustCompile(`(?i)DROP TABLE`)
	reSystem    = regexp.MustCompile(`(?i)System:`)
	reAssistant = regexp.MustCompile(`(?i)Assistant:`)
)

// Text sanitizes one free-text field. The pipeline order matters: markers are
// removed before the character filter (a fence split by filtering could
// otherwise survive), and truncation runs last so removals never reopen
// headroom past the ceiling.
//
//  1. Remove triple-backtick code-fence markers
//  2. Remove literal "System:" labels
//  3. Remove literal "Assistant:" labels
//  4. Remove every rune outside \w, \s, and . , ! ? _ ( ) [ ] { } -
//  5. Truncate to MaxInputLength runes
//
// Never errors; any input, including "", yields a string of at most
// MaxInputLength runes.
func Text(input string) string {
	s := strings.ReplaceAll(input, "```", "")
	s = strings.ReplaceAll(s, "System:", "")
	s = strings.ReplaceAll(s, "Assistant:", "")
	s = reDisallowed.ReplaceAllString(s, "")
	return truncate(s, MaxInputLength)
}

// StripModelKeywords removes, case-insensitively, keyword sequences that a
// model could echo back into generated output: "DROP TABLE", "System:",
// "Assistant:". The AI route applies it on top of Text to both the request
// fields and the generated post.
func StripModelKeywords(input string) string {
	s := reDropTable.ReplaceAllString(input, "")
	s = reSystem.ReplaceAllString(s, "")
	return reAssistant.ReplaceAllString(s, "")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
