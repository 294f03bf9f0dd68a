// Package validate enforces length bounds on user input and generated post
// content. Results are structured rather than errors so callers can surface
// the character count (for "N/max" displays) even when validation fails.
package validate

import (
	"fmt"
	"unicode/utf8"
)

const (
	// MaxUserInputLength is the ceiling for free-text request fields.
	MaxUserInputLength = 500

	// MaxPostLength is the ceiling for generated post content.
	MaxPostLength = 1300
)

// Result is the outcome of one validation call. CharacterCount is always the
// raw rune count of the checked string, never clamped to the ceiling.
type Result struct {
	IsValid        bool   `json:"isValid"`
	Error          string `json:"error,omitempty"`
	CharacterCount int    `json:"characterCount"`
}

// UserInput checks a free-text request field against MaxUserInputLength.
func UserInput(input string) Result {
	return checkLength(input, MaxUserInputLength,
		"Input cannot be empty",
		fmt.Sprintf("Input cannot exceed %d characters", MaxUserInputLength))
}

// PostContent checks generated post content against MaxPostLength.
func PostContent(content string) Result {
	return checkLength(content, MaxPostLength,
		"Post content cannot be empty",
		fmt.Sprintf("Post cannot exceed %d characters", MaxPostLength))
}

func checkLength(s string, max int, emptyMsg, overMsg string) Result {
	count := utf8.RuneCountInString(s)

	if count == 0 {
		return Result{IsValid: false, Error: emptyMsg, CharacterCount: 0}
	}
	if count > max {
		return Result{IsValid: false, Error: overMsg, CharacterCount: count}
	}
	return Result{IsValid: true, CharacterCount: count}
}

// CharacterCountDisplay formats a count for a "current/max" indicator.
func CharacterCountDisplay(current, max int) string {
	return fmt.Sprintf("%d/%d", current, max)
}

// IsCharacterLimitExceeded reports whether current is past max.
func IsCharacterLimitExceeded(current, max int) bool {
	return current > max
}
