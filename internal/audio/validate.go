package audio

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxTextLen caps a single synthesis request. The free Google endpoint
// rejects longer inputs, and no dictation item should come close.
const maxTextLen = 200

// ValidateText validates the input text before it is sent to a
// synthesis backend.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text cannot be empty")
	}

	if n := utf8.RuneCountInString(text); n > maxTextLen {
		return fmt.Errorf("text too long: %d characters (max %d)", n, maxTextLen)
	}

	return nil
}
