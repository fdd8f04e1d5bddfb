package protocol

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
)

var (
	// DefaultMaxInputSize is the byte limit applied before sanitizing. Zero disables it.
	DefaultMaxInputSize = 0
	// EnvMaxInputSize is the environment variable to override the default
	EnvMaxInputSize = "MYSTEM_MAX_INPUT_SIZE"
)

var ErrInputTooLarge = errors.New("input exceeds maximum allowed size")

// Sanitize turns arbitrary text into a single protocol-safe request line.
// Leading and trailing whitespace is trimmed, then every rune that is neither
// alphabetic nor a plain space is removed. Punctuation, digits, control
// characters and embedded newlines are all dropped.
func Sanitize(text string) string {
	text = strings.TrimSpace(text)

	// Fast path: nothing to strip.
	clean := true
	for _, r := range text {
		if !keep(r) {
			clean = false
			break
		}
	}
	if clean {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if keep(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SanitizeLimited applies the size limit from limit (or the environment when
// limit is zero) before calling Sanitize.
func SanitizeLimited(text string, limit int) (string, error) {
	if limit == 0 {
		limit = maxInputSize()
	}
	if limit > 0 && len(text) > limit {
		// Reject rather than truncate: a cut word would be analyzed as a different word.
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(text), limit)
	}
	return Sanitize(text), nil
}

func keep(r rune) bool {
	return r == ' ' || isAlphabetic(r)
}

// isAlphabetic matches the Unicode Alphabetic property: letters, letter
// numbers and other alphabetic marks.
func isAlphabetic(r rune) bool {
	return unicode.In(r, unicode.L, unicode.Nl, unicode.Other_Alphabetic)
}

func maxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
