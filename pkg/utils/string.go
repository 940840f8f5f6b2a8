// Package utils provides common utility functions.
package utils

import (
	"strings"
	"unicode"
)

// StringHelper provides string utility functions.
type StringHelper struct{}

// NewStringHelper creates a new string helper.
func NewStringHelper() *StringHelper {
	return &StringHelper{}
}

// CollapseWhitespace trims the string and replaces internal whitespace runs
// with single spaces.
func (s *StringHelper) CollapseWhitespace(str string) string {
	return strings.Join(strings.Fields(str), " ")
}

// DigitsOnly strips every non-digit character from the string.
func (s *StringHelper) DigitsOnly(str string) string {
	var b strings.Builder

	for _, r := range str {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// TruncateString truncates string to max length.
func (s *StringHelper) TruncateString(str string, maxLength int) string {
	if len(str) <= maxLength {
		return str
	}

	return str[:maxLength] + "..."
}
