// Package validation holds the checks applied to user input before it is
// rendered into a Discord embed. Failures are returned as *Error so that their
// messages can be shown to the submitting user verbatim.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/pkg/errors"
)

// EmbedLimits are the character ceilings Discord imposes on embeds.
var EmbedLimits = struct {
	Title       int
	Description int
	FieldValue  int
	Total       int
}{
	Title:       256,
	Description: 4096,
	FieldValue:  1024,
	Total:       6000,
}

// Error is a problem with user input. Its message is meant for the user.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Errorf returns an *Error with a formatted message.
func Errorf(format string, args ...interface{}) error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// IsError returns true if err is, or wraps, an *Error.
func IsError(err error) bool {
	_, ok := Message(err)
	return ok
}

// Message returns the user-facing message of the *Error err is or wraps.
func Message(err error) (string, bool) {
	var validationErr *Error
	if !errors.As(err, &validationErr) {
		return "", false
	}
	return validationErr.Message, true
}

// Required fails when value is empty or consists only of whitespace.
func Required(value string, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return Errorf("%sは必須項目です", fieldName)
	}
	return nil
}

// IsURL returns true iff value starts with http:// or https://.
func IsURL(value string) bool {
	return strings.HasPrefix(value, "http://") ||
		strings.HasPrefix(value, "https://")
}

// EmbedTitle fails when title exceeds Discord's embed title limit.
func EmbedTitle(title string) error {
	if length(title) > EmbedLimits.Title {
		return Errorf("タイトルは%d文字以内で入力してください", EmbedLimits.Title)
	}
	return nil
}

// EmbedDescription fails when description exceeds Discord's embed description
// limit.
func EmbedDescription(description string) error {
	if length(description) > EmbedLimits.Description {
		return Errorf("説明は%d文字以内で入力してください", EmbedLimits.Description)
	}
	return nil
}

// EmbedFieldValue fails when value exceeds Discord's embed field value limit.
func EmbedFieldValue(value string, fieldName string) error {
	if length(value) > EmbedLimits.FieldValue {
		return Errorf(
			"%sは%d文字以内で入力してください",
			fieldName,
			EmbedLimits.FieldValue,
		)
	}
	return nil
}

// length counts UTF-16 code units, which is how Discord measures text.
func length(s string) int {
	return len(utf16.Encode([]rune(s)))
}
