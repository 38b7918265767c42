package player

import (
	"net/url"
	"strings"
)

// AnswerURLScheme prefixes the pseudo-navigation an embedded web view issues
// when an option button is pressed, e.g. "js:Paris".
const AnswerURLScheme = "js:"

// ParseAnswerURL extracts the selected option from an answer navigation.
// The option may be percent-encoded by the web view. ok is false for any
// other navigation, which the host should let through.
func ParseAnswerURL(navigation string) (option string, ok bool) {
	if !strings.HasPrefix(navigation, AnswerURLScheme) {
		return "", false
	}
	raw := strings.TrimPrefix(navigation, AnswerURLScheme)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded, true
	}
	return raw, true
}
