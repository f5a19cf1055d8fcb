package services

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	controlCharsRe    = regexp.MustCompile(`[\x00-\x1F\x7F]`)
	surroundingQuotes = regexp.MustCompile("^\\s*[\"'`]+|[\"'`]+\\s*$")
)

// CleanText coerces any value to a trimmed string with control characters
// stripped and one layer of surrounding quotes removed. Never fails; anything
// unprintable collapses to the empty string.
func CleanText(raw any) string {
	if raw == nil {
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		s = fmt.Sprintf("%v", raw)
	}
	s = controlCharsRe.ReplaceAllString(s, "")
	s = surroundingQuotes.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
