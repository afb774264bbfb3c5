package textutil

import (
	"regexp"
	"strings"
	"unicode"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Canon produces the canonical surface form of a tag token:
// lowercased, trimmed, inner whitespace runs collapsed to a single space.
func Canon(token string) string {
	token = strings.ToLower(token)
	token = strings.Trim(token, " \n\t")
	token = whitespaceRegex.ReplaceAllString(token, " ")
	return token
}

// CollapseWhitespace trims a string and squashes runs of whitespace
// (including newlines inside scraped markup text) to single spaces.
func CollapseWhitespace(s string) string {
	s = strings.Trim(s, " \n\t")
	return whitespaceRegex.ReplaceAllString(s, " ")
}

func RemoveNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) || c == '\n' {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}
