// Package textclean strips scraper artifacts out of review text before
// it is shown to the language model.
package textclean

import "regexp"

// matches the "Posted: June 10" / "Posted: June 10, 2023" phrase Steam
// prepends to the card text, plus the whitespace around it.
var postedPrefix = regexp.MustCompile(`^\s*Posted:\s+[A-Z][a-z]+\.?\s+\d{1,2}(,\s*\d{4})?\s*`)

// StripPostedPrefix removes a leading date phrase from review text.
// Text without the prefix passes through unchanged.
func StripPostedPrefix(text string) string {
	return postedPrefix.ReplaceAllString(text, "")
}
