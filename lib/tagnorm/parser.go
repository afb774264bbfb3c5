package tagnorm

import (
	"errors"
	"regexp"
	"strings"
)

// ErrUnparsable is returned when a raw label blob yields no tokens:
// prose instead of a list, an empty string, or the literal "error"
// sentinel recorded when the model call failed.
var ErrUnparsable = errors.New("raw labels could not be parsed into tokens")

var quotedToken = regexp.MustCompile(`"([^"]*)"|'([^']*)'`)

// ParseLabels tokenizes the loosely list-like text the language model
// emits, e.g. `["UI", 'bugs',performance]`. Quoted tokens win; a
// bracketed blob without quotes falls back to comma splitting. Anything
// else is rejected with ErrUnparsable rather than guessed at.
func ParseLabels(raw string) ([]string, error) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "error") {
		return nil, ErrUnparsable
	}

	bracketed := strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")
	if bracketed {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	var tokens []string
	for _, groups := range quotedToken.FindAllStringSubmatch(s, -1) {
		token := groups[1]
		if token == "" {
			token = groups[2]
		}
		token = strings.TrimSpace(token)
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	if len(tokens) > 0 {
		// quoted tokens only count when nothing but list punctuation
		// sits between them. prose with apostrophes would otherwise
		// pass as a single-quoted list ("It's buggy, isn't it" must
		// not yield the token "s buggy, isn").
		residue := strings.Trim(quotedToken.ReplaceAllString(s, ""), ", \t\n")
		if residue != "" {
			return nil, ErrUnparsable
		}
		return tokens, nil
	}

	// an unquoted list is only trusted when it was bracketed, otherwise
	// it is indistinguishable from prose containing a comma.
	if !bracketed {
		return nil, ErrUnparsable
	}
	for _, part := range strings.Split(s, ",") {
		token := strings.TrimSpace(part)
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	if len(tokens) == 0 {
		return nil, ErrUnparsable
	}
	return tokens, nil
}
