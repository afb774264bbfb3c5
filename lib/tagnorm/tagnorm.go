// Package tagnorm maps the free-text tags emitted by the language
// model onto a canonical vocabulary using a many-to-one synonym map.
package tagnorm

import (
	"fmt"
	"slices"

	"steamlens/lib/configutil"
	"steamlens/lib/textutil"
)

// SynonymMap maps the canonical surface form of a raw tag (see
// textutil.Canon) to exactly one canonical tag.
type SynonymMap map[string]string

// LoadSynonyms reads a json5 file holding a flat object of
// raw-form -> canonical-tag pairs. Keys and values are canonicalized
// on load so lookups never depend on how the file was typed.
func LoadSynonyms(path string) (SynonymMap, error) {
	raw, err := configutil.ReadRequired[map[string]string](path)
	if err != nil {
		return nil, err
	}

	m := make(SynonymMap, len(raw))
	for k, v := range raw {
		key := textutil.Canon(k)
		value := textutil.Canon(v)
		if key == "" || value == "" {
			return nil, fmt.Errorf("synonym map entry %q -> %q is empty after normalization", k, v)
		}
		m[key] = value
	}
	return m, nil
}

// Lookup resolves a single token to its canonical tag. Tokens without
// a map entry pass through as their own canonical form.
func (m SynonymMap) Lookup(token string) string {
	canon := textutil.Canon(token)
	if mapped, ok := m[canon]; ok {
		return mapped
	}
	return canon
}

// Knows reports whether a canonical form is part of the vocabulary,
// either as a mapped surface form or as a canonical target.
func (m SynonymMap) Knows(tag string) bool {
	if _, ok := m[tag]; ok {
		return true
	}
	for _, canonical := range m {
		if canonical == tag {
			return true
		}
	}
	return false
}

// Normalize parses a raw label blob and resolves every token through
// the synonym map, returning the deduplicated canonical set sorted
// lexicographically. Identical input and map always produce identical
// output; the result is itself a fixpoint of Normalize.
func Normalize(raw string, m SynonymMap) ([]string, error) {
	tokens, err := ParseLabels(raw)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(tokens))
	var tags []string
	for _, token := range tokens {
		canonical := m.Lookup(token)
		if canonical == "" {
			continue
		}
		if _, ok := seen[canonical]; ok {
			continue
		}
		seen[canonical] = struct{}{}
		tags = append(tags, canonical)
	}
	if len(tags) == 0 {
		return nil, ErrUnparsable
	}

	slices.Sort(tags)
	return tags, nil
}
