// Package util has small text and collection helpers used across the engine.
package util

import (
	"sort"
	"strings"
	"unicode"
)

// MakeTextList joins display names into natural prose: "a lamp", "a lamp and
// a sword", "a lamp, a sword, and a sack". When articles is true each item
// gets an indefinite article and a leading capital is lowered (unless the
// whole name is capitalized, which is preserved as-is).
func MakeTextList(items []string, articles bool) string {
	if len(items) < 1 {
		return ""
	}

	parts := make([]string, len(items))
	for i := range items {
		item := items[i]
		if !articles {
			parts[i] = item
			continue
		}

		art := ArticleFor(item, false)

		iRunes := []rune(item)
		leadingUpper := unicode.IsUpper(iRunes[0])
		allCaps := leadingUpper
		if leadingUpper && len(iRunes) > 1 {
			allCaps = unicode.IsUpper(iRunes[1])
		}
		if leadingUpper && !allCaps {
			iRunes[0] = unicode.ToLower(iRunes[0])
			item = string(iRunes)
		}

		parts[i] = art + " " + item
	}

	switch len(parts) {
	case 1:
		return parts[0]
	case 2:
		return parts[0] + " and " + parts[1]
	default:
		parts[len(parts)-1] = "and " + parts[len(parts)-1]
		return strings.Join(parts, ", ")
	}
}

// ArticleFor returns the article for the given string, capitalized the same
// way the string is. Definite gives "the"; otherwise "a"/"an" as the leading
// sound requires.
func ArticleFor(s string, definite bool) string {
	sRunes := []rune(s)
	if len(sRunes) < 1 {
		return ""
	}

	leadingUpper := unicode.IsUpper(sRunes[0])
	allCaps := leadingUpper
	if leadingUpper && len(sRunes) > 1 {
		allCaps = unicode.IsUpper(sRunes[1])
	}

	if definite {
		if allCaps {
			return "THE"
		}
		if leadingUpper {
			return "The"
		}
		return "the"
	}

	art := "a"
	if allCaps || leadingUpper {
		art = "A"
	}

	first := unicode.ToUpper(sRunes[0])
	if first == 'A' || first == 'E' || first == 'I' || first == 'O' || first == 'U' {
		if allCaps {
			art += "N"
		} else {
			art += "n"
		}
	}

	return art
}

// OrderedKeys returns the keys of m in an order guaranteed to be the same on
// every run. As of this writing the order is alphabetical, but callers should
// not depend on that.
func OrderedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
