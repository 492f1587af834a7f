// Package variants generates lexical representations of organization names
// for cross-referencing against domains and other digital assets.
package variants

import (
	"strings"
	"unicode"
)

// corporateSuffixes are trailing tokens recognized on legal company names.
var corporateSuffixes = []string{
	"inc", "inc.", "llc", "corp", "corporation", "ltd", "limited", "co", "company",
}

// Add generates the lexical variants of name and adds them to terms. It is
// deterministic and never removes entries from terms.
//
// Variants produced: the lower-cased name, the lower-cased name with
// punctuation stripped, and, when the stripped form has multiple tokens, each
// token plus the space-joined and concatenated forms.
func Add(name string, terms map[string]struct{}) {
	if name == "" || terms == nil {
		return
	}

	lower := strings.ToLower(name)
	terms[lower] = struct{}{}

	clean := stripPunctuation(lower)
	if clean != "" {
		terms[clean] = struct{}{}
	}

	words := strings.Fields(clean)
	if len(words) > 1 {
		for _, word := range words {
			terms[word] = struct{}{}
		}
		terms[strings.Join(words, " ")] = struct{}{}
		terms[strings.Join(words, "")] = struct{}{}
	}
}

// AddSuffixes generates corporate-suffix variants of name and adds them to
// terms. A name ending in a known suffix contributes the suffix-stripped base
// name; a name not ending in a given suffix contributes one variant with that
// suffix appended.
func AddSuffixes(name string, terms map[string]struct{}) {
	if name == "" || terms == nil {
		return
	}

	lower := strings.ToLower(name)
	terms[lower] = struct{}{}

	for _, suffix := range corporateSuffixes {
		if strings.HasSuffix(lower, " "+suffix) {
			base := strings.TrimSpace(strings.TrimSuffix(lower, " "+suffix))
			if base != "" {
				terms[base] = struct{}{}
			}
		}
	}

	for _, suffix := range corporateSuffixes {
		if !strings.HasSuffix(lower, suffix) {
			terms[lower+" "+suffix] = struct{}{}
		}
	}
}

// stripPunctuation removes every rune that is not a letter, digit, or space.
func stripPunctuation(value string) string {
	var sb strings.Builder
	sb.Grow(len(value))
	for _, r := range value {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			sb.WriteRune(r)
		}
	}
	return strings.TrimSpace(sb.String())
}
