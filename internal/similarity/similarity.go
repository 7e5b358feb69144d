// Package similarity provides the string comparison primitives used by the
// classifier: text normalization, edit-distance similarity, containment and
// token overlap. All functions are pure and safe for concurrent use.
package similarity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases s, folds diacritics, replaces anything that is not a
// letter or digit with a space and collapses runs of whitespace.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	// A fresh transformer per call; transform.Chain is stateful.
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingSpace := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		pendingSpace = true
	}
	return b.String()
}

// Tokens returns the whitespace-separated tokens of the normalized text.
func Tokens(s string) []string {
	return strings.Fields(Normalize(s))
}

// Slug turns a display name into a category id: normalized tokens joined
// by hyphens.
func Slug(name string) string {
	return strings.Join(Tokens(name), "-")
}

// LevenshteinDistance returns the classic edit distance between a and b,
// counting insertions, deletions and substitutions at cost 1.
func LevenshteinDistance(a, b string) int {
	r1, r2 := []rune(a), []rune(b)
	column := make([]int, len(r1)+1)

	for y := 1; y <= len(r1); y++ {
		column[y] = y
	}

	for x := 1; x <= len(r2); x++ {
		column[0] = x
		lastDiag := x - 1
		for y := 1; y <= len(r1); y++ {
			oldDiag := column[y]
			cost := 0
			if r1[y-1] != r2[x-1] {
				cost = 1
			}
			column[y] = min(column[y]+1, column[y-1]+1, lastDiag+cost)
			lastDiag = oldDiag
		}
	}

	return column[len(r1)]
}

// Levenshtein returns 1 - distance/maxLen over the normalized inputs.
// Two empty strings score 0.
func Levenshtein(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	return levenshteinNormalized(na, nb)
}

func levenshteinNormalized(na, nb string) float64 {
	maxLen := max(runeLen(na), runeLen(nb))
	if maxLen == 0 {
		return 0
	}
	if na == nb {
		return 1.0
	}
	return 1.0 - float64(LevenshteinDistance(na, nb))/float64(maxLen)
}

// SubstringBoost returns shorter/longer length when one normalized string
// contains the other, 1.0 on equality and 0 otherwise.
func SubstringBoost(a, b string) float64 {
	return substringNormalized(Normalize(a), Normalize(b))
}

func substringNormalized(na, nb string) float64 {
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1.0
	}
	if !strings.Contains(na, nb) && !strings.Contains(nb, na) {
		return 0
	}
	la, lb := runeLen(na), runeLen(nb)
	return float64(min(la, lb)) / float64(max(la, lb))
}

// Advanced combines the measures: equality scores 1.0, containment scores
// the length ratio and everything else falls back to Levenshtein.
func Advanced(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == "" && nb == "" {
		return 0
	}
	if na == nb {
		return 1.0
	}
	if boost := substringNormalized(na, nb); boost > 0 {
		return boost
	}
	return levenshteinNormalized(na, nb)
}

// TokenOverlap returns the Jaccard similarity of the normalized token sets.
func TokenOverlap(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}

	intersection := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	tokens := Tokens(s)
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}

func runeLen(s string) int {
	return len([]rune(s))
}
