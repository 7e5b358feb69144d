package classifier

import (
	"fmt"

	"github.com/Veraticus/stockroom/internal/knowledge"
	"github.com/Veraticus/stockroom/internal/model"
	"github.com/Veraticus/stockroom/internal/similarity"
)

// DuplicateThreshold is the name similarity at which a proposed category is
// considered the same as an existing one.
const DuplicateThreshold = 0.8

// guard rewrites a new-category candidate to an existing category when the
// proposed name is a near-duplicate of one already cached.
func (s *snapshot) guard(cand model.Candidate) model.Candidate {
	if !cand.IsNewCategory {
		return cand
	}

	existing, score, ok := s.nearDuplicate(cand.CategoryName)
	if !ok {
		return cand
	}

	cand.Reasoning = fmt.Sprintf("%s; %q is a near-duplicate of existing category %q (similarity %.2f)",
		cand.Reasoning, cand.CategoryName, existing.Name, score)
	cand.CategoryID = existing.ID
	cand.CategoryName = existing.Name
	cand.Strategy = model.StrategyExistingCategorySimilarity
	cand.IsNewCategory = false
	return cand
}

// nearDuplicate finds the cached category name closest to name. A direct
// similarity of at least DuplicateThreshold wins; otherwise the closest
// lexical variant of name is returned, ties going to the smaller id.
func (s *snapshot) nearDuplicate(name string) (model.Category, float64, bool) {
	var (
		best      model.Category
		bestScore float64
		found     bool
	)
	for _, cat := range s.ordered {
		score := similarity.Advanced(name, cat.Name)
		if score >= DuplicateThreshold && score > bestScore {
			best, bestScore, found = cat, score, true
		}
	}
	if found {
		return best, bestScore, true
	}

	for _, cat := range s.ordered {
		if !lexicalVariant(s.kb, name, cat.Name) {
			continue
		}
		score := similarity.Advanced(name, cat.Name)
		if !found || score > bestScore {
			best, bestScore, found = cat, score, true
		}
	}
	return best, bestScore, found
}

// lexicalVariant reports whether two category names denote the same concept:
// their leading significant words are the same lexeme and any remaining
// words of one name are all matched in the other. Generic words such as
// "material" or "general" are ignored.
func lexicalVariant(kb *knowledge.Compiled, a, b string) bool {
	ta := significantTokens(kb, a)
	tb := significantTokens(kb, b)
	if len(ta) == 0 || len(tb) == 0 {
		return false
	}
	if !sameLexeme(kb, ta[0], tb[0]) {
		return false
	}
	return covered(kb, ta[1:], tb[1:]) || covered(kb, tb[1:], ta[1:])
}

// covered reports whether every token in words has a matching lexeme in pool.
func covered(kb *knowledge.Compiled, words, pool []string) bool {
	for _, w := range words {
		matched := false
		for _, p := range pool {
			if sameLexeme(kb, w, p) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func sameLexeme(kb *knowledge.Compiled, a, b string) bool {
	if a == b {
		return true
	}
	ga, okA := kb.VariantGroup(a)
	gb, okB := kb.VariantGroup(b)
	if okA && okB && ga == gb {
		return true
	}
	return similarity.Advanced(a, b) >= DuplicateThreshold
}

func significantTokens(kb *knowledge.Compiled, name string) []string {
	tokens := similarity.Tokens(name)
	out := tokens[:0]
	for _, tok := range tokens {
		if !kb.IsGeneric(tok) {
			out = append(out, tok)
		}
	}
	return out
}
