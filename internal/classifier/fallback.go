package classifier

import (
	"fmt"
	"strings"

	"github.com/Veraticus/stockroom/internal/model"
	"github.com/Veraticus/stockroom/internal/similarity"
)

// Fallback tuning constants.
const (
	deepScanDirectAccept   = 0.8
	deepScanTokenMin       = 0.8
	deepScanDescriptionMin = 0.6
	deepScanDescriptionFac = 0.5
	deepScanSynonymBonus   = 0.3
	deepScanSynonymCap     = 0.6
	deepScanAccept         = 0.6
	deepScanMaxConfidence  = 0.95
	// Shorter tokens ("de", "1", "mm") occur inside too many category names.
	deepScanMinTokenLength = 3

	broadConfidence   = 0.8
	generalConfidence = 0.3
)

// fallback resolves a category when fusion produced nothing confident:
// existing-category scan, then the broad keyword table, then "general".
func (s *snapshot) fallback(in model.ProductInput) model.Candidate {
	if cand, ok := s.scanExisting(in); ok {
		return cand
	}
	if cand, ok := s.broadCategory(in); ok {
		return cand
	}
	return s.general()
}

// scanExisting scores every cached category against the product name,
// description and synonym table.
func (s *snapshot) scanExisting(in model.ProductInput) (model.Candidate, bool) {
	if len(s.ordered) == 0 {
		return model.Candidate{}, false
	}

	nameTokens := scanTokens(in.Name)
	text := similarity.Normalize(in.Text())
	description := strings.TrimSpace(in.Description)

	var (
		best      model.Category
		bestScore float64
		found     bool
	)
	for _, cat := range s.ordered {
		direct := similarity.Advanced(in.Name, cat.Name)
		if direct > deepScanDirectAccept {
			return s.existingCandidate(cat, direct,
				fmt.Sprintf("product name closely matches category %q (%.2f)", cat.Name, direct)), true
		}

		score := direct
		for _, ct := range scanTokens(cat.Name) {
			for _, pt := range nameTokens {
				if sim := similarity.Advanced(pt, ct); sim > deepScanTokenMin {
					score += sim
				}
			}
		}

		if description != "" {
			if sim := similarity.Advanced(description, cat.Name); sim > deepScanDescriptionMin {
				score += sim * deepScanDescriptionFac
			}
		}

		score += s.synonymBonus(text, similarity.Normalize(cat.Name))

		if score > bestScore {
			best, bestScore, found = cat, score, true
		}
	}

	if !found || bestScore <= deepScanAccept {
		return model.Candidate{}, false
	}
	return s.existingCandidate(best, bestScore,
		fmt.Sprintf("existing category %q scored %.2f against product text", best.Name, bestScore)), true
}

func (s *snapshot) existingCandidate(cat model.Category, score float64, reasoning string) model.Candidate {
	return model.Candidate{
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
		Confidence:   min(score, deepScanMaxConfidence),
		Strategy:     model.StrategyExistingCategorySimilarity,
		Reasoning:    reasoning,
	}
}

// synonymBonus adds a fixed amount for every synonym set represented in both
// the product text and the category name.
func (s *snapshot) synonymBonus(text, categoryName string) float64 {
	var bonus float64
	for _, set := range s.kb.Synonyms {
		if containsAny(text, set) && containsAny(categoryName, set) {
			bonus += deepScanSynonymBonus
			if bonus >= deepScanSynonymCap {
				return deepScanSynonymCap
			}
		}
	}
	return bonus
}

// broadCategory maps the product onto one of the coarse buckets, reusing an
// existing category when the bucket name duplicates one.
func (s *snapshot) broadCategory(in model.ProductInput) (model.Candidate, bool) {
	text := similarity.Normalize(in.Text())
	if text == "" {
		return model.Candidate{}, false
	}

	for _, bc := range s.kb.Broad {
		for _, kw := range bc.Keywords {
			if !strings.Contains(text, kw) {
				continue
			}
			name := bc.Name
			_, cached := s.categories[bc.ID]
			if cached {
				name = s.categories[bc.ID].Name
			}
			cand := model.Candidate{
				CategoryID:    bc.ID,
				CategoryName:  name,
				Confidence:    broadConfidence,
				Strategy:      model.StrategyBroadCategory,
				Reasoning:     fmt.Sprintf("keyword %q places product in %q", kw, bc.Name),
				IsNewCategory: !cached,
			}
			return s.guard(cand), true
		}
	}
	return model.Candidate{}, false
}

// general is the catch-all result, flagged for manual review.
func (s *snapshot) general() model.Candidate {
	name := model.GeneralCategoryName
	cat, cached := s.categories[model.GeneralCategoryID]
	if cached {
		name = cat.Name
	}
	return model.Candidate{
		CategoryID:    model.GeneralCategoryID,
		CategoryName:  name,
		Confidence:    generalConfidence,
		Strategy:      model.StrategyFallbackGeneral,
		Reasoning:     "no strategy or fallback matched; manual review required",
		IsNewCategory: !cached,
	}
}

func scanTokens(s string) []string {
	tokens := similarity.Tokens(s)
	out := tokens[:0]
	for _, tok := range tokens {
		if len([]rune(tok)) >= deepScanMinTokenLength {
			out = append(out, tok)
		}
	}
	return out
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
