// Package model defines the core domain models used throughout the application.
package model

// Strategy identifies how a category candidate was produced.
type Strategy string

// Strategy constants.
const (
	StrategyExactMatch                 Strategy = "exact_match"
	StrategyKeywordAnalysis            Strategy = "keyword_analysis"
	StrategySemanticAnalysis           Strategy = "semantic_analysis"
	StrategyProductSimilarity          Strategy = "product_similarity"
	StrategyPatternMatching            Strategy = "pattern_matching"
	StrategyCombined                   Strategy = "combined"
	StrategyExistingCategorySimilarity Strategy = "existing_category_similarity"
	StrategyBroadCategory              Strategy = "broad_category_identification"
	StrategyFallbackGeneral            Strategy = "fallback_general"
)

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyExactMatch,
		StrategyKeywordAnalysis,
		StrategySemanticAnalysis,
		StrategyProductSimilarity,
		StrategyPatternMatching,
		StrategyCombined,
		StrategyExistingCategorySimilarity,
		StrategyBroadCategory,
		StrategyFallbackGeneral:
		return true
	}
	return false
}

// Candidate is a single scored category proposal.
type Candidate struct {
	CategoryID    string
	CategoryName  string
	Strategy      Strategy
	Reasoning     string
	Confidence    float64
	IsNewCategory bool
}

// Result is the final classification decision for one product.
type Result struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	// Description is used when the category has to be materialized.
	Description   string   `json:"description"`
	Strategy      Strategy `json:"strategy"`
	Reasoning     string   `json:"reasoning"`
	Confidence    float64  `json:"confidence"`
	IsNewCategory bool     `json:"is_new_category"`
	NeedsReview   bool     `json:"needs_review"`
}

// ClampConfidence bounds a confidence value to [0, 1].
func ClampConfidence(c float64) float64 {
	switch {
	case c < 0:
		return 0
	case c > 1:
		return 1
	}
	return c
}
