package classifier

import (
	"fmt"
	"strings"

	"github.com/Veraticus/stockroom/internal/model"
)

// ConfidenceThreshold is the minimum fused score accepted without fallback.
const ConfidenceThreshold = 0.6

// strategyWeight is the trust placed in each strategy when fusing.
func strategyWeight(s model.Strategy) float64 {
	switch s {
	case model.StrategyExactMatch:
		return 1.0
	case model.StrategyPatternMatching:
		return 0.9
	case model.StrategyKeywordAnalysis:
		return 0.8
	case model.StrategySemanticAnalysis:
		return 0.7
	case model.StrategyProductSimilarity:
		return 0.6
	case model.StrategyCombined,
		model.StrategyExistingCategorySimilarity,
		model.StrategyBroadCategory,
		model.StrategyFallbackGeneral:
		return 0.5
	}
	return 0.5
}

type candidateGroup struct {
	representative model.Candidate
	strategies     []model.Strategy
	weightedSum    float64
	weightSum      float64
}

func (g *candidateGroup) score() float64 {
	if g.weightSum == 0 {
		return 0
	}
	return g.weightedSum / g.weightSum
}

// fuse merges candidates per category into a weighted-average score and
// returns the best category, or false when nothing clears the threshold.
// Equal scores are broken by the lexicographically smallest category id so
// the outcome never depends on strategy order.
func fuse(candidates []model.Candidate) (model.Candidate, bool) {
	if len(candidates) == 0 {
		return model.Candidate{}, false
	}

	groups := make(map[string]*candidateGroup, len(candidates))
	for _, cand := range candidates {
		g, ok := groups[cand.CategoryID]
		if !ok {
			g = &candidateGroup{representative: cand}
			groups[cand.CategoryID] = g
		} else if cand.Confidence > g.representative.Confidence {
			g.representative = cand
		}

		w := strategyWeight(cand.Strategy)
		g.weightedSum += cand.Confidence * w
		g.weightSum += w
		g.strategies = append(g.strategies, cand.Strategy)
	}

	var (
		best      *candidateGroup
		bestScore float64
	)
	for id, g := range groups {
		score := g.score()
		if best == nil || score > bestScore ||
			(score == bestScore && id < best.representative.CategoryID) {
			best, bestScore = g, score
		}
	}

	if bestScore < ConfidenceThreshold {
		return model.Candidate{}, false
	}

	winner := best.representative
	winner.Confidence = model.ClampConfidence(bestScore)
	if len(best.strategies) > 1 {
		names := make([]string, len(best.strategies))
		for i, s := range best.strategies {
			names[i] = string(s)
		}
		winner.Strategy = model.StrategyCombined
		winner.Reasoning = fmt.Sprintf("%s (agreed by %s)", winner.Reasoning, strings.Join(names, ", "))
	}
	return winner, true
}
