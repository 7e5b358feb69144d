package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/stockroom/internal/model"
)

func TestFuse(t *testing.T) {
	tests := []struct {
		name         string
		candidates   []model.Candidate
		wantOK       bool
		wantID       string
		wantScore    float64
		wantStrategy model.Strategy
	}{
		{
			name: "no candidates",
		},
		{
			name: "below threshold",
			candidates: []model.Candidate{
				{CategoryID: "a", Confidence: 0.5, Strategy: model.StrategyKeywordAnalysis},
			},
		},
		{
			name: "single strategy keeps its name",
			candidates: []model.Candidate{
				{CategoryID: "a", Confidence: 0.85, Strategy: model.StrategyPatternMatching},
			},
			wantOK:       true,
			wantID:       "a",
			wantScore:    0.85,
			wantStrategy: model.StrategyPatternMatching,
		},
		{
			name: "agreeing strategies are combined",
			candidates: []model.Candidate{
				{CategoryID: "herramientas", Confidence: 0.45, Strategy: model.StrategyKeywordAnalysis},
				{CategoryID: "herramientas", Confidence: 0.85, Strategy: model.StrategyPatternMatching},
			},
			wantOK:       true,
			wantID:       "herramientas",
			wantScore:    (0.45*0.8 + 0.85*0.9) / 1.7,
			wantStrategy: model.StrategyCombined,
		},
		{
			name: "higher weighted score wins",
			candidates: []model.Candidate{
				{CategoryID: "a", Confidence: 0.7, Strategy: model.StrategySemanticAnalysis},
				{CategoryID: "b", Confidence: 0.85, Strategy: model.StrategyPatternMatching},
			},
			wantOK:       true,
			wantID:       "b",
			wantScore:    0.85,
			wantStrategy: model.StrategyPatternMatching,
		},
		{
			name: "tie goes to smallest id",
			candidates: []model.Candidate{
				{CategoryID: "zeta", Confidence: 0.7, Strategy: model.StrategyKeywordAnalysis},
				{CategoryID: "alfa", Confidence: 0.7, Strategy: model.StrategySemanticAnalysis},
			},
			wantOK:       true,
			wantID:       "alfa",
			wantScore:    0.7,
			wantStrategy: model.StrategySemanticAnalysis,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			winner, ok := fuse(tt.candidates)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantID, winner.CategoryID)
			assert.InDelta(t, tt.wantScore, winner.Confidence, 1e-9)
			assert.Equal(t, tt.wantStrategy, winner.Strategy)
		})
	}
}

func TestFuse_TieIndependentOfOrder(t *testing.T) {
	a := model.Candidate{CategoryID: "a", Confidence: 0.75, Strategy: model.StrategyKeywordAnalysis}
	b := model.Candidate{CategoryID: "b", Confidence: 0.75, Strategy: model.StrategyKeywordAnalysis}

	first, ok := fuse([]model.Candidate{a, b})
	require.True(t, ok)
	second, ok := fuse([]model.Candidate{b, a})
	require.True(t, ok)
	assert.Equal(t, "a", first.CategoryID)
	assert.Equal(t, first, second)
}

func TestFuse_CombinedReasoningListsStrategies(t *testing.T) {
	winner, ok := fuse([]model.Candidate{
		{CategoryID: "a", Confidence: 0.9, Strategy: model.StrategyPatternMatching, Reasoning: "pattern hit"},
		{CategoryID: "a", Confidence: 0.7, Strategy: model.StrategySemanticAnalysis, Reasoning: "semantic hit"},
	})
	require.True(t, ok)
	assert.Equal(t, "pattern hit (agreed by pattern_matching, semantic_analysis)", winner.Reasoning)
}

func TestStrategyWeight(t *testing.T) {
	tests := []struct {
		strategy model.Strategy
		want     float64
	}{
		{model.StrategyExactMatch, 1.0},
		{model.StrategyPatternMatching, 0.9},
		{model.StrategyKeywordAnalysis, 0.8},
		{model.StrategySemanticAnalysis, 0.7},
		{model.StrategyProductSimilarity, 0.6},
		{model.StrategyCombined, 0.5},
		{model.StrategyExistingCategorySimilarity, 0.5},
		{model.StrategyBroadCategory, 0.5},
		{model.StrategyFallbackGeneral, 0.5},
		{model.Strategy("unknown"), 0.5},
	}
	for _, tt := range tests {
		t.Run(string(tt.strategy), func(t *testing.T) {
			assert.InDelta(t, tt.want, strategyWeight(tt.strategy), 1e-9)
		})
	}
}
