package classifier

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/stockroom/internal/model"
	"github.com/Veraticus/stockroom/internal/similarity"
)

// Strategy tuning constants.
const (
	keywordPrimaryFactor   = 2.0
	keywordSecondaryFactor = 1.0
	keywordScoreCeiling    = 6.0
	keywordMinConfidence   = 0.4

	semanticConfidence = 0.7
	patternConfidence  = 0.85

	similarityMinOverlap    = 0.3
	similarityTopN          = 10
	similarityDiscount      = 0.8
	similarityMinConfidence = 0.3
)

// strategy produces at most one candidate from the product and a snapshot.
// Implementations must not mutate the snapshot.
type strategy interface {
	Name() model.Strategy
	Evaluate(in model.ProductInput, snap *snapshot) (*model.Candidate, error)
}

// exactMatch accepts the caller's hint when it names a cached category.
type exactMatch struct{}

func (exactMatch) Name() model.Strategy { return model.StrategyExactMatch }

func (exactMatch) Evaluate(in model.ProductInput, snap *snapshot) (*model.Candidate, error) {
	if in.HintCategoryID == "" {
		return nil, nil
	}
	cat, ok := snap.categories[in.HintCategoryID]
	if !ok {
		return nil, nil
	}
	return &model.Candidate{
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
		Confidence:   1.0,
		Strategy:     model.StrategyExactMatch,
		Reasoning:    fmt.Sprintf("hint category %q exists", cat.ID),
	}, nil
}

// keywordAnalysis scores every knowledge base entry by weighted keyword hits.
type keywordAnalysis struct{}

func (keywordAnalysis) Name() model.Strategy { return model.StrategyKeywordAnalysis }

func (keywordAnalysis) Evaluate(in model.ProductInput, snap *snapshot) (*model.Candidate, error) {
	text := similarity.Normalize(in.Text())
	if text == "" {
		return nil, nil
	}

	var (
		bestKey                      string
		bestScore                    float64
		bestPrimary, bestSecondaries int
	)
	for i := range snap.kb.Entries {
		entry := &snap.kb.Entries[i]

		var score float64
		primary, secondary := 0, 0
		for _, kw := range entry.PrimaryKeywords() {
			if strings.Contains(text, kw) {
				score += keywordPrimaryFactor * entry.Weight
				primary++
			}
		}
		for _, kw := range entry.SecondaryKeywords() {
			if strings.Contains(text, kw) {
				score += keywordSecondaryFactor * entry.Weight
				secondary++
			}
		}

		if score > bestScore {
			bestKey, bestScore = entry.Key, score
			bestPrimary, bestSecondaries = primary, secondary
		}
	}

	if bestKey == "" {
		return nil, nil
	}

	confidence := min(bestScore/keywordScoreCeiling, 1.0)
	if confidence < keywordMinConfidence {
		return nil, nil
	}

	name, cached := snap.name(bestKey)
	return &model.Candidate{
		CategoryID:    bestKey,
		CategoryName:  name,
		Confidence:    confidence,
		Strategy:      model.StrategyKeywordAnalysis,
		Reasoning:     fmt.Sprintf("%d primary and %d secondary keywords of %q found", bestPrimary, bestSecondaries, bestKey),
		IsNewCategory: !cached,
	}, nil
}

// semanticAnalysis looks for cross-lingual or synonym terms; the first hit in
// table order wins.
type semanticAnalysis struct{}

func (semanticAnalysis) Name() model.Strategy { return model.StrategySemanticAnalysis }

func (semanticAnalysis) Evaluate(in model.ProductInput, snap *snapshot) (*model.Candidate, error) {
	text := similarity.Normalize(in.Text())
	if text == "" {
		return nil, nil
	}

	for _, hint := range snap.kb.Semantic {
		for _, term := range hint.Terms {
			if !strings.Contains(text, term) {
				continue
			}
			name, cached := snap.name(hint.Key)
			return &model.Candidate{
				CategoryID:    hint.Key,
				CategoryName:  name,
				Confidence:    semanticConfidence,
				Strategy:      model.StrategySemanticAnalysis,
				Reasoning:     fmt.Sprintf("semantic term %q suggests %q", term, hint.Key),
				IsNewCategory: !cached,
			}, nil
		}
	}
	return nil, nil
}

// productSimilarity votes with the categories of the most similar existing
// products.
type productSimilarity struct{}

func (productSimilarity) Name() model.Strategy { return model.StrategyProductSimilarity }

type similarProduct struct {
	sample model.ProductSample
	score  float64
}

type similarityGroup struct {
	id    string
	name  string
	total float64
	count int
}

func (productSimilarity) Evaluate(in model.ProductInput, snap *snapshot) (*model.Candidate, error) {
	if len(snap.products) == 0 {
		return nil, nil
	}

	var matches []similarProduct
	for _, sample := range snap.products {
		if sample.CategoryID == "" {
			continue
		}
		if score := similarity.TokenOverlap(in.Name, sample.Name); score > similarityMinOverlap {
			matches = append(matches, similarProduct{sample: sample, score: score})
		}
	}
	if len(matches) == 0 {
		return nil, nil
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].sample.ID < matches[j].sample.ID
	})
	if len(matches) > similarityTopN {
		matches = matches[:similarityTopN]
	}

	groups := make(map[string]*similarityGroup)
	for _, m := range matches {
		g, ok := groups[m.sample.CategoryID]
		if !ok {
			g = &similarityGroup{id: m.sample.CategoryID, name: m.sample.CategoryName}
			groups[m.sample.CategoryID] = g
		}
		g.total += m.score
		g.count++
	}

	var best *similarityGroup
	var bestConfidence float64
	for _, g := range groups {
		confidence := g.total / float64(g.count) * similarityDiscount
		if best == nil || confidence > bestConfidence ||
			(confidence == bestConfidence && g.id < best.id) {
			best, bestConfidence = g, confidence
		}
	}

	if bestConfidence < similarityMinConfidence {
		return nil, nil
	}

	name := best.name
	if cat, ok := snap.categories[best.id]; ok {
		name = cat.Name
	}
	if name == "" {
		name = best.id
	}

	return &model.Candidate{
		CategoryID:   best.id,
		CategoryName: name,
		Confidence:   bestConfidence,
		Strategy:     model.StrategyProductSimilarity,
		Reasoning:    fmt.Sprintf("%d similar products in %q", best.count, best.id),
	}, nil
}

// patternMatching tests the knowledge base regexes in table order.
type patternMatching struct{}

func (patternMatching) Name() model.Strategy { return model.StrategyPatternMatching }

func (patternMatching) Evaluate(in model.ProductInput, snap *snapshot) (*model.Candidate, error) {
	text := similarity.Normalize(in.Text())
	if text == "" {
		return nil, nil
	}

	for i := range snap.kb.Entries {
		entry := &snap.kb.Entries[i]
		for _, re := range entry.Regexps() {
			if !re.MatchString(text) {
				continue
			}
			name, cached := snap.name(entry.Key)
			return &model.Candidate{
				CategoryID:    entry.Key,
				CategoryName:  name,
				Confidence:    patternConfidence,
				Strategy:      model.StrategyPatternMatching,
				Reasoning:     fmt.Sprintf("pattern %s matched", re.String()),
				IsNewCategory: !cached,
			}, nil
		}
	}
	return nil, nil
}
