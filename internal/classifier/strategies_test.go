package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/stockroom/internal/knowledge"
	"github.com/Veraticus/stockroom/internal/model"
)

func testSnapshot(cats []model.Category, products ...model.ProductSample) *snapshot {
	return newSnapshot(knowledge.MustCompile(knowledge.Default()), cats, products)
}

func TestExactMatch(t *testing.T) {
	snap := testSnapshot([]model.Category{{ID: "screws-1", Name: "Tornillería"}})

	tests := []struct {
		name  string
		hint  string
		found bool
	}{
		{name: "cached hint", hint: "screws-1", found: true},
		{name: "unknown hint", hint: "bolts-9"},
		{name: "no hint"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand, err := exactMatch{}.Evaluate(model.ProductInput{Name: "Tornillo", HintCategoryID: tt.hint}, snap)
			require.NoError(t, err)
			if !tt.found {
				assert.Nil(t, cand)
				return
			}
			require.NotNil(t, cand)
			assert.Equal(t, "Tornillería", cand.CategoryName)
			assert.InDelta(t, 1.0, cand.Confidence, 1e-9)
			assert.False(t, cand.IsNewCategory)
		})
	}
}

func TestKeywordAnalysis(t *testing.T) {
	tests := []struct {
		name     string
		input    model.ProductInput
		cats     []model.Category
		wantID   string
		wantConf float64
		wantNew  bool
	}{
		{
			name:     "primary and secondary hits",
			input:    model.ProductInput{Name: "Taladro inalámbrico DeWalt 20V"},
			wantID:   "herramientas_electricas",
			wantConf: 0.6,
			wantNew:  true,
		},
		{
			name:     "description contributes",
			input:    model.ProductInput{Name: "Cable THW calibre 12", Description: "rollo de cobre"},
			wantID:   "electrico",
			wantConf: (2*0.85 + 3*0.85) / 6,
			wantNew:  true,
		},
		{
			name:     "cached key is not new",
			input:    model.ProductInput{Name: "Martillo Truper 16oz"},
			cats:     []model.Category{{ID: "herramientas", Name: "Herramientas"}},
			wantID:   "herramientas",
			wantConf: 2.7 / 6,
		},
		{
			name:  "single primary hit below minimum",
			input: model.ProductInput{Name: "Martillo"},
		},
		{
			name:  "no hits",
			input: model.ProductInput{Name: "qwerty"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand, err := keywordAnalysis{}.Evaluate(tt.input, testSnapshot(tt.cats))
			require.NoError(t, err)
			if tt.wantID == "" {
				assert.Nil(t, cand)
				return
			}
			require.NotNil(t, cand)
			assert.Equal(t, tt.wantID, cand.CategoryID)
			assert.InDelta(t, tt.wantConf, cand.Confidence, 1e-9)
			assert.Equal(t, tt.wantNew, cand.IsNewCategory)
			assert.Equal(t, model.StrategyKeywordAnalysis, cand.Strategy)
		})
	}
}

func TestSemanticAnalysis_FirstHitWins(t *testing.T) {
	cand, err := semanticAnalysis{}.Evaluate(model.ProductInput{Name: "Cordless power tool"}, testSnapshot(nil))
	require.NoError(t, err)
	require.NotNil(t, cand)
	assert.Equal(t, "herramientas_electricas", cand.CategoryID)
	assert.InDelta(t, 0.7, cand.Confidence, 1e-9)

	cand, err = semanticAnalysis{}.Evaluate(model.ProductInput{Name: "Martillo"}, testSnapshot(nil))
	require.NoError(t, err)
	assert.Nil(t, cand)
}

func TestPatternMatching(t *testing.T) {
	cand, err := patternMatching{}.Evaluate(model.ProductInput{Name: "Tubo PVC 1/2"}, testSnapshot(nil))
	require.NoError(t, err)
	require.NotNil(t, cand)
	assert.Equal(t, "plomeria", cand.CategoryID)
	assert.Equal(t, "Plomería", cand.CategoryName)
	assert.InDelta(t, 0.85, cand.Confidence, 1e-9)
	assert.True(t, cand.IsNewCategory)

	cand, err = patternMatching{}.Evaluate(model.ProductInput{Name: "Rotomartillos"}, testSnapshot(nil))
	require.NoError(t, err)
	assert.Nil(t, cand, "patterns match whole words only")
}

func TestProductSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		products []model.ProductSample
		input    string
		wantID   string
		wantConf float64
	}{
		{
			name: "group average",
			products: []model.ProductSample{
				{ID: "p1", Name: "Manguera reforzada 15m", CategoryID: "garden-1", CategoryName: "Jardín"},
				{ID: "p2", Name: "Manguera reforzada 20m", CategoryID: "garden-1", CategoryName: "Jardín"},
				{ID: "p3", Name: "Cable THW", CategoryID: "electrical-1", CategoryName: "Material Eléctrico"},
			},
			input:    "Manguera reforzada 10m",
			wantID:   "garden-1",
			wantConf: 0.5 * 0.8,
		},
		{
			name: "equal groups go to smaller id",
			products: []model.ProductSample{
				{ID: "p1", Name: "Cinta métrica 5m", CategoryID: "b-cat", CategoryName: "B"},
				{ID: "p2", Name: "Cinta métrica 8m", CategoryID: "a-cat", CategoryName: "A"},
			},
			input:    "Cinta métrica 3m",
			wantID:   "a-cat",
			wantConf: 0.4,
		},
		{
			name: "weak overlap discarded",
			products: []model.ProductSample{
				{ID: "p1", Name: "Cinta aislante negra grande 19mm", CategoryID: "electrical-1"},
			},
			input: "Cinta métrica",
		},
		{
			name:  "empty sample",
			input: "Cinta métrica",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand, err := productSimilarity{}.Evaluate(model.ProductInput{Name: tt.input}, testSnapshot(nil, tt.products...))
			require.NoError(t, err)
			if tt.wantID == "" {
				assert.Nil(t, cand)
				return
			}
			require.NotNil(t, cand)
			assert.Equal(t, tt.wantID, cand.CategoryID)
			assert.InDelta(t, tt.wantConf, cand.Confidence, 1e-9)
			assert.False(t, cand.IsNewCategory)
		})
	}
}
