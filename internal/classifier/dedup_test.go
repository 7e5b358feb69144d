package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/stockroom/internal/knowledge"
	"github.com/Veraticus/stockroom/internal/model"
)

func TestLexicalVariant(t *testing.T) {
	kb := knowledge.MustCompile(knowledge.Default())

	tests := []struct {
		a, b string
		want bool
	}{
		{"Herramientas", "Herramientas Manuales", true},
		{"Eléctrico", "Material Eléctrico", true},
		{"Tornillos", "Tornillería", true},
		{"Jardinería", "Jardín", true},
		{"Pinturas", "Pintura", true},
		{"Herramientas Eléctricas", "Herramientas Manuales", false},
		{"Plomería", "Pinturas", false},
		{"Material General", "Materiales", false},
		{"Seguridad Industrial", "Construcción", false},
	}
	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, lexicalVariant(kb, tt.a, tt.b))
			assert.Equal(t, tt.want, lexicalVariant(kb, tt.b, tt.a), "must be symmetric")
		})
	}
}

func TestGuard(t *testing.T) {
	snap := testSnapshot([]model.Category{
		{ID: "power-tools-1", Name: "Herramientas Eléctricas"},
		{ID: "screws-1", Name: "Tornilleria"},
		{ID: "tools-1", Name: "Herramientas Manuales"},
	})

	tests := []struct {
		name   string
		cand   model.Candidate
		wantID string
		newCat bool
	}{
		{
			name:   "accent-only difference",
			cand:   model.Candidate{CategoryID: "tornilleria", CategoryName: "Tornillería", IsNewCategory: true},
			wantID: "screws-1",
		},
		{
			name:   "closest lexical variant",
			cand:   model.Candidate{CategoryID: "herramientas", CategoryName: "Herramientas", IsNewCategory: true},
			wantID: "tools-1",
		},
		{
			name:   "distinct concept stays new",
			cand:   model.Candidate{CategoryID: "pinturas", CategoryName: "Pinturas", IsNewCategory: true},
			wantID: "pinturas",
			newCat: true,
		},
		{
			name:   "existing candidate untouched",
			cand:   model.Candidate{CategoryID: "x", CategoryName: "Tornilleria", Strategy: model.StrategyProductSimilarity},
			wantID: "x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := snap.guard(tt.cand)
			assert.Equal(t, tt.wantID, got.CategoryID)
			assert.Equal(t, tt.newCat, got.IsNewCategory)
			if tt.cand.IsNewCategory && !tt.newCat {
				assert.Equal(t, model.StrategyExistingCategorySimilarity, got.Strategy)
			}
		})
	}
}
