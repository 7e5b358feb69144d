package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "lowercase", input: "Martillo TRUPER", want: "martillo truper"},
		{name: "diacritics folded", input: "Construcción Eléctrica", want: "construccion electrica"},
		{name: "punctuation becomes space", input: `Tornillo Phillips 1/4"`, want: "tornillo phillips 1 4"},
		{name: "collapses whitespace", input: "  cinta \t  aislante\n", want: "cinta aislante"},
		{name: "only symbols", input: "--//!!", want: ""},
		{name: "enye folded", input: "Piñata", want: "pinata"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, LevenshteinDistance("", ""))
	assert.Equal(t, 3, LevenshteinDistance("", "abc"))
	assert.Equal(t, 3, LevenshteinDistance("kitten", "sitting"))
	assert.Equal(t, 1, LevenshteinDistance("tornillo", "tornillos"))
	assert.Equal(t, 1, LevenshteinDistance("ñu", "nu"))
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "both empty", a: "", b: "", want: 0},
		{name: "equal after normalization", a: "Eléctrico", b: "electrico", want: 1.0},
		{name: "one edit", a: "tornillo", b: "tornillos", want: 1 - 1.0/9},
		{name: "completely different", a: "abc", b: "xyz", want: 0},
		{name: "one empty", a: "abc", b: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Levenshtein(tt.a, tt.b), 1e-9)
		})
	}
}

func TestSubstringBoost(t *testing.T) {
	assert.InDelta(t, 1.0, SubstringBoost("Pinturas", "pinturas"), 1e-9)
	assert.InDelta(t, 12.0/21.0, SubstringBoost("Herramientas", "Herramientas Manuales"), 1e-9)
	assert.InDelta(t, 12.0/21.0, SubstringBoost("Herramientas Manuales", "herramientas"), 1e-9)
	assert.Zero(t, SubstringBoost("martillo", "pintura"))
	assert.Zero(t, SubstringBoost("", "pintura"))
	assert.Zero(t, SubstringBoost("", ""))
}

func TestAdvanced(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "both empty", a: "", b: "", want: 0},
		{name: "equal", a: "Plomería", b: "plomeria", want: 1.0},
		{name: "containment uses ratio", a: "pintura", b: "pinturas vinilicas", want: 7.0 / 18.0},
		{name: "falls back to levenshtein", a: "electricidad", b: "electrico", want: 1 - float64(LevenshteinDistance("electricidad", "electrico"))/12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Advanced(tt.a, tt.b)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestTokenOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "both empty", a: "", b: "", want: 0},
		{name: "identical", a: "Martillo Truper", b: "martillo truper", want: 1.0},
		{name: "partial", a: "Martillo Truper 16oz", b: "Martillo Stanley 16oz", want: 2.0 / 4.0},
		{name: "disjoint", a: "cable thw", b: "pintura blanca", want: 0},
		{name: "duplicates ignored", a: "cinta cinta", b: "cinta", want: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TokenOverlap(tt.a, tt.b), 1e-9)
		})
	}
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"llave", "stillson", "14"}, Tokens("Llave Stillson 14\""))
	assert.Empty(t, Tokens("   "))
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "anclas-quimicas", Slug("Anclas Químicas"))
	assert.Equal(t, "tubo-pvc-1-2", Slug(`Tubo PVC 1/2"`))
	assert.Empty(t, Slug(" -- "))
}
