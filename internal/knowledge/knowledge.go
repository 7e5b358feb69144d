// Package knowledge holds the static vocabulary the rule-based classification
// strategies run against: weighted keyword entries with regex patterns, the
// coarse broad-category table, semantic hints, lexical variant groups and
// synonym sets.
package knowledge

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Veraticus/stockroom/internal/similarity"
)

// ErrInvalidEntry is returned when a knowledge base entry cannot be compiled.
var ErrInvalidEntry = errors.New("invalid knowledge base entry")

// Entry maps a category key to the vocabulary that identifies it.
type Entry struct {
	Key         string   `yaml:"key"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Primary     []string `yaml:"primary"`
	Secondary   []string `yaml:"secondary"`
	// Patterns are matched case-insensitively against normalized
	// (lowercase, accent-free) product text.
	Patterns []string `yaml:"patterns"`
	Weight   float64  `yaml:"weight"`
}

// BroadCategory is a coarse bucket used by the fallback resolver.
type BroadCategory struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// SemanticHint lists cross-lingual or synonym substrings for a category key.
type SemanticHint struct {
	Key   string   `yaml:"key"`
	Terms []string `yaml:"terms"`
}

// Base is the uncompiled knowledge base. Slice order is significant: it
// decides first-match-wins lookups.
type Base struct {
	Entries  []Entry         `yaml:"entries"`
	Broad    []BroadCategory `yaml:"broad"`
	Semantic []SemanticHint  `yaml:"semantic"`
	Variants [][]string      `yaml:"variants"`
	Synonyms [][]string      `yaml:"synonyms"`
	// Generic terms are ignored when comparing category names
	// ("Material Eléctrico" is compared as "eléctrico").
	Generic []string `yaml:"generic"`
}

// CompiledEntry is an Entry with normalized keywords and compiled patterns.
type CompiledEntry struct {
	Entry
	primary   []string
	secondary []string
	patterns  []*regexp.Regexp
}

// PrimaryKeywords returns the normalized primary keywords.
func (e *CompiledEntry) PrimaryKeywords() []string { return e.primary }

// SecondaryKeywords returns the normalized secondary keywords.
func (e *CompiledEntry) SecondaryKeywords() []string { return e.secondary }

// Regexps returns the compiled patterns in table order.
func (e *CompiledEntry) Regexps() []*regexp.Regexp { return e.patterns }

// Compiled is the immutable, ready-to-query knowledge base.
type Compiled struct {
	byKey        map[string]int
	variantIndex map[string]int
	generic      map[string]struct{}
	Entries      []CompiledEntry
	Broad        []BroadCategory
	Semantic     []SemanticHint
	Synonyms     [][]string
}

// Compile validates b and prepares it for matching.
func Compile(b *Base) (*Compiled, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: nil knowledge base", ErrInvalidEntry)
	}

	c := &Compiled{
		byKey:        make(map[string]int, len(b.Entries)),
		variantIndex: make(map[string]int),
		generic:      make(map[string]struct{}, len(b.Generic)),
		Entries:      make([]CompiledEntry, 0, len(b.Entries)),
	}

	for _, e := range b.Entries {
		if strings.TrimSpace(e.Key) == "" {
			return nil, fmt.Errorf("%w: empty key", ErrInvalidEntry)
		}
		if e.Weight <= 0 || e.Weight > 1 {
			return nil, fmt.Errorf("%w: %s: weight %.2f outside (0,1]", ErrInvalidEntry, e.Key, e.Weight)
		}
		if _, dup := c.byKey[e.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate key %s", ErrInvalidEntry, e.Key)
		}
		if e.Name == "" {
			e.Name = e.Key
		}

		ce := CompiledEntry{
			Entry:     e,
			primary:   normalizeAll(e.Primary),
			secondary: normalizeAll(e.Secondary),
		}
		for _, p := range e.Patterns {
			expr := p
			if !strings.HasPrefix(expr, "(?i)") {
				expr = "(?i)" + expr
			}
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: pattern %q: %v", ErrInvalidEntry, e.Key, p, err)
			}
			ce.patterns = append(ce.patterns, re)
		}

		c.byKey[e.Key] = len(c.Entries)
		c.Entries = append(c.Entries, ce)
	}

	for _, bc := range b.Broad {
		if bc.ID == "" || bc.Name == "" {
			return nil, fmt.Errorf("%w: broad category needs id and name", ErrInvalidEntry)
		}
		c.Broad = append(c.Broad, BroadCategory{ID: bc.ID, Name: bc.Name, Keywords: normalizeAll(bc.Keywords)})
	}

	for _, h := range b.Semantic {
		c.Semantic = append(c.Semantic, SemanticHint{Key: h.Key, Terms: normalizeAll(h.Terms)})
	}

	for i, group := range b.Variants {
		for _, v := range normalizeAll(group) {
			if _, taken := c.variantIndex[v]; !taken {
				c.variantIndex[v] = i
			}
		}
	}

	for _, set := range b.Synonyms {
		if norm := normalizeAll(set); len(norm) > 0 {
			c.Synonyms = append(c.Synonyms, norm)
		}
	}

	for _, g := range normalizeAll(b.Generic) {
		c.generic[g] = struct{}{}
	}

	return c, nil
}

// MustCompile is like Compile but panics on error. Intended for built-in tables.
func MustCompile(b *Base) *Compiled {
	c, err := Compile(b)
	if err != nil {
		panic(err)
	}
	return c
}

// Entry looks up a compiled entry by category key.
func (c *Compiled) Entry(key string) (*CompiledEntry, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return nil, false
	}
	return &c.Entries[i], true
}

// VariantGroup returns the variant group index of a normalized token.
func (c *Compiled) VariantGroup(token string) (int, bool) {
	i, ok := c.variantIndex[token]
	return i, ok
}

// IsGeneric reports whether a normalized token carries no category meaning.
func (c *Compiled) IsGeneric(token string) bool {
	_, ok := c.generic[token]
	return ok
}

// Merge returns a copy of base with override applied: entries, broad
// categories and semantic hints with a matching key replace the original in
// place, new ones are appended; variant groups, synonyms and generic terms
// are appended.
func Merge(base, override *Base) *Base {
	if base == nil {
		base = &Base{}
	}
	out := &Base{
		Entries:  append([]Entry(nil), base.Entries...),
		Broad:    append([]BroadCategory(nil), base.Broad...),
		Semantic: append([]SemanticHint(nil), base.Semantic...),
		Variants: append([][]string(nil), base.Variants...),
		Synonyms: append([][]string(nil), base.Synonyms...),
		Generic:  append([]string(nil), base.Generic...),
	}
	if override == nil {
		return out
	}

	for _, e := range override.Entries {
		replaced := false
		for i := range out.Entries {
			if out.Entries[i].Key == e.Key {
				out.Entries[i] = e
				replaced = true
				break
			}
		}
		if !replaced {
			out.Entries = append(out.Entries, e)
		}
	}

	for _, bc := range override.Broad {
		replaced := false
		for i := range out.Broad {
			if out.Broad[i].ID == bc.ID {
				out.Broad[i] = bc
				replaced = true
				break
			}
		}
		if !replaced {
			out.Broad = append(out.Broad, bc)
		}
	}

	for _, h := range override.Semantic {
		replaced := false
		for i := range out.Semantic {
			if out.Semantic[i].Key == h.Key {
				out.Semantic[i] = h
				replaced = true
				break
			}
		}
		if !replaced {
			out.Semantic = append(out.Semantic, h)
		}
	}

	out.Variants = append(out.Variants, override.Variants...)
	out.Synonyms = append(out.Synonyms, override.Synonyms...)
	out.Generic = append(out.Generic, override.Generic...)
	return out
}

func normalizeAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if n := similarity.Normalize(w); n != "" {
			out = append(out, n)
		}
	}
	return out
}
