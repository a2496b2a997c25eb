package intent

import "strings"

// Normalizer rewrites raw extracted location strings into canonical
// forms using the city alias table and detects destination categories.
// It holds only read-only tables and is safe for concurrent use.
type Normalizer struct {
	cities     AliasTable
	categories AliasTable
}

// NewNormalizer builds a normalizer over the given tables. The tables
// must not be mutated afterwards.
func NewNormalizer(cities, categories AliasTable) *Normalizer {
	return &Normalizer{cities: cities, categories: categories}
}

// NormalizeField canonicalizes one entity field. The first city entry
// with any variant appearing as a substring wins; every occurrence of
// every variant in that entry is rewritten to the canonical name, and
// no further city entries are considered. Sentinels and unmatched
// fields pass through unchanged; normalization never fails.
func (n *Normalizer) NormalizeField(field string) string {
	if field == "" || field == CurrentLocation || field == NoDestination {
		return field
	}
	for _, entry := range n.cities {
		if !containsAny(field, entry.Variants) {
			continue
		}
		for _, variant := range entry.Variants {
			field = strings.ReplaceAll(field, variant, entry.Canonical)
		}
		break
	}
	return strings.TrimSpace(field)
}

// DetectCategory returns the canonical destination category named or
// implied by the field, or "" when none matches. The field text itself
// is never rewritten.
func (n *Normalizer) DetectCategory(field string) string {
	if field == "" || field == CurrentLocation || field == NoDestination {
		return ""
	}
	for _, entry := range n.categories {
		if strings.Contains(field, entry.Canonical) || containsAny(field, entry.Variants) {
			return entry.Canonical
		}
	}
	return ""
}

// Normalize canonicalizes both entity fields.
func (n *Normalizer) Normalize(e Entities) Entities {
	return Entities{
		Start: n.NormalizeField(e.Start),
		End:   n.NormalizeField(e.End),
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
