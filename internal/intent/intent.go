// Package intent implements the rule-based navigation command parser:
// text cleaning, ordered template matching, location alias normalization
// and intent validation. Parsing is deterministic and never fails; the
// worst case is an unknown intent with low confidence.
package intent

// Type classifies a parsed navigation command.
type Type string

const (
	TypeRoute       Type = "route_navigation"
	TypeDestination Type = "destination_navigation"
	TypeStart       Type = "start_navigation"
	TypeUnknown     Type = "unknown"
)

// Sentinel entity values. Downstream URL templating always needs a
// placeholder, so absent fields carry these instead of empty strings.
const (
	CurrentLocation = "当前位置"
	NoDestination   = "未指定目的地"
)

// Confidence is a static weight per rule, not a probabilistic estimate.
const (
	MatchConfidence   = 0.9
	UnknownConfidence = 0.1
)

// Entities holds the extracted location fields. Both are either a
// non-empty trimmed string or a sentinel; for unknown intents both are
// empty.
type Entities struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// Intent is the immutable result of parsing one command.
type Intent struct {
	Type            Type     `json:"type"`
	Confidence      float64  `json:"confidence"`
	Entities        Entities `json:"entities"`
	OriginalCommand string   `json:"originalCommand"`
	ParsedIntent    string   `json:"parsedIntent"`

	// Category is the destination category detected during
	// normalization, when any. Detection never rewrites the entity
	// text.
	Category string `json:"category,omitempty"`
}

// HasStart reports whether the intent carries a concrete start location.
func (i *Intent) HasStart() bool {
	return i.Entities.Start != "" && i.Entities.Start != CurrentLocation
}

// HasEnd reports whether the intent carries a concrete destination.
func (i *Intent) HasEnd() bool {
	return i.Entities.End != "" && i.Entities.End != NoDestination
}
