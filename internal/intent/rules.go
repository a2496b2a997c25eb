package intent

import (
	"regexp"
	"strings"
)

// templateRule is one ordered pattern-matching unit: a recognition
// pattern paired with an extraction function, an intent type tag and a
// fixed confidence.
type templateRule struct {
	name       string
	pattern    *regexp.Regexp
	intentType Type
	confidence float64
	// guard, when set, can decline a pattern match so the remaining
	// rules still get a chance at the text.
	guard   func(groups []string) bool
	extract func(groups []string) Entities
}

var (
	// 从 X [导航] 到/至/去/前往 Y — origin and destination both
	// present, with the 导航 connective absorbed so it never leaks
	// into the origin ("从北京导航到上海" → 北京, not 北京导航).
	routePattern = regexp.MustCompile(`从\s*(.+?)\s*(?:导航)?\s*(?:到|至|去|前往)\s*(.+)`)

	// 去 Y 从 X — destination named first, origin after.
	reversedRoutePattern = regexp.MustCompile(`去\s*(.+?)\s*从\s*(.+)`)

	// X 到/至/->/→ Y — bare separator form with no 从-marker.
	bareRoutePattern = regexp.MustCompile(`(.+?)\s*(?:到|至|->|→)\s*(.+)`)

	// 去/到/前往 Y — destination only, origin implied.
	destinationPattern = regexp.MustCompile(`(?:去|到|前往)\s*(.+)`)

	// 从 X 出发/导航/回家/走 — origin only, destination still unknown.
	startPattern = regexp.MustCompile(`从\s*(.+?)\s*(?:出发|启程|导航|回家|走)`)
)

// rules are tried in order and the first match wins. The route
// patterns are supersets of the destination-only pattern, so they
// must stay in front: a command with both a clear origin and
// destination must never be classified as destination-only. The bare
// form declines when the text before the separator is only the 导航
// connective ("导航到天安门" has no origin).
var rules = []templateRule{
	{
		name:       "route",
		pattern:    routePattern,
		intentType: TypeRoute,
		confidence: MatchConfidence,
		extract: func(groups []string) Entities {
			return Entities{
				Start: fieldOrSentinel(groups[1], CurrentLocation),
				End:   fieldOrSentinel(groups[2], NoDestination),
			}
		},
	},
	{
		name:       "reversed-route",
		pattern:    reversedRoutePattern,
		intentType: TypeRoute,
		confidence: MatchConfidence,
		extract: func(groups []string) Entities {
			return Entities{
				Start: fieldOrSentinel(groups[2], CurrentLocation),
				End:   fieldOrSentinel(groups[1], NoDestination),
			}
		},
	},
	{
		name:       "bare-route",
		pattern:    bareRoutePattern,
		intentType: TypeRoute,
		confidence: MatchConfidence,
		guard: func(groups []string) bool {
			return trimConnective(groups[1]) != ""
		},
		extract: func(groups []string) Entities {
			return Entities{
				Start: fieldOrSentinel(trimConnective(groups[1]), CurrentLocation),
				End:   fieldOrSentinel(groups[2], NoDestination),
			}
		},
	},
	{
		name:       "destination",
		pattern:    destinationPattern,
		intentType: TypeDestination,
		confidence: MatchConfidence,
		extract: func(groups []string) Entities {
			return Entities{
				Start: CurrentLocation,
				End:   fieldOrSentinel(groups[1], NoDestination),
			}
		},
	},
	{
		name:       "start",
		pattern:    startPattern,
		intentType: TypeStart,
		confidence: MatchConfidence,
		extract: func(groups []string) Entities {
			return Entities{
				Start: fieldOrSentinel(groups[1], CurrentLocation),
				End:   NoDestination,
			}
		},
	},
}

func fieldOrSentinel(s, sentinel string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return sentinel
	}
	return s
}

// trimConnective drops a trailing 导航 connective from a captured
// origin segment ("北京导航" → "北京").
func trimConnective(s string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "导航"))
}

// match evaluates the ordered rule list against cleaned text. The
// second return value is false when no rule matched; that is a normal
// outcome feeding the unknown path, not an error.
func match(cleaned string) (Type, float64, Entities, bool) {
	if cleaned == "" {
		return TypeUnknown, UnknownConfidence, Entities{}, false
	}
	for _, r := range rules {
		groups := r.pattern.FindStringSubmatch(cleaned)
		if groups == nil {
			continue
		}
		if r.guard != nil && !r.guard(groups) {
			continue
		}
		return r.intentType, r.confidence, r.extract(groups), true
	}
	return TypeUnknown, UnknownConfidence, Entities{}, false
}
