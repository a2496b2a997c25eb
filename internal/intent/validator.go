package intent

// Validation is the outcome of checking an intent's required fields.
type Validation struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// Validate applies the type-specific required-field checks. It is a
// predicate, not an exceptional path: it never panics and an invalid
// result carries a human-readable reason.
//
// route_navigation requires both start and end; destination_navigation
// requires end; start_navigation and unknown have no required fields,
// though callers typically reject unknown intents on confidence.
func Validate(in *Intent) Validation {
	switch in.Type {
	case TypeRoute:
		if !in.HasStart() {
			return Validation{Valid: false, Reason: "缺少起点位置"}
		}
		if !in.HasEnd() {
			return Validation{Valid: false, Reason: "缺少目的地位置"}
		}
	case TypeDestination:
		if !in.HasEnd() {
			return Validation{Valid: false, Reason: "缺少目的地位置"}
		}
	}
	return Validation{Valid: true}
}
