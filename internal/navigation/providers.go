// Package navigation turns validated intents into live navigation:
// web URL templating for the supported map providers, the MCP bridge
// to provider-hosted navigation tools, and local browser launching.
package navigation

import (
	"fmt"
	"net/url"
)

// Provider identifies a supported map service.
type Provider string

const (
	ProviderBaidu Provider = "baidu_map"
	ProviderAmap  Provider = "amap"
)

// TransportMode is the provider-neutral travel mode carried through
// the pipeline. Each provider uses its own vocabulary on the wire.
type TransportMode string

const (
	ModeTransit TransportMode = "transit"
	ModeDriving TransportMode = "driving"
	ModeWalking TransportMode = "walking"
)

// providerModes maps the neutral mode to each provider's own value.
var providerModes = map[TransportMode]map[Provider]string{
	ModeTransit: {ProviderBaidu: "transit", ProviderAmap: "bus"},
	ModeDriving: {ProviderBaidu: "driving", ProviderAmap: "car"},
	ModeWalking: {ProviderBaidu: "walking", ProviderAmap: "walk"},
}

// ProviderName returns the display name for a provider.
func ProviderName(p Provider) string {
	switch p {
	case ProviderBaidu:
		return "百度地图"
	case ProviderAmap:
		return "高德地图"
	default:
		return string(p)
	}
}

// ValidProvider reports whether p names a supported map service.
func ValidProvider(p Provider) bool {
	return p == ProviderBaidu || p == ProviderAmap
}

// ResolveMode translates the neutral transport mode into the given
// provider's vocabulary, falling back to that provider's transit value
// for unrecognized modes.
func ResolveMode(mode TransportMode, p Provider) string {
	if m, ok := providerModes[mode][p]; ok {
		return m
	}
	return providerModes[ModeTransit][p]
}

// maxURLLength is the practical limit beyond which browsers may
// truncate or refuse the request.
const maxURLLength = 2000

// BuildURL templates a web navigation URL for the provider. It is the
// local fallback used when the provider's MCP endpoint is unavailable.
// The returned bool reports whether the URL fits the practical length
// limit.
func BuildURL(p Provider, origin, destination string, mode TransportMode) (string, bool, error) {
	if origin == "" || destination == "" {
		return "", false, fmt.Errorf("origin and destination are required")
	}

	var raw string
	switch p {
	case ProviderBaidu:
		params := url.Values{}
		params.Set("origin", origin)
		params.Set("destination", destination)
		params.Set("mode", ResolveMode(mode, p))
		params.Set("region", "全国")
		params.Set("output", "html")
		params.Set("coord_type", "bd09ll")
		raw = "https://api.map.baidu.com/direction?" + params.Encode()
	case ProviderAmap:
		params := url.Values{}
		params.Set("from[name]", origin)
		params.Set("to[name]", destination)
		params.Set("type", ResolveMode(mode, p))
		params.Set("policy", "0")
		params.Set("dateTime", "now")
		raw = "https://ditu.amap.com/dir?" + params.Encode()
	default:
		return "", false, fmt.Errorf("unsupported map provider: %s", p)
	}

	return raw, len(raw) <= maxURLLength, nil
}
