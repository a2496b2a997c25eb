package navigation

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveMode(t *testing.T) {
	tests := []struct {
		mode     TransportMode
		provider Provider
		expected string
	}{
		{ModeTransit, ProviderBaidu, "transit"},
		{ModeTransit, ProviderAmap, "bus"},
		{ModeDriving, ProviderBaidu, "driving"},
		{ModeDriving, ProviderAmap, "car"},
		{ModeWalking, ProviderBaidu, "walking"},
		{ModeWalking, ProviderAmap, "walk"},
		{TransportMode("flying"), ProviderBaidu, "transit"},
		{TransportMode("flying"), ProviderAmap, "bus"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ResolveMode(tt.mode, tt.provider),
			"mode %s provider %s", tt.mode, tt.provider)
	}
}

func TestBuildURL_Baidu(t *testing.T) {
	raw, ok, err := BuildURL(ProviderBaidu, "北京", "上海", ModeTransit)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, strings.HasPrefix(raw, "https://api.map.baidu.com/direction?"))

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	q := parsed.Query()
	assert.Equal(t, "北京", q.Get("origin"))
	assert.Equal(t, "上海", q.Get("destination"))
	assert.Equal(t, "transit", q.Get("mode"))
	assert.Equal(t, "bd09ll", q.Get("coord_type"))
}

func TestBuildURL_Amap(t *testing.T) {
	raw, ok, err := BuildURL(ProviderAmap, "当前位置", "虹桥火车站", ModeDriving)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, strings.HasPrefix(raw, "https://ditu.amap.com/dir?"))

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	q := parsed.Query()
	assert.Equal(t, "当前位置", q.Get("from[name]"))
	assert.Equal(t, "虹桥火车站", q.Get("to[name]"))
	assert.Equal(t, "car", q.Get("type"))
}

func TestBuildURL_Errors(t *testing.T) {
	_, _, err := BuildURL(Provider("google_map"), "a", "b", ModeTransit)
	assert.Error(t, err)

	_, _, err = BuildURL(ProviderBaidu, "", "b", ModeTransit)
	assert.Error(t, err)

	_, _, err = BuildURL(ProviderBaidu, "a", "", ModeTransit)
	assert.Error(t, err)
}

func TestBuildURL_LengthLimit(t *testing.T) {
	long := strings.Repeat("很长的地址", 200)
	_, ok, err := BuildURL(ProviderBaidu, long, long, ModeTransit)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProviderName(t *testing.T) {
	assert.Equal(t, "百度地图", ProviderName(ProviderBaidu))
	assert.Equal(t, "高德地图", ProviderName(ProviderAmap))
	assert.Equal(t, "osm", ProviderName(Provider("osm")))
}

func TestValidProvider(t *testing.T) {
	assert.True(t, ValidProvider(ProviderBaidu))
	assert.True(t, ValidProvider(ProviderAmap))
	assert.False(t, ValidProvider(Provider("google_map")))
}
