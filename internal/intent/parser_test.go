package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_CommandScenarios(t *testing.T) {
	parser := NewDefaultParser()

	tests := []struct {
		name          string
		command       string
		expectedType  Type
		expectedStart string
		expectedEnd   string
		expectedConf  float64
		expectValid   bool
	}{
		{
			name:          "route with origin and destination",
			command:       "导航从北京到上海",
			expectedType:  TypeRoute,
			expectedStart: "北京",
			expectedEnd:   "上海",
			expectedConf:  MatchConfidence,
			expectValid:   true,
		},
		{
			name:          "destination only",
			command:       "去天安门广场",
			expectedType:  TypeDestination,
			expectedStart: CurrentLocation,
			expectedEnd:   "天安门广场",
			expectedConf:  MatchConfidence,
			expectValid:   true,
		},
		{
			name:          "start only",
			command:       "从公司导航回家",
			expectedType:  TypeStart,
			expectedStart: "公司",
			expectedEnd:   NoDestination,
			expectedConf:  MatchConfidence,
			expectValid:   true,
		},
		{
			name:         "unrelated text",
			command:      "随便说点什么",
			expectedType: TypeUnknown,
			expectedConf: UnknownConfidence,
			expectValid:  true,
		},
		{
			name:          "politeness prefix and city variants",
			command:       "请帮我导航从北京市到上海市",
			expectedType:  TypeRoute,
			expectedStart: "北京",
			expectedEnd:   "上海",
			expectedConf:  MatchConfidence,
			expectValid:   true,
		},
		{
			name:          "route with 至 connective",
			command:       "从杭州至南京",
			expectedType:  TypeRoute,
			expectedStart: "杭州",
			expectedEnd:   "南京",
			expectedConf:  MatchConfidence,
			expectValid:   true,
		},
		{
			name:          "route with connective before to-marker",
			command:       "请帮我从北京导航到上海",
			expectedType:  TypeRoute,
			expectedStart: "北京",
			expectedEnd:   "上海",
			expectedConf:  MatchConfidence,
			expectValid:   true,
		},
		{
			name:          "bare separator route",
			command:       "北京到上海",
			expectedType:  TypeRoute,
			expectedStart: "北京",
			expectedEnd:   "上海",
			expectedConf:  MatchConfidence,
			expectValid:   true,
		},
		{
			name:          "bare separator with connective origin",
			command:       "北京导航到上海",
			expectedType:  TypeRoute,
			expectedStart: "北京",
			expectedEnd:   "上海",
			expectedConf:  MatchConfidence,
			expectValid:   true,
		},
		{
			name:          "arrow separator route",
			command:       "北京->上海",
			expectedType:  TypeRoute,
			expectedStart: "北京",
			expectedEnd:   "上海",
			expectedConf:  MatchConfidence,
			expectValid:   true,
		},
		{
			name:          "reversed destination-first route",
			command:       "去上海从北京",
			expectedType:  TypeRoute,
			expectedStart: "北京",
			expectedEnd:   "上海",
			expectedConf:  MatchConfidence,
			expectValid:   true,
		},
		{
			name:          "connective alone is not an origin",
			command:       "导航到天安门广场",
			expectedType:  TypeDestination,
			expectedStart: CurrentLocation,
			expectedEnd:   "天安门广场",
			expectedConf:  MatchConfidence,
			expectValid:   true,
		},
		{
			name:          "destination via 前往",
			command:       "前往虹桥火车站",
			expectedType:  TypeDestination,
			expectedStart: CurrentLocation,
			expectedEnd:   "虹桥火车站",
			expectedConf:  MatchConfidence,
			expectValid:   true,
		},
		{
			name:         "empty input",
			command:      "",
			expectedType: TypeUnknown,
			expectedConf: UnknownConfidence,
			expectValid:  true,
		},
		{
			name:         "whitespace only",
			command:      "   \t  ",
			expectedType: TypeUnknown,
			expectedConf: UnknownConfidence,
			expectValid:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parser.Parse(tt.command)

			require.NotNil(t, result)
			assert.Equal(t, tt.expectedType, result.Type)
			assert.Equal(t, tt.expectedStart, result.Entities.Start)
			assert.Equal(t, tt.expectedEnd, result.Entities.End)
			assert.Equal(t, tt.expectedConf, result.Confidence)
			assert.Equal(t, tt.command, result.OriginalCommand)
			assert.NotEmpty(t, result.ParsedIntent)

			validation := Validate(result)
			assert.Equal(t, tt.expectValid, validation.Valid)
		})
	}
}

func TestParse_RuleOrderIsRouteFirst(t *testing.T) {
	parser := NewDefaultParser()

	// Contains both a from-marker and a to-marker; the destination-only
	// pattern would also match a substring, but the route rule must win.
	result := parser.Parse("从北京到上海")

	assert.Equal(t, TypeRoute, result.Type)
	assert.Equal(t, "北京", result.Entities.Start)
	assert.Equal(t, "上海", result.Entities.End)
}

func TestParse_AlwaysWellFormed(t *testing.T) {
	parser := NewDefaultParser()

	inputs := []string{
		"",
		"从",
		"到",
		"从 到",
		"去",
		"！！！@@@",
		"导航",
		"从北京到上海到广州",
		"请请请帮帮我我",
	}

	for _, input := range inputs {
		result := parser.Parse(input)
		require.NotNil(t, result, "input %q", input)
		assert.NotEmpty(t, result.Type, "input %q", input)
		assert.GreaterOrEqual(t, result.Confidence, 0.0, "input %q", input)
		assert.LessOrEqual(t, result.Confidence, 1.0, "input %q", input)
		assert.Equal(t, input, result.OriginalCommand, "input %q", input)
	}
}

func TestParse_GreedyLeftToRightCapture(t *testing.T) {
	parser := NewDefaultParser()

	// Multiple connectives: the first rule's capture groups decide,
	// with no backtracking across rules once one matches.
	result := parser.Parse("从北京到上海到广州")

	assert.Equal(t, TypeRoute, result.Type)
	assert.Equal(t, "北京", result.Entities.Start)
	assert.Equal(t, "上海到广州", result.Entities.End)
}

func TestParse_DetectsDestinationCategory(t *testing.T) {
	parser := NewDefaultParser()

	result := parser.Parse("去首都国际机场")

	assert.Equal(t, TypeDestination, result.Type)
	assert.Equal(t, "机场", result.Category)
	// Category detection never rewrites the entity text.
	assert.Contains(t, result.Entities.End, "机场")
}

func TestParse_ParsedIntentDescription(t *testing.T) {
	parser := NewDefaultParser()

	tests := []struct {
		command  string
		expected string
	}{
		{"从北京到上海", "从北京导航到上海"},
		{"去天安门广场", "从当前位置导航到天安门广场"},
		{"从公司出发", "从公司出发"},
		{"随便说点什么", "无法识别的导航指令"},
	}

	for _, tt := range tests {
		result := parser.Parse(tt.command)
		assert.Equal(t, tt.expected, result.ParsedIntent, "command %q", tt.command)
	}
}
