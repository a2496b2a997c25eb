package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		intent      *Intent
		expectValid bool
	}{
		{
			name: "route with both locations",
			intent: &Intent{
				Type:     TypeRoute,
				Entities: Entities{Start: "北京", End: "上海"},
			},
			expectValid: true,
		},
		{
			name: "route with sentinel end is invalid regardless of start",
			intent: &Intent{
				Type:     TypeRoute,
				Entities: Entities{Start: "北京", End: NoDestination},
			},
			expectValid: false,
		},
		{
			name: "route with sentinel start is invalid",
			intent: &Intent{
				Type:     TypeRoute,
				Entities: Entities{Start: CurrentLocation, End: "上海"},
			},
			expectValid: false,
		},
		{
			name: "route with empty start is invalid",
			intent: &Intent{
				Type:     TypeRoute,
				Entities: Entities{End: "上海"},
			},
			expectValid: false,
		},
		{
			name: "destination with concrete end",
			intent: &Intent{
				Type:     TypeDestination,
				Entities: Entities{Start: CurrentLocation, End: "机场"},
			},
			expectValid: true,
		},
		{
			name: "destination with sentinel end is invalid",
			intent: &Intent{
				Type:     TypeDestination,
				Entities: Entities{Start: CurrentLocation, End: NoDestination},
			},
			expectValid: false,
		},
		{
			name: "start navigation passes without destination",
			intent: &Intent{
				Type:     TypeStart,
				Entities: Entities{Start: "公司", End: NoDestination},
			},
			expectValid: true,
		},
		{
			name:        "unknown passes structurally",
			intent:      &Intent{Type: TypeUnknown},
			expectValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Validate(tt.intent)
			assert.Equal(t, tt.expectValid, v.Valid)
			if tt.expectValid {
				assert.Empty(t, v.Reason)
			} else {
				assert.NotEmpty(t, v.Reason)
			}
		})
	}
}
