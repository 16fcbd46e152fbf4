package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/disaster-relief-api/internal/constants"
)

func TestNewPaginationParams(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"defaults for zero values", 0, 0, 1, constants.DefaultPageSize, 0},
		{"second page", 2, 10, 2, 10, 10},
		{"limit above max falls back", 1, constants.MaxPageSize + 1, 1, constants.DefaultPageSize, 0},
		{"negative page", -3, 5, 1, 5, 0},
		{"huge page clamped", math.MaxInt, constants.MaxPageSize, constants.MaxPage, constants.MaxPageSize, (constants.MaxPage - 1) * constants.MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPaginationParams(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
			assert.Equal(t, tt.wantOffset, p.Offset)
		})
	}
}

func TestGenerateSecret(t *testing.T) {
	a, err := GenerateSecret(16)
	assert.NoError(t, err)
	assert.Len(t, a, 32)

	b, err := GenerateSecret(16)
	assert.NoError(t, err)
	assert.NotEqual(t, a, b)
}
