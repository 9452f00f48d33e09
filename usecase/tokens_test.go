package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty text floors at one", "", 1},
		{"short text floors at one", "Hi", 1},
		{"exactly four chars", "abcd", 1},
		{"eight chars", "abcdefgh", 2},
		{"hundred chars", strings.Repeat("a", 100), 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateTokens(tt.text))
		})
	}
}

func TestEstimateTokensMonotonic(t *testing.T) {
	prev := 0
	for length := 0; length <= 256; length++ {
		est := EstimateTokens(strings.Repeat("x", length))
		assert.GreaterOrEqual(t, est, 1)
		assert.GreaterOrEqual(t, est, prev, "estimate must not decrease with length %d", length)
		prev = est
	}
}
