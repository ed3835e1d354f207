package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssertInvariant(t *testing.T) {
	assert.NotPanics(t, func() {
		AssertInvariant(true, "should not panic")
	})

	assert.PanicsWithValue(t, "invariant violated - boom", func() {
		AssertInvariant(false, "boom")
	})
}

func TestTruncateForLog(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		maxLen int
		want   string
	}{
		{
			name:   "short text unchanged",
			text:   "/deploy",
			maxLen: 20,
			want:   "/deploy",
		},
		{
			name:   "exact length unchanged",
			text:   "abcde",
			maxLen: 5,
			want:   "abcde",
		},
		{
			name:   "long text truncated",
			text:   "/configure https://example.com {\"a\":1}",
			maxLen: 10,
			want:   "/configure...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateForLog(tt.text, tt.maxLen))
		})
	}
}
