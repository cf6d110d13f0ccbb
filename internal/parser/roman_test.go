package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRomanToInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"I", 1},
		{"IV", 4},
		{"IX", 9},
		{"XII", 12},
		{"XLII", 42},
		{"MCMXCIV", 1994},
		{"99", 99},
		{"7", 7},
		{"xiv", 14},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, RomanToInt(tt.in))
		})
	}
}
