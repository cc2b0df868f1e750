package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorFor(t *testing.T) {
	assert.Equal(t, "#1976d2", ColorFor(0))
	assert.Equal(t, "#607d8b", ColorFor(7))
	assert.Equal(t, "#1976d2", ColorFor(8))
	assert.Equal(t, "#ff9800", ColorFor(9))
}

func TestShade(t *testing.T) {
	tests := []struct {
		name   string
		hex    string
		pct    float64
		expect string
	}{
		{"darken 10", "#1976d2", -10, "#176abd"},
		{"darken 20", "#1976d2", -20, "#145ea8"},
		{"lighten 50", "#000000", 50, "#808080"},
		{"lighten 100", "#123456", 100, "#ffffff"},
		{"no change", "#ff9800", 0, "#ff9800"},
		{"invalid length", "#fff", -10, "#fff"},
		{"invalid digits", "#zzzzzz", -10, "#zzzzzz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, Shade(tt.hex, tt.pct))
		})
	}
}
