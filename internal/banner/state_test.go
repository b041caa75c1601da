package banner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEdge(t *testing.T) {
	tests := []struct {
		in   string
		want Edge
		ok   bool
	}{
		{"top", EdgeTop, true},
		{"", EdgeTop, true},
		{"bottom", EdgeBottom, true},
		{"left", EdgeTop, false},
	}
	for _, tt := range tests {
		got, ok := ParseEdge(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "hidden", PhaseHidden.String())
	assert.Equal(t, "changing", PhaseChangingProperty.String())
	assert.Equal(t, "unknown", Phase(42).String())
}

func TestChangeMerge(t *testing.T) {
	text, on, off := "a", true, false

	var c Change
	assert.True(t, c.empty())

	c.merge(Change{Text: &text})
	c.merge(Change{Activity: &on})
	c.merge(Change{Activity: &off})
	text = "mutated"

	assert.False(t, c.empty())
	assert.Equal(t, "a", *c.Text, "merge copies values")
	assert.False(t, *c.Activity, "later values overwrite")
}
