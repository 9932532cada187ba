package textutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"A", "B", "C"}, SplitLines("A\nB\nC"))
	assert.Equal(t, []string{"Fast delivery", "Support"}, SplitLines("  Fast delivery \r\n\n Support\n"))
	assert.Empty(t, SplitLines(""))
	assert.Empty(t, SplitLines("\n \n"))
}

func TestSplitComma(t *testing.T) {
	assert.Equal(t, []string{"React", "TypeScript", "Go"}, SplitComma("React, TypeScript ,,Go,"))
	assert.Empty(t, SplitComma(" , "))
}

func TestEstimateReadingTime(t *testing.T) {
	assert.Equal(t, 1, EstimateReadingTime(""))
	assert.Equal(t, 1, EstimateReadingTime("short post"))
	assert.Equal(t, 1, EstimateReadingTime(strings.Repeat("word ", 200)))
	assert.Equal(t, 2, EstimateReadingTime(strings.Repeat("word ", 201)))
	assert.Equal(t, 5, EstimateReadingTime(strings.Repeat("word ", 1000)))
}
