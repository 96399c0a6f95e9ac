package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmountSimpleNumbers(t *testing.T) {
	cases := map[string]float64{
		"2":    2,
		"0.5":  0.5,
		"1,5":  1.5,
		"10":   10,
		"3.25": 3.25,
	}
	for input, expected := range cases {
		v, ok := ParseAmount(input)
		assert.True(t, ok, "input %q", input)
		assert.InDelta(t, expected, v, 1e-9, "input %q", input)
	}
}

func TestParseAmountMixedFractions(t *testing.T) {
	v, ok := ParseAmount("1 1/2")
	assert.True(t, ok)
	assert.InDelta(t, 1.5, v, 1e-9)

	v, ok = ParseAmount("1/2")
	assert.True(t, ok)
	assert.InDelta(t, 0.5, v, 1e-9)

	v, ok = ParseAmount("3/4")
	assert.True(t, ok)
	assert.InDelta(t, 0.75, v, 1e-9)
}

func TestParseAmountUnicodeFractions(t *testing.T) {
	v, ok := ParseAmount("½")
	assert.True(t, ok)
	assert.InDelta(t, 0.5, v, 1e-9)

	v, ok = ParseAmount("1½")
	assert.True(t, ok)
	assert.InDelta(t, 1.5, v, 1e-9)

	v, ok = ParseAmount("¾")
	assert.True(t, ok)
	assert.InDelta(t, 0.75, v, 1e-9)
}

func TestParseAmountRanges(t *testing.T) {
	for _, input := range []string{"4-6", "4 - 6", "4 a 6", "4 à 6", "4 to 6", "4–6"} {
		v, ok := ParseAmount(input)
		assert.True(t, ok, "input %q", input)
		assert.InDelta(t, 5, v, 1e-9, "input %q", input)
	}
}

func TestParseAmountEmbeddedNumber(t *testing.T) {
	// free text around the number is noise
	v, ok := ParseAmount("3 ovos grandes")
	assert.True(t, ok)
	assert.InDelta(t, 3, v, 1e-9)
}

func TestParseAmountUnparseable(t *testing.T) {
	for _, input := range []string{"", "   ", "a gosto", "some"} {
		_, ok := ParseAmount(input)
		assert.False(t, ok, "input %q", input)
	}
}

func TestIsNegligible(t *testing.T) {
	assert.True(t, IsNegligible("a gosto"))
	assert.True(t, IsNegligible("sal a gosto"))
	assert.True(t, IsNegligible("to taste"))
	assert.True(t, IsNegligible("al gusto"))
	assert.True(t, IsNegligible("q.b."))
	assert.False(t, IsNegligible("2 colheres"))
	assert.False(t, IsNegligible(""))
}
