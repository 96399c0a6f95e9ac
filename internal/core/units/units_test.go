package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAliases(t *testing.T) {
	cases := map[string]string{
		"Colher de Sopa":    "tbsp",
		"COLHERES DE SOPA":  "tbsp",
		"cda":               "tbsp",
		"cucharada":         "tbsp",
		"colher de chá":     "tsp",
		"cdta":              "tsp",
		"xícara":            "cup",
		"xícaras":           "cup",
		"taza":              "cup",
		"Gramas":            "g",
		"kg":                "kg",
		"ml":                "ml",
		"Litros":            "l",
		"lata":              "can",
		"unidade":           "unit",
		"pound":             "lb",
		"fl oz":             "floz",
	}

	for input, expected := range cases {
		assert.Equal(t, expected, Normalize(input), "input %q", input)
	}
}

func TestNormalizeSingleLetterAliasesExactOnly(t *testing.T) {
	// "g" alone maps to grams
	assert.Equal(t, "g", Normalize("g"))
	// a single-letter alias must not fire as a substring
	assert.Equal(t, "pitada", Normalize("pitada"))
}

func TestNormalizeUnknownPassesThrough(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "pitada", Normalize(" Pitada "))
}

func TestNormalizeOrderingConflicts(t *testing.T) {
	// mililitro contains "litro" but must resolve to ml
	assert.Equal(t, "ml", Normalize("mililitro"))
	// fluid ounce must win over plain ounce
	assert.Equal(t, "floz", Normalize("fluid ounce"))
	assert.Equal(t, "oz", Normalize("ounce"))
}

func TestStripDiacritics(t *testing.T) {
	assert.Equal(t, "acucar", StripDiacritics("açúcar"))
	assert.Equal(t, "Colher de Acucar", StripDiacritics("Colher de Açúcar"))
	assert.Equal(t, "plain", StripDiacritics("plain"))
}

func TestLookup(t *testing.T) {
	def, ok := Lookup("cup")
	assert.True(t, ok)
	assert.Equal(t, ClassVolume, def.Class)
	assert.Equal(t, 240.0, def.Factor)

	_, ok = Lookup("furlong")
	assert.False(t, ok)
}

func TestLookupProfileOrdering(t *testing.T) {
	condensed := LookupProfile("leite condensado")
	assert.NotNil(t, condensed)
	assert.Equal(t, 3.2, condensed.CaloriesPerGram)

	milk := LookupProfile("leite")
	assert.NotNil(t, milk)
	assert.Equal(t, 0.62, milk.CaloriesPerGram)

	sauce := LookupProfile("molho de tomate")
	assert.NotNil(t, sauce)
	assert.Equal(t, 0.3, sauce.CaloriesPerGram)

	tomato := LookupProfile("tomate fresco")
	assert.NotNil(t, tomato)
	assert.Equal(t, 0.18, tomato.CaloriesPerGram)
}

func TestLookupProfileDiacriticsAndCase(t *testing.T) {
	sugar := LookupProfile("Açúcar refinado")
	assert.NotNil(t, sugar)
	assert.Equal(t, 4.0, sugar.CaloriesPerGram)

	assert.Nil(t, LookupProfile("kryptonite"))
	assert.Nil(t, LookupProfile(""))
}
