package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const portugueseText = "Misture o leite condensado com o chocolate em pó e a manteiga em uma panela, " +
	"mexendo sempre em fogo baixo até desgrudar do fundo. Deixe esfriar e enrole os docinhos " +
	"com as mãos untadas de manteiga antes de passar no granulado."

const englishText = "Preheat the oven to a moderate temperature and mix the flour with the sugar " +
	"and the softened butter until the dough becomes smooth and elastic. Shape the cookies and " +
	"bake them on a lined tray until the edges turn golden brown."

func TestDetectExplicitHintWins(t *testing.T) {
	assert.Equal(t, "pt-BR", Detect("", "pt-BR"))
	assert.Equal(t, "ja-JP", Detect(englishText, "ja-JP"))
}

func TestDetectAutoHintIsIgnored(t *testing.T) {
	assert.Equal(t, "en-US", Detect(englishText, "auto"))
}

func TestDetectShortTextYieldsAuto(t *testing.T) {
	assert.Equal(t, AutoLanguage, Detect("oi", ""))
	assert.Equal(t, AutoLanguage, Detect("", ""))
}

func TestDetectPortuguese(t *testing.T) {
	assert.Equal(t, "pt-BR", Detect(portugueseText, ""))
}

func TestDetectEnglish(t *testing.T) {
	assert.Equal(t, "en-US", Detect(englishText, ""))
}
