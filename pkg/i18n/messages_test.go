package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	assert.Equal(t, language.Russian, Match("ru-RU,ru;q=0.9,en;q=0.8"))
	assert.Equal(t, language.Vietnamese, Match("vi"))
	assert.Equal(t, language.English, Match("de-DE"))
	assert.Equal(t, language.English, Match(""))
}

func TestT(t *testing.T) {
	assert.Equal(t, "Билеты", T(language.Russian, MenuTickets))
	assert.Equal(t, "+12% vs previous period", T(language.English, MsgTrendChange, "+", 12.0))
	assert.Equal(t, "unknown.key", T(language.Vietnamese, "unknown.key"))
}

func TestCatalogsAreComplete(t *testing.T) {
	for key := range catalog[language.English] {
		for _, lang := range supported {
			_, ok := catalog[lang][key]
			assert.True(t, ok, "%s missing %q", lang, key)
		}
	}
}
