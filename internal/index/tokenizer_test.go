package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFoldsCaseAndAccents(t *testing.T) {
	assert.Equal(t, "cafe", Normalize("CAFÉ"))
	assert.Equal(t, "cafe", Normalize("café"))
	assert.Equal(t, "uber", Normalize("Über"))
}

func TestTokenizeDropsStopwords(t *testing.T) {
	tokens := Tokenize("The cat is on the mat")
	assert.Equal(t, []string{"cat", "mat"}, tokens)
}

func TestTokenizeSplitsOnNonWordRunes(t *testing.T) {
	tokens := Tokenize("foo-bar_baz, qux42!")
	assert.Equal(t, []string{"foo", "bar_baz", "qux42"}, tokens)
}

func TestTokenizeMatchesAccentedQueryAgainstUppercaseIndex(t *testing.T) {
	assert.Equal(t, Tokenize("café"), Tokenize("CAFE"))
}

func TestTokenizeEmpty(t *testing.T) {
	assert.Nil(t, Tokenize(""))
	assert.Empty(t, Tokenize("the and of"))
}

func TestTermsKeepsStopwords(t *testing.T) {
	terms := Terms("The Cat")
	assert.Equal(t, []string{"the", "cat"}, terms)
}
