package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectTokens(t *testing.T, css string) []Token {
	t.Helper()
	l := NewLexer(css)
	var toks []Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		if tok.Kind == TokenEOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

func TestLexerTokenizesSelectorAndDeclaration(t *testing.T) {
	toks := collectTokens(t, "#id.class { color: red; }")
	kinds := make([]TokenKind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	assert.Contains(t, kinds, TokenHash)
	assert.Contains(t, kinds, TokenLeftBrace)
	assert.Contains(t, kinds, TokenColon)
	assert.Contains(t, kinds, TokenSemicolon)
	assert.Contains(t, kinds, TokenRightBrace)
}

func TestLexerParsesDimensionAndPercentage(t *testing.T) {
	toks := collectTokens(t, "10px 50%")
	var dim, pct *Token
	for i := range toks {
		switch toks[i].Kind {
		case TokenDimension:
			dim = &toks[i]
		case TokenPercentage:
			pct = &toks[i]
		}
	}
	require.NotNil(t, dim)
	require.NotNil(t, pct)
	assert.Equal(t, "px", dim.Unit)
	assert.InDelta(t, 10.0, dim.Value, 0.001)
	assert.InDelta(t, 50.0, pct.Value, 0.001)
}

func TestLexerParsesQuotedString(t *testing.T) {
	toks := collectTokens(t, `"Helvetica Neue"`)
	require.Len(t, toks, 1)
	assert.Equal(t, TokenString, toks[0].Kind)
	assert.Equal(t, "Helvetica Neue", toks[0].Text)
}

func TestLexerParsesNegativeNumber(t *testing.T) {
	toks := collectTokens(t, "-5px")
	require.Len(t, toks, 1)
	assert.Equal(t, TokenDimension, toks[0].Kind)
	assert.InDelta(t, -5.0, toks[0].Value, 0.001)
}
