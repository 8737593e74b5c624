package parse

import "cssengine/bytecode"

// StripImportant implements spec.md §4.5's "optional !important parser",
// grounded on original_source/libcss/src/parse/important.c's
// parse_important state walk (S* '!' S* 'important' S*). It looks for a
// trailing "! important" suffix (case-insensitive, whitespace-tolerant) in
// a declaration's already-tokenized value and, if found, returns the value
// tokens with that suffix removed plus FlagImportant; otherwise it returns
// the tokens unchanged and flags zero.
func StripImportant(value []Token) ([]Token, bytecode.Flags) {
	i := len(value)
	i = skipTrailingWhitespace(value, i)

	if i == 0 || value[i-1].Kind != TokenIdent || !equalFoldASCII(value[i-1].Text, "important") {
		return value, 0
	}
	i--
	i = skipTrailingWhitespace(value, i)

	if i == 0 || !isBang(value[i-1]) {
		return value, 0
	}
	i--
	i = skipTrailingWhitespace(value, i)

	return value[:i], bytecode.FlagImportant
}

func isBang(t Token) bool {
	return t.Kind == TokenDelim && t.Text == "!"
}

func skipTrailingWhitespace(value []Token, i int) int {
	for i > 0 && value[i-1].Kind == TokenWhitespace {
		i--
	}
	return i
}

func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
