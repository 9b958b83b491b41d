package lttoolbox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func scan_all(s string) []token {
	var in = NewInputFile(strings.NewReader(s))
	var toks []token
	for {
		var t = in.next_token()
		if t.kind == tok_eof {
			return toks
		}
		toks = append(toks, t)
	}
}

func TestScannerClassifiesTokens(t *testing.T) {
	var toks = scan_all("a\x00[b]c")

	assert.Equal(t, []token{
		{kind: tok_char, c: 'a'},
		{kind: tok_null},
		{kind: tok_blank, text: "[b]"},
		{kind: tok_char, c: 'c'},
	}, toks)
}

func TestScannerEscape(t *testing.T) {
	var toks = scan_all(`\^a`)

	assert.Equal(t, []token{
		{kind: tok_char, c: '^', escaped: true},
		{kind: tok_char, c: 'a'},
	}, toks)
}

func TestScannerEscapedBracketInsideSuperblank(t *testing.T) {
	var toks = scan_all(`[a\]b]`)

	assert.Equal(t, []token{
		{kind: tok_blank, text: `[a\]b]`},
	}, toks)
}

func TestScannerUnterminatedSuperblank(t *testing.T) {
	var toks = scan_all("[oops")

	assert.Equal(t, []token{
		{kind: tok_blank, text: "[oops"},
	}, toks)
}

func TestScannerUnterminatedSuperblankBeforeNull(t *testing.T) {
	var toks = scan_all("[oops\x00x")

	assert.Equal(t, []token{
		{kind: tok_blank, text: "[oops"},
		{kind: tok_null},
		{kind: tok_char, c: 'x'},
	}, toks)
}

func TestUngetToken(t *testing.T) {
	var in = NewInputFile(strings.NewReader("b"))
	in.unget_token(token{kind: tok_char, c: '^', escaped: true})

	var first = in.next_token()
	assert.Equal(t, token{kind: tok_char, c: '^', escaped: true}, first)
	assert.Equal(t, token{kind: tok_char, c: 'b'}, in.next_token())
	assert.Equal(t, tok_eof, in.next_token().kind)
}
