package lttoolbox

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestAlphabetTagCodes(t *testing.T) {
	var a = NewAlphabet()

	var n = a.IncludeSymbol("<n>")
	var pl = a.IncludeSymbol("<pl>")

	assert.Equal(t, int32(-1), n)
	assert.Equal(t, int32(-2), pl)
	assert.Equal(t, n, a.IncludeSymbol("<n>"), "codes are stable once assigned")

	var code, ok = a.SymbolCode("<n>")
	assert.True(t, ok)
	assert.Equal(t, n, code)

	_, ok = a.SymbolCode("<adj>")
	assert.False(t, ok)
	assert.False(t, a.IsSymbolDefined("<adj>"), "lookup must not auto-create")

	assert.True(t, a.IsTag(n))
	assert.False(t, a.IsTag('n'))
	assert.False(t, a.IsTag(0))
}

func TestAlphabetPairCodes(t *testing.T) {
	var a = NewAlphabet()

	var l, r = a.Decode(0)
	assert.Equal(t, int32(0), l)
	assert.Equal(t, int32(0), r)

	var k = a.Pair('c', 'c')
	assert.Equal(t, int32(1), k)
	assert.Equal(t, k, a.Pair('c', 'c'))

	var n = a.IncludeSymbol("<n>")
	var k2 = a.Pair('s', n)
	l, r = a.Decode(k2)
	assert.Equal(t, int32('s'), l)
	assert.Equal(t, n, r)
}

func TestAlphabetDecodeOutOfRangePanics(t *testing.T) {
	var a = NewAlphabet()

	assert.Panics(t, func() { a.Decode(99) })
	assert.Panics(t, func() { a.Decode(-1) })
}

func TestAlphabetGetSymbol(t *testing.T) {
	var a = NewAlphabet()
	var n = a.IncludeSymbol("<n>")

	var sb strings.Builder
	a.GetSymbol(&sb, 0, false)
	assert.Equal(t, "", sb.String(), "epsilon renders as nothing")

	a.GetSymbol(&sb, 'c', false)
	a.GetSymbol(&sb, 'a', true)
	a.GetSymbol(&sb, n, false)
	assert.Equal(t, "cA<n>", sb.String())
}

func TestAlphabetSymbolsWhereLeftIs(t *testing.T) {
	var a = NewAlphabet()
	var k1 = a.Pair('a', 'a')
	a.Pair('b', 'b')
	var k3 = a.Pair('a', 'x')

	assert.ElementsMatch(t, []int32{k1, k3}, a.SymbolsWhereLeftIs('a'))
	assert.Empty(t, a.SymbolsWhereLeftIs('z'))
}

func TestAlphabetTokenize(t *testing.T) {
	var a = NewAlphabet()
	var n = a.IncludeSymbol("<n>")

	assert.Equal(t, []int32{'c', 'a', 't', n}, a.Tokenize("cat<n>"))

	// A backslash consumes the next character with it.
	assert.Equal(t, []int32{'a', 'c'}, a.Tokenize(`a\bc`))

	// An unterminated bracket is dropped silently.
	assert.Equal(t, []int32{'a'}, a.Tokenize("a<n"))
}

func TestTokenizeRenderInverse(t *testing.T) {
	var a = NewAlphabet()
	a.IncludeSymbol("<n>")
	a.IncludeSymbol("<pl>")

	rapid.Check(t, func(t *rapid.T) {
		// Plain text plus known tags, free of tokenizer
		// metacharacters.
		var parts = rapid.SliceOf(rapid.SampledFrom([]string{
			"cat", "perro", "кіт", "<n>", "<pl>", "x",
		})).Draw(t, "parts")
		var s = strings.Join(parts, "")

		var sb strings.Builder
		for _, code := range a.Tokenize(s) {
			a.GetSymbol(&sb, code, false)
		}
		assert.Equal(t, s, sb.String())
	})
}

func TestAlphabetSameSymbol(t *testing.T) {
	var a = NewAlphabet()
	var b = NewAlphabet()
	var an = a.IncludeSymbol("<n>")
	b.IncludeSymbol("<v>")
	var bn = b.IncludeSymbol("<n>")
	var anyc = a.IncludeSymbol("<ANY_CHAR>")
	var anyt = a.IncludeSymbol("<ANY_TAG>")

	assert.True(t, a.SameSymbol('x', b, 'x', false))
	assert.False(t, a.SameSymbol('x', b, 'y', false))
	// Same tag string, different codes across alphabets.
	assert.True(t, a.SameSymbol(an, b, bn, false))

	assert.False(t, a.SameSymbol(anyc, b, 'x', false))
	assert.True(t, a.SameSymbol(anyc, b, 'x', true))
	assert.False(t, a.SameSymbol(anyc, b, bn, true))
	assert.True(t, a.SameSymbol(anyt, b, bn, true))
	assert.False(t, a.SameSymbol(anyt, b, 'x', true))
}

func TestAlphabetSerialisationRoundTrip(t *testing.T) {
	var a = NewAlphabet()
	var n = a.IncludeSymbol("<n>")
	var pl = a.IncludeSymbol("<pl>")
	a.Pair('c', 'c')
	a.Pair('s', n)
	a.Pair(0, pl)
	a.Pair(n, n)

	var buf bytes.Buffer
	assert.NoError(t, a.Write(&buf))

	var back = NewAlphabet()
	assert.NoError(t, back.Read(&buf))

	assert.Equal(t, a.slexicinv, back.slexicinv)
	assert.Equal(t, a.slexic, back.slexic)
	assert.Equal(t, a.spairinv, back.spairinv)
	assert.Equal(t, a.spair, back.spair)
}

func TestAlphabetSerialisationRoundTripRapid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var a = NewAlphabet()
		var interiors = rapid.SliceOfDistinct(
			rapid.StringMatching(`[a-z]{1,8}`),
			func(s string) string { return s },
		).Draw(t, "tags")
		for _, in := range interiors {
			a.IncludeSymbol("<" + in + ">")
		}
		var npairs = rapid.IntRange(0, 20).Draw(t, "npairs")
		for i := 0; i < npairs; i++ {
			var pick = func(label string) int32 {
				if len(interiors) > 0 && rapid.Bool().Draw(t, label+"_tag") {
					return -(int32(rapid.IntRange(0, len(interiors)-1).Draw(t, label+"_i")) + 1)
				}
				return rapid.Int32Range(1, 0x10FFFF).Draw(t, label+"_c")
			}
			a.Pair(pick("l"), pick("r"))
		}

		var buf bytes.Buffer
		assert.NoError(t, a.Write(&buf))
		var back = NewAlphabet()
		assert.NoError(t, back.Read(&buf))

		assert.Equal(t, a.slexicinv, back.slexicinv)
		assert.Equal(t, a.spairinv, back.spairinv)
	})
}

func TestCodeStability(t *testing.T) {
	var a = NewAlphabet()
	var n = a.IncludeSymbol("<n>")
	var k = a.Pair('c', 'c')

	a.IncludeSymbol("<v>")
	a.Pair('d', 'd')
	a.Pair(0, n)

	var code, _ = a.SymbolCode("<n>")
	assert.Equal(t, n, code)
	assert.Equal(t, k, a.Pair('c', 'c'))
}

func TestCreateLoopbackSymbols(t *testing.T) {
	var basis = NewAlphabet()
	var n = basis.IncludeSymbol("<n>")
	basis.Pair('a', 'b')
	basis.Pair('c', n)

	var a = NewAlphabet()
	var symbols sorted_vector[int32]
	a.CreateLoopbackSymbols(&symbols, basis, SideRight, true)

	// Right side holds 'b' and <n>: one identity pair each.
	assert.Equal(t, 2, symbols.size())
	assert.True(t, a.IsSymbolDefined("<n>"))
	var here, _ = a.SymbolCode("<n>")
	assert.True(t, symbols.count(a.Pair(here, here)))
	assert.True(t, symbols.count(a.Pair('b', 'b')))

	// Idempotence: a second projection inserts nothing new.
	var before = append([]int32(nil), symbols.get()...)
	a.CreateLoopbackSymbols(&symbols, basis, SideRight, true)
	assert.Equal(t, before, symbols.get())
}
