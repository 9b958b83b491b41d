package lttoolbox

/*------------------------------------------------------------------
 *
 * Purpose:	Buffered rune input with pushback, and the segment
 *		scanner shared by the stream drivers.
 *
 * Description: The scanner classifies the stream into literal
 *		characters, superblanks ([...] regions opaque to the
 *		transducer), null-flush marks and end of input.  A
 *		backslash makes the next character literal whatever its
 *		class.  An unterminated superblank is recovered by
 *		emitting what was read, verbatim.
 *
 *------------------------------------------------------------------*/

import (
	"bufio"
	"io"
	"strings"
)

const u_eof rune = -1

type InputFile struct {
	r  *bufio.Reader
	ub []rune
}

func NewInputFile(r io.Reader) *InputFile {
	return &InputFile{r: bufio.NewReader(r)}
}

func (in *InputFile) get() rune {
	if n := len(in.ub); n > 0 {
		var c = in.ub[n-1]
		in.ub = in.ub[:n-1]
		return c
	}
	var c, _, err = in.r.ReadRune()
	if err != nil {
		return u_eof
	}
	return c
}

func (in *InputFile) unget(c rune) {
	in.ub = append(in.ub, c)
}

func (in *InputFile) peek() rune {
	var c = in.get()
	if c != u_eof {
		in.unget(c)
	}
	return c
}

// unget_token pushes a whole token back so the scanner will produce
// it again.
func (in *InputFile) unget_token(t token) {
	switch t.kind {
	case tok_eof:
	case tok_null:
		in.unget(0)
	case tok_blank:
		var runes = []rune(t.text)
		for i := len(runes) - 1; i >= 0; i-- {
			in.unget(runes[i])
		}
	case tok_char:
		in.unget(t.c)
		if t.escaped {
			in.unget('\\')
		}
	}
}

// Token kinds produced by the scanner.
const (
	tok_char = iota
	tok_blank // a superblank, text carries the whole [...] region
	tok_null  // U+0000, the null-flush record separator
	tok_eof
)

type token struct {
	kind    int
	c       rune
	escaped bool
	text    string
}

// next_token reads one scanner token.  Escaped characters come back
// as tok_char with the escape flag set so drivers can re-emit the
// backslash where the stream format wants it.
func (in *InputFile) next_token() token {
	var c = in.get()
	switch c {
	case u_eof:
		return token{kind: tok_eof}
	case 0:
		return token{kind: tok_null}
	case '\\':
		var e = in.get()
		if e == u_eof {
			return token{kind: tok_char, c: '\\'}
		}
		return token{kind: tok_char, c: e, escaped: true}
	case '[':
		return in.read_superblank()
	default:
		return token{kind: tok_char, c: c}
	}
}

func (in *InputFile) read_superblank() token {
	var sb strings.Builder
	sb.WriteByte('[')
	for {
		var c = in.get()
		switch c {
		case u_eof, 0:
			// Unterminated region: hand back what we have and
			// let the null/EOF be seen on the next read.
			if c == 0 {
				in.unget(0)
			}
			return token{kind: tok_blank, text: sb.String()}
		case '\\':
			sb.WriteByte('\\')
			if e := in.get(); e != u_eof {
				sb.WriteRune(e)
			}
		case ']':
			sb.WriteByte(']')
			return token{kind: tok_blank, text: sb.String()}
		default:
			sb.WriteRune(c)
		}
	}
}
