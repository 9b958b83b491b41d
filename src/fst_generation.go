package lttoolbox

/*------------------------------------------------------------------
 *
 * Purpose:	Generation-family drivers: morphological generation in
 *		its sub-modes, and bilingual lexical transfer.
 *
 * Description: Both consume a stream of ^...$ lexical units with
 *		everything between units passed through verbatim.
 *		Generation renders one surface form per unit; bilingual
 *		keeps the source side and adds the translated side,
 *		falling back to a tag queue when only a prefix of the
 *		tag string is known to the dictionary.
 *
 *------------------------------------------------------------------*/

import (
	"bufio"
	"strings"
	"unicode"
)

// lex_symbol is one element of a parsed lexical unit: a literal
// character or a (possibly unknown) tag.
type lex_symbol struct {
	sym  int32 // 0 for an unknown tag
	text string
	tag  bool
}

// read_lexical_unit gathers the content of one ^...$ unit, everything
// outside units being written through verbatim.  Returns ok=false at
// end of input; a null byte is reported separately so callers can
// flush mid-stream.
func (p *FSTProcessor) read_lexical_unit(in *InputFile, out *bufio.Writer) (syms []lex_symbol, raw string, sawNull, ok bool) {
	for {
		var tok = in.next_token()
		switch tok.kind {
		case tok_eof:
			return nil, "", false, false
		case tok_null:
			return nil, "", true, true
		case tok_blank:
			out.WriteString(tok.text)
		case tok_char:
			if tok.c != '^' || tok.escaped {
				out.WriteString(p.raw(&tok))
				continue
			}
			syms, raw = p.read_unit_body(in)
			return syms, raw, false, true
		}
	}
}

func (p *FSTProcessor) read_unit_body(in *InputFile) ([]lex_symbol, string) {
	var syms []lex_symbol
	var sb strings.Builder
	for {
		var c = in.get()
		switch c {
		case u_eof:
			return syms, sb.String()
		case 0:
			in.unget(0)
			return syms, sb.String()
		case '$':
			return syms, sb.String()
		case '\\':
			var e = in.get()
			if e == u_eof {
				return syms, sb.String()
			}
			sb.WriteByte('\\')
			sb.WriteRune(e)
			syms = append(syms, lex_symbol{sym: int32(e), text: string(e)})
		case '<':
			var tag = strings.Builder{}
			tag.WriteByte('<')
			for {
				var t = in.get()
				if t == u_eof {
					break
				}
				tag.WriteRune(t)
				if t == '>' {
					break
				}
			}
			var text = tag.String()
			sb.WriteString(text)
			var code, known = p.alphabet.SymbolCode(text)
			if !known {
				code = 0
			}
			syms = append(syms, lex_symbol{sym: code, text: text, tag: true})
		default:
			sb.WriteRune(c)
			syms = append(syms, lex_symbol{sym: int32(c), text: string(c)})
		}
	}
}

/*------------------------------------------------------------------
 *
 * Function:	Generation
 *
 * Purpose:	Render each lexical unit as a surface form, or mark it
 *		per the generation sub-mode when the dictionary does
 *		not know it.
 *
 *------------------------------------------------------------------*/

func (p *FSTProcessor) Generation(in *InputFile, out *bufio.Writer, mode GenerationMode) error {
	for {
		var syms, raw, sawNull, ok = p.read_lexical_unit(in, out)
		if !ok {
			return out.Flush()
		}
		if sawNull {
			if err := p.flush_on_null(out); err != nil {
				return err
			}
			continue
		}
		p.generate_word(out, syms, raw, mode)
	}
}

func (p *FSTProcessor) generate_word(out *bufio.Writer, syms []lex_symbol, raw string, mode GenerationMode) {
	if raw == "" {
		return
	}
	if raw[0] == '=' {
		out.WriteByte('=')
		raw = raw[1:]
		syms = syms[1:]
	}
	if raw == "" {
		return
	}

	// The unit text arrived escaped for the stream format, so the
	// pass-through paths re-emit it verbatim.
	switch raw[0] {
	case '*', '%':
		if mode == gm_clean || mode == gm_tagged_nm {
			out.WriteString(remove_tags(raw[1:]))
		} else {
			out.WriteString(raw)
		}
		return
	case '@':
		switch mode {
		case gm_all:
			out.WriteString(raw)
		case gm_clean:
			out.WriteString(remove_tags(raw[1:]))
		default:
			out.WriteString(remove_tags(raw))
		}
		return
	}

	var st State
	st.copy_from(&p.initial_state)
	for _, s := range syms {
		if st.size() == 0 {
			break
		}
		if s.tag {
			if s.sym == 0 {
				st.clear()
				break
			}
			p.step_tag(&st, s.sym)
		} else {
			p.step_char(&st, rune(s.sym))
		}
	}

	if st.size() > 0 && st.is_final(p.trans) {
		var firstupper, uppercase = p.case_flags(raw)
		var opts = p.filter_opts(firstupper, uppercase)
		if mode == gm_carefulcase {
			opts.firstupper = false
			opts.uppercase = false
		}
		var finals = st.filter_finals(p.trans, p.alphabet, opts)[1:]
		if mode == gm_carefulcase {
			finals = careful_case(finals, firstupper, uppercase)
		}
		switch mode {
		case gm_tagged, gm_tagged_nm:
			out.WriteByte('^')
			out.WriteString(finals)
			out.WriteByte('/')
			out.WriteString(raw)
			out.WriteByte('$')
		case gm_all:
			out.WriteString(finals)
			out.WriteByte('/')
			out.WriteString(raw)
		default:
			out.WriteString(finals)
		}
		return
	}

	// The generator does not know this lexical form.
	switch mode {
	case gm_all, gm_tagged:
		out.WriteByte('#')
		out.WriteString(raw)
	case gm_clean:
		out.WriteString(remove_tags(raw))
	case gm_tagged_nm:
		out.WriteByte('^')
		out.WriteString(remove_tags(raw))
		out.WriteString("/#")
		out.WriteString(raw)
		out.WriteByte('$')
	default: // gm_unknown, gm_carefulcase
		out.WriteByte('#')
		out.WriteString(remove_tags(raw))
	}
}

// careful_case applies surface case only when the dictionary form is
// all lowercase.
func careful_case(s string, firstupper, uppercase bool) string {
	if !firstupper && !uppercase {
		return s
	}
	for _, c := range s {
		if unicode.IsUpper(c) {
			return s
		}
	}
	if uppercase {
		return strings.ToUpper(s)
	}
	var runes = []rune(s)
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}
	return string(runes)
}

/*------------------------------------------------------------------
 *
 * Function:	Bilingual
 *
 * Purpose:	Lexical transfer: ^source$ becomes ^source/target$.
 *
 * Description: Characters and tags advance the frontier; once a tag
 *		fails to advance it and the frontier was final, the
 *		unmatched tags are carried over verbatim behind the
 *		translation.  Units with no translation at all keep
 *		their source annotated with '@'.
 *
 *------------------------------------------------------------------*/

func (p *FSTProcessor) Bilingual(in *InputFile, out *bufio.Writer, mode GenerationMode) error {
	for {
		var syms, raw, sawNull, ok = p.read_lexical_unit(in, out)
		if !ok {
			return out.Flush()
		}
		if sawNull {
			if err := p.flush_on_null(out); err != nil {
				return err
			}
			continue
		}
		p.bilingual_word(out, syms, raw, mode)
	}
}

func (p *FSTProcessor) bilingual_word(out *bufio.Writer, syms []lex_symbol, raw string, mode GenerationMode) {
	var source = raw
	if p.biltrans_surface {
		// ^surface/lexical$: translate the lexical side, keep the
		// surface on the left.
		if at := index_unescaped(raw, '/'); at >= 0 {
			source = raw[:at]
			raw = raw[at+1:]
			var drop = 0
			for drop < len(syms) && !(syms[drop].text == "/" && !syms[drop].tag) {
				drop++
			}
			if drop < len(syms) {
				syms = syms[drop+1:]
			}
		}
	} else {
		source = raw
	}

	if raw == "" {
		return
	}
	if raw[0] == '*' || raw[0] == '%' || raw[0] == '@' {
		// Already marked upstream; pass the unit through.
		out.WriteByte('^')
		out.WriteString(source)
		if source != raw {
			out.WriteByte('/')
			out.WriteString(raw)
		}
		out.WriteByte('$')
		return
	}

	var st State
	st.copy_from(&p.initial_state)
	var queue strings.Builder
	var alive = true
	for i, s := range syms {
		if !alive {
			queue.WriteString(s.text)
			continue
		}
		var probe State
		probe.copy_from(&st)
		if s.tag {
			if s.sym != 0 {
				p.step_tag(&probe, s.sym)
			} else {
				probe.clear()
			}
		} else {
			p.step_char(&probe, rune(s.sym))
		}
		if probe.size() == 0 {
			if s.tag && st.is_final(p.trans) && all_tags(syms[i:]) {
				// Carry the unmatched tail of tags over.
				alive = false
				queue.WriteString(s.text)
				continue
			}
			st.clear()
			break
		}
		st = probe
	}

	if st.size() > 0 && st.is_final(p.trans) {
		var opts = p.filter_opts(false, false)
		var target = st.filter_finals(p.trans, p.alphabet, opts)[1:]
		out.WriteByte('^')
		out.WriteString(source)
		out.WriteByte('/')
		out.WriteString(target)
		out.WriteString(queue.String())
		out.WriteByte('$')
		return
	}

	out.WriteByte('^')
	out.WriteString(source)
	out.WriteByte('/')
	if mode != gm_clean {
		out.WriteByte('@')
	}
	out.WriteString(raw)
	out.WriteByte('$')
}

func all_tags(syms []lex_symbol) bool {
	for _, s := range syms {
		if !s.tag {
			return false
		}
	}
	return true
}

