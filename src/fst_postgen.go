package lttoolbox

/*------------------------------------------------------------------
 *
 * Purpose:	Rewrite drivers: post-generation, inter-generation and
 *		transliteration.
 *
 * Description: Post-generation scans for '~'-marked rewrite points
 *		and replaces the longest dictionary match starting
 *		there; on failure the mark is dropped and the text kept.
 *		Inter-generation is the same loop but keeps the mark on
 *		failure.  Transliteration longest-matches continuously
 *		over the whole stream and copies unmatched characters.
 *
 *------------------------------------------------------------------*/

import (
	"bufio"
)

func (p *FSTProcessor) Postgeneration(in *InputFile, out *bufio.Writer) error {
	return p.run_rewrite(in, out, false)
}

func (p *FSTProcessor) Intergeneration(in *InputFile, out *bufio.Writer) error {
	return p.run_rewrite(in, out, true)
}

func (p *FSTProcessor) run_rewrite(in *InputFile, out *bufio.Writer, keep_mark bool) error {
	for {
		var tok = in.next_token()
		switch tok.kind {
		case tok_eof:
			return out.Flush()
		case tok_null:
			if err := p.flush_on_null(out); err != nil {
				return err
			}
		case tok_blank:
			out.WriteString(tok.text)
		case tok_char:
			if tok.c != '~' || tok.escaped {
				out.WriteString(p.raw(&tok))
				continue
			}
			p.rewrite_at_mark(in, out, keep_mark)
		}
	}
}

// rewrite_at_mark consumes text after a '~', commits the longest
// match's output and pushes everything past it back into the input.
func (p *FSTProcessor) rewrite_at_mark(in *InputFile, out *bufio.Writer, keep_mark bool) {
	var st State
	st.copy_from(&p.initial_state)
	var consumed []token
	var cand_len = 0
	var cand = ""

	for {
		var tok = in.next_token()
		if tok.kind == tok_char && !tok.escaped && tok.c != '~' {
			if st.size() > 0 && st.is_final(p.trans) {
				cand_len, cand = len(consumed), p.rewrite_result(&st, consumed)
			}
			p.step_char(&st, tok.c)
			if st.size() > 0 {
				consumed = append(consumed, tok)
				continue
			}
		}
		// Frontier dead, or a token the matcher cannot cross.
		if st.size() > 0 && st.is_final(p.trans) {
			cand_len, cand = len(consumed), p.rewrite_result(&st, consumed)
		}
		in.unget_token(tok)
		break
	}

	if cand_len > 0 {
		out.WriteString(cand)
		for i := len(consumed) - 1; i >= cand_len; i-- {
			in.unget_token(consumed[i])
		}
		return
	}
	if keep_mark {
		out.WriteByte('~')
	}
	for _, t := range consumed {
		out.WriteString(p.raw(&t))
	}
}

// rewrite_result renders the lightest match with the surface case
// re-projected.
func (p *FSTProcessor) rewrite_result(st *State, consumed []token) string {
	var firstupper, uppercase = p.case_flags(p.surface(consumed))
	var lf = st.filter_finals(p.trans, p.alphabet, p.filter_opts(firstupper, uppercase))
	if len(lf) == 0 {
		return ""
	}
	lf = lf[1:]
	if at := index_unescaped(lf, '/'); at >= 0 {
		lf = lf[:at]
	}
	return lf
}

/*------------------------------------------------------------------
 *
 * Function:	Transliteration
 *
 * Purpose:	Longest-match rewrite at every position; characters
 *		with no match copy through untouched.
 *
 *------------------------------------------------------------------*/

func (p *FSTProcessor) Transliteration(in *InputFile, out *bufio.Writer) error {
	for {
		var tok = in.next_token()
		switch tok.kind {
		case tok_eof:
			return out.Flush()
		case tok_null:
			if err := p.flush_on_null(out); err != nil {
				return err
			}
		case tok_blank:
			out.WriteString(tok.text)
		case tok_char:
			in.unget_token(tok)
			if !p.transliterate_here(in, out) {
				tok = in.next_token()
				out.WriteString(p.raw(&tok))
			}
		}
	}
}

// transliterate_here attempts a match starting at the current
// position; on success the replacement is written and the tail
// pushed back.
func (p *FSTProcessor) transliterate_here(in *InputFile, out *bufio.Writer) bool {
	var st State
	st.copy_from(&p.initial_state)
	var consumed []token
	var cand_len = 0
	var cand = ""

	for {
		var tok = in.next_token()
		if tok.kind != tok_char {
			in.unget_token(tok)
			break
		}
		p.step_char(&st, tok.c)
		if st.size() == 0 {
			in.unget_token(tok)
			break
		}
		consumed = append(consumed, tok)
		if st.is_final(p.trans) {
			cand_len, cand = len(consumed), p.translit_result(&st)
		}
	}

	for i := len(consumed) - 1; i >= cand_len; i-- {
		in.unget_token(consumed[i])
	}
	if cand_len == 0 {
		return false
	}
	out.WriteString(cand)
	return true
}

func (p *FSTProcessor) translit_result(st *State) string {
	var lf = st.filter_finals(p.trans, p.alphabet, p.filter_opts(false, false))
	if len(lf) == 0 {
		return ""
	}
	lf = lf[1:]
	if at := index_unescaped(lf, '/'); at >= 0 {
		lf = lf[:at]
	}
	return lf
}

func index_unescaped(s string, sep byte) int {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case sep:
			return i
		}
	}
	return -1
}
