package lttoolbox

/*------------------------------------------------------------------
 *
 * Purpose:	Analysis-family drivers: morphological analysis, SAO
 *		annotation and compound decomposition.
 *
 * Description: The stream is walked token by token while the frontier
 *		is alive.  Whenever the frontier sits in a final state
 *		at a legal boundary the current consumption becomes the
 *		candidate; when the frontier dies the longest candidate
 *		is committed and the unconsumed tail is fed back in.
 *		Words with no candidate at all are unknown.
 *
 *------------------------------------------------------------------*/

import (
	"bufio"
	"strings"
)

// word_sink abstracts what a driver does with each committed segment,
// so analysis, decomposition and SAO share one traversal.
type word_sink interface {
	word(p *FSTProcessor, out *bufio.Writer, surface, lf string, class int)
	unknown(p *FSTProcessor, out *bufio.Writer, surface string)
	blank(p *FSTProcessor, out *bufio.Writer, text string)
}

func (p *FSTProcessor) Analysis(in *InputFile, out *bufio.Writer) error {
	return p.run_analysis(in, out, analysis_sink{})
}

func (p *FSTProcessor) SAO(in *InputFile, out *bufio.Writer) error {
	return p.run_analysis(in, out, sao_sink{})
}

func (p *FSTProcessor) run_analysis(in *InputFile, out *bufio.Writer, sink word_sink) error {
	var pending []token
	var next = func() token {
		if n := len(pending); n > 0 {
			var t = pending[n-1]
			pending = pending[:n-1]
			return t
		}
		return in.next_token()
	}

	var current State
	current.copy_from(&p.initial_state)
	var word []token
	var cand_len = 0
	var cand_lf = ""
	var cand_class = class_standard

	var reset = func() {
		current.copy_from(&p.initial_state)
		word = word[:0]
		cand_len = 0
		cand_lf = ""
		cand_class = class_standard
	}

	var word_material = func(t *token) bool {
		return t.kind == tok_char && (p.isAlphabetic(t.c) || p.isIgnored(t.c))
	}

	// Commits the best candidate, or the unknown word, and feeds
	// everything consumed past it back in, with the token that
	// killed the frontier at the very end.
	var commit = func(killer *token) {
		if cand_len > 0 {
			sink.word(p, out, p.surface(word[:cand_len]), cand_lf, cand_class)
			requeue_tail(&pending, word[cand_len:], killer)
			reset()
			return
		}

		var k = 0
		for k < len(word) && word_material(&word[k]) {
			k++
		}
		if k == len(word) && killer != nil && word_material(killer) {
			// The run continues past the point where the
			// frontier died; an unknown word covers all of it.
			word = append(word, *killer)
			killer = nil
			for {
				var t = next()
				if word_material(&t) {
					word = append(word, t)
					continue
				}
				if t.kind != tok_eof {
					pending = append(pending, t)
				}
				break
			}
			k = len(word)
		}

		switch {
		case k > 0:
			sink.unknown(p, out, p.surface(word[:k]))
			requeue_tail(&pending, word[k:], killer)
		case len(word) > 0:
			sink.blank(p, out, p.raw(&word[0]))
			requeue_tail(&pending, word[1:], killer)
		case killer != nil && killer.kind == tok_blank:
			sink.blank(p, out, killer.text)
		case killer != nil && killer.kind == tok_char:
			sink.blank(p, out, p.raw(killer))
		}
		reset()
	}

	for {
		var tok = next()

		if tok.kind == tok_eof && len(word) == 0 {
			return out.Flush()
		}
		if tok.kind == tok_null && len(word) == 0 {
			if err := p.flush_on_null(out); err != nil {
				return err
			}
			reset()
			continue
		}

		// Ignored characters ride along inside a word without
		// touching the frontier.
		if tok.kind == tok_char && p.isIgnored(tok.c) && len(word) > 0 {
			word = append(word, tok)
			continue
		}

		if current.size() > 0 && current.is_final(p.trans) {
			var boundary = tok.kind != tok_char || !p.isAlphabetic(tok.c)
			var class = p.final_class(&current)
			if boundary || class != class_standard {
				var firstupper, uppercase = p.case_flags(p.surface(word))
				cand_len = len(word)
				cand_lf = current.filter_finals(p.trans, p.alphabet, p.filter_opts(firstupper, uppercase))
				cand_class = class
			}
		}

		if tok.kind == tok_char {
			p.step_char(&current, tok.c)
		} else {
			current.clear()
		}

		if current.size() > 0 {
			word = append(word, tok)
			continue
		}
		commit(&tok)
	}
}

func requeue_tail(pending *[]token, tail []token, killer *token) {
	if killer != nil {
		*pending = append(*pending, *killer)
	}
	for i := len(tail) - 1; i >= 0; i-- {
		*pending = append(*pending, tail[i])
	}
}

// surface reconstructs the literal text of consumed tokens.
func (p *FSTProcessor) surface(ts []token) string {
	var sb strings.Builder
	for i := range ts {
		if ts[i].kind == tok_char {
			sb.WriteRune(ts[i].c)
		}
	}
	return sb.String()
}

// raw re-renders one token the way it arrived, escape included.
func (p *FSTProcessor) raw(t *token) string {
	if t.escaped {
		return "\\" + string(t.c)
	}
	return string(t.c)
}

/*------------------------------------------------------------------
 *
 * The standard analysis sink: ^surface/analysis1/analysis2$, with
 * pre/postblank classes contributing their space and unknown words
 * marked with an asterisk.
 *
 *------------------------------------------------------------------*/

type analysis_sink struct{}

func (analysis_sink) word(p *FSTProcessor, out *bufio.Writer, surface, lf string, class int) {
	if class == class_preblank {
		out.WriteByte(' ')
	}
	out.WriteByte('^')
	p.write_escaped(out, surface)
	out.WriteString(lf)
	out.WriteByte('$')
	if class == class_postblank {
		out.WriteByte(' ')
	}
}

func (analysis_sink) unknown(p *FSTProcessor, out *bufio.Writer, surface string) {
	if p.decompose_unknown {
		if pieces, ok := p.compound_analysis(surface); ok {
			out.WriteByte('^')
			p.write_escaped(out, surface)
			out.WriteByte('/')
			out.WriteString(pieces)
			out.WriteByte('$')
			return
		}
	}
	out.WriteByte('^')
	p.write_escaped(out, surface)
	out.WriteString("/*")
	p.write_escaped(out, surface)
	out.WriteByte('$')
}

func (analysis_sink) blank(p *FSTProcessor, out *bufio.Writer, text string) {
	out.WriteString(text)
}

/*------------------------------------------------------------------
 *
 * SAO sink: first analysis only, failures tagged <d>...</d>.
 *
 *------------------------------------------------------------------*/

type sao_sink struct{}

func (sao_sink) word(p *FSTProcessor, out *bufio.Writer, surface, lf string, class int) {
	var first = lf
	if len(first) > 0 && first[0] == '/' {
		first = first[1:]
	}
	if at := strings.IndexByte(first, '/'); at >= 0 {
		first = first[:at]
	}
	out.WriteString(first)
}

func (sao_sink) unknown(p *FSTProcessor, out *bufio.Writer, surface string) {
	out.WriteString("<d>")
	p.write_escaped(out, surface)
	out.WriteString("</d>")
}

func (sao_sink) blank(p *FSTProcessor, out *bufio.Writer, text string) {
	out.WriteString(text)
}

/*------------------------------------------------------------------
 *
 * Function:	compound_analysis
 *
 * Purpose:	Re-enter the engine on prefix/suffix splits of an
 *		unknown word, joining the pieces with '+'.
 *
 *------------------------------------------------------------------*/

func (p *FSTProcessor) compound_analysis(surface string) (string, bool) {
	var runes = []rune(surface)
	var pieces, ok = p.compound_split(runes, compound_max_elements, false)
	if !ok {
		return "", false
	}
	return strings.Join(pieces, "+"), true
}

func (p *FSTProcessor) compound_split(runes []rune, depth int, whole_ok bool) ([]string, bool) {
	if depth == 0 || len(runes) == 0 {
		return nil, false
	}
	// Longest left piece first, so the split mirrors the engine's
	// longest-match commitment.
	for cut := len(runes); cut >= 1; cut-- {
		var lf, ok = p.match_whole(runes[:cut])
		if !ok {
			continue
		}
		if cut == len(runes) {
			// The full word only counts once it is a proper
			// compound element, not at the top level, where
			// analysis already failed to cover it.
			if whole_ok {
				return []string{lf}, true
			}
			continue
		}
		if rest, rok := p.compound_split(runes[cut:], depth-1, true); rok {
			return append([]string{lf}, rest...), true
		}
	}
	return nil, false
}

// match_whole analyses a chunk in isolation, returning its first
// analysis.
func (p *FSTProcessor) match_whole(runes []rune) (string, bool) {
	var st State
	st.copy_from(&p.initial_state)
	for _, c := range runes {
		p.step_char(&st, c)
		if st.size() == 0 {
			return "", false
		}
	}
	if !st.is_final(p.trans) {
		return "", false
	}
	var firstupper, uppercase = p.case_flags(string(runes))
	var lf = st.filter_finals(p.trans, p.alphabet, p.filter_opts(firstupper, uppercase))
	if len(lf) == 0 {
		return "", false
	}
	lf = lf[1:]
	if at := strings.IndexByte(lf, '/'); at >= 0 {
		lf = lf[:at]
	}
	return lf, true
}
