package lttoolbox

/*------------------------------------------------------------------
 *
 * Purpose:	The streaming FST processor: configuration, container
 *		loading and the machinery shared by all mode drivers.
 *
 * Description: One processor owns one compiled container (alphabet
 *		plus named transducer sections), merged at load into a
 *		single graph.  Sections keep their identity through the
 *		final-state class sets: names tagged @inconditional,
 *		@postblank and @preblank get the matching commit
 *		behaviour in analysis, everything else is standard.
 *
 *		A processor is single threaded; no method may be called
 *		concurrently with another.
 *
 *------------------------------------------------------------------*/

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
)

var logger = log.WithPrefix("lttoolbox")

type GenerationMode int

const (
	gm_clean GenerationMode = iota // clear all
	gm_unknown                     // mark unknown words
	gm_all                         // mark all
	gm_tagged                      // tagged generation
	gm_tagged_nm                   // tagged, no unknown marks
	gm_carefulcase                 // try dictionary case, fall back to surface
)

// Exported aliases for the front end.
const (
	GenClean       = gm_clean
	GenUnknown     = gm_unknown
	GenAll         = gm_all
	GenTagged      = gm_tagged
	GenTaggedNM    = gm_tagged_nm
	GenCarefulCase = gm_carefulcase
)

const compound_max_elements = 4

type FSTProcessor struct {
	alphabet *Alphabet
	trans    *Transducer
	initials []int32

	// Final-state classes, by section name suffix.
	standard      sorted_vector[int32]
	inconditional sorted_vector[int32]
	postblank     sorted_vector[int32]
	preblank      sorted_vector[int32]

	initial_state State

	// Dispatch tables built at load.
	by_left    map[int32][]int32
	wild_pairs []int32
	any_char   int32
	any_tag    int32

	escaped_chars map[rune]bool
	ignored_chars map[rune]bool
	restore_map   map[rune][]rune

	case_sensitive      bool
	dictionary_case     bool
	null_flush          bool
	display_weights     bool
	use_default_ignored bool
	biltrans_surface    bool
	decompose_unknown   bool

	max_analyses       int
	max_weight_classes int

	valid bool
}

func NewFSTProcessor() *FSTProcessor {
	return &FSTProcessor{
		ignored_chars:       make(map[rune]bool),
		restore_map:         make(map[rune][]rune),
		use_default_ignored: true,
	}
}

func (p *FSTProcessor) SetCaseSensitiveMode(v bool)    { p.case_sensitive = v }
func (p *FSTProcessor) SetDictionaryCaseMode(v bool)   { p.dictionary_case = v }
func (p *FSTProcessor) SetNullFlush(v bool)            { p.null_flush = v }
func (p *FSTProcessor) GetNullFlush() bool             { return p.null_flush }
func (p *FSTProcessor) SetDisplayWeightsMode(v bool)   { p.display_weights = v }
func (p *FSTProcessor) SetMaxAnalysesValue(n int)      { p.max_analyses = n }
func (p *FSTProcessor) SetMaxWeightClassesValue(n int) { p.max_weight_classes = n }
func (p *FSTProcessor) SetBiltransSurfaceForms(v bool) { p.biltrans_surface = v }
func (p *FSTProcessor) SetUseDefaultIgnoredChars(v bool) {
	p.use_default_ignored = v
}

func (p *FSTProcessor) Valid() bool { return p.valid }

/*------------------------------------------------------------------
 *
 * Function:	Load
 *
 * Purpose:	Read a compiled container and build the runtime
 *		dispatch tables.
 *
 *------------------------------------------------------------------*/

func (p *FSTProcessor) Load(r io.Reader) error {
	var br = bufio.NewReader(r)
	var a, sections, err = ReadContainer(br)
	if err != nil {
		return err
	}
	if len(sections) == 0 {
		return fmt.Errorf("%w: container holds no transducers", ErrCorruptContainer)
	}

	p.alphabet = a
	p.trans = &Transducer{finals: make(map[int32]float64)}
	p.initials = nil
	for _, s := range sections {
		var offset = p.trans.join(s.Transducer)
		p.initials = append(p.initials, s.Transducer.Initial()+offset)
		var class = &p.standard
		switch {
		case strings.Contains(s.Name, "@inconditional"):
			class = &p.inconditional
		case strings.Contains(s.Name, "@postblank"):
			class = &p.postblank
		case strings.Contains(s.Name, "@preblank"):
			class = &p.preblank
		}
		for state := range s.Transducer.finals {
			class.insert(state + offset)
		}
		logger.Debug("loaded section", "name", s.Name, "states", s.Transducer.NumStates())
	}
	p.trans.index(a)

	p.by_left = make(map[int32][]int32)
	for code, pair := range a.spairinv {
		if pair.l != 0 {
			p.by_left[pair.l] = append(p.by_left[pair.l], int32(code))
		}
	}
	p.any_char, _ = a.SymbolCode(any_char_tag)
	p.any_tag, _ = a.SymbolCode(any_tag_tag)
	if p.any_char != 0 {
		p.wild_pairs = p.by_left[p.any_char]
	}
	return nil
}

// Word material.  Anything else ends a word segment, though the
// traversal itself may still consume it mid-match (multiword entries
// walk across spaces and hyphens).
func (p *FSTProcessor) isAlphabetic(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || unicode.IsMark(c)
}

func (p *FSTProcessor) isIgnored(c rune) bool {
	if p.use_default_ignored && c == '\u00AD' {
		return true
	}
	return p.ignored_chars[c]
}

/*------------------------------------------------------------------
 *
 * Mode initialisation.  Each picks the escaped character set for its
 * stream format, seeds the initial frontier and validates that the
 * merged graph can do anything at all.
 *
 *------------------------------------------------------------------*/

func (p *FSTProcessor) initAnalysis() {
	p.escaped_chars = escape_set(`[]{}^$/\@<>`)
	p.initFrontier()
}

func (p *FSTProcessor) initGeneration() {
	p.escaped_chars = escape_set(`[]{}^$/\@`)
	p.initFrontier()
}

func (p *FSTProcessor) initBiltrans() {
	p.escaped_chars = escape_set(`[]{}^$/\@`)
	p.initFrontier()
}

func (p *FSTProcessor) initPostgeneration() {
	p.escaped_chars = escape_set(`[]{}^$/\@~`)
	p.initFrontier()
}

func (p *FSTProcessor) initDecomposition() {
	p.decompose_unknown = true
	p.initAnalysis()
}

func (p *FSTProcessor) InitAnalysis()       { p.initAnalysis() }
func (p *FSTProcessor) InitGeneration()     { p.initGeneration() }
func (p *FSTProcessor) InitBiltrans()       { p.initBiltrans() }
func (p *FSTProcessor) InitPostgeneration() { p.initPostgeneration() }
func (p *FSTProcessor) InitDecomposition()  { p.initDecomposition() }

func (p *FSTProcessor) initFrontier() {
	p.initial_state.clear()
	for _, start := range p.initials {
		p.initial_state.add_closure(p.trans, p.alphabet, tnode{where: start})
	}
	p.valid = p.initial_state.size() > 0 && len(p.trans.finals) > 0
}

func escape_set(chars string) map[rune]bool {
	var m = make(map[rune]bool, len(chars))
	for _, c := range chars {
		m[c] = true
	}
	return m
}

/*------------------------------------------------------------------
 *
 * Stepping helpers.
 *
 *------------------------------------------------------------------*/

// step_char advances the frontier on a literal character, offering
// the case-folded form and any restore-table variants as
// alternatives.
func (p *FSTProcessor) step_char(st *State, c rune) {
	var syms = []int32{int32(c)}
	if !p.case_sensitive {
		if lower := unicode.ToLower(c); lower != c {
			syms = append(syms, int32(lower))
		}
	}
	for _, alt := range p.restore_map[c] {
		syms = append(syms, int32(alt))
	}
	st.step(p.trans, p.alphabet, p.by_left, syms, p.wild_pairs, p.any_char, int32(c))
}

// step_tag advances the frontier on a tag symbol.
func (p *FSTProcessor) step_tag(st *State, sym int32) {
	var wild []int32
	if p.any_tag != 0 {
		wild = p.by_left[p.any_tag]
	}
	st.step(p.trans, p.alphabet, p.by_left, []int32{sym}, wild, p.any_tag, sym)
}

// final_class ranks the classes a frontier has reached; commit
// behaviour follows the strongest one.
const (
	class_standard = iota
	class_preblank
	class_postblank
	class_inconditional
)

func (p *FSTProcessor) final_class(st *State) int {
	switch {
	case st.intersects(&p.inconditional):
		return class_inconditional
	case st.intersects(&p.postblank):
		return class_postblank
	case st.intersects(&p.preblank):
		return class_preblank
	default:
		return class_standard
	}
}

/*------------------------------------------------------------------
 *
 * Output helpers.
 *
 *------------------------------------------------------------------*/

func (p *FSTProcessor) write_escaped(out *bufio.Writer, s string) {
	for _, c := range s {
		if p.escaped_chars[c] {
			out.WriteByte('\\')
		}
		out.WriteRune(c)
	}
}

// case_flags inspects a surface form the way the engine re-projects
// case: first rune decides title case, second decides full uppercase.
func (p *FSTProcessor) case_flags(surface string) (firstupper, uppercase bool) {
	if p.case_sensitive || p.dictionary_case {
		return false, false
	}
	var runes = []rune(surface)
	if len(runes) == 0 {
		return false, false
	}
	firstupper = unicode.IsUpper(runes[0])
	uppercase = len(runes) > 1 && unicode.IsUpper(runes[1])
	return firstupper, uppercase
}

func (p *FSTProcessor) filter_opts(firstupper, uppercase bool) filter_opts {
	return filter_opts{
		escaped:            p.escaped_chars,
		display_weights:    p.display_weights,
		max_analyses:       p.max_analyses,
		max_weight_classes: p.max_weight_classes,
		uppercase:          uppercase,
		firstupper:         firstupper,
	}
}

// remove_tags strips a lexical form down to its lemma.  An escaped
// bracket is part of the lemma.
func remove_tags(s string) string {
	if at := index_unescaped(s, '<'); at >= 0 {
		return s[:at]
	}
	return s
}

// flush_on_null finishes a record in null-flush mode: the U+0000 goes
// out and buffers drain so a coprocess on the other end is released.
func (p *FSTProcessor) flush_on_null(out *bufio.Writer) error {
	out.WriteByte(0)
	return out.Flush()
}
