package lttoolbox

/*------------------------------------------------------------------
 *
 * Purpose:	Compact runtime representation of a letter transducer
 *		section, plus the container envelope that carries the
 *		alphabet and the named sections.
 *
 * Description: States are dense integers.  Each state owns an edge
 *		table keyed by pair code; a (state, pair) slot may hold
 *		several weighted edges.  Finality is a weight entry in
 *		the finals map.
 *
 *		Epsilon closure follows every pair whose input side is
 *		0, accumulating output symbols and weight, and is
 *		memoised per source state so epsilon cycles terminate.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"io"
	"sort"
)

type transition struct {
	dest   int32
	weight float64
}

type closure_item struct {
	dest   int32
	out    []int32
	weight float64
}

type Transducer struct {
	initial     int32
	finals      map[int32]float64
	transitions []map[int32][]transition

	// Built once the owning processor knows the alphabet.
	eps_pairs []int32
	closure   map[int32][]closure_item
}

func NewTransducer() *Transducer {
	var t = &Transducer{
		finals:  make(map[int32]float64),
		closure: make(map[int32][]closure_item),
	}
	t.AddState()
	return t
}

func (t *Transducer) AddState() int32 {
	t.transitions = append(t.transitions, make(map[int32][]transition))
	return int32(len(t.transitions) - 1)
}

func (t *Transducer) NumStates() int {
	return len(t.transitions)
}

func (t *Transducer) Initial() int32 {
	return t.initial
}

func (t *Transducer) AddTransition(src, pair, dest int32, weight float64) {
	t.transitions[src][pair] = append(t.transitions[src][pair], transition{dest, weight})
}

func (t *Transducer) SetFinal(state int32, weight float64) {
	t.finals[state] = weight
}

func (t *Transducer) Edges(state, pair int32) []transition {
	return t.transitions[state][pair]
}

func (t *Transducer) IsFinal(state int32) bool {
	var _, ok = t.finals[state]
	return ok
}

func (t *Transducer) FinalWeight(state int32) float64 {
	return t.finals[state]
}

// index prepares the epsilon dispatch table against an alphabet.
// Must run before the first EpsilonClosure call and again if the
// graph is extended.
func (t *Transducer) index(a *Alphabet) {
	t.eps_pairs = a.SymbolsWhereLeftIs(0)
	t.closure = make(map[int32][]closure_item)
}

// EpsilonClosure returns the reflexive closure of a state under
// input-epsilon pairs.  Each reachable state appears once, with the
// output symbols and weight of the first path that found it.
func (t *Transducer) EpsilonClosure(state int32, a *Alphabet) []closure_item {
	if items, ok := t.closure[state]; ok {
		return items
	}

	var visited = map[int32]bool{state: true}
	var items = []closure_item{{dest: state}}
	for i := 0; i < len(items); i++ {
		var cur = items[i]
		for _, pair := range t.eps_pairs {
			var _, out = a.Decode(pair)
			for _, tr := range t.Edges(cur.dest, pair) {
				if visited[tr.dest] {
					continue
				}
				visited[tr.dest] = true
				var seq []int32
				seq = append(seq, cur.out...)
				if out != 0 {
					seq = append(seq, out)
				}
				items = append(items, closure_item{
					dest:   tr.dest,
					out:    seq,
					weight: cur.weight + tr.weight,
				})
			}
		}
	}
	t.closure[state] = items
	return items
}

// join grafts another section onto this graph and returns the state
// offset its numbering was shifted by.
func (t *Transducer) join(other *Transducer) int32 {
	var offset = int32(len(t.transitions))
	for _, edges := range other.transitions {
		var shifted = make(map[int32][]transition, len(edges))
		for pair, trs := range edges {
			var out = make([]transition, len(trs))
			for i, tr := range trs {
				out[i] = transition{tr.dest + offset, tr.weight}
			}
			shifted[pair] = out
		}
		t.transitions = append(t.transitions, shifted)
	}
	for state, w := range other.finals {
		t.finals[state+offset] = w
	}
	return offset
}

/*------------------------------------------------------------------
 *
 * Serialisation of one section: state count, finals, then each
 * state's out-edges sorted by pair code.
 *
 *------------------------------------------------------------------*/

func (t *Transducer) Write(w io.ByteWriter) error {
	if err := multibyte_write(uint32(len(t.transitions)), w); err != nil {
		return err
	}

	if err := multibyte_write(uint32(len(t.finals)), w); err != nil {
		return err
	}
	var finals = make([]int32, 0, len(t.finals))
	for state := range t.finals {
		finals = append(finals, state)
	}
	sort.Slice(finals, func(i, j int) bool { return finals[i] < finals[j] })
	for _, state := range finals {
		if err := multibyte_write(uint32(state), w); err != nil {
			return err
		}
		if err := weight_write(t.finals[state], w); err != nil {
			return err
		}
	}

	for _, edges := range t.transitions {
		var pairs = make([]int32, 0, len(edges))
		var total = 0
		for pair, trs := range edges {
			pairs = append(pairs, pair)
			total += len(trs)
		}
		sort.Slice(pairs, func(i, j int) bool { return pairs[i] < pairs[j] })
		if err := multibyte_write(uint32(total), w); err != nil {
			return err
		}
		for _, pair := range pairs {
			for _, tr := range edges[pair] {
				if err := multibyte_write(uint32(pair), w); err != nil {
					return err
				}
				if err := multibyte_write(uint32(tr.dest), w); err != nil {
					return err
				}
				if err := weight_write(tr.weight, w); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (t *Transducer) Read(r io.ByteReader, a *Alphabet) error {
	var nstates, err = multibyte_read(r)
	if err != nil {
		return err
	}
	if nstates == 0 || nstates > 1<<28 {
		return fmt.Errorf("%w: state count %d out of range", ErrCorruptContainer, nstates)
	}

	var fresh = &Transducer{
		finals:      make(map[int32]float64),
		transitions: make([]map[int32][]transition, nstates),
		closure:     make(map[int32][]closure_item),
	}
	for i := range fresh.transitions {
		fresh.transitions[i] = make(map[int32][]transition)
	}

	nfinals, err := multibyte_read(r)
	if err != nil {
		return err
	}
	for i := uint32(0); i < nfinals; i++ {
		var state uint32
		state, err = multibyte_read(r)
		if err != nil {
			return err
		}
		if state >= nstates {
			return fmt.Errorf("%w: final state %d out of range", ErrCorruptContainer, state)
		}
		var weight float64
		weight, err = weight_read(r)
		if err != nil {
			return err
		}
		fresh.finals[int32(state)] = weight
	}

	for state := uint32(0); state < nstates; state++ {
		var nedges uint32
		nedges, err = multibyte_read(r)
		if err != nil {
			return err
		}
		for i := uint32(0); i < nedges; i++ {
			var pair, dest uint32
			pair, err = multibyte_read(r)
			if err != nil {
				return err
			}
			if int(pair) >= a.PairCount() {
				return fmt.Errorf("%w: transition references undefined pair code %d", ErrCorruptContainer, pair)
			}
			dest, err = multibyte_read(r)
			if err != nil {
				return err
			}
			if dest >= nstates {
				return fmt.Errorf("%w: transition target %d out of range", ErrCorruptContainer, dest)
			}
			var weight float64
			weight, err = weight_read(r)
			if err != nil {
				return err
			}
			fresh.transitions[state][int32(pair)] = append(fresh.transitions[state][int32(pair)],
				transition{int32(dest), weight})
		}
	}

	*t = *fresh
	return nil
}

/*------------------------------------------------------------------
 *
 * Container envelope: magic, format version, section count, alphabet
 * blob, then each section as a name plus transducer blob.  The reader
 * accepts any format version up to the current one.
 *
 *------------------------------------------------------------------*/

var container_magic = [4]byte{'L', 'T', 'B', 'C'}

const container_version = 1

type Section struct {
	Name      string
	Transducer *Transducer
}

func WriteContainer(w io.ByteWriter, a *Alphabet, sections []Section) error {
	for _, b := range container_magic {
		if err := w.WriteByte(b); err != nil {
			return err
		}
	}
	if err := multibyte_write(container_version, w); err != nil {
		return err
	}
	if err := multibyte_write(uint32(len(sections)), w); err != nil {
		return err
	}
	if err := a.Write(w); err != nil {
		return err
	}
	for _, s := range sections {
		if err := string_write(s.Name, w); err != nil {
			return err
		}
		if err := s.Transducer.Write(w); err != nil {
			return err
		}
	}
	return nil
}

func ReadContainer(r io.ByteReader) (*Alphabet, []Section, error) {
	for _, want := range container_magic {
		var b, err = r.ReadByte()
		if err != nil || b != want {
			return nil, nil, fmt.Errorf("%w: bad magic", ErrCorruptContainer)
		}
	}
	var version, err = multibyte_read(r)
	if err != nil {
		return nil, nil, err
	}
	if version == 0 || version > container_version {
		return nil, nil, fmt.Errorf("%w: unsupported format version %d", ErrCorruptContainer, version)
	}
	nsections, err := multibyte_read(r)
	if err != nil {
		return nil, nil, err
	}
	if nsections > 64 {
		return nil, nil, fmt.Errorf("%w: section count %d out of range", ErrCorruptContainer, nsections)
	}

	var a = NewAlphabet()
	if err = a.Read(r); err != nil {
		return nil, nil, err
	}

	var sections = make([]Section, 0, nsections)
	for i := uint32(0); i < nsections; i++ {
		var name string
		name, err = string_read(r)
		if err != nil {
			return nil, nil, err
		}
		var t = &Transducer{}
		if err = t.Read(r, a); err != nil {
			return nil, nil, err
		}
		sections = append(sections, Section{Name: name, Transducer: t})
	}
	return a, sections, nil
}
