package lttoolbox

/*------------------------------------------------------------------
 *
 * Purpose:	Live-path frontier of the non-deterministic traversal.
 *
 * Description: Each node carries the state it sits in, the output
 *		symbols emitted so far and the accumulated weight.
 *		Stepping expands the frontier through every edge whose
 *		input side matches one of the offered symbols, then
 *		takes the epsilon closure.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"sort"
	"strings"
)

type tnode struct {
	where  int32
	out    []int32
	weight float64
}

type State struct {
	state []tnode
}

func (st *State) size() int {
	return len(st.state)
}

func (st *State) clear() {
	st.state = st.state[:0]
}

func (st *State) copy_from(other *State) {
	st.state = st.state[:0]
	st.state = append(st.state, other.state...)
}

func (st *State) add_closure(t *Transducer, a *Alphabet, n tnode) {
	for _, item := range t.EpsilonClosure(n.where, a) {
		var seq = n.out
		if len(item.out) > 0 {
			seq = make([]int32, 0, len(n.out)+len(item.out))
			seq = append(seq, n.out...)
			seq = append(seq, item.out...)
		}
		st.state = append(st.state, tnode{
			where:  item.dest,
			out:    seq,
			weight: n.weight + item.weight,
		})
	}
}

/*------------------------------------------------------------------
 *
 * Function:	step
 *
 * Purpose:	Advance every live path by one input symbol.
 *
 * Inputs:	by_left - pair codes grouped by input symbol.
 *		syms    - the symbol and its accepted alternatives
 *		          (lowercased form, restore-table variants).
 *		wild    - pair codes reachable through a wildcard, or
 *		          nil; a wildcard identity pair re-emits the
 *		          actual input symbol.
 *
 *------------------------------------------------------------------*/

func (st *State) step(t *Transducer, a *Alphabet, by_left map[int32][]int32, syms []int32, wild []int32, wild_sym, actual int32) {
	var prev = st.state
	st.state = nil

	var seen = make(map[int32]bool, len(syms))
	for _, n := range prev {
		seen = clearmap(seen)
		for _, sym := range syms {
			if seen[sym] {
				continue
			}
			seen[sym] = true
			st.expand(t, a, n, by_left[sym], 0, actual)
		}
		st.expand(t, a, n, wild, wild_sym, actual)
	}
}

func (st *State) expand(t *Transducer, a *Alphabet, n tnode, pairs []int32, wild_sym, actual int32) {
	for _, pair := range pairs {
		var trs = t.Edges(n.where, pair)
		if len(trs) == 0 {
			continue
		}
		var _, out = a.Decode(pair)
		if wild_sym != 0 && out == wild_sym {
			// Identity wildcard: the arc emits whatever it
			// consumed.
			out = actual
		}
		for _, tr := range trs {
			var seq = n.out
			if out != 0 {
				seq = make([]int32, 0, len(n.out)+1)
				seq = append(seq, n.out...)
				seq = append(seq, out)
			}
			st.add_closure(t, a, tnode{
				where:  tr.dest,
				out:    seq,
				weight: n.weight + tr.weight,
			})
		}
	}
}

func clearmap(m map[int32]bool) map[int32]bool {
	for k := range m {
		delete(m, k)
	}
	return m
}

func (st *State) is_final(t *Transducer) bool {
	for _, n := range st.state {
		if t.IsFinal(n.where) {
			return true
		}
	}
	return false
}

// intersects reports whether any live path sits in one of the given
// final states.
func (st *State) intersects(finals *sorted_vector[int32]) bool {
	for _, n := range st.state {
		if finals.count(n.where) {
			return true
		}
	}
	return false
}

/*------------------------------------------------------------------
 *
 * Function:	filter_finals
 *
 * Purpose:	Render every path sitting in a final state, prune, and
 *		join the survivors.
 *
 * Description: Analyses are ordered by ascending weight, ties by
 *		insertion order, and duplicates collapse onto their
 *		lightest copy.  max_weight_classes keeps the K lowest
 *		distinct weights without ever splitting a tie;
 *		max_analyses then keeps a prefix of N.  The result
 *		starts with '/' before each analysis.
 *
 *------------------------------------------------------------------*/

type filter_opts struct {
	escaped         map[rune]bool
	display_weights bool
	max_analyses    int
	max_weight_classes int
	uppercase       bool
	firstupper      bool
}

func (st *State) filter_finals(t *Transducer, a *Alphabet, opts filter_opts) string {
	type result struct {
		s string
		w float64
	}
	var results []result
	var best = make(map[string]int)

	for _, n := range st.state {
		if !t.IsFinal(n.where) {
			continue
		}
		var w = n.weight + t.FinalWeight(n.where)
		var s = render_symbols(a, n.out, opts)
		if at, ok := best[s]; ok {
			if w < results[at].w {
				results[at].w = w
			}
			continue
		}
		best[s] = len(results)
		results = append(results, result{s, w})
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].w < results[j].w })

	if opts.max_weight_classes > 0 {
		var classes = 0
		var cut = len(results)
		for i := range results {
			if i == 0 || results[i].w != results[i-1].w {
				classes++
				if classes > opts.max_weight_classes {
					cut = i
					break
				}
			}
		}
		results = results[:cut]
	}
	if opts.max_analyses > 0 && len(results) > opts.max_analyses {
		results = results[:opts.max_analyses]
	}

	var sb strings.Builder
	for _, res := range results {
		sb.WriteByte('/')
		sb.WriteString(res.s)
		if opts.display_weights {
			fmt.Fprintf(&sb, "<W:%f>", res.w)
		}
	}
	return sb.String()
}

func render_symbols(a *Alphabet, out []int32, opts filter_opts) string {
	var sb strings.Builder
	var firstdone = !opts.firstupper
	for _, sym := range out {
		if sym == 0 {
			continue
		}
		if sym < 0 {
			a.GetSymbol(&sb, sym, false)
			continue
		}
		var upper = opts.uppercase
		if !firstdone {
			upper = true
			firstdone = true
		}
		var r = rune(sym)
		if opts.escaped[r] {
			sb.WriteByte('\\')
		}
		a.GetSymbol(&sb, sym, upper)
	}
	return sb.String()
}
