package dfa

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func lit(s string) Label {
	return Label{Kind: LiteralLabel, Text: s}
}

// 'a' 'b' | 'a' 'c' — two alternatives sharing a prefix.
func sharedPrefixNFA() (*NFA, StateRef, StateRef) {
	nfa := NewNFA("start")
	fork := nfa.NewState()
	join := nfa.NewState()
	for _, suffix := range []string{"b", "c"} {
		a := nfa.NewState()
		mid := nfa.NewState()
		z := nfa.NewState()
		nfa.AddArc(a, lit("a"), mid)
		nfa.AddArc(mid, lit(suffix), z)
		nfa.AddEpsilon(fork, a)
		nfa.AddEpsilon(z, join)
	}
	return nfa, fork, join
}

// ('a' | 'b') 'c' — two alternatives with a common suffix.
func commonSuffixNFA() (*NFA, StateRef, StateRef) {
	nfa := NewNFA("start")
	fork := nfa.NewState()
	groupJoin := nfa.NewState()
	for _, alt := range []string{"a", "b"} {
		a := nfa.NewState()
		z := nfa.NewState()
		nfa.AddArc(a, lit(alt), z)
		nfa.AddEpsilon(fork, a)
		nfa.AddEpsilon(z, groupJoin)
	}
	ca := nfa.NewState()
	cz := nfa.NewState()
	nfa.AddArc(ca, lit("c"), cz)
	nfa.AddEpsilon(groupJoin, ca)
	return nfa, fork, cz
}

// 'a'* 'b' — a repetition cycle before a terminal.
func starNFA() (*NFA, StateRef, StateRef) {
	nfa := NewNFA("start")
	a := nfa.NewState()
	z := nfa.NewState()
	nfa.AddArc(a, lit("a"), z)
	nfa.AddEpsilon(z, a) // the '*' loop
	ba := nfa.NewState()
	bz := nfa.NewState()
	nfa.AddArc(ba, lit("b"), bz)
	nfa.AddEpsilon(a, ba) // '*' accepts zero repetitions: start doubles as end
	return nfa, a, bz
}

func nfaAccepts(nfa *NFA, start, finish StateRef, input []Label) bool {
	current := make(map[StateRef]bool)
	nfa.addClosure(start, current)
	for _, label := range input {
		next := make(map[StateRef]bool)
		for s := range current {
			for _, a := range nfa.arcs[s] {
				if a.label == label {
					nfa.addClosure(a.to, next)
				}
			}
		}
		if len(next) == 0 {
			return false
		}
		current = next
	}
	return current[finish]
}

func dfaAccepts(states []*State, input []Label) bool {
	s := states[0]
	for _, label := range input {
		if s = s.target(label); s == nil {
			return false
		}
	}
	return s.Final
}

func checkDeterministic(t *testing.T, states []*State) {
	for i, s := range states {
		seen := make(map[Label]bool)
		for _, a := range s.Arcs() {
			if seen[a.Label] {
				t.Errorf("state %d has two arcs labeled %s", i, a.Label)
			}
			seen[a.Label] = true
		}
	}
}

// --- the Tests -------------------------------------------------------------

func TestSubsetSharedPrefix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pgen.dfa")
	defer teardown()
	//
	nfa, start, finish := sharedPrefixNFA()
	states := FromNFA(nfa, start, finish)
	if len(states) != 4 {
		t.Fatalf("expected 4 raw DFA states, got %d", len(states))
	}
	if states[0].Final {
		t.Errorf("start state must not be final")
	}
	if len(states[0].Arcs()) != 1 || states[0].Arcs()[0].Label != lit("a") {
		t.Errorf("start state should have a single arc on 'a'")
	}
	s1 := states[0].Arcs()[0].To
	if s1.Final || len(s1.Arcs()) != 2 {
		t.Fatalf("state after 'a' should be non-final with 2 arcs")
	}
	if s1.Arcs()[0].To == s1.Arcs()[1].To {
		t.Errorf("'b' and 'c' should lead to distinct states before minimization")
	}
	checkDeterministic(t, states)
}

func TestSimplifyMergesFinals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pgen.dfa")
	defer teardown()
	//
	nfa, start, finish := sharedPrefixNFA()
	states := Simplify(FromNFA(nfa, start, finish))
	if len(states) != 3 {
		t.Fatalf("expected 3 DFA states after minimization, got %d", len(states))
	}
	s1 := states[0].Arcs()[0].To
	if s1.Arcs()[0].To != s1.Arcs()[1].To {
		t.Errorf("the two final states should have been unified")
	}
	if !s1.Arcs()[0].To.Final {
		t.Errorf("unified target should be final")
	}
}

func TestSimplifyCommonSuffix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pgen.dfa")
	defer teardown()
	//
	nfa, start, finish := commonSuffixNFA()
	raw := FromNFA(nfa, start, finish)
	states := Simplify(raw)
	if len(states) >= 4 {
		t.Fatalf("minimization should reduce the state count, still %d states", len(states))
	}
	// the 'c'-consuming states of both alternatives must be one state now
	arcs := states[0].Arcs()
	if len(arcs) != 2 || arcs[0].To != arcs[1].To {
		t.Fatalf("'a' and 'b' should lead to the same merged state")
	}
}

func TestSimplifyKeepsStartState(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pgen.dfa")
	defer teardown()
	//
	nfa, start, finish := starNFA()
	states := Simplify(FromNFA(nfa, start, finish))
	if !dfaAccepts(states, []Label{lit("b")}) {
		t.Errorf("state 0 no longer behaves like the start state")
	}
}

func TestStarCycleTerminates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pgen.dfa")
	defer teardown()
	//
	nfa, start, finish := starNFA()
	states := FromNFA(nfa, start, finish) // must terminate despite the cycle
	checkDeterministic(t, states)
	if !dfaAccepts(states, []Label{lit("a"), lit("a"), lit("b")}) {
		t.Errorf("'a a b' should be accepted")
	}
	if dfaAccepts(states, []Label{lit("a")}) {
		t.Errorf("'a' alone should not be accepted")
	}
}

// Bisimulation check: NFA, raw DFA and minimized DFA accept the same label
// sequences for all short inputs over the alphabet.
func TestLanguagePreserved(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pgen.dfa")
	defer teardown()
	//
	builders := []func() (*NFA, StateRef, StateRef){
		sharedPrefixNFA, commonSuffixNFA, starNFA,
	}
	alphabet := []Label{lit("a"), lit("b"), lit("c")}
	for n, build := range builders {
		nfa, start, finish := build()
		raw := FromNFA(nfa, start, finish)
		min := Simplify(FromNFA(nfa, start, finish))
		for _, input := range enumerate(alphabet, 4) {
			want := nfaAccepts(nfa, start, finish, input)
			if got := dfaAccepts(raw, input); got != want {
				t.Errorf("automaton %d, input %v: raw DFA accepts=%v, NFA accepts=%v", n, input, got, want)
			}
			if got := dfaAccepts(min, input); got != want {
				t.Errorf("automaton %d, input %v: minimized DFA accepts=%v, NFA accepts=%v", n, input, got, want)
			}
		}
	}
}

// enumerate returns all label sequences over the alphabet up to maxlen.
func enumerate(alphabet []Label, maxlen int) [][]Label {
	all := [][]Label{{}}
	level := [][]Label{{}}
	for i := 0; i < maxlen; i++ {
		var next [][]Label
		for _, seq := range level {
			for _, label := range alphabet {
				ext := append(append([]Label{}, seq...), label)
				next = append(next, ext)
			}
		}
		all = append(all, next...)
		level = next
	}
	return all
}

func TestNFADump(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pgen.dfa")
	defer teardown()
	//
	nfa, start, finish := starNFA()
	nfa.Dump(start, finish) // must not panic
	Dump("start", Simplify(FromNFA(nfa, start, finish)))
}
