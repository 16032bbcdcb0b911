package dfa

import (
	"fmt"
	"sort"

	"github.com/emirpasic/gods/utils"
)

// --- Labels -----------------------------------------------------------------

// LabelKind distinguishes the syntactic shape of an arc label. The grammar
// parser decides the kind once, when it sees whether a token was quoted;
// downstream components never re-derive it from the label text.
type LabelKind int8

// Label kinds. The zero kind is the epsilon label.
const (
	epsilonLabel LabelKind = iota
	NameLabel              // bare identifier: a rule reference or a named token class
	LiteralLabel           // quoted literal: a keyword or an operator
)

// Label is an arc label of the automaton: a nonterminal/token-class name or
// a literal. The zero Label is the epsilon label.
type Label struct {
	Kind LabelKind
	Text string
}

// Epsilon is the label of unlabeled (epsilon) transitions.
var Epsilon = Label{}

// IsEpsilon is true for the epsilon label.
func (l Label) IsEpsilon() bool {
	return l.Kind == epsilonLabel
}

func (l Label) String() string {
	switch l.Kind {
	case NameLabel:
		return l.Text
	case LiteralLabel:
		return "'" + l.Text + "'"
	}
	return "ε"
}

// LabelComparator orders labels by kind, then by text. It satisfies the
// comparator contract of the gods containers and is used wherever label sets
// need a deterministic iteration order.
func LabelComparator(a, b interface{}) int {
	la := a.(Label)
	lb := b.(Label)
	if c := utils.Int8Comparator(int8(la.Kind), int8(lb.Kind)); c != 0 {
		return c
	}
	return utils.StringComparator(la.Text, lb.Text)
}

// --- NFA arena --------------------------------------------------------------

// StateRef is the handle of an NFA state within its arena.
type StateRef int

type nfaArc struct {
	label Label
	to    StateRef
}

// NFA is an arena of NFA states for one grammar rule. States are created
// with NewState and addressed by StateRef handles; arcs may form cycles.
// The grammar parser builds one NFA per rule and hands a (start, finish)
// fragment to the subset construction. The NFA is read-only from then on.
type NFA struct {
	rule string
	arcs [][]nfaArc // outgoing arcs, indexed by StateRef
}

// NewNFA creates an empty arena. The rule name is carried along for
// diagnostics only.
func NewNFA(rule string) *NFA {
	return &NFA{rule: rule}
}

// Rule returns the name of the grammar rule this automaton was built from.
func (nfa *NFA) Rule() string {
	return nfa.rule
}

// NewState appends a fresh state without arcs and returns its handle.
func (nfa *NFA) NewState() StateRef {
	nfa.arcs = append(nfa.arcs, nil)
	return StateRef(len(nfa.arcs) - 1)
}

// StateCount returns the number of states in the arena.
func (nfa *NFA) StateCount() int {
	return len(nfa.arcs)
}

// AddArc adds a labeled transition between two states.
func (nfa *NFA) AddArc(from StateRef, label Label, to StateRef) {
	nfa.arcs[from] = append(nfa.arcs[from], nfaArc{label: label, to: to})
}

// AddEpsilon adds an unlabeled transition between two states.
func (nfa *NFA) AddEpsilon(from, to StateRef) {
	nfa.AddArc(from, Epsilon, to)
}

// addClosure adds s and every state reachable from s via epsilon arcs to
// base. The visited-check on base guarantees termination on cycles.
func (nfa *NFA) addClosure(s StateRef, base map[StateRef]bool) {
	if base[s] {
		return
	}
	base[s] = true
	for _, a := range nfa.arcs[s] {
		if a.label.IsEpsilon() {
			nfa.addClosure(a.to, base)
		}
	}
}

// Dump logs the automaton, one state per line. A debugging helper.
func (nfa *NFA) Dump(start, finish StateRef) {
	tracer().Debugf("--- NFA for rule %s ---------------", nfa.rule)
	for i := range nfa.arcs {
		marker := ""
		if StateRef(i) == start {
			marker = " (start)"
		} else if StateRef(i) == finish {
			marker = " (final)"
		}
		tracer().Debugf("state %d%s", i, marker)
		for _, a := range nfa.arcs[i] {
			tracer().Debugf("    %s -> %d", a.label, a.to)
		}
	}
	tracer().Debugf("-----------------------------------")
}

// --- NFA state sets ---------------------------------------------------------

// sortedRefs turns a closure set into its canonical slice representation:
// member handles in increasing order. Set equality then is element-wise
// slice equality.
func sortedRefs(set map[StateRef]bool) []StateRef {
	refs := make([]StateRef, 0, len(set))
	for s := range set {
		refs = append(refs, s)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i] < refs[j] })
	return refs
}

func equalRefs(a, b []StateRef) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func containsRef(refs []StateRef, s StateRef) bool {
	i := sort.Search(len(refs), func(i int) bool { return refs[i] >= s })
	return i < len(refs) && refs[i] == s
}

func refsString(refs []StateRef) string {
	return fmt.Sprintf("%v", refs)
}
