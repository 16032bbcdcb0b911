package dfa

import (
	"github.com/emirpasic/gods/lists/arraylist"
)

// --- DFA states -------------------------------------------------------------

// State is a state of the deterministic automaton for one grammar rule. It
// is identified by the set of NFA states it summarizes: two states are the
// same node iff their nfasets are set-equal. Arcs are kept in first-seen
// order; by construction no two arcs of a state share a label.
//
// States are mutated only by Simplify (arc redirection when two states
// merge) and are frozen afterwards.
type State struct {
	nfaset []StateRef // sorted member handles, set during construction
	Final  bool       // does nfaset contain the rule's finish state?
	arcs   []Arc
}

// Arc is a deterministic transition: on Label, continue at To.
type Arc struct {
	Label Label
	To    *State
}

// Arcs returns the outgoing transitions in construction order.
func (s *State) Arcs() []Arc {
	return s.arcs
}

func (s *State) addArc(label Label, to *State) {
	s.arcs = append(s.arcs, Arc{Label: label, To: to})
}

// target returns the arc target for a label, or nil.
func (s *State) target(label Label) *State {
	for _, a := range s.arcs {
		if a.Label == label {
			return a.To
		}
	}
	return nil
}

// equals tests structural equality, ignoring the nfaset. Two states are
// interchangeable iff they agree on the Final flag and have the same
// (label, target) pairs, with targets compared by identity. Comparing
// targets by identity is sound because Simplify redirects all arcs onto the
// surviving state before the next comparison pass.
func (s *State) equals(other *State) bool {
	if s.Final != other.Final || len(s.arcs) != len(other.arcs) {
		return false
	}
	for _, a := range s.arcs {
		if other.target(a.Label) != a.To {
			return false
		}
	}
	return true
}

// redirect replaces arc targets pointing at old with new.
func (s *State) redirect(old, new *State) {
	for i, a := range s.arcs {
		if a.To == old {
			s.arcs[i].To = new
		}
	}
}

// --- Subset construction ----------------------------------------------------

// FromNFA converts a rule's NFA fragment, given as a (start, finish) pair of
// handles into the arena, into an equivalent deterministic automaton. The
// first state of the returned sequence is the start state. The NFA itself is
// left untouched.
//
// Every DFA state corresponds to a set of NFA states. The state list is
// seeded with the epsilon-closure of start; then, for each not-yet-processed
// state, the member NFA states are grouped by the non-epsilon labels leaving
// them and each group's epsilon-closure becomes an arc target, appending a
// new state if the set was not seen before.
func FromNFA(nfa *NFA, start, finish StateRef) []*State {
	closure := make(map[StateRef]bool)
	nfa.addClosure(start, closure)
	states := arraylist.New()
	states.Add(newState(sortedRefs(closure), finish))
	for i := 0; i < states.Size(); i++ { // states grows while we iterate
		x, _ := states.Get(i)
		state := x.(*State)
		// collect per-label move sets, labels in first-seen order
		var labels []Label
		moves := make(map[Label]map[StateRef]bool)
		for _, member := range state.nfaset {
			for _, a := range nfa.arcs[member] {
				if a.label.IsEpsilon() {
					continue
				}
				move, ok := moves[a.label]
				if !ok {
					move = make(map[StateRef]bool)
					moves[a.label] = move
					labels = append(labels, a.label)
				}
				nfa.addClosure(a.to, move)
			}
		}
		for _, label := range labels {
			nfaset := sortedRefs(moves[label])
			target := findStateBySet(states, nfaset)
			if target == nil {
				target = newState(nfaset, finish)
				states.Add(target)
			}
			state.addArc(label, target)
		}
	}
	return allStates(states)
}

func newState(nfaset []StateRef, finish StateRef) *State {
	return &State{
		nfaset: nfaset,
		Final:  containsRef(nfaset, finish),
	}
}

// findStateBySet looks up a previously created state by its nfaset.
func findStateBySet(states *arraylist.List, nfaset []StateRef) *State {
	it := states.Iterator()
	for it.Next() {
		s := it.Value().(*State)
		if equalRefs(s.nfaset, nfaset) {
			return s
		}
	}
	return nil
}

func allStates(states *arraylist.List) []*State {
	all := make([]*State, 0, states.Size())
	it := states.Iterator()
	for it.Next() {
		all = append(all, it.Value().(*State))
	}
	return all
}

// --- Minimization -----------------------------------------------------------

// Simplify merges interchangeable states until no pair changes and returns
// the compacted state sequence. The start state stays at index 0: of a
// mergeable pair the state with the lower index survives, so index 0 can
// never be removed.
//
// Each merge removes the later state, redirects every remaining arc onto the
// survivor and restarts the pair scan. Terminates because each merge
// strictly reduces the state count.
func Simplify(states []*State) []*State {
	changes := true
	for changes {
		changes = false
		for i := 0; i < len(states); i++ {
			for j := i + 1; j < len(states); j++ {
				if !states[i].equals(states[j]) {
					continue
				}
				dead := states[j]
				states = append(states[:j], states[j+1:]...)
				for _, s := range states {
					s.redirect(dead, states[i])
				}
				tracer().Debugf("unify states %d and %d", i, j)
				changes = true
				break
			}
		}
	}
	return states
}

// Dump logs the automaton, one state per line. A debugging helper.
func Dump(rule string, states []*State) {
	index := make(map[*State]int, len(states))
	for i, s := range states {
		index[s] = i
	}
	tracer().Debugf("--- DFA for rule %s ---------------", rule)
	for i, s := range states {
		marker := ""
		if s.Final {
			marker = " (final)"
		}
		tracer().Debugf("state %d%s  %s", i, marker, refsString(s.nfaset))
		for _, a := range s.arcs {
			tracer().Debugf("    %s -> %d", a.Label, index[a.To])
		}
	}
	tracer().Debugf("-----------------------------------")
}
