package gen

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/pgen/dfa"
)

// FIRST-set computation. FIRST(rule) is the set of labels that can begin a
// derivation of the rule, resolved transitively through referenced rules.
// First sets of the rules are mutually recursive, so they are computed over
// the complete rule-to-DFA mapping, memoized per rule.

// firstStatus is the lifecycle of one rule's FIRST-set slot. The inProgress
// state doubles as the left-recursion guard: re-entering a rule whose set is
// still being computed means the rule derives itself without consuming
// input.
type firstStatus int8

const (
	firstNotStarted firstStatus = iota
	firstInProgress
	firstDone
)

type firstEntry struct {
	status firstStatus
	set    *treeset.Set // of dfa.Label, sorted for deterministic iteration
}

// computeFirstSets fills the FIRST-set slot of every rule, in lexicographic
// rule order.
func (gtor *generator) computeFirstSets() error {
	for _, name := range gtor.names {
		if gtor.first[name].status == firstNotStarted {
			if err := gtor.calcFirst(name); err != nil {
				return err
			}
		}
	}
	return nil
}

// calcFirst computes FIRST(name) from the arcs of the rule's DFA start
// state. An arc referencing another rule contributes that rule's (possibly
// recursively computed) FIRST-set; a terminal arc contributes its own label.
// The inverse map records, per contributed label, the start-state arc it
// came from; a label contributed by two different arcs makes the grammar
// ambiguous.
func (gtor *generator) calcFirst(name string) error {
	entry := gtor.first[name]
	entry.status = firstInProgress
	start := gtor.dfas[name][0]
	total := treeset.NewWith(dfa.LabelComparator)
	inverse := make(map[dfa.Label]dfa.Label)
	for _, arc := range start.Arcs() {
		if _, isRule := gtor.dfas[arc.Label.Text]; isRule && arc.Label.Kind == dfa.NameLabel {
			ref := gtor.first[arc.Label.Text]
			if ref.status == firstInProgress {
				return &LeftRecursionError{Rule: name}
			}
			if ref.status == firstNotStarted {
				if err := gtor.calcFirst(arc.Label.Text); err != nil {
					return err
				}
			}
			it := ref.set.Iterator()
			for it.Next() {
				label := it.Value().(dfa.Label)
				if prev, clash := inverse[label]; clash {
					return &AmbiguityError{Rule: name, Label: label, Source: arc.Label, Second: prev}
				}
				inverse[label] = arc.Label
				total.Add(label)
			}
		} else {
			if prev, clash := inverse[arc.Label]; clash {
				return &AmbiguityError{Rule: name, Label: arc.Label, Source: arc.Label, Second: prev}
			}
			inverse[arc.Label] = arc.Label
			total.Add(arc.Label)
		}
	}
	entry.set = total
	entry.status = firstDone
	tracer().Debugf("FIRST(%s) = %v", name, total.Values())
	return nil
}
