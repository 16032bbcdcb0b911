package gen

import (
	"errors"
	"sort"

	"github.com/npillmayer/pgen"
	"github.com/npillmayer/pgen/dfa"
	"github.com/npillmayer/pgen/ebnf"
)

// generator holds the state of one grammar compilation: the finished
// rule-to-DFA mapping, the FIRST-set cache and the token namespace. It is
// owned by a single GenerateGrammar call; the only thing surviving the call
// is the immutable Grammar table.
type generator struct {
	dfas  map[string][]*dfa.State
	names []string // rule names, sorted
	first map[string]*firstEntry
	ns    pgen.TokenNamespace
}

// GenerateGrammar compiles grammar source text into a Grammar table.
//
// Each rule's NFA fragment is converted to a deterministic automaton and
// minimized as it comes in; once all rules are present, FIRST-sets are
// computed over the whole rule set and the label space and per-rule tables
// are assembled. Any error (syntax, left recursion, FIRST-set ambiguity,
// unresolvable token) aborts the compilation.
func GenerateGrammar(source string, ns pgen.TokenNamespace) (*Grammar, error) {
	rules, err := ebnf.Parse(source)
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, errors.New("empty grammar")
	}
	gtor := &generator{
		dfas:  make(map[string][]*dfa.State),
		first: make(map[string]*firstEntry),
		ns:    ns,
	}
	for _, rule := range rules {
		states := dfa.FromNFA(rule.Automaton, rule.Start, rule.End)
		raw := len(states)
		states = dfa.Simplify(states)
		tracer().Debugf("rule %q: %d DFA states, %d after minimization", rule.Name, raw, len(states))
		dfa.Dump(rule.Name, states)
		gtor.dfas[rule.Name] = states
		gtor.first[rule.Name] = &firstEntry{}
	}
	for name := range gtor.dfas {
		gtor.names = append(gtor.names, name)
	}
	sort.Strings(gtor.names)
	if err := gtor.computeFirstSets(); err != nil {
		return nil, err
	}
	return gtor.makeGrammar(NewGrammar(source, rules[0].Name))
}

// makeGrammar assembles the final table: symbol numbers in lexicographic
// rule order, then per rule the translated arc lists (with the accept
// self-arc on final states) and the FIRST-set as label ids.
func (gtor *generator) makeGrammar(grammar *Grammar) (*Grammar, error) {
	for i, name := range gtor.names {
		num := pgen.FirstNonterminal + i
		grammar.SymbolToNumber[name] = num
		grammar.NumberToSymbol[num] = name
	}
	for _, name := range gtor.names {
		states := gtor.dfas[name]
		index := make(map[*dfa.State]int, len(states))
		for i, s := range states {
			index[s] = i
		}
		table := make([][]Arc, 0, len(states))
		for i, s := range states {
			arcs := make([]Arc, 0, len(s.Arcs())+1)
			for _, a := range s.Arcs() {
				id, err := gtor.makeLabel(grammar, name, a.Label)
				if err != nil {
					return nil, err
				}
				arcs = append(arcs, Arc{Label: id, To: index[a.To]})
			}
			if s.Final {
				arcs = append(arcs, Arc{Label: AcceptLabel, To: i})
			}
			table = append(table, arcs)
		}
		first, err := gtor.makeFirst(grammar, name)
		if err != nil {
			return nil, err
		}
		grammar.DFAs[grammar.SymbolToNumber[name]] = RuleDFA{States: table, First: first}
	}
	tracer().Infof("compiled grammar: %d rules, %d labels", len(gtor.names), len(grammar.Labels))
	return grammar, nil
}

// makeFirst translates a rule's FIRST-set into label ids, through the same
// classifier that numbered the arcs.
func (gtor *generator) makeFirst(grammar *Grammar, name string) (map[int]bool, error) {
	set := gtor.first[name].set
	first := make(map[int]bool, set.Size())
	it := set.Iterator()
	for it.Next() {
		label := it.Value().(dfa.Label)
		id, err := gtor.makeLabel(grammar, name, label)
		if err != nil {
			return nil, err
		}
		first[id] = true
	}
	return first, nil
}
