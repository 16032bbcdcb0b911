package gen

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/npillmayer/pgen"
)

// AcceptLabel is the reserved label id 0. A final DFA state carries a
// self-arc labeled with it, telling the parser the rule may be reduced.
// Labels[0] is pre-seeded accordingly; no grammar label is ever assigned
// id 0.
const AcceptLabel = 0

// LabelEntry describes one entry of the grammar's label space. Type is
// either a terminal token type (below pgen.FirstNonterminal) or a rule's
// symbol number. Value is the keyword text for keyword labels and empty
// otherwise.
type LabelEntry struct {
	Type  int
	Value string
}

// Arc is one transition of a compiled DFA state: on label id Label,
// continue at state index To.
type Arc struct {
	Label int
	To    int
}

// RuleDFA is the compiled automaton of a single rule: per-state arc lists
// (state 0 is the start state) and the rule's FIRST-set as label ids.
type RuleDFA struct {
	States [][]Arc
	First  map[int]bool
}

// Grammar is the compiled grammar table. It is produced once by
// GenerateGrammar and immutable afterwards; concurrent read-only use is
// safe.
//
// SymbolToNumber/NumberToSymbol map rule names to symbol numbers, assigned
// in lexicographic name order starting at pgen.FirstNonterminal, so
// recompilations of the same grammar number identically. Labels is the
// dense label space; SymbolToLabel/LabelToSymbol, Keywords and Tokens
// dedupe nonterminal-reference, keyword and token-class labels into it.
// DFAs maps a rule's symbol number to its compiled automaton.
type Grammar struct {
	Source         string // the grammar source text
	Start          string // name of the start rule (first rule in the source)
	SymbolToNumber map[string]int
	NumberToSymbol map[int]string
	Labels         []LabelEntry
	SymbolToLabel  map[string]int
	LabelToSymbol  map[int]string
	Keywords       map[string]int
	Tokens         map[pgen.TokType]int
	DFAs           map[int]RuleDFA
}

// NewGrammar creates an empty grammar table for a source text and start
// rule. The label space is seeded with the reserved accept label, so real
// labels start at id 1.
func NewGrammar(source, start string) *Grammar {
	return &Grammar{
		Source:         source,
		Start:          start,
		SymbolToNumber: make(map[string]int),
		NumberToSymbol: make(map[int]string),
		Labels:         []LabelEntry{{Type: int(pgen.Endmarker), Value: "EMPTY"}},
		SymbolToLabel:  make(map[string]int),
		LabelToSymbol:  make(map[int]string),
		Keywords:       make(map[string]int),
		Tokens:         make(map[pgen.TokType]int),
		DFAs:           make(map[int]RuleDFA),
	}
}

// StartNumber returns the symbol number of the start rule.
func (g *Grammar) StartNumber() int {
	return g.SymbolToNumber[g.Start]
}

// Fingerprint returns a stable hash over the complete table. Two
// compilations of the same grammar text yield the same fingerprint, so
// callers may use it to key caches of derived artifacts.
func (g *Grammar) Fingerprint() string {
	return fmt.Sprintf("%x", structhash.Sha1(g, 1))
}

// Dump logs the symbol table and label space. A debugging helper.
func (g *Grammar) Dump() {
	tracer().Debugf("grammar with %d rules, start symbol %q", len(g.SymbolToNumber), g.Start)
	for num := pgen.FirstNonterminal; num < pgen.FirstNonterminal+len(g.NumberToSymbol); num++ {
		tracer().Debugf("%4d: %s", num, g.NumberToSymbol[num])
	}
	for id := range g.Labels {
		tracer().Debugf("label %3d = %s", id, g.LabelString(id))
	}
}
