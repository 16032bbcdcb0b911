package ebnf

import (
	"fmt"

	"github.com/npillmayer/pgen/dfa"
)

// Rule is the NFA fragment for one grammar rule: an automaton arena plus the
// handles of the fragment's start and end state.
type Rule struct {
	Name       string
	Automaton  *dfa.NFA
	Start, End dfa.StateRef
}

// Parse reads grammar source text and returns the NFA fragments of its
// rules, in source order. The first rule is the grammar's start symbol.
func Parse(source string) ([]Rule, error) {
	scan, err := newScanner(source)
	if err != nil {
		return nil, err
	}
	p := &parser{scan: scan}
	if err := p.next(); err != nil {
		return nil, err
	}
	var rules []Rule
	for p.tok.typ != tokEOF {
		if p.tok.typ == tokNewline { // blank line or comment-only line
			if err := p.next(); err != nil {
				return nil, err
			}
			continue
		}
		rule, err := p.parseRule()
		if err != nil {
			return nil, err
		}
		tracer().Debugf("parsed rule %q, %d NFA states", rule.Name, rule.Automaton.StateCount())
		rules = append(rules, rule)
	}
	return rules, nil
}

// parser is a recursive-descent parser for the grammar meta-language. It
// builds one NFA arena per rule; the parse functions for rhs/items/item/atom
// each return the (start, end) handles of the sub-fragment they recognized.
type parser struct {
	scan *scanner
	tok  token
	nfa  *dfa.NFA // arena of the rule currently being parsed
}

func (p *parser) next() error {
	tok, err := p.scan.next()
	if err != nil {
		return fmt.Errorf("ebnf: %v", err)
	}
	p.tok = tok
	return nil
}

func (p *parser) expect(typ int) (token, error) {
	if p.tok.typ != typ {
		return token{}, p.syntaxError(typ)
	}
	tok := p.tok
	return tok, p.next()
}

func (p *parser) syntaxError(expected int) error {
	return fmt.Errorf("ebnf: line %d: unexpected %q (expected %s)",
		p.tok.line, p.tok.lexeme, tokenName(expected))
}

func tokenName(typ int) string {
	switch typ {
	case tokEOF:
		return "end of input"
	case tokName:
		return "a name"
	case tokString:
		return "a string"
	case tokNewline:
		return "end of rule"
	}
	return fmt.Sprintf("%q", string(rune(typ)))
}

// rule: NAME ':' rhs NEWLINE
func (p *parser) parseRule() (Rule, error) {
	name, err := p.expect(tokName)
	if err != nil {
		return Rule{}, err
	}
	if _, err := p.expect(int(':')); err != nil {
		return Rule{}, err
	}
	p.nfa = dfa.NewNFA(name.lexeme)
	a, z, err := p.parseRHS()
	if err != nil {
		return Rule{}, err
	}
	if p.tok.typ != tokEOF { // last rule may end without a newline
		if _, err := p.expect(tokNewline); err != nil {
			return Rule{}, err
		}
	}
	return Rule{Name: name.lexeme, Automaton: p.nfa, Start: a, End: z}, nil
}

// rhs: items ('|' items)*
//
// Alternatives are joined by a fresh fork/join state pair with epsilon arcs
// to every alternative's start and from every alternative's end.
func (p *parser) parseRHS() (dfa.StateRef, dfa.StateRef, error) {
	a, z, err := p.parseItems()
	if err != nil || p.tok.typ != int('|') {
		return a, z, err
	}
	fork := p.nfa.NewState()
	join := p.nfa.NewState()
	p.nfa.AddEpsilon(fork, a)
	p.nfa.AddEpsilon(z, join)
	for p.tok.typ == int('|') {
		if err := p.next(); err != nil {
			return 0, 0, err
		}
		a, z, err = p.parseItems()
		if err != nil {
			return 0, 0, err
		}
		p.nfa.AddEpsilon(fork, a)
		p.nfa.AddEpsilon(z, join)
	}
	return fork, join, nil
}

// items: item+
func (p *parser) parseItems() (dfa.StateRef, dfa.StateRef, error) {
	a, z, err := p.parseItem()
	if err != nil {
		return 0, 0, err
	}
	for p.startsItem() {
		c, d, err := p.parseItem()
		if err != nil {
			return 0, 0, err
		}
		p.nfa.AddEpsilon(z, c) // chain the sequence
		z = d
	}
	return a, z, nil
}

func (p *parser) startsItem() bool {
	switch p.tok.typ {
	case tokName, tokString, int('('), int('['):
		return true
	}
	return false
}

// item: '[' rhs ']' | atom ['+' | '*']
//
// An optional part gets an epsilon bypass from start to end. For '+' the
// fragment's end loops back to its start; for '*' additionally the start
// state doubles as the end, so zero repetitions are accepted.
func (p *parser) parseItem() (dfa.StateRef, dfa.StateRef, error) {
	if p.tok.typ == int('[') {
		if err := p.next(); err != nil {
			return 0, 0, err
		}
		a, z, err := p.parseRHS()
		if err != nil {
			return 0, 0, err
		}
		if _, err := p.expect(int(']')); err != nil {
			return 0, 0, err
		}
		p.nfa.AddEpsilon(a, z)
		return a, z, nil
	}
	a, z, err := p.parseAtom()
	if err != nil {
		return 0, 0, err
	}
	switch p.tok.typ {
	case int('+'):
		p.nfa.AddEpsilon(z, a)
		return a, z, p.next()
	case int('*'):
		p.nfa.AddEpsilon(z, a)
		return a, a, p.next()
	}
	return a, z, nil
}

// atom: '(' rhs ')' | NAME | STRING
func (p *parser) parseAtom() (dfa.StateRef, dfa.StateRef, error) {
	switch p.tok.typ {
	case int('('):
		if err := p.next(); err != nil {
			return 0, 0, err
		}
		a, z, err := p.parseRHS()
		if err != nil {
			return 0, 0, err
		}
		if _, err := p.expect(int(')')); err != nil {
			return 0, 0, err
		}
		return a, z, nil
	case tokName, tokString:
		label := dfa.Label{Kind: dfa.NameLabel, Text: p.tok.lexeme}
		if p.tok.typ == tokString {
			// strip the quotes; the tag remembers that it was quoted
			label = dfa.Label{Kind: dfa.LiteralLabel, Text: p.tok.lexeme[1 : len(p.tok.lexeme)-1]}
		}
		a := p.nfa.NewState()
		z := p.nfa.NewState()
		p.nfa.AddArc(a, label, z)
		return a, z, p.next()
	}
	return 0, 0, fmt.Errorf("ebnf: line %d: unexpected %q in rule %s",
		p.tok.line, p.tok.lexeme, p.nfa.Rule())
}
