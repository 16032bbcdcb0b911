package ebnf

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/pgen/dfa"
)

func compileRule(t *testing.T, source string) []*dfa.State {
	rules, err := Parse(source)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(rules) == 0 {
		t.Fatalf("no rules parsed")
	}
	r := rules[0]
	return dfa.Simplify(dfa.FromNFA(r.Automaton, r.Start, r.End))
}

func accepts(states []*dfa.State, input ...dfa.Label) bool {
	s := states[0]
	for _, label := range input {
		var next *dfa.State
		for _, a := range s.Arcs() {
			if a.Label == label {
				next = a.To
				break
			}
		}
		if next == nil {
			return false
		}
		s = next
	}
	return s.Final
}

func lit(s string) dfa.Label {
	return dfa.Label{Kind: dfa.LiteralLabel, Text: s}
}

func name(s string) dfa.Label {
	return dfa.Label{Kind: dfa.NameLabel, Text: s}
}

// --- the Tests -------------------------------------------------------------

func TestParseRuleNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pgen.ebnf")
	defer teardown()
	//
	rules, err := Parse("a: 'x'\nb: a a\n")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(rules) != 2 || rules[0].Name != "a" || rules[1].Name != "b" {
		t.Fatalf("expected rules a and b, got %v", rules)
	}
	if rules[0].Automaton.Rule() != "a" {
		t.Errorf("automaton should carry its originating rule name")
	}
}

func TestLabelTagging(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pgen.ebnf")
	defer teardown()
	//
	states := compileRule(t, "decl: 'var' NAME\n")
	// the quotes are stripped, the tag remembers the shape
	if !accepts(states, lit("var"), name("NAME")) {
		t.Errorf("expected literal 'var' followed by bare NAME")
	}
	if accepts(states, name("var"), name("NAME")) {
		t.Errorf("quoted and bare labels must not be interchangeable")
	}
}

func TestConstructs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pgen.ebnf")
	defer teardown()
	//
	cases := []struct {
		source string
		accept [][]dfa.Label
		reject [][]dfa.Label
	}{
		{ // sequence
			source: "r: 'a' 'b'\n",
			accept: [][]dfa.Label{{lit("a"), lit("b")}},
			reject: [][]dfa.Label{{lit("a")}, {lit("b"), lit("a")}},
		},
		{ // alternation
			source: "r: 'a' | 'b'\n",
			accept: [][]dfa.Label{{lit("a")}, {lit("b")}},
			reject: [][]dfa.Label{{lit("a"), lit("b")}, {}},
		},
		{ // optional
			source: "r: ['a'] 'b'\n",
			accept: [][]dfa.Label{{lit("b")}, {lit("a"), lit("b")}},
			reject: [][]dfa.Label{{lit("a")}},
		},
		{ // repetition, zero or more
			source: "r: 'a'* 'b'\n",
			accept: [][]dfa.Label{{lit("b")}, {lit("a"), lit("b")}, {lit("a"), lit("a"), lit("b")}},
			reject: [][]dfa.Label{{lit("a")}},
		},
		{ // repetition, at least once
			source: "r: 'a'+\n",
			accept: [][]dfa.Label{{lit("a")}, {lit("a"), lit("a")}},
			reject: [][]dfa.Label{{}},
		},
		{ // grouping with repetition
			source: "r: 'a' ('+' 'a')*\n",
			accept: [][]dfa.Label{{lit("a")}, {lit("a"), lit("+"), lit("a")}},
			reject: [][]dfa.Label{{lit("a"), lit("+")}},
		},
		{ // newline inside a group does not end the rule
			source: "r: ('a' |\n    'b')\n",
			accept: [][]dfa.Label{{lit("a")}, {lit("b")}},
			reject: [][]dfa.Label{{}},
		},
		{ // comments and blank lines
			source: "# grammar\n\nr: 'a'  # trailing\n",
			accept: [][]dfa.Label{{lit("a")}},
			reject: [][]dfa.Label{{}},
		},
	}
	for _, c := range cases {
		states := compileRule(t, c.source)
		for _, input := range c.accept {
			if !accepts(states, input...) {
				t.Errorf("%q should accept %v", c.source, input)
			}
		}
		for _, input := range c.reject {
			if accepts(states, input...) {
				t.Errorf("%q should reject %v", c.source, input)
			}
		}
	}
}

func TestSyntaxErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pgen.ebnf")
	defer teardown()
	//
	sources := []string{
		"a 'x'\n",        // missing colon
		"a: | 'x'\n",     // empty alternative
		"a: ('x'\n",      // unclosed group
		"a: 'x' ]\n",     // stray bracket
		": 'x'\n",        // missing rule name
	}
	for _, src := range sources {
		if _, err := Parse(src); err == nil {
			t.Errorf("%q should not parse", src)
		}
	}
}

func TestRuleWithoutTrailingNewline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pgen.ebnf")
	defer teardown()
	//
	states := compileRule(t, "r: 'a'") // no newline at end of input
	if !accepts(states, lit("a")) {
		t.Errorf("last rule may end without a newline")
	}
}
