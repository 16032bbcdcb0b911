/*
Package gen assembles compiled grammar tables.

gen is the back half of the grammar compiler: it takes the per-rule
deterministic automata produced by packages ebnf and dfa, computes the
FIRST-set of every rule, classifies every arc label into the grammar's dense
integer label space, and emits an immutable Grammar table.

The single entry point is GenerateGrammar:

    ns := pgen.NewStdTokens()
    g, err := gen.GenerateGrammar(grammarText, ns)

Compilation is an all-or-nothing batch step. A left-recursive rule, a rule
whose alternatives cannot be told apart by one token of lookahead, or a
label that the token namespace cannot resolve abort the compilation with a
typed error; no partial table is ever returned. The returned Grammar is
immutable and safe to share between any number of parser instances.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package gen

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pgen.gen'.
func tracer() tracing.Trace {
	return tracing.Select("pgen.gen")
}
