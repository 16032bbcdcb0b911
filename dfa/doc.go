/*
Package dfa implements the automaton machinery of the grammar compiler.

Every grammar rule starts its life as a fragment of a nondeterministic finite
automaton, built by the grammar parser (package ebnf): a pair of start/finish
states connected by labeled and epsilon arcs. NFA states live in an arena and
are addressed by integer handles, so the cycles produced by repetition
constructs ('*' and '+') are ordinary data.

FromNFA converts one rule's fragment into a deterministic automaton with the
classical subset construction: every DFA state corresponds to a set of NFA
states, computed via epsilon-closure and per-label move sets. Simplify then
merges structurally equal DFA states until a fixpoint is reached. This is
deliberately not a canonical minimization (Hopcroft); it removes the
conveniently detectable redundancy, which is all the small per-rule automata
need.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dfa

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pgen.dfa'.
func tracer() tracing.Trace {
	return tracing.Select("pgen.dfa")
}
