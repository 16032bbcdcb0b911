/*
Package pgen is a grammar compiler for table-driven parsers.

pgen compiles grammars written in an extended BNF dialect (alternation,
grouping, optional parts in square brackets, repetition with '*' and '+')
into a deterministic, table-driven automaton. The tables are meant to be
consumed by a generic shift/reduce parser; pgen itself never parses
application input, it only produces the tables.

Package structure is as follows:

■ dfa: Package dfa holds the automaton machinery: an arena-based NFA
representation, the subset construction turning a rule's NFA fragment into a
deterministic automaton, and a state minimizer.

■ ebnf: Package ebnf scans and parses grammar source text, producing one NFA
fragment per grammar rule.

■ gen: Package gen performs first-set analysis over the complete rule set,
assigns dense integer labels to every terminal and nonterminal reference,
and assembles the final grammar table.

The base package contains the terminal token-type space and the token
namespace shared by all other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package pgen
