/*
Package ebnf reads grammar source text and produces one NFA fragment per
grammar rule.

Grammars are written in the classical pgen dialect of BNF, which is itself
describable in that dialect:

    grammar: (NEWLINE | rule)* ENDMARKER
    rule: NAME ':' rhs NEWLINE
    rhs: items ('|' items)*
    items: item+
    item: '[' rhs ']' | atom ['+' | '*']
    atom: '(' rhs ')' | NAME | STRING

'|' separates alternatives, '( )' group, '[ ]' mark an optional part, '*'
and '+' repeat an atom (at least once for '+'). '#' starts a line comment.
Newlines inside parentheses or brackets do not terminate a rule.

Arc labels are tagged at parse time: a bare identifier becomes a NameLabel
(a rule reference or a named token class), a quoted literal becomes a
LiteralLabel (a keyword or an operator). Later compilation stages only
disambiguate within these tags, they never re-inspect the raw text shape.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ebnf

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pgen.ebnf'.
func tracer() tracing.Trace {
	return tracing.Select("pgen.ebnf")
}
