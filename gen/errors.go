package gen

import (
	"fmt"

	"github.com/npillmayer/pgen/dfa"
)

// Grammar compilation fails fast: each of the error types below aborts
// GenerateGrammar without producing a table.

// LeftRecursionError reports a rule whose derivation can reach itself
// without consuming a token first. The FIRST-set of such a rule is not
// computable.
type LeftRecursionError struct {
	Rule string
}

func (e *LeftRecursionError) Error() string {
	return fmt.Sprintf("recursion for rule %q", e.Rule)
}

// AmbiguityError reports a rule whose start state has two arcs contributing
// the same label to the rule's FIRST-set. A parser with one token of
// lookahead could not decide between the two alternatives.
type AmbiguityError struct {
	Rule           string
	Label          dfa.Label // the overlapping FIRST-set label
	Source, Second dfa.Label // the two contributing arcs
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("rule %s is ambiguous; %s is in the first sets of %s as well as %s",
		e.Rule, e.Label, e.Source, e.Second)
}

// UnknownTokenError reports a label that names neither a rule nor a
// resolvable terminal of the token namespace.
type UnknownTokenError struct {
	Rule  string
	Label dfa.Label
}

func (e *UnknownTokenError) Error() string {
	return fmt.Sprintf("rule %s references unknown token %s", e.Rule, e.Label)
}
