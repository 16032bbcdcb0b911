package gen

import (
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/pgen"
	"github.com/npillmayer/pgen/dfa"
)

// Label classification. Every arc label of every rule is translated into a
// dense integer label id, shared across the whole grammar. A label is one of
// four kinds:
//
//   - a nonterminal reference (a bare name matching a rule),
//   - a named token class (a bare name known to the token namespace),
//   - a keyword (a quoted literal starting with a letter),
//   - an operator (any other quoted literal).
//
// Ids are assigned on first use and deduped through SymbolToLabel, Keywords
// and Tokens respectively. Anything the token namespace cannot resolve is an
// UnknownTokenError.

// makeLabel returns the label id for an arc label, assigning a fresh id on
// first use.
func (gtor *generator) makeLabel(grammar *Grammar, rule string, label dfa.Label) (int, error) {
	next := len(grammar.Labels)
	switch label.Kind {
	case dfa.NameLabel:
		if num, isRule := grammar.SymbolToNumber[label.Text]; isRule {
			// a nonterminal reference
			if id, known := grammar.SymbolToLabel[label.Text]; known {
				return id, nil
			}
			grammar.Labels = append(grammar.Labels, LabelEntry{Type: num})
			grammar.SymbolToLabel[label.Text] = next
			grammar.LabelToSymbol[next] = label.Text
			return next, nil
		}
		// a named token class (NAME, NUMBER, …)
		tt, known := gtor.ns.TokenType(label.Text)
		if !known {
			return 0, &UnknownTokenError{Rule: rule, Label: label}
		}
		return gtor.tokenLabel(grammar, tt), nil
	case dfa.LiteralLabel:
		if isKeywordText(label.Text) {
			// keywords are recorded against the generic NAME class
			if id, known := grammar.Keywords[label.Text]; known {
				return id, nil
			}
			grammar.Labels = append(grammar.Labels, LabelEntry{Type: int(pgen.Name), Value: label.Text})
			grammar.Keywords[label.Text] = next
			return next, nil
		}
		// an operator/punctuation literal
		tt, err := gtor.ns.OperatorType(label.Text)
		if err != nil {
			return 0, &UnknownTokenError{Rule: rule, Label: label}
		}
		return gtor.tokenLabel(grammar, tt), nil
	}
	return 0, &UnknownTokenError{Rule: rule, Label: label}
}

// tokenLabel dedupes the label id of a terminal token class.
func (gtor *generator) tokenLabel(grammar *Grammar, tt pgen.TokType) int {
	if id, known := grammar.Tokens[tt]; known {
		return id
	}
	id := len(grammar.Labels)
	grammar.Labels = append(grammar.Labels, LabelEntry{Type: int(tt)})
	grammar.Tokens[tt] = id
	return id
}

// isKeywordText is true for letter-initial literals.
func isKeywordText(text string) bool {
	r, _ := utf8.DecodeRuneInString(text)
	return r != utf8.RuneError && (unicode.IsLetter(r) || r == '_')
}
