package pgen

import "fmt"

// --- Token types ------------------------------------------------------------

// TokType is the integer category of a terminal token class. Terminal classes
// occupy the reserved id range 0…255; symbol numbers for grammar rules start
// at FirstNonterminal.
type TokType int

// Pre-defined terminal token classes. Grammars refer to these by name
// (NAME, NUMBER, …); quoted operator literals receive dynamically allocated
// types above ErrorToken.
const (
	Endmarker TokType = iota // end of input
	Name                     // identifiers and keywords
	Number
	String
	Newline
	Op
	ErrorToken
)

// FirstNonterminal is the first symbol number handed out to grammar rules.
// TokTypes below it identify terminals; numbers at or above it identify
// nonterminals.
const FirstNonterminal = 256

// --- Token namespace --------------------------------------------------------

// TokenNamespace is the lookup the grammar compiler resolves terminal
// references against. TokenType resolves a named terminal class (NAME,
// NUMBER, …). OperatorType maps an operator/punctuation literal to a stable
// terminal type, allocating a fresh type for operators it has not seen
// before.
type TokenNamespace interface {
	TokenType(name string) (TokType, bool)
	OperatorType(op string) (TokType, error)
}

// StdTokens is the default token namespace. It knows the pre-defined named
// terminal classes and allocates operator types monotonically, so resolving
// the same operators in the same order always yields the same types.
//
// StdTokens is not safe for concurrent use; a grammar compilation owns its
// namespace exclusively.
type StdTokens struct {
	names map[string]TokType
	ops   map[string]TokType
	next  TokType
}

var _ TokenNamespace = (*StdTokens)(nil)

// NewStdTokens creates a token namespace with the pre-defined terminal
// classes registered under their conventional names.
func NewStdTokens() *StdTokens {
	return &StdTokens{
		names: map[string]TokType{
			"ENDMARKER": Endmarker,
			"NAME":      Name,
			"NUMBER":    Number,
			"STRING":    String,
			"NEWLINE":   Newline,
			"OP":        Op,
		},
		ops:  make(map[string]TokType),
		next: ErrorToken + 1,
	}
}

// RegisterTokenType adds a named terminal class to the namespace.
// Returns an error if the name is taken or the type collides with the
// nonterminal number range.
func (std *StdTokens) RegisterTokenType(name string, tt TokType) error {
	if _, ok := std.names[name]; ok {
		return fmt.Errorf("token class %q already registered", name)
	}
	if tt >= FirstNonterminal {
		return fmt.Errorf("token type %d crosses into the nonterminal range", tt)
	}
	std.names[name] = tt
	if tt >= std.next {
		std.next = tt + 1
	}
	return nil
}

// TokenType resolves a named terminal class.
func (std *StdTokens) TokenType(name string) (TokType, bool) {
	tt, ok := std.names[name]
	return tt, ok
}

// OperatorType resolves an operator/punctuation literal, allocating a new
// terminal type on first sight.
func (std *StdTokens) OperatorType(op string) (TokType, error) {
	if op == "" {
		return 0, fmt.Errorf("empty operator literal")
	}
	if tt, ok := std.ops[op]; ok {
		return tt, nil
	}
	if std.next >= FirstNonterminal {
		return 0, fmt.Errorf("operator type space exhausted at %q", op)
	}
	tt := std.next
	std.next++
	std.ops[op] = tt
	return tt, nil
}
