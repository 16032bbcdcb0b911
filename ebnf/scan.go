package ebnf

import (
	"strings"
	"sync"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine-based scanner for grammar source text.

// Token types of the grammar meta-language. One-char literals carry their
// character value as token type.
const (
	tokEOF int = iota
	tokName
	tokString
	tokNewline
)

// The tokens representing literal one-char lexemes
var literals = []string{":", "|", "(", ")", "[", "]", "*", "+"}

var lexerOnce sync.Once // monitors one-time lexer compilation
var lexer *lexmachine.Lexer
var lexerErr error

func grammarLexer() (*lexmachine.Lexer, error) {
	lexerOnce.Do(func() {
		lexer = lexmachine.NewLexer()
		lexer.Add([]byte(`[a-zA-Z_][a-zA-Z0-9_]*`), makeToken(tokName))
		lexer.Add([]byte(`'[^']*'`), makeToken(tokString))
		lexer.Add([]byte(`"[^"]*"`), makeToken(tokString))
		lexer.Add([]byte(`#[^\n]*`), skip)
		lexer.Add([]byte(`( |\t|\r)+`), skip)
		lexer.Add([]byte(`\\\n`), skip) // explicit line continuation
		lexer.Add([]byte(`\n`), makeToken(tokNewline))
		for _, lit := range literals {
			r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
			lexer.Add([]byte(r), makeToken(int(lit[0])))
		}
		lexerErr = lexer.Compile()
		if lexerErr != nil {
			tracer().Errorf("error compiling grammar lexer: %v", lexerErr)
		}
	})
	return lexer, lexerErr
}

// skip is a pre-defined action which ignores the scanned match.
func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// makeToken is a pre-defined action which wraps a scanned match into a token.
func makeToken(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

// token is a scanned token of the grammar meta-language.
type token struct {
	typ    int
	lexeme string
	line   int
}

// scanner wraps a lexmachine scanner. It tracks the nesting depth of
// parentheses and brackets and swallows newline tokens inside nested groups,
// so rules may span source lines.
type scanner struct {
	scan  *lexmachine.Scanner
	depth int
}

func newScanner(input string) (*scanner, error) {
	lx, err := grammarLexer()
	if err != nil {
		return nil, err
	}
	s, err := lx.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &scanner{scan: s}, nil
}

// next returns the next token, with tokEOF at the end of input. Scan errors
// (unexpected characters) are returned to the caller; scanning cannot resume
// afterwards.
func (s *scanner) next() (token, error) {
	for {
		tok, err, eof := s.scan.Next()
		if err != nil {
			return token{typ: tokEOF}, err
		}
		if eof {
			return token{typ: tokEOF}, nil
		}
		t := tok.(*lexmachine.Token)
		switch t.Type {
		case int('('), int('['):
			s.depth++
		case int(')'), int(']'):
			if s.depth > 0 {
				s.depth--
			}
		case tokNewline:
			if s.depth > 0 {
				continue // grouped content continues on the next line
			}
		}
		tracer().Debugf("token %d %q at line %d", t.Type, t.Lexeme, t.StartLine)
		return token{typ: t.Type, lexeme: string(t.Lexeme), line: t.StartLine}, nil
	}
}
