package geobase

import (
	"fmt"
	"strconv"
	"strings"
)

// TermType represents the type of a fact argument
type TermType int

const (
	TermAtom TermType = iota
	TermString
	TermInt
	TermFloat
	TermList
)

// Term is a single fact argument
type Term struct {
	Type  TermType
	Line  int
	Col   int
	Value string // For atoms, strings and numbers
	Terms []Term // For lists
}

// String returns a string representation of the term
func (t Term) String() string {
	switch t.Type {
	case TermString:
		return "'" + strings.ReplaceAll(t.Value, "'", "''") + "'"
	case TermList:
		parts := make([]string, len(t.Terms))
		for i, term := range t.Terms {
			parts[i] = term.String()
		}
		return "[" + strings.Join(parts, ",") + "]"
	default:
		return t.Value
	}
}

// Text returns the term's value as a string, for atoms and strings
func (t Term) Text() (string, error) {
	switch t.Type {
	case TermAtom, TermString:
		return t.Value, nil
	default:
		return "", fmt.Errorf("expected atom at %d:%d, got %s", t.Line, t.Col, t)
	}
}

// Int returns the term as an integer; floats are truncated
func (t Term) Int() (int64, error) {
	switch t.Type {
	case TermInt:
		return strconv.ParseInt(t.Value, 10, 64)
	case TermFloat:
		f, err := strconv.ParseFloat(t.Value, 64)
		if err != nil {
			return 0, err
		}
		return int64(f), nil
	default:
		return 0, fmt.Errorf("expected number at %d:%d, got %s", t.Line, t.Col, t)
	}
}

// Float returns the term as a float
func (t Term) Float() (float64, error) {
	switch t.Type {
	case TermInt, TermFloat:
		return strconv.ParseFloat(t.Value, 64)
	default:
		return 0, fmt.Errorf("expected number at %d:%d, got %s", t.Line, t.Col, t)
	}
}

// Fact is a ground clause functor(arg, ...).
type Fact struct {
	Functor string
	Args    []Term
	Line    int
}

// String returns the fact in source form
func (f Fact) String() string {
	parts := make([]string, len(f.Args))
	for i, arg := range f.Args {
		parts[i] = arg.String()
	}
	return f.Functor + "(" + strings.Join(parts, ",") + ")."
}

// Parser parses gazetteer tokens into facts
type Parser struct {
	lexer *Lexer
}

// NewParser creates a new parser
func NewParser(lexer *Lexer) *Parser {
	return &Parser{lexer: lexer}
}

// Parse lexes and parses every fact in input
func Parse(input string) ([]Fact, error) {
	lexer := NewLexer(input)
	if err := lexer.Lex(); err != nil {
		return nil, err
	}

	parser := NewParser(lexer)
	return parser.ParseAll()
}

// ParseAll reads all facts until EOF
func (p *Parser) ParseAll() ([]Fact, error) {
	var facts []Fact

	for p.lexer.PeekToken().Type != TokenEOF {
		fact, err := p.readFact()
		if err != nil {
			return nil, err
		}
		facts = append(facts, fact)
	}

	return facts, nil
}

// readFact reads functor(args). or a bare functor.
func (p *Parser) readFact() (Fact, error) {
	token := p.lexer.NextToken()
	if token.Type != TokenAtom {
		return Fact{}, fmt.Errorf("expected functor at %d:%d, got %s", token.Line, token.Col, token)
	}
	fact := Fact{Functor: token.Value, Line: token.Line}

	if p.lexer.PeekToken().Type == TokenLeftParen {
		p.lexer.NextToken()
		args, err := p.readSequence(TokenRightParen)
		if err != nil {
			return Fact{}, fmt.Errorf("fact %s: %w", fact.Functor, err)
		}
		fact.Args = args
	}

	end := p.lexer.NextToken()
	if end.Type != TokenPeriod {
		return Fact{}, fmt.Errorf("expected '.' after %s at %d:%d, got %s", fact.Functor, end.Line, end.Col, end)
	}
	return fact, nil
}

// readSequence reads comma separated terms up to the closing token
func (p *Parser) readSequence(closing TokenType) ([]Term, error) {
	var terms []Term

	if p.lexer.PeekToken().Type == closing {
		p.lexer.NextToken()
		return terms, nil
	}

	for {
		term, err := p.readTerm()
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)

		token := p.lexer.NextToken()
		switch token.Type {
		case TokenComma:
			continue
		case closing:
			return terms, nil
		case TokenEOF:
			return nil, fmt.Errorf("unexpected EOF at %d:%d", token.Line, token.Col)
		default:
			return nil, fmt.Errorf("expected ',' at %d:%d, got %s", token.Line, token.Col, token)
		}
	}
}

// readTerm reads a single argument
func (p *Parser) readTerm() (Term, error) {
	token := p.lexer.NextToken()
	term := Term{Line: token.Line, Col: token.Col, Value: token.Value}

	switch token.Type {
	case TokenAtom:
		term.Type = TermAtom
	case TokenString:
		term.Type = TermString
	case TokenNumber:
		if strings.ContainsAny(token.Value, ".eE") {
			term.Type = TermFloat
		} else {
			term.Type = TermInt
		}
	case TokenLeftBracket:
		terms, err := p.readSequence(TokenRightBracket)
		if err != nil {
			return Term{}, err
		}
		term.Type = TermList
		term.Terms = terms
	case TokenEOF:
		return Term{}, fmt.Errorf("unexpected EOF at %d:%d", token.Line, token.Col)
	default:
		return Term{}, fmt.Errorf("unexpected token %s", token)
	}

	return term, nil
}
