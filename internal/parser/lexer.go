package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes Vault Runner (.runner) source input.
type Lexer struct {
	input   string
	file    string
	pos     int
	line    int
	col     int
	tokens  []Token
	start   int
	startLn int
	startCl int
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input, file string) *Lexer {
	return &Lexer{
		input: input,
		file:  file,
		line:  1,
		col:   1,
	}
}

// Tokenize scans the entire input and returns all tokens. The returned
// sequence is ordered left to right and terminated by exactly one EOF
// token. Tokenization stops at the first unrecognized character.
func (l *Lexer) Tokenize() ([]Token, error) {
	for {
		tok, err := l.nextToken()
		if err != nil {
			return nil, err
		}
		l.tokens = append(l.tokens, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	return l.tokens, nil
}

func (l *Lexer) nextToken() (Token, error) {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return l.makeToken(TokenEOF, ""), nil
	}

	l.start = l.pos
	l.startLn = l.line
	l.startCl = l.col

	ch := l.peek()

	switch {
	case ch == ':':
		l.advance()
		return l.makeToken(TokenColon, ":"), nil
	case isDigit(ch):
		return l.scanNumber(), nil
	case isIdentStart(ch):
		return l.scanIdentOrKeyword(), nil
	default:
		return Token{}, &Error{
			Kind:    KindInvalidToken,
			File:    l.file,
			Line:    l.startLn,
			Column:  l.startCl,
			Message: fmt.Sprintf("unexpected character %q", ch),
		}
	}
}

func (l *Lexer) scanNumber() Token {
	for l.pos < len(l.input) && isDigit(l.peek()) {
		l.advance()
	}
	return l.makeToken(TokenNumber, l.input[l.start:l.pos])
}

func (l *Lexer) scanIdentOrKeyword() Token {
	for l.pos < len(l.input) && isIdentPart(l.peek()) {
		l.advance()
	}
	literal := l.input[l.start:l.pos]
	tokType := LookupKeyword(literal)
	if tokType == TokenIdent {
		// Free identifiers keep their original case.
		return l.makeToken(TokenIdent, literal)
	}
	return l.makeToken(tokType, strings.ToUpper(literal))
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		ch := l.peek()
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
			l.advance()
			continue
		}
		break
	}
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

func (l *Lexer) advance() {
	if l.pos >= len(l.input) {
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

func (l *Lexer) makeToken(typ TokenType, literal string) Token {
	ln, cl := l.startLn, l.startCl
	if typ == TokenEOF {
		ln, cl = l.line, l.col
	}
	return Token{
		Type:    typ,
		Literal: literal,
		File:    l.file,
		Line:    ln,
		Column:  cl,
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
