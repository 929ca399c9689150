// Package parser implements the lexer and recursive descent parser
// for the Vault Runner mini language (.runner files).
package parser

import (
	"fmt"
	"strings"
)

// TokenType represents the type of a lexical token.
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota

	// Literals
	TokenIdent
	TokenNumber

	// Delimiters
	TokenColon // :

	// Action keywords
	TokenMove
	TokenLeft
	TokenRight
	TokenPick
	TokenOpen
	TokenEnd

	// Control keywords
	TokenIf
	TokenElse
	TokenEndIf
	TokenLoop
	TokenEndLoop
	TokenTimes // reserved, not part of the current grammar

	// Sensor keywords
	TokenFrontClear
	TokenOnKey
	TokenAtDoor
	TokenAtExit
	TokenHaveKey

	// Boolean operators
	TokenAnd
	TokenOr
	TokenNot
)

var tokenNames = map[TokenType]string{
	TokenEOF:        "EOF",
	TokenIdent:      "Ident",
	TokenNumber:     "Number",
	TokenColon:      ":",
	TokenMove:       "MOVE",
	TokenLeft:       "LEFT",
	TokenRight:      "RIGHT",
	TokenPick:       "PICK",
	TokenOpen:       "OPEN",
	TokenEnd:        "END",
	TokenIf:         "IF",
	TokenElse:       "ELSE",
	TokenEndIf:      "ENDIF",
	TokenLoop:       "LOOP",
	TokenEndLoop:    "ENDLOOP",
	TokenTimes:      "TIMES",
	TokenFrontClear: "FRONT_CLEAR",
	TokenOnKey:      "ON_KEY",
	TokenAtDoor:     "AT_DOOR",
	TokenAtExit:     "AT_EXIT",
	TokenHaveKey:    "HAVE_KEY",
	TokenAnd:        "AND",
	TokenOr:         "OR",
	TokenNot:        "NOT",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Token(%d)", int(t))
}

// maxKeywords bounds the reserved-word table. The language is deliberately
// tiny; growing past this bound means the grammar is no longer "mini".
const maxKeywords = 20

var keywords = map[string]TokenType{
	"MOVE":        TokenMove,
	"LEFT":        TokenLeft,
	"RIGHT":       TokenRight,
	"PICK":        TokenPick,
	"OPEN":        TokenOpen,
	"END":         TokenEnd,
	"IF":          TokenIf,
	"ELSE":        TokenElse,
	"ENDIF":       TokenEndIf,
	"LOOP":        TokenLoop,
	"ENDLOOP":     TokenEndLoop,
	"TIMES":       TokenTimes,
	"FRONT_CLEAR": TokenFrontClear,
	"ON_KEY":      TokenOnKey,
	"AT_DOOR":     TokenAtDoor,
	"AT_EXIT":     TokenAtExit,
	"HAVE_KEY":    TokenHaveKey,
	"AND":         TokenAnd,
	"OR":          TokenOr,
	"NOT":         TokenNot,
}

func init() {
	if len(keywords) > maxKeywords {
		panic(fmt.Sprintf("parser: keyword table has %d entries, limit is %d", len(keywords), maxKeywords))
	}
}

// LookupKeyword returns the keyword token type for ident (case-insensitive),
// or TokenIdent when ident is not a reserved word.
func LookupKeyword(ident string) TokenType {
	if tok, ok := keywords[strings.ToUpper(ident)]; ok {
		return tok
	}
	return TokenIdent
}

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType
	Literal string
	File    string
	Line    int
	Column  int
}

func (t Token) String() string {
	if t.Literal != "" {
		return fmt.Sprintf("%s(%q) at %s:%d:%d", t.Type, t.Literal, t.File, t.Line, t.Column)
	}
	return fmt.Sprintf("%s at %s:%d:%d", t.Type, t.File, t.Line, t.Column)
}

// IsAction reports whether t is one of the primitive action keywords.
func (t TokenType) IsAction() bool {
	switch t {
	case TokenMove, TokenLeft, TokenRight, TokenPick, TokenOpen, TokenEnd:
		return true
	}
	return false
}

// IsSensor reports whether t is one of the sensor keywords.
func (t TokenType) IsSensor() bool {
	switch t {
	case TokenFrontClear, TokenOnKey, TokenAtDoor, TokenAtExit, TokenHaveKey:
		return true
	}
	return false
}
