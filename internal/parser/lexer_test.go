package parser

import (
	"testing"
)

func TestTokenizeKeywordSequence(t *testing.T) {
	tokens, err := NewLexer("MOVE LEFT RIGHT", "test.runner").Tokenize()
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}

	want := []TokenType{TokenMove, TokenLeft, TokenRight, TokenEOF}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, typ := range want {
		if tokens[i].Type != typ {
			t.Errorf("token %d = %s, want %s", i, tokens[i].Type, typ)
		}
	}

	// Exactly 3 meaningful tokens before the single EOF.
	meaningful := 0
	for _, tok := range tokens {
		if tok.Type != TokenEOF {
			meaningful++
		}
	}
	if meaningful != 3 {
		t.Errorf("meaningful tokens = %d, want 3", meaningful)
	}
}

func TestTokenizeCaseInsensitiveKeywords(t *testing.T) {
	tokens, err := NewLexer("move Loop endloop If front_clear", "test.runner").Tokenize()
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}

	want := []struct {
		typ     TokenType
		literal string
	}{
		{TokenMove, "MOVE"},
		{TokenLoop, "LOOP"},
		{TokenEndLoop, "ENDLOOP"},
		{TokenIf, "IF"},
		{TokenFrontClear, "FRONT_CLEAR"},
	}
	for i, w := range want {
		if tokens[i].Type != w.typ {
			t.Errorf("token %d type = %s, want %s", i, tokens[i].Type, w.typ)
		}
		if tokens[i].Literal != w.literal {
			t.Errorf("token %d literal = %q, want %q", i, tokens[i].Literal, w.literal)
		}
	}
}

func TestTokenizeIdentifierKeepsCase(t *testing.T) {
	tokens, err := NewLexer("SomeSensor", "test.runner").Tokenize()
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}
	if tokens[0].Type != TokenIdent {
		t.Fatalf("token type = %s, want Ident", tokens[0].Type)
	}
	if tokens[0].Literal != "SomeSensor" {
		t.Errorf("literal = %q, want original case preserved", tokens[0].Literal)
	}
}

func TestTokenizeNumbersAndColon(t *testing.T) {
	tokens, err := NewLexer("LOOP 50:", "test.runner").Tokenize()
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}
	want := []TokenType{TokenLoop, TokenNumber, TokenColon, TokenEOF}
	for i, typ := range want {
		if tokens[i].Type != typ {
			t.Errorf("token %d = %s, want %s", i, tokens[i].Type, typ)
		}
	}
	if tokens[1].Literal != "50" {
		t.Errorf("number literal = %q, want \"50\"", tokens[1].Literal)
	}
}

func TestTokenizePositions(t *testing.T) {
	tokens, err := NewLexer("MOVE\n  LEFT", "test.runner").Tokenize()
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}
	if tokens[0].Line != 1 || tokens[0].Column != 1 {
		t.Errorf("MOVE at %d:%d, want 1:1", tokens[0].Line, tokens[0].Column)
	}
	if tokens[1].Line != 2 || tokens[1].Column != 3 {
		t.Errorf("LEFT at %d:%d, want 2:3", tokens[1].Line, tokens[1].Column)
	}
}

func TestTokenizeInvalidCharacter(t *testing.T) {
	_, err := NewLexer("MOVE\n@LEFT", "test.runner").Tokenize()
	if err == nil {
		t.Fatal("expected error for invalid character")
	}
	pe, ok := err.(*Error)
	if !ok {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if pe.Kind != KindInvalidToken {
		t.Errorf("kind = %s, want invalid token", pe.Kind)
	}
	if pe.Line != 2 || pe.Column != 1 {
		t.Errorf("position = %d:%d, want 2:1", pe.Line, pe.Column)
	}
}

func TestTokenizeEmptyInput(t *testing.T) {
	tokens, err := NewLexer("", "test.runner").Tokenize()
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}
	if len(tokens) != 1 || tokens[0].Type != TokenEOF {
		t.Fatalf("got %v, want a single EOF token", tokens)
	}
}

func TestKeywordTableBound(t *testing.T) {
	if len(keywords) > maxKeywords {
		t.Fatalf("keyword table has %d entries, limit is %d", len(keywords), maxKeywords)
	}
}
