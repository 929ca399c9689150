package parser

import (
	"fmt"
	"strconv"

	"github.com/TheCYPER/TheVaultRunner/internal/ast"
)

// Limits holds the parse-time resource ceilings. A zero value is not
// usable; construct with DefaultLimits and override fields as needed.
type Limits struct {
	// MaxNestingDepth is the deepest allowed nesting of IF/LOOP bodies.
	MaxNestingDepth int
	// MaxLoopCount is the largest allowed static LOOP iteration count.
	MaxLoopCount int
}

// DefaultLimits returns the standard parse limits.
func DefaultLimits() Limits {
	return Limits{
		MaxNestingDepth: 3,
		MaxLoopCount:    50,
	}
}

// Parser performs recursive descent parsing of Vault Runner token streams.
// A Parser may be reused; cursor state is reset on every Parse call.
type Parser struct {
	limits Limits
	tokens []Token
	pos    int
	file   string
}

// New creates a parser with the given limits.
func New(limits Limits) *Parser {
	return &Parser{limits: limits}
}

// ParseSource lexes and parses source with default limits.
func ParseSource(source, file string) (*ast.Program, error) {
	tokens, err := NewLexer(source, file).Tokenize()
	if err != nil {
		return nil, err
	}
	return New(DefaultLimits()).Parse(tokens, file)
}

// Parse consumes tokens left to right and builds the program AST.
// The first structural violation aborts parsing; no partial AST is
// returned on error.
func (p *Parser) Parse(tokens []Token, file string) (*ast.Program, error) {
	p.tokens = tokens
	p.pos = 0
	p.file = file

	prog := &ast.Program{File: file}
	for !p.check(TokenEOF) {
		stmt, err := p.parseStatement(0)
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return prog, nil
}

func (p *Parser) parseStatement(depth int) (ast.Stmt, error) {
	if depth > p.limits.MaxNestingDepth {
		return nil, p.errorf(KindNestingDepth,
			"nesting depth %d exceeds limit %d", depth, p.limits.MaxNestingDepth)
	}

	tok := p.current()
	switch tok.Type {
	case TokenIf:
		return p.parseIfStatement(depth)
	case TokenLoop:
		return p.parseLoopStatement(depth)
	case TokenMove:
		p.advance()
		return &ast.ActionStmt{Kind: ast.ActionMove, StartPos: tokenPos(tok)}, nil
	case TokenLeft:
		p.advance()
		return &ast.ActionStmt{Kind: ast.ActionTurnLeft, StartPos: tokenPos(tok)}, nil
	case TokenRight:
		p.advance()
		return &ast.ActionStmt{Kind: ast.ActionTurnRight, StartPos: tokenPos(tok)}, nil
	case TokenPick:
		p.advance()
		return &ast.ActionStmt{Kind: ast.ActionPickKey, StartPos: tokenPos(tok)}, nil
	case TokenOpen:
		p.advance()
		return &ast.ActionStmt{Kind: ast.ActionOpenDoor, StartPos: tokenPos(tok)}, nil
	case TokenEnd:
		p.advance()
		return &ast.ActionStmt{Kind: ast.ActionHalt, StartPos: tokenPos(tok)}, nil
	default:
		return nil, p.errorHint(KindSyntax,
			fmt.Sprintf("unexpected token %s", tok.Type),
			"expected an action (MOVE, LEFT, RIGHT, PICK, OPEN, END), IF, or LOOP")
	}
}

// parseIfStatement parses: IF condition COLON statement* (ELSE COLON statement*)? ENDIF
func (p *Parser) parseIfStatement(depth int) (ast.Stmt, error) {
	ifTok := p.advance() // consume IF

	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}

	if err := p.expect(TokenColon, "IF condition must be followed by ':'"); err != nil {
		return nil, err
	}

	var thenBody []ast.Stmt
	for !p.check(TokenElse) && !p.check(TokenEndIf) {
		if p.check(TokenEOF) {
			return nil, p.errorf(KindSyntax, "IF statement missing ENDIF")
		}
		stmt, err := p.parseStatement(depth + 1)
		if err != nil {
			return nil, err
		}
		thenBody = append(thenBody, stmt)
	}

	var elseBody []ast.Stmt
	if p.check(TokenElse) {
		p.advance()
		if err := p.expect(TokenColon, "ELSE must be followed by ':'"); err != nil {
			return nil, err
		}
		elseBody = []ast.Stmt{}
		for !p.check(TokenEndIf) {
			if p.check(TokenEOF) {
				return nil, p.errorf(KindSyntax, "IF statement missing ENDIF")
			}
			stmt, err := p.parseStatement(depth + 1)
			if err != nil {
				return nil, err
			}
			elseBody = append(elseBody, stmt)
		}
	}

	if err := p.expect(TokenEndIf, "IF statement missing ENDIF"); err != nil {
		return nil, err
	}

	return &ast.IfStmt{
		Condition: cond,
		Then:      thenBody,
		Else:      elseBody,
		StartPos:  tokenPos(ifTok),
	}, nil
}

// parseLoopStatement parses: LOOP NUMBER COLON statement* ENDLOOP
func (p *Parser) parseLoopStatement(depth int) (ast.Stmt, error) {
	loopTok := p.advance() // consume LOOP

	if !p.check(TokenNumber) {
		return nil, p.errorHint(KindSyntax,
			fmt.Sprintf("LOOP statement missing iteration count, got %s", p.current().Type),
			"write LOOP <count>: ... ENDLOOP")
	}
	numTok := p.advance()
	count, err := strconv.Atoi(numTok.Literal)
	if err != nil {
		return nil, p.errorf(KindSyntax, "invalid loop count %q", numTok.Literal)
	}

	// The ceiling is enforced before the body is parsed.
	if count > p.limits.MaxLoopCount {
		return nil, p.errorf(KindLoopLimit,
			"loop count %d exceeds limit %d", count, p.limits.MaxLoopCount)
	}

	if err := p.expect(TokenColon, "LOOP count must be followed by ':'"); err != nil {
		return nil, err
	}

	var body []ast.Stmt
	for !p.check(TokenEndLoop) {
		if p.check(TokenEOF) {
			return nil, p.errorf(KindSyntax, "LOOP statement missing ENDLOOP")
		}
		stmt, err := p.parseStatement(depth + 1)
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	p.advance() // consume ENDLOOP

	return &ast.LoopStmt{
		Count:    count,
		Body:     body,
		StartPos: tokenPos(loopTok),
	}, nil
}

// parseCondition parses a boolean expression. Precedence, lowest to
// highest: OR, AND, NOT, sensor atom. OR and AND are left-associative;
// NOT is a prefix operator and may stack.
func (p *Parser) parseCondition() (ast.Cond, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Cond, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.check(TokenOr) {
		opTok := p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.OrCond{Left: left, Right: right, StartPos: tokenPos(opTok)}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Cond, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.check(TokenAnd) {
		opTok := p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &ast.AndCond{Left: left, Right: right, StartPos: tokenPos(opTok)}
	}
	return left, nil
}

func (p *Parser) parseNot() (ast.Cond, error) {
	if p.check(TokenNot) {
		opTok := p.advance()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &ast.NotCond{Operand: operand, StartPos: tokenPos(opTok)}, nil
	}
	return p.parseSensor()
}

var sensorKinds = map[TokenType]ast.SensorKind{
	TokenFrontClear: ast.SensorFrontClear,
	TokenOnKey:      ast.SensorOnKey,
	TokenAtDoor:     ast.SensorAtDoor,
	TokenAtExit:     ast.SensorAtExit,
	TokenHaveKey:    ast.SensorHaveKey,
}

func (p *Parser) parseSensor() (ast.Cond, error) {
	tok := p.current()

	if kind, ok := sensorKinds[tok.Type]; ok {
		p.advance()
		return &ast.SensorCond{Kind: kind, StartPos: tokenPos(tok)}, nil
	}

	// A bare identifier in condition position must name a sensor;
	// the lookup is case-insensitive.
	if tok.Type == TokenIdent {
		if kw := LookupKeyword(tok.Literal); kw.IsSensor() {
			p.advance()
			return &ast.SensorCond{Kind: sensorKinds[kw], StartPos: tokenPos(tok)}, nil
		}
		return nil, p.errorHint(KindSyntax,
			fmt.Sprintf("invalid sensor %q", tok.Literal),
			"valid sensors are FRONT_CLEAR, ON_KEY, AT_DOOR, AT_EXIT, HAVE_KEY")
	}

	return nil, p.errorf(KindSyntax, "expected a sensor in condition, got %s", tok.Type)
}

func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF, File: p.file}
	}
	return p.tokens[p.pos]
}

func (p *Parser) check(t TokenType) bool {
	return p.current().Type == t
}

func (p *Parser) advance() Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(t TokenType, msg string) error {
	if !p.check(t) {
		return p.errorf(KindSyntax, "%s (got %s)", msg, p.current().Type)
	}
	p.advance()
	return nil
}

func (p *Parser) errorf(kind ErrorKind, format string, args ...any) *Error {
	tok := p.current()
	return &Error{
		Kind:    kind,
		File:    tok.File,
		Line:    tok.Line,
		Column:  tok.Column,
		Message: fmt.Sprintf(format, args...),
	}
}

func (p *Parser) errorHint(kind ErrorKind, msg, hint string) *Error {
	tok := p.current()
	return &Error{
		Kind:    kind,
		File:    tok.File,
		Line:    tok.Line,
		Column:  tok.Column,
		Message: msg,
		Hint:    hint,
	}
}

func tokenPos(tok Token) ast.Pos {
	return ast.Pos{File: tok.File, Line: tok.Line, Column: tok.Column}
}
