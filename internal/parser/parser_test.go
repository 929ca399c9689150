package parser

import (
	"reflect"
	"strings"
	"testing"

	"github.com/TheCYPER/TheVaultRunner/internal/ast"
)

func mustParse(t *testing.T, source string) *ast.Program {
	t.Helper()
	prog, err := ParseSource(source, "test.runner")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return prog
}

func parseErr(t *testing.T, source string) *Error {
	t.Helper()
	_, err := ParseSource(source, "test.runner")
	if err == nil {
		t.Fatal("expected parse error")
	}
	pe, ok := err.(*Error)
	if !ok {
		t.Fatalf("error type = %T, want *Error", err)
	}
	return pe
}

func TestParseActions(t *testing.T) {
	prog := mustParse(t, "MOVE LEFT RIGHT PICK OPEN END")

	want := []ast.ActionKind{
		ast.ActionMove, ast.ActionTurnLeft, ast.ActionTurnRight,
		ast.ActionPickKey, ast.ActionOpenDoor, ast.ActionHalt,
	}
	if len(prog.Statements) != len(want) {
		t.Fatalf("got %d statements, want %d", len(prog.Statements), len(want))
	}
	for i, kind := range want {
		action, ok := prog.Statements[i].(*ast.ActionStmt)
		if !ok {
			t.Fatalf("statement %d = %T, want *ast.ActionStmt", i, prog.Statements[i])
		}
		if action.Kind != kind {
			t.Errorf("statement %d kind = %s, want %s", i, action.Kind, kind)
		}
	}
}

func TestParseIfElse(t *testing.T) {
	prog := mustParse(t, `
IF FRONT_CLEAR:
  MOVE
ELSE:
  RIGHT
ENDIF`)

	if len(prog.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.Statements))
	}
	ifStmt, ok := prog.Statements[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("statement = %T, want *ast.IfStmt", prog.Statements[0])
	}
	sensor, ok := ifStmt.Condition.(*ast.SensorCond)
	if !ok || sensor.Kind != ast.SensorFrontClear {
		t.Errorf("condition = %#v, want FRONT_CLEAR sensor", ifStmt.Condition)
	}
	if len(ifStmt.Then) != 1 || len(ifStmt.Else) != 1 {
		t.Fatalf("then/else lengths = %d/%d, want 1/1", len(ifStmt.Then), len(ifStmt.Else))
	}
}

func TestParseIfWithoutElse(t *testing.T) {
	prog := mustParse(t, "IF AT_EXIT: END ENDIF")
	ifStmt := prog.Statements[0].(*ast.IfStmt)
	if ifStmt.Else != nil {
		t.Errorf("else body = %#v, want nil", ifStmt.Else)
	}
}

func TestParseLoop(t *testing.T) {
	prog := mustParse(t, "LOOP 5: MOVE RIGHT ENDLOOP")
	loop, ok := prog.Statements[0].(*ast.LoopStmt)
	if !ok {
		t.Fatalf("statement = %T, want *ast.LoopStmt", prog.Statements[0])
	}
	if loop.Count != 5 {
		t.Errorf("count = %d, want 5", loop.Count)
	}
	if len(loop.Body) != 2 {
		t.Errorf("body length = %d, want 2", len(loop.Body))
	}
}

func TestParseDeterministic(t *testing.T) {
	source := `
LOOP 10:
  IF FRONT_CLEAR AND NOT AT_DOOR:
    MOVE
  ELSE:
    RIGHT
  ENDIF
ENDLOOP`
	first := mustParse(t, source)
	second := mustParse(t, source)
	if !reflect.DeepEqual(first, second) {
		t.Error("parsing the same source twice produced different ASTs")
	}
}

func TestParseConditionPrecedence(t *testing.T) {
	// OR binds loosest: (ON_KEY AND HAVE_KEY) OR AT_EXIT
	prog := mustParse(t, "IF ON_KEY AND HAVE_KEY OR AT_EXIT: MOVE ENDIF")
	cond := prog.Statements[0].(*ast.IfStmt).Condition

	or, ok := cond.(*ast.OrCond)
	if !ok {
		t.Fatalf("root condition = %T, want *ast.OrCond", cond)
	}
	if _, ok := or.Left.(*ast.AndCond); !ok {
		t.Errorf("left of OR = %T, want *ast.AndCond", or.Left)
	}
	right, ok := or.Right.(*ast.SensorCond)
	if !ok || right.Kind != ast.SensorAtExit {
		t.Errorf("right of OR = %#v, want AT_EXIT sensor", or.Right)
	}
}

func TestParseNotStacksAndBindsTightest(t *testing.T) {
	// NOT NOT FRONT_CLEAR AND ON_KEY => (NOT (NOT FRONT_CLEAR)) AND ON_KEY
	prog := mustParse(t, "IF NOT NOT FRONT_CLEAR AND ON_KEY: MOVE ENDIF")
	and, ok := prog.Statements[0].(*ast.IfStmt).Condition.(*ast.AndCond)
	if !ok {
		t.Fatalf("root condition is not AND")
	}
	outer, ok := and.Left.(*ast.NotCond)
	if !ok {
		t.Fatalf("left of AND = %T, want *ast.NotCond", and.Left)
	}
	if _, ok := outer.Operand.(*ast.NotCond); !ok {
		t.Errorf("NOT does not stack: operand = %T", outer.Operand)
	}
}

func TestParseSensorIdentifierCaseInsensitive(t *testing.T) {
	// A lower-case sensor written as a free identifier is normalized.
	prog := mustParse(t, "IF front_clear: MOVE ENDIF")
	sensor, ok := prog.Statements[0].(*ast.IfStmt).Condition.(*ast.SensorCond)
	if !ok || sensor.Kind != ast.SensorFrontClear {
		t.Errorf("condition = %#v, want FRONT_CLEAR sensor", prog.Statements[0].(*ast.IfStmt).Condition)
	}
}

func TestParseInvalidSensor(t *testing.T) {
	pe := parseErr(t, "IF warp_drive: MOVE ENDIF")
	if pe.Kind != KindSyntax {
		t.Errorf("kind = %s, want syntax error", pe.Kind)
	}
	if !strings.Contains(pe.Message, "warp_drive") {
		t.Errorf("message %q does not name the invalid sensor", pe.Message)
	}
}

func TestParseNestingDepthLimit(t *testing.T) {
	// Three levels of nesting parse; four fail.
	atLimit := `
IF FRONT_CLEAR:
  IF ON_KEY:
    IF HAVE_KEY:
      MOVE
    ENDIF
  ENDIF
ENDIF`
	if _, err := ParseSource(atLimit, "test.runner"); err != nil {
		t.Fatalf("depth at limit should parse, got: %v", err)
	}

	beyond := `
IF FRONT_CLEAR:
  IF ON_KEY:
    IF HAVE_KEY:
      IF AT_DOOR:
        MOVE
      ENDIF
    ENDIF
  ENDIF
ENDIF`
	pe := parseErr(t, beyond)
	if pe.Kind != KindNestingDepth {
		t.Errorf("kind = %s, want nesting depth exceeded", pe.Kind)
	}
}

func TestParseLoopCountLimit(t *testing.T) {
	if _, err := ParseSource("LOOP 50: MOVE ENDLOOP", "test.runner"); err != nil {
		t.Fatalf("loop at ceiling should parse, got: %v", err)
	}
	pe := parseErr(t, "LOOP 51: MOVE ENDLOOP")
	if pe.Kind != KindLoopLimit {
		t.Errorf("kind = %s, want loop limit exceeded", pe.Kind)
	}
}

func TestParseCustomLimits(t *testing.T) {
	tokens, err := NewLexer("LOOP 3: MOVE ENDLOOP", "test.runner").Tokenize()
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}
	p := New(Limits{MaxNestingDepth: 1, MaxLoopCount: 2})
	if _, err := p.Parse(tokens, "test.runner"); err == nil {
		t.Error("expected loop limit error with MaxLoopCount=2")
	}
}

func TestParseStructuralErrors(t *testing.T) {
	cases := []struct {
		name   string
		source string
	}{
		{"if missing colon", "IF FRONT_CLEAR MOVE ENDIF"},
		{"if missing endif", "IF FRONT_CLEAR: MOVE"},
		{"else missing colon", "IF FRONT_CLEAR: MOVE ELSE RIGHT ENDIF"},
		{"loop missing number", "LOOP: MOVE ENDLOOP"},
		{"loop missing colon", "LOOP 5 MOVE ENDLOOP"},
		{"loop missing endloop", "LOOP 5: MOVE"},
		{"stray endif", "ENDIF"},
		{"condition missing sensor", "IF AND: MOVE ENDIF"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pe := parseErr(t, tc.source)
			if pe.Kind != KindSyntax {
				t.Errorf("kind = %s, want syntax error", pe.Kind)
			}
		})
	}
}

func TestParseEmptyProgram(t *testing.T) {
	prog := mustParse(t, "  \n\t\n")
	if len(prog.Statements) != 0 {
		t.Errorf("got %d statements, want 0", len(prog.Statements))
	}
}
