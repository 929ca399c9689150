// Package ast defines the abstract syntax tree node types for the
// Vault Runner mini language (.runner files).
package ast

import "fmt"

// Pos represents a position in source code.
type Pos struct {
	File   string
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos
}

// Program is an ordered sequence of top-level statements. The tree owns
// all of its nodes exclusively; nothing is shared between branches.
type Program struct {
	File       string
	Statements []Stmt
}

// Stmt is the interface for executable statements.
type Stmt interface {
	Node
	stmtNode()
}

// ActionKind identifies a primitive agent action.
type ActionKind int

const (
	ActionMove ActionKind = iota
	ActionTurnLeft
	ActionTurnRight
	ActionPickKey
	ActionOpenDoor
	ActionHalt
)

var actionNames = map[ActionKind]string{
	ActionMove:      "MOVE",
	ActionTurnLeft:  "LEFT",
	ActionTurnRight: "RIGHT",
	ActionPickKey:   "PICK",
	ActionOpenDoor:  "OPEN",
	ActionHalt:      "END",
}

func (k ActionKind) String() string {
	if name, ok := actionNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(k))
}

// ActionStmt is a single primitive action. Leaf node.
type ActionStmt struct {
	Kind     ActionKind
	StartPos Pos
}

func (s *ActionStmt) Pos() Pos  { return s.StartPos }
func (s *ActionStmt) stmtNode() {}

// IfStmt is a conditional with a then branch and an optional else branch.
type IfStmt struct {
	Condition Cond
	Then      []Stmt
	Else      []Stmt // nil when no ELSE branch was written
	StartPos  Pos
}

func (s *IfStmt) Pos() Pos  { return s.StartPos }
func (s *IfStmt) stmtNode() {}

// LoopStmt repeats its body a static, parse-time-bounded number of times.
type LoopStmt struct {
	Count    int
	Body     []Stmt
	StartPos Pos
}

func (s *LoopStmt) Pos() Pos  { return s.StartPos }
func (s *LoopStmt) stmtNode() {}

// Cond is the interface for condition expression nodes.
type Cond interface {
	Node
	condNode()
}

// SensorKind identifies one of the agent's boolean sensors.
type SensorKind int

const (
	SensorFrontClear SensorKind = iota
	SensorOnKey
	SensorAtDoor
	SensorAtExit
	SensorHaveKey
)

var sensorNames = map[SensorKind]string{
	SensorFrontClear: "FRONT_CLEAR",
	SensorOnKey:      "ON_KEY",
	SensorAtDoor:     "AT_DOOR",
	SensorAtExit:     "AT_EXIT",
	SensorHaveKey:    "HAVE_KEY",
}

func (k SensorKind) String() string {
	if name, ok := sensorNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Sensor(%d)", int(k))
}

// SensorCond queries a single agent sensor.
type SensorCond struct {
	Kind     SensorKind
	StartPos Pos
}

func (c *SensorCond) Pos() Pos  { return c.StartPos }
func (c *SensorCond) condNode() {}

// NotCond negates its operand.
type NotCond struct {
	Operand  Cond
	StartPos Pos
}

func (c *NotCond) Pos() Pos  { return c.StartPos }
func (c *NotCond) condNode() {}

// AndCond is a short-circuit conjunction.
type AndCond struct {
	Left     Cond
	Right    Cond
	StartPos Pos
}

func (c *AndCond) Pos() Pos  { return c.StartPos }
func (c *AndCond) condNode() {}

// OrCond is a short-circuit disjunction.
type OrCond struct {
	Left     Cond
	Right    Cond
	StartPos Pos
}

func (c *OrCond) Pos() Pos  { return c.StartPos }
func (c *OrCond) condNode() {}
