// Package interp executes parsed Vault Runner programs against an
// agent capability interface and orchestrates the full
// tokenize-parse-execute pipeline.
package interp

import (
	"fmt"

	"github.com/TheCYPER/TheVaultRunner/internal/ast"
)

// Agent is the capability surface the executor drives. Query methods
// have no side effects; command methods return whether the operation
// took effect, plus an error for agent-level faults (which abort the
// run). Commands whose precondition does not hold return false rather
// than faulting.
type Agent interface {
	// Queries.
	FrontIsClear() bool
	OnKey() bool
	AtDoor() bool
	AtExit() bool
	HasKey() bool

	// Commands.
	MoveForward() (bool, error)
	TurnLeft() (bool, error)
	TurnRight() (bool, error)
	PickKey() (bool, error)
	OpenDoor() (bool, error)
}

// Limits holds the execution-time resource ceilings.
type Limits struct {
	// MaxSteps is the global step budget for a single run. One step is
	// charged per action executed and per control node visited.
	MaxSteps int
}

// DefaultLimits returns the standard execution limits.
func DefaultLimits() Limits {
	return Limits{MaxSteps: 1000}
}

// StepLimitError reports that a run exceeded its step budget.
type StepLimitError struct {
	Steps int
	Limit int
}

func (e *StepLimitError) Error() string {
	return fmt.Sprintf("execution limit exceeded: %d steps, limit %d", e.Steps, e.Limit)
}

// Executor walks a program AST depth-first and dispatches each
// statement to the agent. An Executor is single-threaded; a given
// agent must not be driven by more than one concurrent run.
type Executor struct {
	agent  Agent
	limits Limits
	steps  int
}

// NewExecutor creates an executor bound to the given agent.
func NewExecutor(agent Agent, limits Limits) *Executor {
	return &Executor{agent: agent, limits: limits}
}

// Steps returns the number of steps charged by the last Execute call.
func (e *Executor) Steps() int { return e.steps }

// Execute runs the program. It returns true as soon as the agent
// satisfies the exit condition; reaching the end of the program without
// exiting returns false and no error. The step counter is reset per call.
func (e *Executor) Execute(prog *ast.Program) (bool, error) {
	e.steps = 0

	for _, stmt := range prog.Statements {
		halt, err := e.execNode(stmt)
		if err != nil {
			return false, err
		}
		if e.agent.AtExit() {
			return true, nil
		}
		if halt {
			break
		}
	}
	return false, nil
}

// execNode executes one statement. The returned bool reports a halt:
// no further node in the same statement list may be visited.
func (e *Executor) execNode(stmt ast.Stmt) (bool, error) {
	if e.steps >= e.limits.MaxSteps {
		return false, &StepLimitError{Steps: e.steps, Limit: e.limits.MaxSteps}
	}
	e.steps++

	switch s := stmt.(type) {
	case *ast.ActionStmt:
		return e.execAction(s)
	case *ast.IfStmt:
		return false, e.execIf(s)
	case *ast.LoopStmt:
		return false, e.execLoop(s)
	default:
		return false, fmt.Errorf("unknown statement type %T at %s", stmt, stmt.Pos())
	}
}

// execAction dispatches a primitive action. The step was already
// charged; the action counts even when the underlying agent operation
// reports no effect (e.g. moving into a wall).
func (e *Executor) execAction(s *ast.ActionStmt) (bool, error) {
	var err error
	switch s.Kind {
	case ast.ActionMove:
		_, err = e.agent.MoveForward()
	case ast.ActionTurnLeft:
		_, err = e.agent.TurnLeft()
	case ast.ActionTurnRight:
		_, err = e.agent.TurnRight()
	case ast.ActionPickKey:
		_, err = e.agent.PickKey()
	case ast.ActionOpenDoor:
		_, err = e.agent.OpenDoor()
	case ast.ActionHalt:
		// No agent effect; terminates the enclosing statement list.
		return true, nil
	default:
		return false, fmt.Errorf("unknown action %s at %s", s.Kind, s.Pos())
	}
	if err != nil {
		return false, fmt.Errorf("%s at %s: %w", s.Kind, s.Pos(), err)
	}
	return false, nil
}

func (e *Executor) execIf(s *ast.IfStmt) error {
	ok, err := e.evalCond(s.Condition)
	if err != nil {
		return err
	}
	if ok {
		return e.execBody(s.Then)
	}
	if s.Else != nil {
		return e.execBody(s.Else)
	}
	return nil
}

// execBody runs a nested statement list. Exit checking is the concern
// of the enclosing loop or the top level, not of the branch body.
func (e *Executor) execBody(body []ast.Stmt) error {
	for _, stmt := range body {
		halt, err := e.execNode(stmt)
		if err != nil {
			return err
		}
		if halt {
			return nil
		}
	}
	return nil
}

// execLoop repeats the body its static count times. The exit condition
// is re-checked after every body node and again after every full
// iteration; once satisfied, the loop stops entirely.
func (e *Executor) execLoop(s *ast.LoopStmt) error {
	for i := 0; i < s.Count; i++ {
		for _, stmt := range s.Body {
			halt, err := e.execNode(stmt)
			if err != nil {
				return err
			}
			if e.agent.AtExit() {
				return nil
			}
			if halt {
				break
			}
		}
		if e.agent.AtExit() {
			return nil
		}
	}
	return nil
}

// evalCond evaluates a condition tree. AND and OR short-circuit: the
// right operand is not evaluated (and its sensors not queried) when the
// left operand already determines the result.
func (e *Executor) evalCond(cond ast.Cond) (bool, error) {
	switch c := cond.(type) {
	case *ast.SensorCond:
		return e.readSensor(c)
	case *ast.NotCond:
		v, err := e.evalCond(c.Operand)
		if err != nil {
			return false, err
		}
		return !v, nil
	case *ast.AndCond:
		left, err := e.evalCond(c.Left)
		if err != nil || !left {
			return false, err
		}
		return e.evalCond(c.Right)
	case *ast.OrCond:
		left, err := e.evalCond(c.Left)
		if err != nil || left {
			return left, err
		}
		return e.evalCond(c.Right)
	default:
		return false, fmt.Errorf("unknown condition type %T at %s", cond, cond.Pos())
	}
}

func (e *Executor) readSensor(c *ast.SensorCond) (bool, error) {
	switch c.Kind {
	case ast.SensorFrontClear:
		return e.agent.FrontIsClear(), nil
	case ast.SensorOnKey:
		return e.agent.OnKey(), nil
	case ast.SensorAtDoor:
		return e.agent.AtDoor(), nil
	case ast.SensorAtExit:
		return e.agent.AtExit(), nil
	case ast.SensorHaveKey:
		return e.agent.HasKey(), nil
	default:
		return false, fmt.Errorf("unknown sensor %s at %s", c.Kind, c.Pos())
	}
}
