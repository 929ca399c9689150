package interp

import (
	"log/slog"

	"github.com/TheCYPER/TheVaultRunner/internal/parser"
)

// Result is the outcome of a single program run. It is the only shape
// callers of Run need to handle; typed front-end and execution faults
// are folded into Success=false plus a diagnostic here and nowhere else.
type Result struct {
	// Success reports whether the agent reached the exit.
	Success bool
	// Steps is the execution budget consumed.
	Steps int
	// Diagnostic carries the fault message when the run aborted, and is
	// empty for a normal run (including a normal non-success run).
	Diagnostic string
}

// Interpreter wires the tokenizer, parser, and executor together for a
// single agent. Each Run call owns its own token stream, AST, and step
// counter, so interpreters over independent agents may run concurrently.
type Interpreter struct {
	agent       Agent
	parseLimits parser.Limits
	execLimits  Limits
	logger      *slog.Logger
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithParseLimits overrides the default parse-time ceilings.
func WithParseLimits(limits parser.Limits) Option {
	return func(i *Interpreter) { i.parseLimits = limits }
}

// WithExecLimits overrides the default execution-time ceilings.
func WithExecLimits(limits Limits) Option {
	return func(i *Interpreter) { i.execLimits = limits }
}

// WithLogger attaches a structured logger for run diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Interpreter) { i.logger = logger }
}

// New creates an interpreter driving the given agent.
func New(agent Agent, opts ...Option) *Interpreter {
	i := &Interpreter{
		agent:       agent,
		parseLimits: parser.DefaultLimits(),
		execLimits:  DefaultLimits(),
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.logger == nil {
		i.logger = slog.Default()
	}
	return i
}

// Run tokenizes, parses, and executes source. Faults from any stage
// abort the run and surface as a failed Result with a diagnostic;
// exhausting the program without reaching the exit is a normal
// non-success outcome with an empty diagnostic.
func (i *Interpreter) Run(source, file string) Result {
	tokens, err := parser.NewLexer(source, file).Tokenize()
	if err != nil {
		i.logger.Debug("tokenize failed", "file", file, "error", err)
		return Result{Diagnostic: err.Error()}
	}

	prog, err := parser.New(i.parseLimits).Parse(tokens, file)
	if err != nil {
		i.logger.Debug("parse failed", "file", file, "error", err)
		return Result{Diagnostic: err.Error()}
	}

	exec := NewExecutor(i.agent, i.execLimits)
	success, err := exec.Execute(prog)
	if err != nil {
		i.logger.Debug("execution aborted", "file", file, "steps", exec.Steps(), "error", err)
		return Result{Steps: exec.Steps(), Diagnostic: err.Error()}
	}

	i.logger.Debug("run finished", "file", file, "success", success, "steps", exec.Steps())
	return Result{Success: success, Steps: exec.Steps()}
}

// TokenCount returns the number of meaningful (non-EOF) tokens in
// source, or 0 when the source does not tokenize.
func (i *Interpreter) TokenCount(source, file string) int {
	tokens, err := parser.NewLexer(source, file).Tokenize()
	if err != nil {
		return 0
	}
	count := 0
	for _, tok := range tokens {
		if tok.Type != parser.TokenEOF {
			count++
		}
	}
	return count
}
