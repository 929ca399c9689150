package parser

import "fmt"

// ErrorKind classifies front-end failures. Every kind is fatal to the run
// that raised it; nothing in this package retries or resynchronizes.
type ErrorKind int

const (
	// KindInvalidToken is an unrecognized character during lexing.
	KindInvalidToken ErrorKind = iota
	// KindSyntax is a structural grammar violation.
	KindSyntax
	// KindNestingDepth means static nesting exceeded the configured ceiling.
	KindNestingDepth
	// KindLoopLimit means a loop's static count exceeded the configured ceiling.
	KindLoopLimit
)

var kindNames = map[ErrorKind]string{
	KindInvalidToken: "invalid token",
	KindSyntax:       "syntax error",
	KindNestingDepth: "nesting depth exceeded",
	KindLoopLimit:    "loop limit exceeded",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is a front-end error with position information.
type Error struct {
	Kind    ErrorKind
	File    string
	Line    int
	Column  int
	Message string
	Hint    string
}

func (e *Error) Error() string {
	s := fmt.Sprintf("%s:%d:%d: %s: %s", e.File, e.Line, e.Column, e.Kind, e.Message)
	if e.Hint != "" {
		s += "\n  hint: " + e.Hint
	}
	return s
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	pe, ok := err.(*Error)
	return ok && pe.Kind == kind
}
