// Package formatter implements canonical formatting of .runner files
// from AST back to source, with deterministic output.
package formatter

import (
	"strconv"
	"strings"

	"github.com/TheCYPER/TheVaultRunner/internal/ast"
)

const indentUnit = "  "

// Format formats a parsed program back to canonical .runner source.
// One statement per line, two-space indentation, upper-case keywords.
func Format(prog *ast.Program) string {
	var sb strings.Builder
	formatBody(&sb, prog.Statements, 0)
	return sb.String()
}

func formatBody(sb *strings.Builder, body []ast.Stmt, depth int) {
	for _, stmt := range body {
		formatStatement(sb, stmt, depth)
	}
}

func formatStatement(sb *strings.Builder, stmt ast.Stmt, depth int) {
	indent := strings.Repeat(indentUnit, depth)

	switch s := stmt.(type) {
	case *ast.ActionStmt:
		sb.WriteString(indent)
		sb.WriteString(s.Kind.String())
		sb.WriteString("\n")
	case *ast.IfStmt:
		sb.WriteString(indent)
		sb.WriteString("IF ")
		sb.WriteString(formatCond(s.Condition))
		sb.WriteString(":\n")
		formatBody(sb, s.Then, depth+1)
		if s.Else != nil {
			sb.WriteString(indent)
			sb.WriteString("ELSE:\n")
			formatBody(sb, s.Else, depth+1)
		}
		sb.WriteString(indent)
		sb.WriteString("ENDIF\n")
	case *ast.LoopStmt:
		sb.WriteString(indent)
		sb.WriteString("LOOP ")
		sb.WriteString(strconv.Itoa(s.Count))
		sb.WriteString(":\n")
		formatBody(sb, s.Body, depth+1)
		sb.WriteString(indent)
		sb.WriteString("ENDLOOP\n")
	}
}

// formatCond renders a condition tree. The grammar has no grouping, so
// any tree the parser produces reads back with the same shape: OR over
// AND over NOT over sensors.
func formatCond(cond ast.Cond) string {
	switch c := cond.(type) {
	case *ast.SensorCond:
		return c.Kind.String()
	case *ast.NotCond:
		return "NOT " + formatCond(c.Operand)
	case *ast.AndCond:
		return formatCond(c.Left) + " AND " + formatCond(c.Right)
	case *ast.OrCond:
		return formatCond(c.Left) + " OR " + formatCond(c.Right)
	}
	return ""
}
