package telemetry

import "strconv"

// ParseTags returns standard tags for a front-end (tokenize and parse)
// operation span.
func ParseTags(file string) map[string]string {
	return map[string]string{
		"operation": "parse",
		"file":      file,
	}
}

// RunTags returns standard tags for a program run span.
func RunTags(program, mapName string) map[string]string {
	return map[string]string{
		"operation": "run",
		"program":   program,
		"map":       mapName,
	}
}

// EvalTags returns standard tags for an evaluation case span.
func EvalTags(caseName string, expected bool) map[string]string {
	return map[string]string{
		"operation": "eval",
		"case":      caseName,
		"expected":  strconv.FormatBool(expected),
	}
}
