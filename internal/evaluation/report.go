package evaluation

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// FormatReport formats a RunResult in the specified format.
func FormatReport(result *RunResult, format string) (string, error) {
	switch format {
	case "table":
		return formatTable(result), nil
	case "json":
		return formatJSON(result)
	case "markdown":
		return formatMarkdown(result), nil
	default:
		return "", fmt.Errorf("unsupported format: %q (available: table, json, markdown)", format)
	}
}

func formatTable(result *RunResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Evaluating %d cases...\n\n", result.TotalCases)

	// Find max name length for alignment
	maxLen := 20
	for _, c := range result.Cases {
		if len(c.Name) > maxLen {
			maxLen = len(c.Name)
		}
	}

	for _, c := range result.Cases {
		icon := "✓"
		if !c.Passed {
			icon = "✗"
		}
		padding := strings.Repeat(" ", maxLen-len(c.Name)+2)
		fmt.Fprintf(&b, "  %s %s%sexpected %-7v got %-7v steps: %d\n",
			icon, c.Name, padding, c.Expected, c.Actual, c.Steps)
		if c.Error != "" {
			fmt.Fprintf(&b, "    error: %s\n", c.Error)
		}
	}

	fmt.Fprintf(&b, "\nResults: %d/%d passed (%d%%)\n",
		result.PassedCases, result.TotalCases,
		percentage(result.PassedCases, result.TotalCases))
	fmt.Fprintf(&b, "Duration: %s\n", result.Duration.Round(time.Millisecond))

	return b.String()
}

func formatJSON(result *RunResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func formatMarkdown(result *RunResult) string {
	var b strings.Builder

	b.WriteString("# Evaluation Report\n\n")
	fmt.Fprintf(&b, "**Date**: %s\n", result.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Duration**: %s\n\n", result.Duration.Round(time.Millisecond))

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|----|----|\n")
	fmt.Fprintf(&b, "| Total Cases | %d |\n", result.TotalCases)
	fmt.Fprintf(&b, "| Passed | %d |\n", result.PassedCases)
	fmt.Fprintf(&b, "| Failed | %d |\n", result.FailedCases)
	fmt.Fprintf(&b, "| Pass Rate | %d%% |\n", percentage(result.PassedCases, result.TotalCases))

	b.WriteString("\n## Results\n\n")
	b.WriteString("| Case | Expected | Actual | Steps | Status |\n")
	b.WriteString("|------|----------|--------|-------|--------|\n")
	for _, c := range result.Cases {
		status := "PASS"
		if !c.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(&b, "| %s | %v | %v | %d | %s |\n",
			c.Name, c.Expected, c.Actual, c.Steps, status)
	}

	// Show details for failed cases
	hasFailed := false
	for _, c := range result.Cases {
		if !c.Passed {
			if !hasFailed {
				b.WriteString("\n## Failed Cases\n\n")
				hasFailed = true
			}
			fmt.Fprintf(&b, "### %s\n\n", c.Name)
			fmt.Fprintf(&b, "- **Expected**: %v\n", c.Expected)
			fmt.Fprintf(&b, "- **Actual**: %v\n", c.Actual)
			if c.Error != "" {
				fmt.Fprintf(&b, "- **Error**: %s\n", c.Error)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

func percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return (part * 100) / total
}
