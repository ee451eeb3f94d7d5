package cuda

import (
	"fmt"
	"strings"
)

// SyntaxError represents a parse failure: the input does not match the
// grammar at the offending token. Parsing aborts on the first one; no
// partial AST is produced.
type SyntaxError struct {
	Message string
	Token   Token
	Source  string // Original source code (for context display)
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Token.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("%d:%d: %s", e.Token.Line, e.Token.Column, e.Message)
}

// FormatWithContext returns the error message with source context.
// Shows the problematic line with a caret pointing to the error location.
func (e *SyntaxError) FormatWithContext() string {
	if e.Source == "" || e.Token.Line == 0 {
		return e.Error()
	}

	lines := strings.Split(e.Source, "\n")
	lineNum := e.Token.Line
	if lineNum < 1 || lineNum > len(lines) {
		return e.Error()
	}

	line := lines[lineNum-1]
	col := e.Token.Column
	if col < 1 {
		col = 1
	}
	if col > len(line)+1 {
		col = len(line) + 1
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "error: %s\n", e.Message)
	fmt.Fprintf(&sb, "  --> line %d:%d\n", lineNum, col)
	sb.WriteString("   |\n")
	fmt.Fprintf(&sb, "%3d| %s\n", lineNum, line)
	fmt.Fprintf(&sb, "   | %s^\n", strings.Repeat(" ", col-1))

	return sb.String()
}
