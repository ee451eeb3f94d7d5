package wgsl

import (
	"strings"

	"github.com/boingboomtschak/tekhne/cuda"
)

// writeStatement writes a single statement at the current depth.
func (w *Writer) writeStatement(stmt cuda.Stmt) {
	switch s := stmt.(type) {
	case *cuda.DeclStmt:
		w.writeDecl(s)

	case *cuda.AssignStmt:
		w.writeLine("%s %s %s;", w.expr(s.Left), s.Op.String(), w.expr(s.Right))

	case *cuda.ExprStmt:
		w.writeLine("%s;", w.expr(s.Expr))

	case *cuda.IfStmt:
		w.writeIf(s)

	case *cuda.WhileStmt:
		w.writeWhile(s)

	case *cuda.ForStmt:
		w.writeFor(s)

	default:
		// Degraded-output fallback: no dedicated rule for this statement
		// kind. Concatenate child translations and keep going.
		w.degradedAt(stmt.Pos(), "no translation rule for statement %T", stmt)
		w.writeLine("%s", w.concatChildren(stmt))
	}
}

// writeDecl writes a variable declaration. __shared__ declarations were
// hoisted to module scope and emit nothing here. Multi-name declarations
// emit one var statement per name.
func (w *Writer) writeDecl(d *cuda.DeclStmt) {
	if d.Qualifier == cuda.TokenShared {
		return
	}
	if d.Qualified() {
		w.unresolvedAt(d.Span, "storage qualifier %s has no WGSL equivalent on a local declaration", d.Qualifier)
	}

	typ := w.declType(d.Type, d.Dims)
	for _, name := range d.Names {
		if d.Init != nil && len(d.Names) == 1 {
			w.writeLine("var %s : %s = %s;", name, typ, w.expr(d.Init))
		} else {
			w.writeLine("var %s : %s;", name, typ)
		}
	}
}

// writeIf writes an if/else-if/else chain.
func (w *Writer) writeIf(s *cuda.IfStmt) {
	w.writeIndent()
	if open := w.writeIfChain(s); open {
		w.write("\n")
	}
}

// writeIfChain emits a conditional chain starting at the current output
// position. An else clause wrapping a nested conditional renders as
// "else if (...)" on the same chain rather than opening an extra block.
// Returns true when the last body ended with a closing brace left open
// on the current line.
func (w *Writer) writeIfChain(s *cuda.IfStmt) bool {
	w.write("if (%s)", w.expr(s.Condition))
	open := w.writeClauseBody(s.Body)

	for _, clause := range s.Elses {
		if open {
			w.write(" else")
		} else {
			w.writeIndent()
			w.write("else")
		}
		if clause.If != nil {
			w.write(" ")
			open = w.writeIfChain(clause.If)
		} else {
			open = w.writeClauseBody(clause.Body)
		}
	}

	return open
}

// writeClauseBody emits a braced or single-statement body after a header
// already written on the current line. Braced bodies indent their
// statements one level and close at the header's depth; unbraced bodies
// render their one statement a level deeper with no braces. The depth
// counter is pushed and popped symmetrically on both paths. Returns true
// if a closing brace was left open on the current line.
func (w *Writer) writeClauseBody(b *cuda.Block) bool {
	if b.Braced {
		w.write(" {\n")
		w.pushIndent()
		for _, stmt := range b.Stmts {
			w.writeStatement(stmt)
		}
		w.popIndent()
		w.writeIndent()
		w.write("}")
		return true
	}

	w.write("\n")
	w.pushIndent()
	w.writeStatement(b.Stmts[0])
	w.popIndent()
	return false
}

// writeWhile writes a while loop.
func (w *Writer) writeWhile(s *cuda.WhileStmt) {
	w.writeIndent()
	w.write("while (%s)", w.expr(s.Condition))
	if open := w.writeClauseBody(s.Body); open {
		w.write("\n")
	}
}

// writeFor writes a triple-clause for loop.
func (w *Writer) writeFor(s *cuda.ForStmt) {
	w.writeIndent()
	w.write("for (%s; %s; %s)", w.inlineStmt(s.Init), w.expr(s.Condition), w.inlineStmt(s.Post))
	if open := w.writeClauseBody(s.Body); open {
		w.write("\n")
	}
}

// inlineStmt renders a for-header clause with no indentation or
// terminator.
func (w *Writer) inlineStmt(stmt cuda.Stmt) string {
	switch s := stmt.(type) {
	case *cuda.DeclStmt:
		typ := w.declType(s.Type, s.Dims)
		parts := make([]string, 0, len(s.Names))
		for _, name := range s.Names {
			if s.Init != nil && len(s.Names) == 1 {
				parts = append(parts, "var "+name+" : "+typ+" = "+w.expr(s.Init))
			} else {
				parts = append(parts, "var "+name+" : "+typ)
			}
		}
		return strings.Join(parts, ", ")

	case *cuda.AssignStmt:
		return w.expr(s.Left) + " " + s.Op.String() + " " + w.expr(s.Right)

	case *cuda.ExprStmt:
		return w.expr(s.Expr)

	default:
		w.degradedAt(stmt.Pos(), "no translation rule for for-clause %T", stmt)
		return w.concatChildren(stmt)
	}
}

// concatChildren renders the degraded fallback for a node: its child
// translations concatenated verbatim.
func (w *Writer) concatChildren(n cuda.Node) string {
	var sb strings.Builder
	for _, c := range cuda.Children(n) {
		switch c := c.(type) {
		case cuda.Expr:
			sb.WriteString(w.expr(c))
		case cuda.Stmt:
			w.writeStatement(c)
		default:
			sb.WriteString(w.concatChildren(c))
		}
	}
	return sb.String()
}
