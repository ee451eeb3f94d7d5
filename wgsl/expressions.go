package wgsl

import (
	"strings"

	"github.com/boingboomtschak/tekhne/cuda"
)

// expr renders an expression. Infix operators carry a single space on
// each side; prefix and postfix operators attach directly. Explicit
// source parentheses round-trip; none are invented.
func (w *Writer) expr(e cuda.Expr) string {
	switch e := e.(type) {
	case *cuda.Ident:
		return e.Name

	case *cuda.Literal:
		return e.Value

	case *cuda.ParenExpr:
		return "(" + w.expr(e.Inner) + ")"

	case *cuda.UnaryExpr:
		return e.Op.String() + w.expr(e.Operand)

	case *cuda.PostfixExpr:
		return w.expr(e.Operand) + e.Op.String()

	case *cuda.BinaryExpr:
		return w.expr(e.Left) + " " + e.Op.String() + " " + w.expr(e.Right)

	case *cuda.CallExpr:
		args := make([]string, 0, len(e.Args))
		for _, a := range e.Args {
			args = append(args, w.expr(a))
		}
		return w.expr(e.Callee) + "(" + strings.Join(args, ", ") + ")"

	case *cuda.IndexExpr:
		return w.expr(e.Expr) + "[" + w.expr(e.Index) + "]"

	case *cuda.MemberExpr:
		return w.expr(e.Expr) + "." + e.Member

	default:
		// Degraded-output fallback: no dedicated rule for this
		// expression kind. Concatenate child translations and continue.
		w.degradedAt(e.Pos(), "no translation rule for expression %T", e)
		return w.concatChildren(e)
	}
}
