// Package viz exports parsed kernel ASTs as diagrams. It is never
// invoked by the translation pipeline and has no effect on generated
// output.
package viz

import (
	"fmt"
	"io"
	"strings"

	"github.com/boingboomtschak/tekhne/cuda"
)

// WriteDOT writes a Graphviz digraph of the program's AST: one node per
// AST node, labeled by kind and salient source text.
func WriteDOT(w io.Writer, prog *cuda.Program) error {
	if _, err := fmt.Fprintln(w, "digraph ast {"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "    node [shape=box, fontname=\"monospace\"];"); err != nil {
		return err
	}

	nextID := 0
	var emit func(n cuda.Node) (int, error)
	emit = func(n cuda.Node) (int, error) {
		id := nextID
		nextID++
		if _, err := fmt.Fprintf(w, "    n%d [label=%q];\n", id, nodeLabel(n)); err != nil {
			return 0, err
		}
		for _, c := range cuda.Children(n) {
			childID, err := emit(c)
			if err != nil {
				return 0, err
			}
			if _, err := fmt.Fprintf(w, "    n%d -> n%d;\n", id, childID); err != nil {
				return 0, err
			}
		}
		return id, nil
	}

	rootID := nextID
	nextID++
	if _, err := fmt.Fprintf(w, "    n%d [label=\"program\"];\n", rootID); err != nil {
		return err
	}
	for _, k := range prog.Kernels {
		kernelID, err := emit(k)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "    n%d -> n%d;\n", rootID, kernelID); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}

// nodeLabel returns a short display label for an AST node.
func nodeLabel(n cuda.Node) string {
	switch n := n.(type) {
	case *cuda.KernelSpec:
		return "kernel " + n.Decl.Name
	case *cuda.KernelDecl:
		return "decl " + n.Name
	case *cuda.Argument:
		return "arg " + n.Name
	case *cuda.Type:
		if n.Pointer {
			return n.Name + "*"
		}
		return n.Name
	case *cuda.Block:
		if n.Braced {
			return "block"
		}
		return "stmt-body"
	case *cuda.DeclStmt:
		return "declare " + strings.Join(n.Names, ", ")
	case *cuda.AssignStmt:
		return "assign " + n.Op.String()
	case *cuda.ExprStmt:
		return "expr-stmt"
	case *cuda.IfStmt:
		return "if"
	case *cuda.ElseClause:
		return "else"
	case *cuda.WhileStmt:
		return "while"
	case *cuda.ForStmt:
		return "for"
	case *cuda.Ident:
		return n.Name
	case *cuda.Literal:
		return n.Value
	case *cuda.ParenExpr:
		return "( )"
	case *cuda.UnaryExpr:
		return "prefix " + n.Op.String()
	case *cuda.PostfixExpr:
		return "postfix " + n.Op.String()
	case *cuda.BinaryExpr:
		return n.Op.String()
	case *cuda.CallExpr:
		return "call"
	case *cuda.IndexExpr:
		return "index"
	case *cuda.MemberExpr:
		return "." + n.Member
	default:
		return fmt.Sprintf("%T", n)
	}
}
