package cuda

// Inspect traverses an AST in depth-first order, calling f for each node.
// If f returns false, the node's children are not visited. Both analysis
// passes and the generator's fallback path share this traversal; it only
// reads the tree.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}

// Children returns the direct child nodes of n in source order.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *KernelSpec:
		out := []Node{n.Return, n.Decl}
		for _, s := range n.Body {
			out = append(out, s)
		}
		return out
	case *KernelDecl:
		out := make([]Node, 0, len(n.Args))
		for _, a := range n.Args {
			out = append(out, a)
		}
		return out
	case *Argument:
		return []Node{n.Type}
	case *Type:
		return nil
	case *Block:
		out := make([]Node, 0, len(n.Stmts))
		for _, s := range n.Stmts {
			out = append(out, s)
		}
		return out
	case *DeclStmt:
		out := []Node{n.Type}
		for _, d := range n.Dims {
			out = append(out, d)
		}
		if n.Init != nil {
			out = append(out, n.Init)
		}
		return out
	case *AssignStmt:
		return []Node{n.Left, n.Right}
	case *ExprStmt:
		return []Node{n.Expr}
	case *IfStmt:
		out := []Node{n.Condition, n.Body}
		for _, e := range n.Elses {
			out = append(out, e)
		}
		return out
	case *ElseClause:
		if n.If != nil {
			return []Node{n.If}
		}
		return []Node{n.Body}
	case *WhileStmt:
		return []Node{n.Condition, n.Body}
	case *ForStmt:
		return []Node{n.Init, n.Condition, n.Post, n.Body}
	case *Ident, *Literal:
		return nil
	case *ParenExpr:
		return []Node{n.Inner}
	case *UnaryExpr:
		return []Node{n.Operand}
	case *PostfixExpr:
		return []Node{n.Operand}
	case *BinaryExpr:
		return []Node{n.Left, n.Right}
	case *CallExpr:
		out := []Node{n.Callee}
		for _, a := range n.Args {
			out = append(out, a)
		}
		return out
	case *IndexExpr:
		return []Node{n.Expr, n.Index}
	case *MemberExpr:
		return []Node{n.Expr}
	default:
		return nil
	}
}
