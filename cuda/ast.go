package cuda

// Program represents a parsed translation unit: an ordered sequence of
// kernel specifications in declaration order.
type Program struct {
	Kernels []*KernelSpec
}

// Node is the base interface for all AST nodes.
type Node interface {
	Pos() Span
}

// Stmt is the interface for statements.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is the interface for expressions.
type Expr interface {
	Node
	exprNode()
}

// KernelSpec represents one __global__ kernel: return type, declaration,
// and body. A kernel owns its statements exclusively.
type KernelSpec struct {
	Return *Type
	Decl   *KernelDecl
	Body   []Stmt
	Span   Span
}

func (k *KernelSpec) Pos() Span { return k.Span }

// KernelDecl represents a kernel name and its argument list.
type KernelDecl struct {
	Name string
	Args []*Argument
	Span Span
}

func (k *KernelDecl) Pos() Span { return k.Span }

// Argument represents one typed kernel argument.
type Argument struct {
	Type *Type
	Name string
	Span Span
}

func (a *Argument) Pos() Span { return a.Span }

// Type represents a scalar or single-level pointer type name.
type Type struct {
	Name    string
	Pointer bool
	Span    Span
}

func (t *Type) Pos() Span { return t.Span }

// Block represents a statement body. Braced records whether the source
// wrapped the body in braces; unbraced bodies hold exactly one statement.
type Block struct {
	Stmts  []Stmt
	Braced bool
	Span   Span
}

func (b *Block) Pos() Span { return b.Span }

// Statements

// DeclStmt represents a variable declaration. Multi-name declarations
// carry several names and no dimensions or initializer; single-name
// declarations may carry array dimensions and an initializer.
type DeclStmt struct {
	Qualifier TokenKind // TokenShared, TokenGlobal, TokenDevice, or TokenEOF for none
	Type      *Type
	Names     []string
	Dims      []Expr
	Init      Expr
	Span      Span
}

func (d *DeclStmt) Pos() Span { return d.Span }
func (d *DeclStmt) stmtNode() {}

// Qualified reports whether the declaration carries a storage qualifier.
func (d *DeclStmt) Qualified() bool { return d.Qualifier != TokenEOF }

// AssignStmt represents an assignment. Left is an identifier with
// optional chained index and member accesses.
type AssignStmt struct {
	Left  Expr
	Op    TokenKind // =, +=, -=, *=, /=
	Right Expr
	Span  Span
}

func (a *AssignStmt) Pos() Span { return a.Span }
func (a *AssignStmt) stmtNode() {}

// ExprStmt represents a bare expression statement.
type ExprStmt struct {
	Expr Expr
	Span Span
}

func (e *ExprStmt) Pos() Span { return e.Span }
func (e *ExprStmt) stmtNode() {}

// IfStmt represents an if clause plus zero or more else clauses.
type IfStmt struct {
	Condition Expr
	Body      *Block
	Elses     []*ElseClause
	Span      Span
}

func (i *IfStmt) Pos() Span { return i.Span }
func (i *IfStmt) stmtNode() {}

// ElseClause is either an else-if (If set, Body nil) or a terminal else
// (Body set, If nil).
type ElseClause struct {
	If   *IfStmt
	Body *Block
	Span Span
}

func (e *ElseClause) Pos() Span { return e.Span }

// WhileStmt represents a while loop.
type WhileStmt struct {
	Condition Expr
	Body      *Block
	Span      Span
}

func (w *WhileStmt) Pos() Span { return w.Span }
func (w *WhileStmt) stmtNode() {}

// ForStmt represents a triple-clause for loop. Init is a *DeclStmt or
// *AssignStmt; Post is an *ExprStmt or *AssignStmt.
type ForStmt struct {
	Init      Stmt
	Condition Expr
	Post      Stmt
	Body      *Block
	Span      Span
}

func (f *ForStmt) Pos() Span { return f.Span }
func (f *ForStmt) stmtNode() {}

// Expressions

// Ident represents an identifier reference.
type Ident struct {
	Name string
	Span Span
}

func (i *Ident) Pos() Span { return i.Span }
func (i *Ident) exprNode() {}

// Literal represents an integer, decimal, or boolean literal. Value
// retains the exact source text.
type Literal struct {
	Kind  TokenKind // IntLiteral, SignedIntLiteral, FloatLiteral, BoolLiteral
	Value string
	Span  Span
}

func (l *Literal) Pos() Span { return l.Span }
func (l *Literal) exprNode() {}

// ParenExpr represents an explicitly parenthesized sub-expression.
// Parentheses present in the source round-trip through this node.
type ParenExpr struct {
	Inner Expr
	Span  Span
}

func (p *ParenExpr) Pos() Span { return p.Span }
func (p *ParenExpr) exprNode() {}

// UnaryExpr represents a prefix operator expression.
type UnaryExpr struct {
	Op      TokenKind // ++, --, +, -, !, ~, *
	Operand Expr
	Span    Span
}

func (u *UnaryExpr) Pos() Span { return u.Span }
func (u *UnaryExpr) exprNode() {}

// PostfixExpr represents a postfix ++ or -- expression.
type PostfixExpr struct {
	Op      TokenKind // ++, --
	Operand Expr
	Span    Span
}

func (p *PostfixExpr) Pos() Span { return p.Span }
func (p *PostfixExpr) exprNode() {}

// BinaryExpr represents a binary operator expression.
type BinaryExpr struct {
	Left  Expr
	Op    TokenKind
	Right Expr
	Span  Span
}

func (b *BinaryExpr) Pos() Span { return b.Span }
func (b *BinaryExpr) exprNode() {}

// CallExpr represents a function call.
type CallExpr struct {
	Callee Expr
	Args   []Expr
	Span   Span
}

func (c *CallExpr) Pos() Span { return c.Span }
func (c *CallExpr) exprNode() {}

// IndexExpr represents an index access expression.
type IndexExpr struct {
	Expr  Expr
	Index Expr
	Span  Span
}

func (i *IndexExpr) Pos() Span { return i.Span }
func (i *IndexExpr) exprNode() {}

// MemberExpr represents a member access expression.
type MemberExpr struct {
	Expr   Expr
	Member string
	Span   Span
}

func (m *MemberExpr) Pos() Span { return m.Span }
func (m *MemberExpr) exprNode() {}
