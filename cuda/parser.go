package cuda

import (
	"fmt"
)

// Parser parses CUDA kernel tokens into an AST.
//
// The parser is a deterministic single-pass recursive descent over the
// token stream. The first syntax error aborts parsing; no partial AST is
// produced. It performs no semantic checks.
type Parser struct {
	tokens  []Token
	current int
}

// NewParser creates a new parser for the given tokens.
func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens:  tokens,
		current: 0,
	}
}

// Parse parses the tokens and returns a Program AST.
func (p *Parser) Parse() (*Program, error) {
	program := &Program{}

	for !p.isAtEnd() {
		kernel, err := p.kernelSpec()
		if err != nil {
			return nil, err
		}
		program.Kernels = append(program.Kernels, kernel)
	}

	return program, nil
}

// kernelSpec parses one __global__ kernel specification.
func (p *Parser) kernelSpec() (*KernelSpec, *SyntaxError) {
	start := p.peek()
	if err := p.expect(TokenGlobal); err != nil {
		return nil, err
	}

	if !p.check(TokenIdent) {
		return nil, p.errf("expected kernel return type")
	}
	ret := p.advance()

	decl, err := p.kernelDecl()
	if err != nil {
		return nil, err
	}

	if err := p.expect(TokenLeftBrace); err != nil {
		return nil, err
	}

	var body []Stmt
	for !p.check(TokenRightBrace) && !p.isAtEnd() {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}

	if err := p.expect(TokenRightBrace); err != nil {
		return nil, err
	}

	return &KernelSpec{
		Return: &Type{Name: ret.Lexeme, Span: spanOf(ret)},
		Decl:   decl,
		Body:   body,
		Span:   spanOf(start),
	}, nil
}

// kernelDecl parses a kernel name and parenthesized argument list.
func (p *Parser) kernelDecl() (*KernelDecl, *SyntaxError) {
	if !p.check(TokenIdent) {
		return nil, p.errf("expected kernel name")
	}
	name := p.advance()

	if err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}

	args := make([]*Argument, 0, 4)
	for !p.check(TokenRightParen) && !p.isAtEnd() {
		arg, err := p.argument()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if !p.match(TokenComma) {
			break
		}
	}

	if err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}

	return &KernelDecl{
		Name: name.Lexeme,
		Args: args,
		Span: spanOf(name),
	}, nil
}

// argument parses one "(type|pointer-type) name" pair.
func (p *Parser) argument() (*Argument, *SyntaxError) {
	if !p.check(TokenIdent) {
		return nil, p.errf("expected argument type")
	}
	typ := p.advance()
	pointer := p.match(TokenStar)

	if !p.check(TokenIdent) {
		return nil, p.errf("expected argument name")
	}
	name := p.advance()

	return &Argument{
		Type: &Type{Name: typ.Lexeme, Pointer: pointer, Span: spanOf(typ)},
		Name: name.Lexeme,
		Span: spanOf(typ),
	}, nil
}

// statement parses a statement. One token of lookahead after an
// identifier distinguishes declarations from assignments and bare
// expressions.
func (p *Parser) statement() (Stmt, *SyntaxError) {
	switch {
	case p.check(TokenFor):
		return p.forStmt()
	case p.check(TokenWhile):
		return p.whileStmt()
	case p.check(TokenIf):
		return p.ifStmt()
	case p.check(TokenShared), p.check(TokenDevice):
		qual := p.advance()
		return p.declaration(qual.Kind, qual)
	case p.check(TokenIdent) && p.checkNext(TokenIdent):
		return p.declaration(TokenEOF, p.peek())
	default:
		return p.exprOrAssignStmt()
	}
}

// declaration parses a variable declaration after any storage qualifier.
func (p *Parser) declaration(qualifier TokenKind, start Token) (*DeclStmt, *SyntaxError) {
	if !p.check(TokenIdent) {
		return nil, p.errf("expected type name")
	}
	typ := p.advance()

	if !p.check(TokenIdent) {
		return nil, p.errf("expected variable name")
	}
	name := p.advance()

	decl := &DeclStmt{
		Qualifier: qualifier,
		Type:      &Type{Name: typ.Lexeme, Span: spanOf(typ)},
		Names:     []string{name.Lexeme},
		Span:      spanOf(start),
	}

	// Multi-name form: "type a, b, c;" with no dims or initializer.
	if p.match(TokenComma) {
		for {
			if !p.check(TokenIdent) {
				return nil, p.errf("expected variable name")
			}
			decl.Names = append(decl.Names, p.advance().Lexeme)
			if !p.match(TokenComma) {
				break
			}
		}
		if err := p.expect(TokenSemicolon); err != nil {
			return nil, err
		}
		return decl, nil
	}

	// Array dimensions
	for p.match(TokenLeftBracket) {
		dim, err := p.expression()
		if err != nil {
			return nil, err
		}
		decl.Dims = append(decl.Dims, dim)
		if err := p.expect(TokenRightBracket); err != nil {
			return nil, err
		}
	}

	// Initializer
	if p.match(TokenEqual) {
		init, err := p.expression()
		if err != nil {
			return nil, err
		}
		decl.Init = init
	}

	if err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}

	return decl, nil
}

// ifStmt parses an if clause and its chain of else clauses.
func (p *Parser) ifStmt() (*IfStmt, *SyntaxError) {
	start := p.advance() // consume 'if'

	if err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}

	body, err := p.body()
	if err != nil {
		return nil, err
	}

	stmt := &IfStmt{
		Condition: cond,
		Body:      body,
		Span:      spanOf(start),
	}

	for p.check(TokenElse) {
		elseTok := p.advance()
		if p.check(TokenIf) {
			nested, err := p.ifStmt()
			if err != nil {
				return nil, err
			}
			stmt.Elses = append(stmt.Elses, &ElseClause{If: nested, Span: spanOf(elseTok)})
			// The nested if consumed any further else clauses.
			break
		}
		elseBody, err := p.body()
		if err != nil {
			return nil, err
		}
		stmt.Elses = append(stmt.Elses, &ElseClause{Body: elseBody, Span: spanOf(elseTok)})
	}

	return stmt, nil
}

// whileStmt parses a while loop.
func (p *Parser) whileStmt() (*WhileStmt, *SyntaxError) {
	start := p.advance() // consume 'while'

	if err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}

	body, err := p.body()
	if err != nil {
		return nil, err
	}

	return &WhileStmt{
		Condition: cond,
		Body:      body,
		Span:      spanOf(start),
	}, nil
}

// forStmt parses a triple-clause for loop: declaration-or-assignment,
// condition, post.
func (p *Parser) forStmt() (*ForStmt, *SyntaxError) {
	start := p.advance() // consume 'for'

	if err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}

	// Init: a declaration or assignment, consuming its own semicolon.
	var init Stmt
	switch {
	case p.check(TokenShared), p.check(TokenDevice):
		qual := p.advance()
		d, err := p.declaration(qual.Kind, qual)
		if err != nil {
			return nil, err
		}
		init = d
	case p.check(TokenIdent) && p.checkNext(TokenIdent):
		d, err := p.declaration(TokenEOF, p.peek())
		if err != nil {
			return nil, err
		}
		init = d
	default:
		a, err := p.assignment()
		if err != nil {
			return nil, err
		}
		init = a
	}

	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}

	post, err := p.postClause()
	if err != nil {
		return nil, err
	}

	if err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}

	body, err := p.body()
	if err != nil {
		return nil, err
	}

	return &ForStmt{
		Init:      init,
		Condition: cond,
		Post:      post,
		Body:      body,
		Span:      spanOf(start),
	}, nil
}

// postClause parses the third for-loop clause: an expression or an
// assignment, with no trailing semicolon.
func (p *Parser) postClause() (Stmt, *SyntaxError) {
	start := p.peek()
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}

	if p.isAssignOp(p.peek().Kind) {
		op := p.advance()
		right, err := p.expression()
		if err != nil {
			return nil, err
		}
		return &AssignStmt{
			Left:  expr,
			Op:    op.Kind,
			Right: right,
			Span:  spanOf(start),
		}, nil
	}

	return &ExprStmt{Expr: expr, Span: spanOf(start)}, nil
}

// body parses a braced block or a single unbraced statement.
func (p *Parser) body() (*Block, *SyntaxError) {
	start := p.peek()

	if p.match(TokenLeftBrace) {
		stmts := make([]Stmt, 0, 4)
		for !p.check(TokenRightBrace) && !p.isAtEnd() {
			stmt, err := p.statement()
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, stmt)
		}
		if err := p.expect(TokenRightBrace); err != nil {
			return nil, err
		}
		return &Block{Stmts: stmts, Braced: true, Span: spanOf(start)}, nil
	}

	stmt, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &Block{Stmts: []Stmt{stmt}, Braced: false, Span: spanOf(start)}, nil
}

// assignment parses a mandatory assignment statement, semicolon included.
func (p *Parser) assignment() (*AssignStmt, *SyntaxError) {
	start := p.peek()
	left, err := p.expression()
	if err != nil {
		return nil, err
	}

	if !p.isAssignOp(p.peek().Kind) {
		return nil, p.errf("expected assignment operator, got %s", p.peek().Kind)
	}
	op := p.advance()

	right, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}

	return &AssignStmt{
		Left:  left,
		Op:    op.Kind,
		Right: right,
		Span:  spanOf(start),
	}, nil
}

// exprOrAssignStmt parses an expression statement or assignment.
func (p *Parser) exprOrAssignStmt() (Stmt, *SyntaxError) {
	start := p.peek()
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}

	if p.isAssignOp(p.peek().Kind) {
		op := p.advance()
		right, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenSemicolon); err != nil {
			return nil, err
		}
		return &AssignStmt{
			Left:  expr,
			Op:    op.Kind,
			Right: right,
			Span:  spanOf(start),
		}, nil
	}

	if err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return &ExprStmt{Expr: expr, Span: spanOf(start)}, nil
}

// expression parses an expression.
func (p *Parser) expression() (Expr, *SyntaxError) {
	return p.logicalOr()
}

// logicalOr parses || expressions.
func (p *Parser) logicalOr() (Expr, *SyntaxError) {
	left, err := p.logicalAnd()
	if err != nil {
		return nil, err
	}

	for p.match(TokenPipePipe) {
		right, err := p.logicalAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:  left,
			Op:    TokenPipePipe,
			Right: right,
		}
	}

	return left, nil
}

// logicalAnd parses && expressions.
func (p *Parser) logicalAnd() (Expr, *SyntaxError) {
	left, err := p.bitwiseOr()
	if err != nil {
		return nil, err
	}

	for p.match(TokenAmpAmp) {
		right, err := p.bitwiseOr()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:  left,
			Op:    TokenAmpAmp,
			Right: right,
		}
	}

	return left, nil
}

// bitwiseOr parses | expressions.
func (p *Parser) bitwiseOr() (Expr, *SyntaxError) {
	left, err := p.bitwiseXor()
	if err != nil {
		return nil, err
	}

	for p.match(TokenPipe) {
		right, err := p.bitwiseXor()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:  left,
			Op:    TokenPipe,
			Right: right,
		}
	}

	return left, nil
}

// bitwiseXor parses ^ expressions.
func (p *Parser) bitwiseXor() (Expr, *SyntaxError) {
	left, err := p.bitwiseAnd()
	if err != nil {
		return nil, err
	}

	for p.match(TokenCaret) {
		right, err := p.bitwiseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:  left,
			Op:    TokenCaret,
			Right: right,
		}
	}

	return left, nil
}

// bitwiseAnd parses & expressions.
func (p *Parser) bitwiseAnd() (Expr, *SyntaxError) {
	left, err := p.equality()
	if err != nil {
		return nil, err
	}

	for p.match(TokenAmpersand) {
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:  left,
			Op:    TokenAmpersand,
			Right: right,
		}
	}

	return left, nil
}

// equality parses == and != expressions.
func (p *Parser) equality() (Expr, *SyntaxError) {
	left, err := p.comparison()
	if err != nil {
		return nil, err
	}

	for p.check(TokenEqualEqual) || p.check(TokenBangEqual) {
		op := p.advance()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:  left,
			Op:    op.Kind,
			Right: right,
		}
	}

	return left, nil
}

// comparison parses <, >, <=, >= expressions.
func (p *Parser) comparison() (Expr, *SyntaxError) {
	left, err := p.shift()
	if err != nil {
		return nil, err
	}

	for p.check(TokenLess) || p.check(TokenGreater) ||
		p.check(TokenLessEqual) || p.check(TokenGreaterEqual) {
		op := p.advance()
		right, err := p.shift()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:  left,
			Op:    op.Kind,
			Right: right,
		}
	}

	return left, nil
}

// shift parses << and >> expressions.
func (p *Parser) shift() (Expr, *SyntaxError) {
	left, err := p.additive()
	if err != nil {
		return nil, err
	}

	for p.check(TokenLessLess) || p.check(TokenGreaterGreater) {
		op := p.advance()
		right, err := p.additive()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:  left,
			Op:    op.Kind,
			Right: right,
		}
	}

	return left, nil
}

// additive parses + and - expressions.
func (p *Parser) additive() (Expr, *SyntaxError) {
	left, err := p.multiplicative()
	if err != nil {
		return nil, err
	}

	for p.check(TokenPlus) || p.check(TokenMinus) {
		op := p.advance()
		right, err := p.multiplicative()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:  left,
			Op:    op.Kind,
			Right: right,
		}
	}

	return left, nil
}

// multiplicative parses *, /, % expressions.
func (p *Parser) multiplicative() (Expr, *SyntaxError) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}

	for p.check(TokenStar) || p.check(TokenSlash) || p.check(TokenPercent) {
		op := p.advance()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:  left,
			Op:    op.Kind,
			Right: right,
		}
	}

	return left, nil
}

// unary parses prefix expressions: ++, --, +, -, !, ~ and pointer
// dereference *.
func (p *Parser) unary() (Expr, *SyntaxError) {
	if p.check(TokenPlusPlus) || p.check(TokenMinusMinus) ||
		p.check(TokenPlus) || p.check(TokenMinus) ||
		p.check(TokenBang) || p.check(TokenTilde) || p.check(TokenStar) {
		op := p.advance()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{
			Op:      op.Kind,
			Operand: operand,
			Span:    spanOf(op),
		}, nil
	}

	return p.postfix()
}

// postfix parses postfix expressions: calls, indexing, member access,
// and postfix ++/--.
func (p *Parser) postfix() (Expr, *SyntaxError) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for {
		if p.match(TokenLeftParen) {
			// Function call
			args := make([]Expr, 0, 4)
			for !p.check(TokenRightParen) && !p.isAtEnd() {
				arg, err := p.expression()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if !p.match(TokenComma) {
					break
				}
			}
			if err := p.expect(TokenRightParen); err != nil {
				return nil, err
			}
			expr = &CallExpr{
				Callee: expr,
				Args:   args,
			}
		} else if p.match(TokenLeftBracket) {
			// Index expression
			index, err := p.expression()
			if err != nil {
				return nil, err
			}
			if err := p.expect(TokenRightBracket); err != nil {
				return nil, err
			}
			expr = &IndexExpr{
				Expr:  expr,
				Index: index,
			}
		} else if p.match(TokenDot) {
			// Member access
			if !p.check(TokenIdent) {
				return nil, p.errf("expected member name")
			}
			member := p.advance()
			expr = &MemberExpr{
				Expr:   expr,
				Member: member.Lexeme,
			}
		} else if p.check(TokenPlusPlus) || p.check(TokenMinusMinus) {
			op := p.advance()
			expr = &PostfixExpr{
				Op:      op.Kind,
				Operand: expr,
			}
		} else {
			break
		}
	}

	return expr, nil
}

// primary parses atoms: literals, identifiers, and parenthesized
// sub-expressions.
func (p *Parser) primary() (Expr, *SyntaxError) {
	tok := p.peek()

	switch tok.Kind {
	case TokenIntLiteral, TokenSignedIntLiteral, TokenFloatLiteral:
		p.advance()
		return &Literal{
			Kind:  tok.Kind,
			Value: tok.Lexeme,
			Span:  spanOf(tok),
		}, nil

	case TokenTrue, TokenFalse, TokenBoolLiteral:
		p.advance()
		return &Literal{
			Kind:  TokenBoolLiteral,
			Value: tok.Lexeme,
			Span:  spanOf(tok),
		}, nil

	case TokenIdent:
		p.advance()
		return &Ident{
			Name: tok.Lexeme,
			Span: spanOf(tok),
		}, nil

	case TokenLeftParen:
		p.advance()
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
		return &ParenExpr{
			Inner: inner,
			Span:  spanOf(tok),
		}, nil

	default:
		return nil, p.errf("unexpected token %s in expression", tok.Kind)
	}
}

// Helper methods

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == TokenEOF
}

func (p *Parser) check(kind TokenKind) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *Parser) checkNext(kind TokenKind) bool {
	if p.current+1 >= len(p.tokens) {
		return false
	}
	return p.tokens[p.current+1].Kind == kind
}

func (p *Parser) match(kind TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(kind TokenKind) *SyntaxError {
	if p.check(kind) {
		p.advance()
		return nil
	}
	return &SyntaxError{
		Message: fmt.Sprintf("expected %s, got %s", kind, p.peek().Kind),
		Token:   p.peek(),
	}
}

func (p *Parser) errf(format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Message: fmt.Sprintf(format, args...),
		Token:   p.peek(),
	}
}

func (p *Parser) isAssignOp(kind TokenKind) bool {
	switch kind {
	case TokenEqual, TokenPlusEqual, TokenMinusEqual,
		TokenStarEqual, TokenSlashEqual:
		return true
	}
	return false
}

func spanOf(tok Token) Span {
	return Span{
		Start: Position{Line: tok.Line, Column: tok.Column},
	}
}
