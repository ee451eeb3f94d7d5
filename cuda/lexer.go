package cuda

import (
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes CUDA kernel source code.
type Lexer struct {
	source string
	pos    int
	line   int
	column int
	start  int
	tokens []Token
}

// NewLexer creates a new lexer for the given source.
func NewLexer(source string) *Lexer {
	// Estimate ~1 token per 6 characters of source.
	estTokens := len(source) / 6
	if estTokens < 16 {
		estTokens = 16
	}
	return &Lexer{
		source: source,
		pos:    0,
		line:   1,
		column: 1,
		tokens: make([]Token, 0, estTokens),
	}
}

// Tokenize returns all tokens from the source.
func (l *Lexer) Tokenize() ([]Token, error) {
	for !l.isAtEnd() {
		l.start = l.pos
		if err := l.scanToken(); err != nil {
			return nil, err
		}
	}

	l.tokens = append(l.tokens, Token{
		Kind:   TokenEOF,
		Line:   l.line,
		Column: l.column,
	})

	return l.tokens, nil
}

func (l *Lexer) scanToken() error {
	r := l.advance()

	switch r {
	// Single-character tokens
	case '(':
		l.addToken(TokenLeftParen)
	case ')':
		l.addToken(TokenRightParen)
	case '{':
		l.addToken(TokenLeftBrace)
	case '}':
		l.addToken(TokenRightBrace)
	case '[':
		l.addToken(TokenLeftBracket)
	case ']':
		l.addToken(TokenRightBracket)
	case ',':
		l.addToken(TokenComma)
	case ';':
		l.addToken(TokenSemicolon)
	case '~':
		l.addToken(TokenTilde)
	case '%':
		l.addToken(TokenPercent)
	case '^':
		l.addToken(TokenCaret)
	case '.':
		if isDigit(l.peek()) {
			l.number()
		} else {
			l.addToken(TokenDot)
		}

	// Operators that could be one or two characters
	case '+':
		if l.match('+') {
			l.addToken(TokenPlusPlus)
		} else if l.match('=') {
			l.addToken(TokenPlusEqual)
		} else {
			l.addToken(TokenPlus)
		}
	case '-':
		if l.match('-') {
			l.addToken(TokenMinusMinus)
		} else if l.match('=') {
			l.addToken(TokenMinusEqual)
		} else if l.signedLiteralFollows() {
			l.number()
		} else {
			l.addToken(TokenMinus)
		}
	case '*':
		if l.match('=') {
			l.addToken(TokenStarEqual)
		} else {
			l.addToken(TokenStar)
		}
	case '/':
		if l.match('/') {
			// Line comment
			for l.peek() != '\n' && !l.isAtEnd() {
				l.advance()
			}
		} else if l.match('*') {
			// Block comment
			l.blockComment()
		} else if l.match('=') {
			l.addToken(TokenSlashEqual)
		} else {
			l.addToken(TokenSlash)
		}
	case '=':
		if l.match('=') {
			l.addToken(TokenEqualEqual)
		} else {
			l.addToken(TokenEqual)
		}
	case '!':
		if l.match('=') {
			l.addToken(TokenBangEqual)
		} else {
			l.addToken(TokenBang)
		}
	case '<':
		if l.match('<') {
			l.addToken(TokenLessLess)
		} else if l.match('=') {
			l.addToken(TokenLessEqual)
		} else {
			l.addToken(TokenLess)
		}
	case '>':
		if l.match('>') {
			l.addToken(TokenGreaterGreater)
		} else if l.match('=') {
			l.addToken(TokenGreaterEqual)
		} else {
			l.addToken(TokenGreater)
		}
	case '&':
		if l.match('&') {
			l.addToken(TokenAmpAmp)
		} else {
			l.addToken(TokenAmpersand)
		}
	case '|':
		if l.match('|') {
			l.addToken(TokenPipePipe)
		} else {
			l.addToken(TokenPipe)
		}

	// Whitespace
	case ' ', '\r', '\t':
		// Ignore whitespace
	case '\n':
		l.line++
		l.column = 1

	default:
		if isDigit(r) {
			l.number()
		} else if isAlpha(r) || r == '_' {
			l.identifier()
		} else {
			l.addToken(TokenError)
		}
	}

	return nil
}

// signedLiteralFollows reports whether a '-' just consumed begins a signed
// integer literal rather than a binary minus. It does when the next
// characters form a plain integer and the previous token cannot end an
// operand, mirroring the contextual lexing of the accepted dialect.
func (l *Lexer) signedLiteralFollows() bool {
	if !isDigit(l.peek()) {
		return false
	}
	if l.prevEndsOperand() {
		return false
	}
	// Scan ahead: a '.', exponent, or float suffix means the digits belong
	// to a decimal literal, which takes a prefix minus instead.
	j := l.pos
	for j < len(l.source) && isDigit(rune(l.source[j])) {
		j++
	}
	if j < len(l.source) {
		switch l.source[j] {
		case '.', 'e', 'E', 'f':
			return false
		}
	}
	return true
}

// prevEndsOperand reports whether the most recent token can terminate an
// operand, making a following '-' a binary operator.
func (l *Lexer) prevEndsOperand() bool {
	if len(l.tokens) == 0 {
		return false
	}
	switch l.tokens[len(l.tokens)-1].Kind {
	case TokenIdent, TokenIntLiteral, TokenSignedIntLiteral,
		TokenFloatLiteral, TokenBoolLiteral, TokenTrue, TokenFalse,
		TokenRightParen, TokenRightBracket, TokenPlusPlus, TokenMinusMinus:
		return true
	}
	return false
}

func (l *Lexer) blockComment() {
	depth := 1
	for depth > 0 && !l.isAtEnd() {
		if l.peek() == '/' && l.peekNext() == '*' {
			l.advance()
			l.advance()
			depth++
		} else if l.peek() == '*' && l.peekNext() == '/' {
			l.advance()
			l.advance()
			depth--
		} else {
			if l.peek() == '\n' {
				l.line++
				l.column = 0
			}
			l.advance()
		}
	}
}

func (l *Lexer) number() {
	signed := l.source[l.start] == '-'
	fractional := l.source[l.start] == '.'

	// Hex literals: 0x1F
	if !signed && !fractional && l.source[l.start] == '0' && l.pos < len(l.source) {
		next := l.peek()
		if next == 'x' || next == 'X' {
			l.advance()
			for isHexDigit(l.peek()) {
				l.advance()
			}
			l.addToken(TokenIntLiteral)
			return
		}
	}

	for isDigit(l.peek()) {
		l.advance()
	}

	// Fractional part. "1." and ".5" are decimal literals; "a.b" member
	// access never reaches here because '.' after an identifier is lexed
	// as TokenDot.
	if !fractional && l.peek() == '.' {
		nextAfterDot := l.peekNext()
		if !isAlpha(nextAfterDot) && nextAfterDot != '_' {
			l.advance() // consume '.'
			for isDigit(l.peek()) {
				l.advance()
			}
			fractional = true
		}
	}

	// Exponent
	if l.peek() == 'e' || l.peek() == 'E' {
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		for isDigit(l.peek()) {
			l.advance()
		}
		fractional = true
	}

	// Float suffix: 1.0f
	if l.peek() == 'f' {
		l.advance()
		fractional = true
	}

	switch {
	case fractional:
		l.addToken(TokenFloatLiteral)
	case signed:
		l.addToken(TokenSignedIntLiteral)
	default:
		l.addToken(TokenIntLiteral)
	}
}

func (l *Lexer) identifier() {
	for isAlphaNumeric(l.peek()) || l.peek() == '_' {
		l.advance()
	}

	text := l.source[l.start:l.pos]
	kind := l.lookupKeyword(text)
	l.addToken(kind)
}

var keywords = map[string]TokenKind{
	"if":    TokenIf,
	"else":  TokenElse,
	"while": TokenWhile,
	"for":   TokenFor,
	"true":  TokenTrue,
	"false": TokenFalse,

	// Storage qualifiers
	"__global__": TokenGlobal,
	"__shared__": TokenShared,
	"__device__": TokenDevice,
}

func (l *Lexer) lookupKeyword(text string) TokenKind {
	if kind, ok := keywords[text]; ok {
		return kind
	}
	return TokenIdent
}

func (l *Lexer) addToken(kind TokenKind) {
	l.tokens = append(l.tokens, Token{
		Kind:   kind,
		Lexeme: l.source[l.start:l.pos],
		Line:   l.line,
		Column: l.column - (l.pos - l.start),
	})
}

func (l *Lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.source[l.pos:])
	l.pos += size
	l.column++
	return r
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.pos:])
	return r
}

func (l *Lexer) peekNext() rune {
	if l.pos+1 >= len(l.source) {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.source[l.pos:])
	r, _ := utf8.DecodeRuneInString(l.source[l.pos+size:])
	return r
}

func (l *Lexer) match(expected rune) bool {
	if l.isAtEnd() {
		return false
	}
	r, size := utf8.DecodeRuneInString(l.source[l.pos:])
	if r != expected {
		return false
	}
	l.pos += size
	l.column++
	return true
}

func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.source)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isAlpha(r rune) bool {
	return unicode.IsLetter(r)
}

func isAlphaNumeric(r rune) bool {
	return isAlpha(r) || isDigit(r)
}
