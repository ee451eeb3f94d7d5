// Package cuda provides parsing for the CUDA kernel subset accepted by tekhne.
package cuda

// TokenKind represents the type of token.
type TokenKind uint8

const (
	TokenEOF TokenKind = iota
	TokenError

	// Literals
	TokenIdent
	TokenIntLiteral
	TokenSignedIntLiteral
	TokenFloatLiteral
	TokenBoolLiteral

	// Operators
	TokenPlus           // +
	TokenMinus          // -
	TokenStar           // *
	TokenSlash          // /
	TokenPercent        // %
	TokenAmpersand      // &
	TokenPipe           // |
	TokenCaret          // ^
	TokenTilde          // ~
	TokenBang           // !
	TokenEqual          // =
	TokenLess           // <
	TokenGreater        // >
	TokenDot            // .
	TokenComma          // ,
	TokenSemicolon      // ;
	TokenPlusPlus       // ++
	TokenMinusMinus     // --
	TokenEqualEqual     // ==
	TokenBangEqual      // !=
	TokenLessEqual      // <=
	TokenGreaterEqual   // >=
	TokenAmpAmp         // &&
	TokenPipePipe       // ||
	TokenLessLess       // <<
	TokenGreaterGreater // >>
	TokenPlusEqual      // +=
	TokenMinusEqual     // -=
	TokenStarEqual      // *=
	TokenSlashEqual     // /=

	// Delimiters
	TokenLeftParen    // (
	TokenRightParen   // )
	TokenLeftBrace    // {
	TokenRightBrace   // }
	TokenLeftBracket  // [
	TokenRightBracket // ]

	// Keywords
	TokenIf
	TokenElse
	TokenWhile
	TokenFor
	TokenTrue
	TokenFalse

	// Storage qualifiers
	TokenGlobal // __global__
	TokenShared // __shared__
	TokenDevice // __device__
)

// String returns the string representation of the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenError:
		return "Error"
	case TokenIdent:
		return "Ident"
	case TokenIntLiteral:
		return "IntLiteral"
	case TokenSignedIntLiteral:
		return "SignedIntLiteral"
	case TokenFloatLiteral:
		return "FloatLiteral"
	case TokenBoolLiteral:
		return "BoolLiteral"
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenStar:
		return "*"
	case TokenSlash:
		return "/"
	case TokenPercent:
		return "%"
	case TokenAmpersand:
		return "&"
	case TokenPipe:
		return "|"
	case TokenCaret:
		return "^"
	case TokenTilde:
		return "~"
	case TokenBang:
		return "!"
	case TokenEqual:
		return "="
	case TokenLess:
		return "<"
	case TokenGreater:
		return ">"
	case TokenDot:
		return "."
	case TokenComma:
		return ","
	case TokenSemicolon:
		return ";"
	case TokenPlusPlus:
		return "++"
	case TokenMinusMinus:
		return "--"
	case TokenEqualEqual:
		return "=="
	case TokenBangEqual:
		return "!="
	case TokenLessEqual:
		return "<="
	case TokenGreaterEqual:
		return ">="
	case TokenAmpAmp:
		return "&&"
	case TokenPipePipe:
		return "||"
	case TokenLessLess:
		return "<<"
	case TokenGreaterGreater:
		return ">>"
	case TokenPlusEqual:
		return "+="
	case TokenMinusEqual:
		return "-="
	case TokenStarEqual:
		return "*="
	case TokenSlashEqual:
		return "/="
	case TokenLeftParen:
		return "("
	case TokenRightParen:
		return ")"
	case TokenLeftBrace:
		return "{"
	case TokenRightBrace:
		return "}"
	case TokenLeftBracket:
		return "["
	case TokenRightBracket:
		return "]"
	case TokenIf:
		return "if"
	case TokenElse:
		return "else"
	case TokenWhile:
		return "while"
	case TokenFor:
		return "for"
	case TokenTrue:
		return "true"
	case TokenFalse:
		return "false"
	case TokenGlobal:
		return "__global__"
	case TokenShared:
		return "__shared__"
	case TokenDevice:
		return "__device__"
	default:
		return "Unknown"
	}
}

// Token represents a lexical token.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Line   int
	Column int
}

// Span represents a source code location span.
type Span struct {
	Start Position
	End   Position
}

// Position represents a position in source code.
type Position struct {
	Line   int
	Column int
	Offset int
}
