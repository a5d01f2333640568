// Package lexer implements the aslang lexical analyzer. It turns raw
// source text into a finite ordered token stream terminated by an EOF
// token. Scanning is fail-fast: the first unrecognized character or
// unterminated string aborts the scan with a *LexError.
package lexer

import (
	"fmt"

	"github.com/aslang-lang/aslang/internal/position"
)

// TokenType represents the type of a token
type TokenType int

// Token types for the aslang language
const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenError

	// Literals
	TokenName
	TokenNumber
	TokenString

	// Keywords
	TokenPrint
	TokenInput
	TokenIf
	TokenElif
	TokenElse
	TokenWhile
	TokenDo
	TokenPass
	TokenBreak
	TokenArray
	TokenAnd
	TokenOr

	// Operators
	TokenPlus
	TokenMinus
	TokenTimes
	TokenDivide
	TokenMod
	TokenPow
	TokenEq
	TokenNe
	TokenLt
	TokenLte
	TokenGt
	TokenGte
	TokenInc
	TokenDec
	TokenArrow
	TokenColon

	// Punctuation
	TokenLParen
	TokenRParen
	TokenLBrac
	TokenRBrac
	TokenLSquare
	TokenRSquare
	TokenComma
)

// tokenNames provides string representations for token types
var tokenNames = map[TokenType]string{
	TokenEOF:   "EOF",
	TokenError: "ERROR",

	TokenName:   "NAME",
	TokenNumber: "NUMBER",
	TokenString: "STRING",

	TokenPrint: "PRINT",
	TokenInput: "INPUT",
	TokenIf:    "IF",
	TokenElif:  "ELIF",
	TokenElse:  "ELSE",
	TokenWhile: "WHILE",
	TokenDo:    "DO",
	TokenPass:  "PASS",
	TokenBreak: "BREAK",
	TokenArray: "ARRAY",
	TokenAnd:   "AND",
	TokenOr:    "OR",

	TokenPlus:   "PLUS",
	TokenMinus:  "MINUS",
	TokenTimes:  "TIMES",
	TokenDivide: "DIVIDE",
	TokenMod:    "MOD",
	TokenPow:    "POW",
	TokenEq:     "EQ",
	TokenNe:     "NE",
	TokenLt:     "LT",
	TokenLte:    "LTE",
	TokenGt:     "GT",
	TokenGte:    "GTE",
	TokenInc:    "INC",
	TokenDec:    "DEC",
	TokenArrow:  "ARROW",
	TokenColon:  "COLON",

	TokenLParen:  "LPAREN",
	TokenRParen:  "RPAREN",
	TokenLBrac:   "LBRAC",
	TokenRBrac:   "RBRAC",
	TokenLSquare: "LSQUARE",
	TokenRSquare: "RSQUARE",
	TokenComma:   "COMMA",
}

// String returns a string representation of the token type
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(tt))
}

// keywords maps keyword lexemes to their token types. A matching lexeme
// always wins over the generic NAME classification.
var keywords = map[string]TokenType{
	"print": TokenPrint,
	"input": TokenInput,
	"if":    TokenIf,
	"elif":  TokenElif,
	"else":  TokenElse,
	"while": TokenWhile,
	"do":    TokenDo,
	"pass":  TokenPass,
	"break": TokenBreak,
	"array": TokenArray,
	"and":   TokenAnd,
	"or":    TokenOr,
}

// lookupIdent classifies an identifier lexeme as a keyword or NAME
func lookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenName
}

// Token represents a lexical token with position information
type Token struct {
	Type    TokenType
	Literal string
	Span    position.Span
}

// Pos returns the start position of the token
func (t Token) Pos() position.Position {
	return t.Span.Start
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("{Type: %s, Literal: %q, Pos: %s}", t.Type, t.Literal, t.Span.Start)
}

// LexError describes a lexical error: an unrecognized character or an
// unterminated string literal. It aborts the whole scan (no
// skip-and-continue).
type LexError struct {
	Pos  position.Position // where the offending input starts
	Char string            // offending character or fragment, if any
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %s: %s", e.Pos, e.Msg)
}

// Lexer scans aslang source text byte by byte
type Lexer struct {
	input        string
	filename     string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int  // line of the current char (1-based)
	column       int  // column of the current char (1-based)
	err          *LexError
}

// New creates a new lexer instance
func New(input string) *Lexer {
	return NewWithFilename(input, "")
}

// NewWithFilename creates a new lexer instance with a filename for error
// reporting
func NewWithFilename(input, filename string) *Lexer {
	l := &Lexer{
		input:    input,
		filename: filename,
		line:     1,
		column:   0,
	}
	l.readChar()
	return l
}

// Err returns the first lexical error encountered, or nil
func (l *Lexer) Err() *LexError {
	return l.err
}

// readChar reads the next character and advances position
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0 // NUL represents end of input
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// peekChar returns the next character without advancing position
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// pos returns the position of the current character
func (l *Lexer) pos() position.Position {
	return position.Position{
		Filename: l.filename,
		Line:     l.line,
		Column:   l.column,
		Offset:   l.position,
	}
}

// skipWhitespace skips whitespace and // line comments. Neither produces
// a token.
func (l *Lexer) skipWhitespace() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
			l.readChar()
		}
		if l.ch == '/' && l.peekChar() == '/' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		break
	}
}

// isLetter checks if character is ASCII letter
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

// isDigit checks if character is ASCII digit
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// NextToken scans the input and returns the next token. On a lexical
// error it returns a TokenError token and records the error, retrievable
// via Err.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	start := l.pos()

	switch l.ch {
	case 0:
		return l.emit(TokenEOF, "", start)
	case '(':
		l.readChar()
		return l.emit(TokenLParen, "(", start)
	case ')':
		l.readChar()
		return l.emit(TokenRParen, ")", start)
	case '{':
		l.readChar()
		return l.emit(TokenLBrac, "{", start)
	case '}':
		l.readChar()
		return l.emit(TokenRBrac, "}", start)
	case '[':
		l.readChar()
		return l.emit(TokenLSquare, "[", start)
	case ']':
		l.readChar()
		return l.emit(TokenRSquare, "]", start)
	case ',':
		l.readChar()
		return l.emit(TokenComma, ",", start)
	case ':':
		l.readChar()
		return l.emit(TokenColon, ":", start)
	case '+':
		if l.peekChar() == '+' {
			l.readChar()
			l.readChar()
			return l.emit(TokenInc, "++", start)
		}
		l.readChar()
		return l.emit(TokenPlus, "+", start)
	case '-':
		if l.peekChar() == '-' {
			l.readChar()
			l.readChar()
			return l.emit(TokenDec, "--", start)
		}
		if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			return l.emit(TokenArrow, "->", start)
		}
		l.readChar()
		return l.emit(TokenMinus, "-", start)
	case '*':
		l.readChar()
		return l.emit(TokenTimes, "*", start)
	case '/':
		l.readChar()
		return l.emit(TokenDivide, "/", start)
	case '%':
		l.readChar()
		return l.emit(TokenMod, "%", start)
	case '^':
		l.readChar()
		return l.emit(TokenPow, "^", start)
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.emit(TokenEq, "==", start)
		}
		return l.errorToken(start, "=", "unexpected character '='")
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.emit(TokenNe, "!=", start)
		}
		return l.errorToken(start, "!", "unexpected character '!'")
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.emit(TokenLte, "<=", start)
		}
		l.readChar()
		return l.emit(TokenLt, "<", start)
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.emit(TokenGte, ">=", start)
		}
		l.readChar()
		return l.emit(TokenGt, ">", start)
	case '"':
		return l.readString(start)
	default:
		if isLetter(l.ch) || l.ch == '_' {
			return l.readIdentifier(start)
		}
		if isDigit(l.ch) {
			return l.readNumber(start)
		}
		return l.errorToken(start, string(l.ch), fmt.Sprintf("unexpected character %q", string(l.ch)))
	}
}

// Tokenize scans the whole input eagerly and returns the token sequence
// terminated by an EOF token, or the first lexical error.
func (l *Lexer) Tokenize() ([]Token, error) {
	tokens := make([]Token, 0, 16)
	for {
		tok := l.NextToken()
		if tok.Type == TokenError {
			return nil, l.err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier(start position.Position) Token {
	from := l.position
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	literal := l.input[from:l.position]
	return l.emit(lookupIdent(literal), literal, start)
}

// readNumber reads a numeric literal: a digit run with at most one
// fractional part. The literal text is kept verbatim; no value
// conversion happens during scanning.
func (l *Lexer) readNumber(start position.Position) Token {
	from := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // consume '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.emit(TokenNumber, l.input[from:l.position], start)
}

// readString reads a double-quoted string literal. aslang strings have
// no escape sequences; the literal ends at the first closing quote and
// may span lines.
func (l *Lexer) readString(start position.Position) Token {
	l.readChar() // skip opening quote
	from := l.position
	for l.ch != '"' && l.ch != 0 {
		l.readChar()
	}
	if l.ch == 0 {
		return l.errorToken(start, "\"", "unterminated string literal")
	}
	value := l.input[from:l.position]
	l.readChar() // skip closing quote
	return l.emit(TokenString, value, start)
}

// emit creates a token spanning from start to the current position
func (l *Lexer) emit(tokenType TokenType, literal string, start position.Position) Token {
	return Token{
		Type:    tokenType,
		Literal: literal,
		Span:    position.Span{Start: start, End: l.pos()},
	}
}

// errorToken records a lexical error and returns an error token. Only
// the first error is kept, but the scan steps past the offending
// character so a NextToken loop always reaches EOF.
func (l *Lexer) errorToken(start position.Position, char, msg string) Token {
	if l.err == nil {
		l.err = &LexError{Pos: start, Char: char, Msg: msg}
	}
	if l.ch != 0 {
		l.readChar()
	}
	return Token{
		Type:    TokenError,
		Literal: char,
		Span:    position.Span{Start: start, End: l.pos()},
	}
}
