// lexer.go: coco tokenizer.
//
// Scans raw source text into a flat token stream consumed by the parser.
// Tokens carry a 1-based Line and 0-based Col of their first character, which
// every later stage threads through to runtime errors.
package coco

import (
	"fmt"
	"strconv"
)

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	ILLEGAL

	// Keywords
	LET
	FUN
	RETURN
	FOR
	IN
	IF
	ELSE
	SWITCH
	CASE
	DEFAULT
	WHILE
	DO
	BREAK
	CONTINUE
	TYPEOF
	CLASS
	NEW
	THIS
	IMPORT
	FROM

	// Literals & identifiers
	NULL
	NUMBER
	STRING
	WORD
	BOOLEAN
	NAN

	// Operators
	EQUALS     // =
	PLUS       // +
	MINUS      // -
	SLASH      // /
	STAR       // *
	DOUBLESTAR // **
	PERCENT    // %

	PLUSEQ      // +=
	MINUSEQ     // -=
	DIVIDEEQ    // /=
	MULTIPLYEQ  // *=
	EXPONENTEQ  // **=
	REMAINDEREQ // %=

	LPAR     // (
	RPAR     // )
	LBRACE   // {
	RBRACE   // }
	LBRACKET // [
	RBRACKET // ]
	COMMA    // ,
	DOT      // .
	COLON    // :
	EXCL     // !
	QUESTION // ?
	EQEQ     // ==
	EXCLEQ   // !=
	GT       // >
	LT       // <
	GTEQ     // >=
	LTEQ     // <=
	AMPAMP   // &&
	BARBAR   // ||
	ARROW    // ->
	SPREAD   // ...
)

// Token is a lexical token with optional literal payload.
type Token struct {
	Type    TokenType
	Lexeme  string      // raw text slice
	Literal interface{} // parsed value for NUMBER/STRING/BOOLEAN
	Line    int         // 1-based
	Col     int         // 0-based
}

var keywords = map[string]TokenType{
	"let":      LET,
	"fun":      FUN,
	"return":   RETURN,
	"for":      FOR,
	"in":       IN,
	"if":       IF,
	"else":     ELSE,
	"switch":   SWITCH,
	"case":     CASE,
	"default":  DEFAULT,
	"while":    WHILE,
	"do":       DO,
	"break":    BREAK,
	"continue": CONTINUE,
	"typeof":   TYPEOF,
	"class":    CLASS,
	"new":      NEW,
	"this":     THIS,
	"import":   IMPORT,
	"from":     FROM,
	"null":     NULL,
	"true":     BOOLEAN,
	"false":    BOOLEAN,
	"NaN":      NAN,
}

// LexError is a tokenization failure with a source position.
type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// Lexer scans a coco source string into tokens.
type Lexer struct {
	src    string
	start  int // start index of current token
	cur    int // current index
	line   int // 1-based
	col    int // 0-based column within line
	tokens []Token

	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

// Tokenize scans the whole input and returns the token stream, terminated by
// a single EOF token.
func Tokenize(src string) ([]Token, error) {
	return NewLexer(src).ScanAll()
}

// ScanAll drives the scanner to EOF.
func (l *Lexer) ScanAll() ([]Token, error) {
	for {
		l.skipWhitespaceAndComments()
		if l.isAtEnd() {
			break
		}
		l.start = l.cur
		l.tokStartLine = l.line
		l.tokStartCol = l.col

		ch, _ := l.peek()
		var err error
		switch {
		case isDigit(ch):
			err = l.scanNumber()
		case isAlpha(ch):
			l.scanWord()
		case ch == '"' || ch == '\'':
			err = l.scanString()
		default:
			err = l.scanOperator()
		}
		if err != nil {
			return nil, err
		}
	}
	l.start = l.cur
	l.tokStartLine = l.line
	l.tokStartCol = l.col
	l.addToken(EOF, nil)
	return l.tokens, nil
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) peekN(n int) (byte, bool) {
	idx := l.cur + n
	if idx >= len(l.src) {
		return 0, false
	}
	return l.src[idx], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

func (l *Lexer) addToken(tt TokenType, lit interface{}) {
	l.tokens = append(l.tokens, Token{
		Type:    tt,
		Lexeme:  l.src[l.start:l.cur],
		Literal: lit,
		Line:    l.tokStartLine,
		Col:     l.tokStartCol,
	})
	l.start = l.cur
}

func (l *Lexer) err(msg string) error {
	return &LexError{Line: l.line, Col: l.col, Msg: msg}
}

func isDigit(b byte) bool    { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool    { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool { return isAlpha(b) || isDigit(b) }

func (l *Lexer) skipWhitespaceAndComments() {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		switch ch {
		case ' ', '\r', '\n', '\t':
			l.advance()
			l.start = l.cur
		case '/':
			next, ok := l.peekN(1)
			if ok && next == '/' {
				for !l.isAtEnd() {
					c, _ := l.peek()
					if c == '\n' {
						break
					}
					l.advance()
				}
				l.start = l.cur
				continue
			}
			if ok && next == '*' {
				l.advance()
				l.advance()
				for !l.isAtEnd() {
					c, _ := l.peek()
					n, okN := l.peekN(1)
					if c == '*' && okN && n == '/' {
						l.advance()
						l.advance()
						break
					}
					l.advance()
				}
				l.start = l.cur
				continue
			}
			return
		default:
			return
		}
	}
}

// ----- scanners -----

func (l *Lexer) scanNumber() error {
	sawDot := false
	for !l.isAtEnd() {
		ch, _ := l.peek()
		if ch == '.' {
			next, ok := l.peekN(1)
			if sawDot || !ok || !isDigit(next) {
				break
			}
			sawDot = true
			l.advance()
			continue
		}
		if !isDigit(ch) {
			break
		}
		l.advance()
	}
	lex := l.src[l.start:l.cur]
	f, err := strconv.ParseFloat(lex, 64)
	if err != nil {
		return l.err("invalid number literal")
	}
	l.addToken(NUMBER, f)
	return nil
}

func (l *Lexer) scanWord() {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		if !isAlphaNum(ch) {
			break
		}
		l.advance()
	}
	lex := l.src[l.start:l.cur]
	if tt, ok := keywords[lex]; ok {
		if tt == BOOLEAN {
			l.addToken(BOOLEAN, lex == "true")
		} else {
			l.addToken(tt, nil)
		}
		return
	}
	l.addToken(WORD, nil)
}

// scanString parses a single- or double-quoted string literal. Interpolation
// markers ($name) stay in the literal text; the evaluator expands them.
func (l *Lexer) scanString() error {
	del, _ := l.advance()
	var out []byte
	for {
		if l.isAtEnd() {
			return l.err("string did not close")
		}
		ch, _ := l.advance()
		if ch == del {
			break
		}
		if ch == '\\' {
			if l.isAtEnd() {
				return l.err("unfinished escape sequence")
			}
			esc, _ := l.advance()
			switch esc {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case 'r':
				out = append(out, '\r')
			case '\\', '\'', '"', '$':
				out = append(out, esc)
			default:
				return l.err(fmt.Sprintf("unknown escape sequence \\%c", esc))
			}
			continue
		}
		out = append(out, ch)
	}
	l.addToken(STRING, string(out))
	return nil
}

var operators = map[string]TokenType{
	"+":   PLUS,
	"-":   MINUS,
	"*":   STAR,
	"/":   SLASH,
	"%":   PERCENT,
	"**":  DOUBLESTAR,
	"(":   LPAR,
	")":   RPAR,
	"{":   LBRACE,
	"}":   RBRACE,
	"[":   LBRACKET,
	"]":   RBRACKET,
	"=":   EQUALS,
	",":   COMMA,
	".":   DOT,
	":":   COLON,
	"!":   EXCL,
	"?":   QUESTION,
	"==":  EQEQ,
	"!=":  EXCLEQ,
	">":   GT,
	"<":   LT,
	">=":  GTEQ,
	"<=":  LTEQ,
	"&&":  AMPAMP,
	"||":  BARBAR,
	"->":  ARROW,
	"...": SPREAD,
	"+=":  PLUSEQ,
	"-=":  MINUSEQ,
	"*=":  MULTIPLYEQ,
	"/=":  DIVIDEEQ,
	"**=": EXPONENTEQ,
	"%=":  REMAINDEREQ,
}

// scanOperator greedily consumes the longest operator with a known prefix.
func (l *Lexer) scanOperator() error {
	buf := ""
	for !l.isAtEnd() {
		ch, _ := l.peek()
		cand := buf + string(ch)
		if !hasOperatorPrefix(cand) {
			break
		}
		buf = cand
		l.advance()
	}
	tt, ok := operators[buf]
	if !ok {
		if l.cur == l.start {
			l.advance()
		}
		return l.err(fmt.Sprintf("unexpected character %q", l.src[l.start:l.cur]))
	}
	l.addToken(tt, nil)
	return nil
}

func hasOperatorPrefix(s string) bool {
	for op := range operators {
		if len(op) >= len(s) && op[:len(s)] == s {
			return true
		}
	}
	return false
}
