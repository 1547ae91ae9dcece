// Package lexer implements the lexical analyzer for the deva scripting
// language.
//
// The lexer is responsible for breaking down the source code into tokens,
// which are the smallest units of meaning in the language. It reads the
// input character by character and produces a stream of tokens that can be
// processed by the parser.
//
// The main entry point is the New function, which creates a new Lexer
// instance, and the NextToken method, which returns the next token from
// the input.
package lexer

import (
	"strings"

	"github.com/devalang/deva/token"
)

// Common tokens that are reused to reduce allocations
var (
	tokenPlus      = token.Token{Type: token.Plus, Literal: "+"}
	tokenMinus     = token.Token{Type: token.Minus, Literal: "-"}
	tokenSlash     = token.Token{Type: token.Slash, Literal: "/"}
	tokenAsterisk  = token.Token{Type: token.Asterisk, Literal: "*"}
	tokenPercent   = token.Token{Type: token.Percent, Literal: "%"}
	tokenLT        = token.Token{Type: token.Lt, Literal: "<"}
	tokenLTE       = token.Token{Type: token.Lte, Literal: "<="}
	tokenGT        = token.Token{Type: token.Gt, Literal: ">"}
	tokenGTE       = token.Token{Type: token.Gte, Literal: ">="}
	tokenSemicolon = token.Token{Type: token.Semicolon, Literal: ";"}
	tokenColon     = token.Token{Type: token.Colon, Literal: ":"}
	tokenDot       = token.Token{Type: token.Dot, Literal: "."}
	tokenComma     = token.Token{Type: token.Comma, Literal: ","}
	tokenLParen    = token.Token{Type: token.Lparen, Literal: "("}
	tokenRParen    = token.Token{Type: token.Rparen, Literal: ")"}
	tokenLBrace    = token.Token{Type: token.Lbrace, Literal: "{"}
	tokenRBrace    = token.Token{Type: token.Rbrace, Literal: "}"}
	tokenLBracket  = token.Token{Type: token.Lbracket, Literal: "["}
	tokenRBracket  = token.Token{Type: token.Rbracket, Literal: "]"}
	tokenEOF       = token.Token{Type: token.EOF, Literal: ""}
)

// Lexer represents the lexer for the deva scripting language.
type Lexer struct {
	input        string
	position     int
	readPosition int
	ch           byte
	// Pre-allocates a token to reuse for single-character tokens
	singleCharToken token.Token
}

// readChar reads the next character from the input and advances the position.
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

// New creates a new Lexer with the given input string.
func New(input string) *Lexer {
	l := &Lexer{
		input:           input,
		singleCharToken: token.Token{},
	}
	l.readChar()
	return l
}

// NextToken reads the next token from the input.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			ch := l.ch
			l.readChar()
			l.readChar()
			return token.Token{Type: token.Eq, Literal: string(ch) + string('=')}
		}
		l.readChar()
		return token.Token{Type: token.Assign, Literal: "="}
	case '!':
		if l.peekChar() == '=' {
			ch := l.ch
			l.readChar()
			l.readChar()
			return token.Token{Type: token.NotEq, Literal: string(ch) + string('=')}
		}
		l.readChar()
		return token.Token{Type: token.Bang, Literal: "!"}
	case '+':
		l.readChar()
		return tokenPlus
	case '-':
		l.readChar()
		return tokenMinus
	case '/':
		l.readChar()
		return tokenSlash
	case '*':
		l.readChar()
		return tokenAsterisk
	case '%':
		l.readChar()
		return tokenPercent
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return tokenLTE
		}
		l.readChar()
		return tokenLT
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return tokenGTE
		}
		l.readChar()
		return tokenGT
	case ';':
		l.readChar()
		return tokenSemicolon
	case ':':
		l.readChar()
		return tokenColon
	case '.':
		l.readChar()
		return tokenDot
	case ',':
		l.readChar()
		return tokenComma
	case '(':
		l.readChar()
		return tokenLParen
	case ')':
		l.readChar()
		return tokenRParen
	case '{':
		l.readChar()
		return tokenLBrace
	case '}':
		l.readChar()
		return tokenRBrace
	case '[':
		l.readChar()
		return tokenLBracket
	case ']':
		l.readChar()
		return tokenRBracket
	case '"':
		lit, ok := l.readString()
		if !ok {
			l.singleCharToken.Type = token.Illegal
			l.singleCharToken.Literal = "unterminated string"
			return l.singleCharToken
		}
		tok := token.Token{Type: token.String, Literal: lit}
		l.readChar()
		return tok
	case 0:
		return tokenEOF
	default:
		if isLetter(l.ch) {
			literal := l.readIdentifier()
			return token.Token{
				Type:    token.LookupIdent(literal),
				Literal: literal,
			}
		}
		if isDigit(l.ch) {
			return token.Token{
				Type:    token.Int,
				Literal: l.readNumber(),
			}
		}
		l.singleCharToken.Type = token.Illegal
		l.singleCharToken.Literal = string(l.ch)
		l.readChar()
		return l.singleCharToken
	}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// readNumber reads a number (including an optional fractional part) from
// the input and returns it as a string.
func (l *Lexer) readNumber() string {
	position := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[position:l.position]
}

// readIdentifier reads an identifier from the input and returns it as a string.
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// skipWhitespace skips any whitespace characters (and comments) in the input.
func (l *Lexer) skipWhitespace() {
	for {
		if l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.readChar()
			continue
		}

		if l.ch == '/' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}

		break
	}
}

// peekChar returns the next character in the input without advancing the position.
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// readString reads a string from the input and returns the unescaped content and
// a boolean indicating whether the string was properly terminated (closed by a quote).
func (l *Lexer) readString() (string, bool) {
	var b strings.Builder

	l.readChar()

	for {
		if l.ch == '"' {
			return b.String(), true
		}

		if l.ch == 0 {
			return b.String(), false
		}

		if l.ch == '\\' {
			l.readChar()
			if l.ch == 0 {
				return b.String(), false
			}
			switch l.ch {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			default:
				b.WriteByte('\\')
				b.WriteByte(l.ch)
			}
		} else {
			b.WriteByte(l.ch)
		}

		l.readChar()
	}
}
