package main

import "strconv"

// Global lexer input state
var (
	input []byte
	pos   int // current reading position in input
)

// Global “current token” state
var (
	CurrTokenType  TokenType
	CurrLiteral    string
	CurrFloatValue float64 // only meaningful when CurrTokenType == NUMBER
)

// TokenType is the type of token (identifier, operator, literal, etc.).
type TokenType string

// Definition of token types
const (
	// Special tokens
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers + literals
	IDENT  = "IDENT"  // x, velocity, scatter_plot
	NUMBER = "NUMBER" // 42, 3.14, 1e-3

	// Operators
	ASSIGN   = "="
	PLUS     = "+"
	MINUS    = "-"
	ASTERISK = "*"
	SLASH    = "/"

	// Delimiters
	COMMA     = ","
	SEMICOLON = ";"
	LPAREN    = "("
	RPAREN    = ")"
	LBRACE    = "{"
	RBRACE    = "}"
	LBRACKET  = "["
	RBRACKET  = "]"

	// Keywords
	IF    = "IF"
	ELSE  = "ELSE"
	WHILE = "WHILE"
)

// Init initializes the lexer with the given input (must end with a 0 byte).
func Init(in []byte) {
	input = in
	pos = 0
}

// NextToken scans the next token and stores it in the globals.
func NextToken() {
	skipWhitespace()

	c := input[pos]
	CurrFloatValue = 0 // reset for non-NUMBER tokens

	if c == '#' {
		skipLineComment()
		NextToken()
		return

	} else if c == '=' {
		CurrTokenType = ASSIGN
		CurrLiteral = string(c)
		pos++

	} else if c == '+' {
		CurrTokenType = PLUS
		CurrLiteral = string(c)
		pos++

	} else if c == '-' {
		CurrTokenType = MINUS
		CurrLiteral = string(c)
		pos++

	} else if c == '*' {
		CurrTokenType = ASTERISK
		CurrLiteral = string(c)
		pos++

	} else if c == '/' {
		CurrTokenType = SLASH
		CurrLiteral = string(c)
		pos++

	} else if c == ',' {
		CurrTokenType = COMMA
		CurrLiteral = string(c)
		pos++

	} else if c == ';' {
		CurrTokenType = SEMICOLON
		CurrLiteral = string(c)
		pos++

	} else if c == '(' {
		CurrTokenType = LPAREN
		CurrLiteral = string(c)
		pos++

	} else if c == ')' {
		CurrTokenType = RPAREN
		CurrLiteral = string(c)
		pos++

	} else if c == '{' {
		CurrTokenType = LBRACE
		CurrLiteral = string(c)
		pos++

	} else if c == '}' {
		CurrTokenType = RBRACE
		CurrLiteral = string(c)
		pos++

	} else if c == '[' {
		CurrTokenType = LBRACKET
		CurrLiteral = string(c)
		pos++

	} else if c == ']' {
		CurrTokenType = RBRACKET
		CurrLiteral = string(c)
		pos++

	} else if c == 0 {
		CurrTokenType = EOF
		CurrLiteral = ""

	} else if isLetter(c) {
		ident := readIdentifier()
		CurrLiteral = ident
		switch ident {
		case "if":
			CurrTokenType = IF
		case "else":
			CurrTokenType = ELSE
		case "while":
			CurrTokenType = WHILE
		default:
			CurrTokenType = IDENT
		}

	} else if isDigit(c) || (c == '.' && isDigit(input[pos+1])) {
		CurrLiteral, CurrFloatValue = readNumber()
		CurrTokenType = NUMBER

	} else {
		CurrTokenType = ILLEGAL
		CurrLiteral = string(c)
		pos++
	}
}

func skipWhitespace() {
	for {
		c := input[pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			pos++
		} else {
			break
		}
	}
}

func skipLineComment() {
	for input[pos] != '\n' && input[pos] != 0 {
		pos++
	}
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func readIdentifier() string {
	start := pos
	for isLetter(input[pos]) || isDigit(input[pos]) {
		pos++
	}
	return string(input[start:pos])
}

// readNumber scans a float literal: digits, optional fraction, optional
// exponent. Returns the literal text and its parsed value.
func readNumber() (string, float64) {
	start := pos
	for isDigit(input[pos]) {
		pos++
	}
	if input[pos] == '.' && isDigit(input[pos+1]) {
		pos++
		for isDigit(input[pos]) {
			pos++
		}
	}
	if input[pos] == 'e' || input[pos] == 'E' {
		mark := pos
		pos++
		if input[pos] == '+' || input[pos] == '-' {
			pos++
		}
		if isDigit(input[pos]) {
			for isDigit(input[pos]) {
				pos++
			}
		} else {
			pos = mark // not an exponent after all
		}
	}
	literal := string(input[start:pos])
	value, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		value = 0
	}
	return literal, value
}

// PeekToken returns the next token type without advancing the lexer.
// Useful for lookahead parsing decisions.
func PeekToken() TokenType {
	savedPos := pos
	savedTokenType := CurrTokenType
	savedLiteral := CurrLiteral
	savedFloatValue := CurrFloatValue

	NextToken()
	nextType := CurrTokenType

	// Restore state
	pos = savedPos
	CurrTokenType = savedTokenType
	CurrLiteral = savedLiteral
	CurrFloatValue = savedFloatValue

	return nextType
}

// SkipToken advances past the current token, asserting it matches the
// expected type.
//
// Panics if the current token doesn't match the expected type.
func SkipToken(expectedType TokenType) {
	if CurrTokenType != expectedType {
		panic("Expected token " + string(expectedType) + " but got " + string(CurrTokenType))
	}
	NextToken()
}
