package typeexpr

import (
	"unicode"
)

type TokenType int

const (
	TokenIdent TokenType = iota
	TokenNumber
	TokenLAngle
	TokenRAngle
	TokenLBrace
	TokenRBrace
	TokenComma
	TokenColon
	TokenString
)

func (t TokenType) String() string {
	switch t {
	case TokenIdent:
		return "identifier"
	case TokenNumber:
		return "number"
	case TokenLAngle:
		return "'<'"
	case TokenRAngle:
		return "'>'"
	case TokenLBrace:
		return "'{'"
	case TokenRBrace:
		return "'}'"
	case TokenComma:
		return "','"
	case TokenColon:
		return "':'"
	case TokenString:
		return "string"
	}
	return "unknown"
}

type Token struct {
	Value string
	Type  TokenType
	Pos   int
}

// Tokenize splits a type expression into tokens. Unknown characters are
// surfaced by the parser as unexpected input rather than dropped here.
func Tokenize(input string) []Token {
	var tokens []Token
	runes := []rune(input)

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if unicode.IsSpace(r) {
			continue
		}

		switch r {
		case '<':
			tokens = append(tokens, Token{"<", TokenLAngle, i})
			continue
		case '>':
			tokens = append(tokens, Token{">", TokenRAngle, i})
			continue
		case '{':
			tokens = append(tokens, Token{"{", TokenLBrace, i})
			continue
		case '}':
			tokens = append(tokens, Token{"}", TokenRBrace, i})
			continue
		case ',':
			tokens = append(tokens, Token{",", TokenComma, i})
			continue
		case ':':
			tokens = append(tokens, Token{":", TokenColon, i})
			continue
		case '"':
			start := i
			i++
			begin := i
			for i < len(runes) && runes[i] != '"' {
				i++
			}
			tokens = append(tokens, Token{string(runes[begin:i]), TokenString, start})
			continue
		}

		if unicode.IsDigit(r) {
			start := i
			for i+1 < len(runes) && unicode.IsDigit(runes[i+1]) {
				i++
			}
			tokens = append(tokens, Token{string(runes[start : i+1]), TokenNumber, start})
			continue
		}

		if unicode.IsLetter(r) || r == '_' {
			start := i
			for i+1 < len(runes) && (unicode.IsLetter(runes[i+1]) || unicode.IsDigit(runes[i+1]) || runes[i+1] == '_') {
				i++
			}
			tokens = append(tokens, Token{string(runes[start : i+1]), TokenIdent, start})
			continue
		}

		// Preserve the unexpected rune as an identifier token so the
		// parser reports it with its position.
		tokens = append(tokens, Token{string(r), TokenIdent, i})
	}

	return tokens
}
