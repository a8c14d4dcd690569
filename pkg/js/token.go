package js

import (
	"strconv"
	"strings"
	"unicode"
)

// TokenKind classifies a token.
type TokenKind int

const (
	ILLEGAL TokenKind = iota
	EOF

	KEYWORD
	IDENTIFIER
	NUMBER
	STRING

	EQUALS     // == ===
	NOT_EQUALS // != !==
	INCREMENT  // ++
	DECREMENT  // --

	LPAREN       // (
	RPAREN       // )
	LBRACE       // {
	RBRACE       // }
	LBRACKET     // [
	RBRACKET     // ]
	SEMICOLON    // ;
	COMMA        // ,
	DOT          // .
	ASSIGN       // =
	PLUS         // +
	MINUS        // -
	MULTIPLY     // *
	DIVIDE       // /
	LESS_THAN    // <
	GREATER_THAN // >
	NOT          // !
)

var tokenNames = [...]string{
	ILLEGAL:      "ILLEGAL",
	EOF:          "EOF",
	KEYWORD:      "KEYWORD",
	IDENTIFIER:   "IDENTIFIER",
	NUMBER:       "NUMBER",
	STRING:       "STRING",
	EQUALS:       "EQUALS",
	NOT_EQUALS:   "NOT_EQUALS",
	INCREMENT:    "INCREMENT",
	DECREMENT:    "DECREMENT",
	LPAREN:       "LPAREN",
	RPAREN:       "RPAREN",
	LBRACE:       "LBRACE",
	RBRACE:       "RBRACE",
	LBRACKET:     "LBRACKET",
	RBRACKET:     "RBRACKET",
	SEMICOLON:    "SEMICOLON",
	COMMA:        "COMMA",
	DOT:          "DOT",
	ASSIGN:       "ASSIGN",
	PLUS:         "PLUS",
	MINUS:        "MINUS",
	MULTIPLY:     "MULTIPLY",
	DIVIDE:       "DIVIDE",
	LESS_THAN:    "LESS_THAN",
	GREATER_THAN: "GREATER_THAN",
	NOT:          "NOT",
}

func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

var operators = map[byte]TokenKind{
	'(': LPAREN,
	')': RPAREN,
	'{': LBRACE,
	'}': RBRACE,
	'[': LBRACKET,
	']': RBRACKET,
	';': SEMICOLON,
	',': COMMA,
	'.': DOT,
	'=': ASSIGN,
	'+': PLUS,
	'-': MINUS,
	'*': MULTIPLY,
	'/': DIVIDE,
	'<': LESS_THAN,
	'>': GREATER_THAN,
	'!': NOT,
}

var keywords = map[string]bool{
	"var": true, "let": true, "const": true, "function": true,
	"if": true, "else": true, "for": true, "while": true, "return": true,
	"true": true, "false": true, "null": true, "undefined": true,
}

// Token is a lexical token. Value holds the literal text, or the decoded
// contents for strings. Pos is the byte offset of the token in the source.
type Token struct {
	Kind   TokenKind
	Value  string
	Number float64
	Pos    int
}

func (t Token) String() string {
	switch t.Kind {
	case KEYWORD, IDENTIFIER, NUMBER:
		return t.Kind.String() + " " + t.Value
	case STRING:
		return t.Kind.String() + " " + strconv.Quote(t.Value)
	}
	return t.Kind.String()
}

// Tokenize splits source into tokens. It never fails: characters that
// start no token are dropped, and an unterminated string runs to the end
// of the input.
func Tokenize(source string) []Token {
	var toks []Token
	s := source
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
			i++
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			for i < len(s) && s[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			end := strings.Index(s[i+2:], "*/")
			if end < 0 {
				i = len(s)
			} else {
				i += end + 4
			}
		case c == '"' || c == '\'':
			tok, next := readString(s, i)
			toks = append(toks, tok)
			i = next
		case isDigit(c):
			start := i
			for i < len(s) && isDigit(s[i]) {
				i++
			}
			if i+1 < len(s) && s[i] == '.' && isDigit(s[i+1]) {
				i++
				for i < len(s) && isDigit(s[i]) {
					i++
				}
			}
			n, _ := strconv.ParseFloat(s[start:i], 64)
			toks = append(toks, Token{Kind: NUMBER, Value: s[start:i], Number: n, Pos: start})
		case isIdentStart(c):
			start := i
			for i < len(s) && (isIdentStart(s[i]) || isDigit(s[i])) {
				i++
			}
			word := s[start:i]
			kind := IDENTIFIER
			if keywords[word] {
				kind = KEYWORD
			}
			toks = append(toks, Token{Kind: kind, Value: word, Pos: start})
		default:
			if tok, n := twoCharOperator(s, i); n > 0 {
				toks = append(toks, tok)
				i += n
			} else if kind, ok := operators[c]; ok {
				toks = append(toks, Token{Kind: kind, Value: string(c), Pos: i})
				i++
			} else {
				i++
			}
		}
	}
	return toks
}

// twoCharOperator matches ==, !=, ++ and --, plus the strict forms === and
// !==, which must be tried before their one-character prefixes.
func twoCharOperator(s string, i int) (Token, int) {
	if i+1 >= len(s) {
		return Token{}, 0
	}
	switch s[i : i+2] {
	case "==":
		if strings.HasPrefix(s[i:], "===") {
			return Token{Kind: EQUALS, Value: "===", Pos: i}, 3
		}
		return Token{Kind: EQUALS, Value: "==", Pos: i}, 2
	case "!=":
		if strings.HasPrefix(s[i:], "!==") {
			return Token{Kind: NOT_EQUALS, Value: "!==", Pos: i}, 3
		}
		return Token{Kind: NOT_EQUALS, Value: "!=", Pos: i}, 2
	case "++":
		return Token{Kind: INCREMENT, Value: "++", Pos: i}, 2
	case "--":
		return Token{Kind: DECREMENT, Value: "--", Pos: i}, 2
	}
	return Token{}, 0
}

func readString(s string, start int) (Token, int) {
	quote := s[start]
	var sb strings.Builder
	i := start + 1
	for i < len(s) && s[i] != quote {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteByte(s[i])
			}
		} else {
			sb.WriteByte(s[i])
		}
		i++
	}
	if i < len(s) {
		i++
	}
	return Token{Kind: STRING, Value: sb.String(), Pos: start}, i
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || unicode.IsLetter(rune(c)) && c < 0x80
}
