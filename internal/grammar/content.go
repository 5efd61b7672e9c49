package grammar

import (
	"strings"
)

// TokenKind classifies content model tokens.
type TokenKind int

const (
	// TokenName is a kind or group reference.
	TokenName TokenKind = iota
	// TokenOp is one of ( ) | ? * +.
	TokenOp
	// TokenSeq separates sequence items (whitespace or a comma).
	TokenSeq
)

// Token is one lexical element of a content model.
type Token struct {
	Kind TokenKind
	Text string
}

func isNameByte(c byte) bool {
	return c == '-' || c == '_' || c == '.' || c == ':' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// Tokenize splits a content model into tokens. Runs of whitespace and commas
// collapse into a single TokenSeq; leading and trailing separators, and
// separators next to '(' ')' '|', are dropped. A leading '%' on a name (DTD
// parameter-entity style) is ignored.
func Tokenize(model string) []Token {
	var out []Token

	pendingSeq := false

	for i := 0; i < len(model); {
		c := model[i]

		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',':
			pendingSeq = true
			i++

		case c == '(' || c == ')' || c == '|' || c == '?' || c == '*' || c == '+':
			if pendingSeq && c == '(' && len(out) > 0 && !opensGroup(out[len(out)-1]) {
				out = append(out, Token{Kind: TokenSeq, Text: " "})
			}

			pendingSeq = false
			out = append(out, Token{Kind: TokenOp, Text: string(c)})
			i++

		default:
			if c == '%' {
				i++
				continue
			}

			j := i
			for j < len(model) && isNameByte(model[j]) {
				j++
			}

			if j == i {
				// Unknown punctuation is skipped.
				i++
				continue
			}

			if pendingSeq && len(out) > 0 && !opensGroup(out[len(out)-1]) {
				out = append(out, Token{Kind: TokenSeq, Text: " "})
			}

			pendingSeq = false
			out = append(out, Token{Kind: TokenName, Text: model[i:j]})
			i = j
		}
	}

	return out
}

func opensGroup(t Token) bool {
	return t.Kind == TokenOp && (t.Text == "(" || t.Text == "|")
}

// Names returns the distinct names referenced by a content model, in order
// of first appearance.
func Names(model string) []string {
	var out []string

	seen := map[string]bool{}

	for _, t := range Tokenize(model) {
		if t.Kind != TokenName || seen[t.Text] {
			continue
		}

		seen[t.Text] = true
		out = append(out, t.Text)
	}

	return out
}

// Join renders tokens back into a content model string using single spaces
// for sequences.
func Join(tokens []Token) string {
	var b strings.Builder

	for _, t := range tokens {
		b.WriteString(t.Text)
	}

	return b.String()
}
