package schema

import (
	"strings"

	"lwdita-editor/internal/common"
	"lwdita-editor/internal/editor"
	"lwdita-editor/internal/grammar"
)

func isQuantifier(t grammar.Token) bool {
	return t.Kind == grammar.TokenOp && (t.Text == "?" || t.Text == "*" || t.Text == "+")
}

func isOp(t grammar.Token, text string) bool {
	return t.Kind == grammar.TokenOp && t.Text == text
}

func opensChoice(t grammar.Token) bool { return isOp(t, "(") || isOp(t, "|") }

func closesChoice(t grammar.Token) bool { return isOp(t, ")") || isOp(t, "|") }

var (
	orTok    = grammar.Token{Kind: grammar.TokenOp, Text: "|"}
	openTok  = grammar.Token{Kind: grammar.TokenOp, Text: "("}
	closeTok = grammar.Token{Kind: grammar.TokenOp, Text: ")"}
)

// inlineModel applies the block/inline rule to a raw content model: a model
// naming a block group, or an empty one, is not inline.
func inlineModel(model string) bool {
	m := strings.TrimSpace(model)
	return m != "" && m != "()" && !strings.Contains(m, "block")
}

// mixedContent is the content expression of a kind admitting text.
func (c *compiler) mixedContent(kind string) string {
	names := append([]string{editor.TextType, editor.HardBreakType}, c.inlineMembers(kind)...)
	return "(" + strings.Join(names, "|") + ")*"
}

// inlineMembers lists the plain editor names of the non-mark kinds reachable
// from kind directly or through marks.
func (c *compiler) inlineMembers(kind string) []string {
	var out []string

	seen := map[string]struct{}{}
	marks := map[string]bool{}

	var collect func(k string)
	collect = func(k string) {
		for _, ch := range c.reg.Children(k) {
			switch {
			case ch == grammar.TextKind:
			case c.reg.IsMark(ch):
				if !marks[ch] {
					marks[ch] = true
					collect(ch)
				}
			default:
				out = common.AppendUnique(out, seen, editor.TypeName(ch, false))
			}
		}
	}

	collect(kind)

	return out
}

// blockNames returns the block variant names a content model name stands
// for. Marks, text and unknown names stand for nothing.
func (c *compiler) blockNames(name string) []string {
	if _, ok := c.reg.Entry(name); ok {
		if name == grammar.TextKind || c.reg.IsMark(name) {
			return nil
		}

		return []string{editor.TypeName(name, true)}
	}

	members, _ := c.reg.Group(name)

	var out []string

	for _, m := range members {
		if m == grammar.TextKind || c.reg.IsMark(m) {
			continue
		}

		out = append(out, editor.TypeName(m, true))
	}

	return out
}

// blockContent rewrites an element-only content model over block variant
// names. Groups expand in place; names standing for nothing are dropped with
// their quantifier.
func (c *compiler) blockContent(model string) string {
	toks := grammar.Tokenize(model)

	var out []grammar.Token

	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if t.Kind != grammar.TokenName {
			out = append(out, t)
			continue
		}

		names := c.blockNames(t.Text)
		if len(names) == 0 {
			if i+1 < len(toks) && isQuantifier(toks[i+1]) {
				i++
			}

			continue
		}

		inChoice := len(out) > 0 && opensChoice(out[len(out)-1]) &&
			i+1 < len(toks) && closesChoice(toks[i+1])

		if !inChoice && len(names) > 1 {
			out = append(out, openTok)
		}

		for j, n := range names {
			if j > 0 {
				out = append(out, orTok)
			}

			out = append(out, grammar.Token{Kind: grammar.TokenName, Text: n})
		}

		if !inChoice && len(names) > 1 {
			out = append(out, closeTok)
		}
	}

	return grammar.Join(tidy(out))
}

// tidy removes the debris dropped names leave behind: empty groups, stray
// alternatives and separators.
func tidy(toks []grammar.Token) []grammar.Token {
	for {
		next, changed := tidyOnce(toks)
		if !changed {
			return next
		}

		toks = next
	}
}

func tidyOnce(toks []grammar.Token) ([]grammar.Token, bool) {
	out := make([]grammar.Token, 0, len(toks))
	changed := false

	for i := 0; i < len(toks); i++ {
		t := toks[i]

		var prev, next *grammar.Token
		if len(out) > 0 {
			prev = &out[len(out)-1]
		}

		if i+1 < len(toks) {
			next = &toks[i+1]
		}

		switch {
		case isOp(t, "(") && next != nil && isOp(*next, ")"):
			i++
			if i+1 < len(toks) && isQuantifier(toks[i+1]) {
				i++
			}

			changed = true

		case isOp(t, "|") && (prev == nil || opensChoice(*prev) || next == nil || closesChoice(*next)):
			changed = true

		case t.Kind == grammar.TokenSeq && (prev == nil || next == nil ||
			opensChoice(*prev) || prev.Kind == grammar.TokenSeq ||
			closesChoice(*next) || isQuantifier(*next) || next.Kind == grammar.TokenSeq):
			changed = true

		case isQuantifier(t) && (prev == nil || prev.Kind == grammar.TokenSeq || opensChoice(*prev)):
			changed = true

		default:
			out = append(out, t)
		}
	}

	return out, changed
}
