package transduce

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"lwdita-editor/internal/editor"
	"lwdita-editor/internal/jdita"
)

func el(name string, attrs map[string]string, children ...*jdita.Node) *jdita.Node {
	return jdita.NewElement(name, attrs, children...)
}

func txt(s string) *jdita.Node { return jdita.NewText(s) }

type kv = map[string]string

func doc(children ...*jdita.Node) *jdita.Node {
	return el("document", nil, el("topic", kv{"id": "t"}, children...))
}

func assertSameAST(t *testing.T, want, got *jdita.Node) {
	t.Helper()

	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("AST mismatch (-want +got):\n%s", diff)
	}
}

func assertSameEditor(t *testing.T, want, got *editor.Node) {
	t.Helper()

	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("editor tree mismatch (-want +got):\n%s", diff)
	}
}

// fullTopic exercises every kind of the built-in grammar.
func fullTopic() *jdita.Node {
	return el("document", nil,
		el("topic", kv{"id": "t1", "xml:lang": "en"},
			el("title", nil, txt("Media")),
			el("shortdesc", nil, txt("s "), el("b", nil, txt("bold"))),
			el("prolog", nil, el("data", kv{"name": "author", "value": "x"})),
			el("body", nil,
				el("p", nil,
					txt("a"),
					el("b", nil, el("i", nil, txt("bi"))),
					txt(" "),
					el("u", kv{"dir": "rtl"}, txt("u")),
					el("xref", kv{"href": "x.dita"}, txt("x")),
					el("fn", nil, el("p", nil, txt("note"))),
					el("image", kv{"href": "i.png"}, el("alt", nil, txt("alt text"))),
					el("ph", nil, el("b", nil, txt("ph bold"))),
				),
				el("ul", nil,
					el("li", nil, el("p", nil, txt("one"))),
					el("li", nil, el("p", nil, txt("two"))),
				),
				el("dl", nil, el("dlentry", nil,
					el("dt", nil, txt("t")),
					el("dd", nil, el("p", nil, txt("d"))),
				)),
				el("pre", kv{"xml:space": "preserve"}, txt("code\n")),
				el("video", kv{"width": "640"},
					el("desc", nil, txt("A clip")),
					el("video-poster", kv{"value": "p.png"}),
					el("media-controls", kv{"value": "true"}),
					el("media-autoplay", kv{"value": "false"}),
					el("media-loop", kv{"value": "true"}),
					el("media-muted", kv{"value": "false"}),
					el("fallback", nil, el("image", kv{"href": "f.png"})),
					el("media-source", kv{"href": "v.mp4"}),
					el("media-source", kv{"href": "v.webm", "type": "video/webm"}),
					el("media-track", kv{"href": "t.vtt", "srclang": "en", "kind": "captions"}),
				),
				el("audio", nil,
					el("desc", nil, txt("Song")),
					el("media-controls", kv{"value": "true"}),
					el("media-source", kv{"href": "a.mp3"}),
				),
				el("fig", nil,
					el("title", nil, txt("Figure")),
					el("image", kv{"href": "f.png", "scope": "external"}, el("alt", nil, txt("fig alt"))),
				),
				el("simpletable", nil,
					el("sthead", nil, el("stentry", nil, el("p", nil, txt("h")))),
					el("strow", nil, el("stentry", nil, el("p", nil, txt("c")))),
				),
				el("note", kv{"type": "tip"}, el("p", nil, txt("n"))),
				el("section", nil,
					el("title", nil, txt("Sec")),
					el("p", nil, el("sub", nil, txt("2")), el("sup", nil, txt("3"))),
				),
			),
		),
	)
}

type docCase struct {
	name string
	ast  *jdita.Node
}

// edgeDocs are documents around the fold and mark boundaries.
func edgeDocs() []docCase {
	title := el("title", nil, txt("edge"))

	return []docCase{
		{"mark around image", doc(title, el("body", nil,
			el("p", nil, el("b", nil, el("image", kv{"href": "b.png"}))),
		))},
		{"audio with every fold", doc(title, el("body", nil,
			el("audio", kv{"id": "a1"},
				el("desc", nil, txt("all flags")),
				el("media-controls", kv{"value": "true"}),
				el("media-autoplay", kv{"value": "true"}),
				el("media-loop", kv{"value": "false"}),
				el("media-muted", kv{"value": "true"}),
				el("media-source", kv{"href": "a.ogg", "type": "audio/ogg"}),
				el("media-track", kv{"href": "a.vtt", "kind": "subtitles"}),
			),
		))},
		{"alt with phrase", doc(title, el("body", nil,
			el("p", nil, el("image", kv{"href": "i.png"}, el("alt", nil, txt("an "), el("ph", nil, txt("icon"))))),
		))},
		{"desc with mark", doc(title, el("body", nil,
			el("video", nil,
				el("desc", nil, el("i", nil, txt("styled"))),
				el("media-source", kv{"href": "v.mp4"}),
			),
		))},
		{"marks inside xref", doc(title, el("body", nil,
			el("p", nil, el("xref", kv{"href": "n.dita"}, el("sup", nil, el("u", nil, txt("1"))))),
		))},
		{"repeated flag", doc(title, el("body", nil,
			el("video", nil,
				el("media-loop", kv{"value": "true"}),
				el("media-loop", kv{"value": "false"}),
			),
		))},
	}
}
