package schema

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"lwdita-editor/internal/diagnostic"
	"lwdita-editor/internal/grammar"
	"lwdita-editor/internal/policy"
)

func compileLwDITA(t *testing.T) *Schema {
	t.Helper()

	s, err := Compile(grammar.LwDITA(), grammar.DocumentKind, DefaultConfig())
	require.NoError(t, err)

	return s
}

func node(t *testing.T, s *Schema, name string) *NodeSpec {
	t.Helper()

	n, ok := s.Node(name)
	require.True(t, ok, "missing spec %s", name)

	return n
}

func TestCompileLwDITAContent(t *testing.T) {
	s := compileLwDITA(t)

	assert.Zero(t, s.Diagnostics.Len())
	assert.Equal(t, "doc", s.Top)
	assert.Equal(t, "doc", s.Nodes[0].Name)
	assert.Equal(t, "hard_break", s.Nodes[len(s.Nodes)-1].Name)

	tests := []struct {
		name    string
		content string
	}{
		{"doc", "block_topic"},
		{"block_topic", "block_title block_shortdesc? block_prolog? block_body?"},
		{"block_title", "(text|hard_break|data|ph|image)*"},
		{"block_shortdesc", "(text|hard_break|data|fn|xref|ph|image)*"},
		{"block_prolog", "block_data*"},
		{"block_body", "(block_p|block_ul|block_ol|block_dl|block_pre|block_note|block_fig|" +
			"block_simpletable|block_video|block_audio)* block_section* block_fn*"},
		{"block_ul", "block_li+"},
		{"block_dlentry", "block_dt block_dd"},
		{"block_fig", "block_title? block_desc? (block_p|block_ul|block_ol|block_dl|block_pre|" +
			"block_simpletable|block_image|block_video|block_audio|block_xref)*"},
		{"block_video", "block_desc? block_video_poster? block_media_controls? block_media_autoplay? " +
			"block_media_loop? block_media_muted? block_fallback? block_media_source* block_media_track*"},
		{"block_fallback", "(block_p|block_image)*"},
		{"image", "block_alt?"},
		{"block_alt", "(text|hard_break|ph)*"},
		{"fn", "(block_p|block_ul|block_ol|block_dl)*"},
		{"data", "(text|hard_break|data)*"},
		{"block_media_source", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.content, node(t, s, tt.name).Content)
		})
	}
}

func TestCompileLwDITAInline(t *testing.T) {
	s := compileLwDITA(t)

	inline := []string{"text", "hard_break", "image", "ph", "xref", "data"}
	for _, name := range inline {
		assert.True(t, node(t, s, name).Inline, name)
	}

	block := []string{"doc", "block_topic", "block_p", "block_image", "block_media_source", "fn"}
	for _, name := range block {
		assert.False(t, node(t, s, name).Inline, name)
	}

	fn := node(t, s, "fn")
	assert.True(t, fn.InMixed)
	assert.Equal(t, VariantPlain, fn.Variant)

	// p is only ever placed in element-only content.
	_, ok := s.Node("p")
	assert.False(t, ok)

	variants := s.Variants("image")
	require.Len(t, variants, 2)
	assert.Equal(t, "image", variants[0].Name)
	assert.Equal(t, "block_image", variants[1].Name)
}

func TestCompileLwDITAAttrs(t *testing.T) {
	s := compileLwDITA(t)

	video := node(t, s, "block_video")
	for _, a := range []string{"parent", "width", "dir", "title", "poster", "controls", "autoplay", "loop", "muted"} {
		v, ok := video.Attrs[a]
		assert.True(t, ok, a)
		assert.Empty(t, v)
	}

	audio := node(t, s, "block_audio")
	assert.Contains(t, audio.Attrs, "muted")
	assert.NotContains(t, audio.Attrs, "poster")

	source := node(t, s, "block_media_source")
	assert.Equal(t, map[string]string{"href": "", "type": "", "parent": ""}, source.Attrs)
	assert.Equal(t, "src", source.DOM["href"])

	img := node(t, s, "image")
	assert.Contains(t, img.Attrs, "alt")
	assert.Equal(t, "src", img.DOM["href"])
	assert.Equal(t, "data-j-scope", img.DOM["scope"])

	assert.Equal(t, map[string]string{"parent": ""}, node(t, s, "text").Attrs)

	// Variants do not share attribute maps.
	img.Attrs["alt"] = "x"
	assert.Empty(t, node(t, s, "block_image").Attrs["alt"])
}

func TestCompileLwDITAMarks(t *testing.T) {
	s := compileLwDITA(t)

	var names []string
	for _, m := range s.Marks {
		names = append(names, m.Name)
	}

	assert.Equal(t, []string{"b", "i", "u", "sub", "sup"}, names)

	b, ok := s.Mark("b")
	require.True(t, ok)
	assert.Contains(t, b.Attrs, "dir")
	assert.NotContains(t, b.Attrs, "parent")

	_, ok = s.Node("b")
	assert.False(t, ok)
	assert.Contains(t, s.Kinds(), "b")
}

func TestCompileUnknownNodes(t *testing.T) {
	reg, err := grammar.New([]grammar.Entry{
		{Kind: "root", Content: "title? titles* body"},
		{Kind: "title", Content: "(text|b)*"},
		{Kind: "body", Content: "(p|note)*"},
		{Kind: "p", Content: "(text|b)*"},
		{Kind: "b", Content: "(text)*", Mark: true},
		{Kind: "text"},
	}, nil)
	require.NoError(t, err)

	var buf bytes.Buffer

	s, err := Compile(reg, "root", Config{Logger: slog.New(slog.NewTextHandler(&buf, nil))})
	require.NoError(t, err)

	unknown := s.Diagnostics.ByCode(diagnostic.CodeUnknownNode)
	require.Len(t, unknown, 2)
	assert.Equal(t, "root", unknown[0].Kind)
	assert.Equal(t, "titles", unknown[0].Ref)
	assert.Equal(t, []string{"title"}, unknown[0].Suggestions)
	assert.Equal(t, "body", unknown[1].Kind)
	assert.Equal(t, "note", unknown[1].Ref)
	assert.Empty(t, unknown[1].Suggestions)
	assert.False(t, s.Diagnostics.HasErrors())

	assert.Equal(t, "block_title? block_body", node(t, s, "root").Content)
	assert.Equal(t, "(block_p)*", node(t, s, "block_body").Content)
	assert.Equal(t, "(text|hard_break)*", node(t, s, "block_title").Content)

	assert.Contains(t, buf.String(), "unknown node")
	assert.Contains(t, buf.String(), "ref=titles")
}

func TestCompileCycle(t *testing.T) {
	reg, err := grammar.New([]grammar.Entry{
		{Kind: "a", Content: "b*"},
		{Kind: "b", Content: "a?"},
	}, nil)
	require.NoError(t, err)

	s, err := Compile(reg, "a", Config{})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "block_b", "block_a"}, s.Names())
	assert.Equal(t, "block_b*", node(t, s, "block_a").Content)
	assert.Equal(t, "block_a?", node(t, s, "block_b").Content)
}

func TestCompileErrors(t *testing.T) {
	_, err := Compile(nil, "document", DefaultConfig())
	require.ErrorIs(t, err, ErrNilRegistry)

	_, err = Compile(grammar.LwDITA(), "nope", DefaultConfig())
	require.ErrorIs(t, err, ErrUnknownRoot)
}

func TestCompileOverrideAndCollision(t *testing.T) {
	reg, err := grammar.New([]grammar.Entry{
		{Kind: "root", Content: "video*"},
		{Kind: "video", Fields: []string{"title", "parent", "width"}},
	}, nil)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.ContentOverrides = map[string]string{"ghost": "root"}

	s, err := Compile(reg, "root", cfg)
	require.NoError(t, err)

	overrides := s.Diagnostics.ByCode(diagnostic.CodeUnknownOverride)
	require.Len(t, overrides, 1)
	assert.Equal(t, "ghost", overrides[0].Ref)

	collisions := s.Diagnostics.ByCode(diagnostic.CodeAttrCollision)
	require.Len(t, collisions, 2)
	assert.Equal(t, "parent", collisions[0].Ref)
	assert.Equal(t, "title", collisions[1].Ref)

	video := node(t, s, "block_video")
	assert.Contains(t, video.Attrs, "controls")
	assert.Contains(t, video.Attrs, "width")

	// No mixed kind, no hard_break.
	_, ok := s.Node("hard_break")
	assert.False(t, ok)
}

func TestCompileDOMCollision(t *testing.T) {
	reg, err := grammar.New([]grammar.Entry{
		{Kind: "root", Content: "note*"},
		{Kind: "note", Fields: []string{"id", "type", "kind"}},
	}, nil)
	require.NoError(t, err)

	tables, err := policy.Parse([]byte(`
dom:
  note:
    type: data-kind
    kind: data-kind
`))
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Tables = tables

	s, err := Compile(reg, "root", cfg)
	require.NoError(t, err)

	collisions := s.Diagnostics.ByCode(diagnostic.CodeAttrCollision)
	require.Len(t, collisions, 1)
	assert.Equal(t, "kind", collisions[0].Ref)
	assert.Equal(t, "note", collisions[0].Kind)

	note := node(t, s, "block_note")
	assert.Equal(t, "data-kind", note.DOM["type"])
	assert.Equal(t, "data-kind", note.DOM["kind"])
}

func TestCompileIdempotent(t *testing.T) {
	first := compileLwDITA(t)
	second := compileLwDITA(t)

	if diff := cmp.Diff(first, second, cmpopts.IgnoreUnexported(Schema{})); diff != "" {
		t.Errorf("recompilation differs (-first +second):\n%s", diff)
	}
}

func TestCompileConcurrent(t *testing.T) {
	want := compileLwDITA(t)

	results := make([]*Schema, 8)

	var g errgroup.Group

	for i := range results {
		g.Go(func() error {
			s, err := Compile(grammar.LwDITA(), grammar.DocumentKind, DefaultConfig())
			results[i] = s

			return err
		})
	}

	require.NoError(t, g.Wait())

	for _, got := range results {
		assert.Empty(t, cmp.Diff(want, got, cmpopts.IgnoreUnexported(Schema{})))
	}
}

func TestVariant(t *testing.T) {
	assert.Equal(t, "Block", VariantBlock.String())
	assert.Equal(t, "Variant(7)", Variant(7).String())
	assert.Equal(t, VariantPlain, VariantFor(true))
	assert.True(t, VariantFor(false).IsBlock())

	text, err := VariantPlain.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "plain", string(text))

	var v Variant
	require.NoError(t, v.UnmarshalText([]byte("block")))
	assert.Equal(t, VariantBlock, v)
	assert.Error(t, v.UnmarshalText([]byte("inline")))
}
