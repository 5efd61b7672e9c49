package grammar

import "sync"

// Attribute field sets shared by many kinds.
var (
	localization = []string{"dir", "xml:lang", "translate"}
	display      = []string{"class", "outputclass"}
	filters      = []string{"props"}
	reuse        = []string{"id", "conref"}
)

func fields(sets ...[]string) []string {
	var out []string
	for _, s := range sets {
		out = append(out, s...)
	}

	return out
}

// Group names of the built-in catalog.
const (
	GroupCommonInline   = "common-inline"
	GroupAllInline      = "all-inline"
	GroupSimpleBlocks   = "simple-blocks"
	GroupListBlocks     = "list-blocks"
	GroupFnBlocks       = "fn-blocks"
	GroupFigBlocks      = "fig-blocks"
	GroupFallbackBlocks = "fallback-blocks"
)

var (
	inlineGroups = []string{GroupCommonInline, GroupAllInline}
	blockGroups  = []string{GroupSimpleBlocks, GroupListBlocks, GroupFnBlocks, GroupFigBlocks}
)

func lwditaEntries() []Entry {
	mark := func(kind string) Entry {
		return Entry{
			Kind:    kind,
			Content: "(text|common-inline)*",
			Groups:  inlineGroups,
			Fields:  fields(localization, display, filters),
			Mark:    true,
		}
	}

	flag := func(kind string) Entry {
		return Entry{Kind: kind, Fields: []string{"value"}}
	}

	return []Entry{
		{Kind: DocumentKind, Content: "topic"},
		{
			Kind:    TopicKind,
			Content: "title shortdesc? prolog? body?",
			Fields: fields([]string{"id", "xmlns:ditaarch", "ditaarch:DITAArchVersion", "domains"},
				display, localization),
		},
		{Kind: "title", Content: "(text|common-inline)*", Fields: fields(localization, display)},
		{Kind: "shortdesc", Content: "(text|all-inline)*", Fields: fields(filters, localization, display)},
		{Kind: "prolog", Content: "data*", Fields: display},
		{
			Kind:    "data",
			Content: "(text|data)*",
			Groups:  inlineGroups,
			Fields:  fields([]string{"name", "value", "href"}, filters, localization, display),
		},
		{Kind: "body", Content: "(simple-blocks)* section* fn*", Fields: fields(localization, display)},
		{Kind: "section", Content: "title? (simple-blocks)*", Fields: fields([]string{"id"}, filters, localization, display)},
		{
			Kind:    "p",
			Content: "(text|all-inline)*",
			Groups:  append(append([]string(nil), blockGroups...), GroupFallbackBlocks),
			Fields:  fields(reuse, filters, localization, display),
		},
		{Kind: "ul", Content: "li+", Groups: blockGroups, Fields: fields(reuse, filters, localization, display)},
		{Kind: "ol", Content: "li+", Groups: blockGroups, Fields: fields(reuse, filters, localization, display)},
		{Kind: "li", Content: "(list-blocks)*", Fields: fields(reuse, filters, localization, display)},
		{Kind: "dl", Content: "dlentry+", Groups: blockGroups, Fields: fields(reuse, filters, localization, display)},
		{Kind: "dlentry", Content: "dt dd", Fields: fields(localization, filters, display)},
		{Kind: "dt", Content: "(text|all-inline)*", Fields: fields(localization, filters, display)},
		{Kind: "dd", Content: "(list-blocks)*", Fields: fields(localization, filters, display)},
		{
			Kind:    "pre",
			Content: "(text|common-inline)*",
			Groups:  []string{GroupSimpleBlocks, GroupListBlocks, GroupFigBlocks},
			Fields:  fields(reuse, filters, localization, []string{"xml:space"}, display),
		},
		{
			Kind:    "note",
			Content: "(simple-blocks)*",
			Groups:  []string{GroupSimpleBlocks},
			Fields:  fields([]string{"type"}, reuse, filters, localization, display),
		},
		{
			Kind:    "fig",
			Content: "title? desc? (fig-blocks|xref)*",
			Groups:  []string{GroupSimpleBlocks},
			Fields:  fields(reuse, filters, localization, display),
		},
		{Kind: "desc", Content: "(text|common-inline)*", Fields: fields(filters, localization, display)},
		{
			Kind:    "simpletable",
			Content: "title? sthead? strow+",
			Groups:  []string{GroupSimpleBlocks, GroupFigBlocks},
			Fields:  fields([]string{"relcolwidth"}, reuse, filters, localization, display),
		},
		{Kind: "sthead", Content: "stentry+", Fields: fields(filters, localization, display)},
		{Kind: "strow", Content: "stentry+", Fields: fields(filters, localization, display)},
		{Kind: "stentry", Content: "(simple-blocks)*", Fields: fields(filters, localization, display)},
		{
			Kind:    "fn",
			Content: "(fn-blocks)*",
			Groups:  []string{GroupAllInline},
			Fields:  fields([]string{"id", "callout"}, filters, localization, display),
		},
		{
			Kind:    "xref",
			Content: "(text|common-inline)*",
			Groups:  []string{GroupAllInline},
			Fields:  fields([]string{"href", "format", "scope", "keyref"}, filters, localization, display),
		},
		{
			Kind:    "ph",
			Content: "(text|common-inline)*",
			Groups:  inlineGroups,
			Fields:  fields(filters, localization, display),
		},
		mark("b"),
		mark("i"),
		mark("u"),
		mark("sub"),
		mark("sup"),
		{
			Kind:    "image",
			Content: "alt?",
			Groups:  []string{GroupCommonInline, GroupAllInline, GroupFigBlocks, GroupFallbackBlocks},
			Fields: fields([]string{"href", "height", "width", "keyref", "scope"},
				filters, localization, display),
		},
		{Kind: "alt", Content: "(text|ph)*", Fields: fields(localization, display)},
		{
			Kind: "video",
			Content: "desc? video-poster? media-controls? media-autoplay? media-loop? media-muted? " +
				"fallback? media-source* media-track*",
			Groups: []string{GroupSimpleBlocks, GroupListBlocks, GroupFigBlocks},
			Fields: fields([]string{"width", "height"}, filters, localization, display),
		},
		{
			Kind:    "audio",
			Content: "desc? media-controls? media-autoplay? media-loop? media-muted? fallback? media-source* media-track*",
			Groups:  []string{GroupSimpleBlocks, GroupListBlocks, GroupFigBlocks},
			Fields:  fields(filters, localization, display),
		},
		{Kind: "fallback", Content: "(fallback-blocks)*", Fields: display},
		flag("video-poster"),
		flag("media-controls"),
		flag("media-autoplay"),
		flag("media-loop"),
		flag("media-muted"),
		{Kind: "media-source", Fields: []string{"href", "type"}},
		{Kind: "media-track", Fields: []string{"href", "srclang", "kind"}},
		{Kind: TextKind},
	}
}

var (
	lwditaOnce sync.Once
	lwdita     *Registry
)

// LwDITA returns the built-in registry. It is built once and shared; the
// registry is immutable, so sharing is safe.
func LwDITA() *Registry {
	lwditaOnce.Do(func() {
		r, err := New(lwditaEntries(), nil)
		if err != nil {
			panic(err)
		}

		lwdita = r
	})

	return lwdita
}

// LwDITAEntries returns a fresh copy of the built-in catalog, for callers that
// want to extend it before building their own registry.
func LwDITAEntries() []Entry {
	return lwditaEntries()
}
