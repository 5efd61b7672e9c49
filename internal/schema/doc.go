// Package schema compiles a grammar registry into the structural schema the
// editor enforces.
//
// Compilation walks the registry from a root kind. Each kind is emitted in at
// most two variants: the plain variant, placed inside mixed content, and the
// block variant, placed inside element-only content and named with the
// "block_" prefix. Mixed kinds accept text, hard breaks and every inline kind
// reachable from them; element-only kinds get their content model rewritten
// over block variant names.
//
// Unknown references never stop compilation. They are recorded as
// diagnostics, logged, and the branch is skipped.
//
// The compiled schema can be exported as a ProseMirror schema spec:
//
//	s, err := schema.Compile(grammar.LwDITA(), grammar.DocumentKind, schema.DefaultConfig())
//	pm, err := s.Build()
package schema
