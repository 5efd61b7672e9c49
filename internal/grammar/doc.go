// Package grammar holds the static catalog of LwDITA node kinds that the
// schema compiler and the transducers read.
//
// Each Entry names a kind, its content model, the groups it belongs to, its
// attribute fields and whether it is an inline mark. A content model is a
// small regular expression over kind and group names:
//
//	title shortdesc? prolog? body?
//	(text|all-inline)*
//	desc? video-poster? media-controls? fallback? media-source* media-track*
//
// Names resolve to kinds first and to groups second. Groups are built from
// the entries' memberships plus optional aliases; aliases may name other
// groups, and the alias graph may be cyclic.
//
// A Registry is immutable once built and safe for concurrent use.
package grammar
