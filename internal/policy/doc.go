// Package policy holds the attribute tables shared by the schema compiler,
// both transducer directions and DOM rendering.
//
// DOM tables rename grammar fields to DOM attributes. Media tables describe
// which grammar children of video, audio and image are folded into editor
// attributes and the canonical order they are rebuilt in.
package policy
