// Package diagnostic collects recoverable problems found while compiling a
// grammar into an editor schema.
//
// Diagnostics never abort a compilation: an unknown kind referenced from a
// content model is reported here and the branch is skipped, so the rest of
// the schema still compiles.
package diagnostic
