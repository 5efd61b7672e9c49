// Package match ranks grammar names by similarity so that diagnostics about
// unknown node kinds can suggest what was probably meant.
//
// Key functions:
//   - NormalizeName: folds case and separators ("Media_Source" -> "mediasource")
//   - Levenshtein: computes edit distance between strings
//   - Suggest: returns the closest known names above a score threshold
package match
