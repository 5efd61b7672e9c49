// Package transduce converts between the JDITA AST and the editor tree.
//
// Forward transduction (ToEditor, Forward) copies attributes, names every
// node after its kind and placement, tags each non-root node with its
// structural parent, folds marks onto the nodes they wrap, and folds the
// representable grammar children of media nodes into attributes. Reverse
// transduction (ToAST) undoes each of these steps, so that
//
//	ToAST(ToEditor(a)) == a
//
// for every well-formed AST a. Empty attribute values count as absent.
//
// Failures carry the path of the failing node. By default the first failure
// aborts the call; with Config.CollectErrors the failing subtree is dropped,
// the rest is transduced, and every failure is returned joined.
package transduce
