package common

import "strconv"

// ChildPath extends a tree path with the i-th child named name:
// "document/topic[0]/title[0]".
func ChildPath(parent, name string, i int) string {
	if parent == "" {
		return name
	}

	return parent + "/" + name + "[" + strconv.Itoa(i) + "]"
}
