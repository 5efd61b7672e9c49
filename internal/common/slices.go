package common

// UnknownStr is the String() value of enum members outside their range.
const UnknownStr = "unknown"

// IsEmpty returns true if the slice is empty.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// IsSingle returns true if the slice has exactly one element.
func IsSingle[S ~[]E, E any](s S) bool {
	return len(s) == 1
}

// First returns the first element of the slice and true, or the zero value and false if empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[0], true
}

// AppendUnique appends the values of add that are not already present in dst,
// keeping first-seen order. seen tracks membership and is updated in place.
func AppendUnique[E comparable](dst []E, seen map[E]struct{}, add ...E) []E {
	for _, v := range add {
		if _, ok := seen[v]; ok {
			continue
		}

		seen[v] = struct{}{}
		dst = append(dst, v)
	}

	return dst
}
