package state

import "slices"

// The helpers below never write into the backing array of their input, so a
// previous AppState that shares a collection keeps seeing its old contents.

func indexWhere[T any](list []T, match func(T) bool) int {
	for i, v := range list {
		if match(v) {
			return i
		}
	}
	return -1
}

func appendItem[T any](list []T, v T) []T {
	out := make([]T, len(list), len(list)+1)
	copy(out, list)
	return append(out, v)
}

func replaceAt[T any](list []T, i int, v T) []T {
	out := slices.Clone(list)
	out[i] = v
	return out
}

func removeWhere[T any](list []T, drop func(T) bool) []T {
	out := make([]T, 0, len(list))
	for _, v := range list {
		if !drop(v) {
			out = append(out, v)
		}
	}
	return out
}

// byID builds a matcher over an entity id accessor.
func byID[T any](id string, key func(T) string) func(T) bool {
	return func(v T) bool { return key(v) == id }
}
