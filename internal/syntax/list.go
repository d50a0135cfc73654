package syntax

import "github.com/specialistvlad/codeshape/internal/errs"

// Append adds item at the end of list.
func Append[T any](list []T, item T) []T {
	return append(list, item)
}

// InsertAt inserts item before position i. i may equal len(list).
func InsertAt[T any](list []T, i int, item T) ([]T, error) {
	if i < 0 || i > len(list) {
		return list, errs.NewIndexError("INSERT", len(list), i)
	}
	list = append(list, item)
	copy(list[i+1:], list[i:])
	list[i] = item
	return list, nil
}

// ReplaceAt replaces the item at position i.
func ReplaceAt[T any](list []T, i int, item T) ([]T, error) {
	if i < 0 || i >= len(list) {
		return list, errs.NewIndexError("REPLACE", len(list)-1, i)
	}
	list[i] = item
	return list, nil
}

// RemoveAt removes the item at position i.
func RemoveAt[T any](list []T, i int) ([]T, error) {
	if i < 0 || i >= len(list) {
		return list, errs.NewIndexError("REMOVE", len(list)-1, i)
	}
	return append(list[:i], list[i+1:]...), nil
}
