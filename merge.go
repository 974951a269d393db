// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaedit

package schemaedit

// MergeOptions controls one merge call.
type MergeOptions struct {
	// ResetBase treats the existing document as an empty object. Hosts set it
	// when the user edited the whole document by hand since the last merge.
	ResetBase bool
}

// Merge places skeleton at path inside existing and returns the next document.
// Existing is never modified.
//
// Steps along path are created when missing. At the insertion point the
// skeleton is merged with MergeValues as a top-level merge: new keys of the
// skeleton itself are added, while keys missing from deeper existing objects
// are treated as deleted by the user and stay absent.
func Merge(existing any, path DocumentPath, skeleton any, opt MergeOptions) any {
	if opt.ResetBase {
		existing = map[string]any{}
	}

	return mergeAtPath(existing, path, skeleton)
}

// mergeAtPath descends path, copying every container it touches.
func mergeAtPath(existing any, path DocumentPath, skeleton any) any {
	if len(path) == 0 {
		return MergeValues(existing, skeleton, true)
	}

	step := path[0]
	if step.ArrayWrap {
		return mergeAtIndex(existing, max(step.Index, 0), path[1:], skeleton)
	}

	object, ok := existing.(map[string]any)
	if !ok {
		return map[string]any{step.Property: mergeAtPath(nil, path[1:], skeleton)}
	}

	out := cloneJSONValue(object).(map[string]any)
	out[step.Property] = mergeAtPath(object[step.Property], path[1:], skeleton)
	return out
}

// mergeAtIndex merges into one array element. Items steps target element 0,
// tuple steps their own position; missing positions before it are padded
// with null.
func mergeAtIndex(existing any, index int, rest DocumentPath, skeleton any) []any {
	items, _ := existing.([]any)
	out := make([]any, max(len(items), index+1))
	for position, item := range items {
		out[position] = cloneJSONValue(item)
	}

	var current any
	if index < len(items) {
		current = items[index]
	}

	out[index] = mergeAtPath(current, rest, skeleton)
	return out
}

// MergeValues combines oldValue with newValue and returns a new value.
//
//   - oldValue that is not an object or array (including nil) loses to newValue.
//   - Objects: keys present in both are merged recursively; keys only in
//     newValue are added only when isTopLevel is true.
//   - Arrays: elements are merged index by index; extra trailing elements of
//     newValue are appended.
//   - Any other combination, such as object against array, takes newValue.
func MergeValues(oldValue, newValue any, isTopLevel bool) any {
	switch oldTyped := oldValue.(type) {
	case map[string]any:
		newTyped, ok := newValue.(map[string]any)
		if !ok {
			return cloneJSONValue(newValue)
		}

		return mergeObjects(oldTyped, newTyped, isTopLevel)
	case []any:
		newTyped, ok := newValue.([]any)
		if !ok {
			return cloneJSONValue(newValue)
		}

		return mergeArrays(oldTyped, newTyped)
	default:
		return cloneJSONValue(newValue)
	}
}

// mergeObjects merges object keys under the top-level/nested policy.
func mergeObjects(oldValue, newValue map[string]any, isTopLevel bool) map[string]any {
	out := cloneJSONValue(oldValue).(map[string]any)
	for key, value := range newValue {
		current, exists := oldValue[key]
		if exists {
			out[key] = MergeValues(current, value, false)
			continue
		}

		if isTopLevel {
			out[key] = cloneJSONValue(value)
		}
	}

	return out
}

// mergeArrays merges paired indexes and appends trailing new elements.
func mergeArrays(oldValue, newValue []any) []any {
	out := make([]any, 0, max(len(oldValue), len(newValue)))
	for index, current := range oldValue {
		if index < len(newValue) {
			out = append(out, MergeValues(current, newValue[index], false))
			continue
		}

		out = append(out, cloneJSONValue(current))
	}

	for index := len(oldValue); index < len(newValue); index++ {
		out = append(out, cloneJSONValue(newValue[index]))
	}

	return out
}
