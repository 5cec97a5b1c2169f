// Package maputil layers and deep-copies the loosely typed settings maps read
// from manifests, so that configurations never share nested values.
package maputil

// Merge returns a new map holding every key of every layer. Later layers win.
// Values are deep-copied; nil layers are skipped.
func Merge(layers ...map[string]any) map[string]any {
	size := 0
	for _, l := range layers {
		size += len(l)
	}

	dst := make(map[string]any, size)

	for _, l := range layers {
		for k, v := range l {
			dst[k] = copyValue(v)
		}
	}

	return dst
}

// DeepCopyMap performs a deep copy of src. A nil map stays nil.
func DeepCopyMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}

	return Merge(src)
}

// DeepCopySlice performs a deep copy of src. A nil slice stays nil.
func DeepCopySlice(src []any) []any {
	if src == nil {
		return nil
	}

	dst := make([]any, len(src))
	for i, v := range src {
		dst[i] = copyValue(v)
	}

	return dst
}

func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return DeepCopyMap(val)
	case []any:
		return DeepCopySlice(val)
	case []string:
		return append([]string(nil), val...)
	default:
		return v
	}
}
