package contract

// Tree is a defensive view over the untyped document tree. Absence of
// a field is a normal query result, never a panic: every accessor
// reports whether the value was present with the requested kind.
type Tree struct {
	val any
	ok  bool
}

// NewTree wraps a decoded JSON value.
func NewTree(v any) Tree {
	return Tree{val: v, ok: true}
}

// Field descends into an object key. Missing key, non-object value or
// an already-absent tree all yield an absent result.
func (t Tree) Field(name string) Tree {
	if !t.ok {
		return Tree{}
	}
	m, isMap := t.val.(map[string]any)
	if !isMap {
		return Tree{}
	}
	v, found := m[name]
	if !found {
		return Tree{}
	}
	return Tree{val: v, ok: true}
}

// At descends into an array element.
func (t Tree) At(i int) Tree {
	if !t.ok {
		return Tree{}
	}
	s, isSlice := t.val.([]any)
	if !isSlice || i < 0 || i >= len(s) {
		return Tree{}
	}
	return Tree{val: s[i], ok: true}
}

// Present reports whether the value exists and is not JSON null.
func (t Tree) Present() bool { return t.ok && t.val != nil }

// Str returns the value as a string.
func (t Tree) Str() (string, bool) {
	if !t.ok {
		return "", false
	}
	s, isStr := t.val.(string)
	return s, isStr
}

// Map returns the value as an object.
func (t Tree) Map() (map[string]any, bool) {
	if !t.ok {
		return nil, false
	}
	m, isMap := t.val.(map[string]any)
	return m, isMap
}

// Slice returns the value as an array.
func (t Tree) Slice() ([]any, bool) {
	if !t.ok {
		return nil, false
	}
	s, isSlice := t.val.([]any)
	return s, isSlice
}

// Len returns the array length, or 0 when the value is not an array.
func (t Tree) Len() int {
	s, isSlice := t.Slice()
	if !isSlice {
		return 0
	}
	return len(s)
}
