package tagtree

import (
	"reflect"
	"strconv"
	"strings"
)

// Node is a uniform read-only view over a tree-shaped document. The same
// accessor set works for NBT-decoded trees (map[string]any with typed scalars
// and typed slices) and for parsed JSON (map[string]any with float64 scalars).
// The zero Node is an absent value.
type Node struct {
	v any
}

// Wrap creates a Node over an already-decoded document.
func Wrap(v any) Node {
	return Node{v: v}
}

// IsNil reports whether the node holds no value.
func (n Node) IsNil() bool {
	return n.v == nil
}

// IsMap reports whether the node is a key-value compound.
func (n Node) IsMap() bool {
	_, ok := n.asMap()
	return ok
}

func (n Node) asMap() (map[string]any, bool) {
	switch m := n.v.(type) {
	case map[string]any:
		return m, true
	case *map[string]any:
		if m != nil {
			return *m, true
		}
	}
	return nil, false
}

// Get returns the child node for key, or an absent Node.
func (n Node) Get(key string) Node {
	if m, ok := n.asMap(); ok {
		return Node{v: m[key]}
	}
	return Node{}
}

// Has reports whether key exists in a compound node.
func (n Node) Has(key string) bool {
	m, ok := n.asMap()
	if !ok {
		return false
	}
	_, ok = m[key]
	return ok
}

// Keys returns the keys of a compound node. Order follows Go map iteration
// and is not stable across runs.
func (n Node) Keys() []string {
	m, ok := n.asMap()
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// List returns the node's elements when it is any slice or array type.
// NBT lists decode to typed slices ([]map[string]any, []int64, ...), JSON
// lists to []any; reflection covers both without enumerating element types.
func (n Node) List() []Node {
	if n.v == nil {
		return nil
	}
	if s, ok := n.v.([]any); ok {
		out := make([]Node, len(s))
		for i, e := range s {
			out[i] = Node{v: e}
		}
		return out
	}
	rv := reflect.ValueOf(n.v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	out := make([]Node, rv.Len())
	for i := range out {
		out[i] = Node{v: rv.Index(i).Interface()}
	}
	return out
}

// Str returns the node's string value, or "" when it is not a string.
func (n Node) Str() string {
	s, _ := n.v.(string)
	return s
}

// Int coerces any integer or float scalar to int64.
func (n Node) Int() (int64, bool) {
	switch v := n.v.(type) {
	case int8:
		return int64(v), true
	case uint8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float32:
		return int64(v), true
	case float64:
		return int64(v), true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return i, err == nil
	}
	return 0, false
}

// IntOr returns the coerced integer value, or def when absent/unparseable.
func (n Node) IntOr(def int64) int64 {
	if i, ok := n.Int(); ok {
		return i
	}
	return def
}

// Bool returns the node's truth value. NBT booleans decode as bytes.
func (n Node) Bool() bool {
	switch v := n.v.(type) {
	case bool:
		return v
	default:
		i, _ := n.Int()
		return i != 0
	}
}

// Ints coerces an integer-array node (NBT [4]int32 / []int32, JSON []any of
// numbers) to an int64 slice. Returns nil when the node is not a sequence of
// integers.
func (n Node) Ints() []int64 {
	elems := n.List()
	if elems == nil {
		return nil
	}
	out := make([]int64, len(elems))
	for i, e := range elems {
		v, ok := e.Int()
		if !ok {
			return nil
		}
		out[i] = v
	}
	return out
}

// Raw exposes the underlying decoded value.
func (n Node) Raw() any {
	return n.v
}
