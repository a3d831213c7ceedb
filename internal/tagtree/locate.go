package tagtree

import "errors"

// ErrPayloadNotFound reports that no node containing the payload key was
// found within the search depth.
var ErrPayloadNotFound = errors.New("tagtree: payload not found")

const (
	payloadKey = "backpackContents"
	wrapperKey = "data"

	// maxDepth bounds the breadth-first layers searched from the root.
	maxDepth = 3
)

type candidate struct {
	node Node
	path string
}

// Locate finds the compound holding the backpack contents list. Save files
// wrap the payload in a varying number of generic levels (often a "data"
// compound), so the search walks breadth-first up to three layers, preferring
// the wrapper key at each node. The first match wins.
func Locate(doc Node) (Node, string, error) {
	queue := []candidate{{node: doc, path: "root"}}

	for depth := 0; depth < maxDepth; depth++ {
		var next []candidate
		for _, c := range queue {
			if !c.node.IsMap() {
				continue
			}
			if c.node.Has(payloadKey) {
				return c.node, c.path, nil
			}
			if c.node.Has(wrapperKey) {
				d := c.node.Get(wrapperKey)
				if d.IsMap() && d.Has(payloadKey) {
					return d, c.path + "." + wrapperKey, nil
				}
				next = append(next, candidate{node: d, path: c.path + "." + wrapperKey})
			}
			for _, k := range c.node.Keys() {
				if k == wrapperKey {
					continue
				}
				next = append(next, candidate{node: c.node.Get(k), path: c.path + "." + k})
			}
		}
		queue = next
	}

	return Node{}, "", ErrPayloadNotFound
}
