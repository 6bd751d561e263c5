package ast

import "strings"

// Tree is an arena of nodes rooted at a Document node.
type Tree struct {
	nodes    []Node
	children [][]NodeID
	parent   []NodeID
	root     NodeID
}

// NewTree returns a tree containing an empty Document root.
func NewTree() *Tree {
	t := &Tree{}
	t.root = t.New(Node{Kind: KindDocument})
	return t
}

// Root returns the Document node.
func (t *Tree) Root() NodeID {
	return t.root
}

// Len returns the number of nodes allocated in the arena, attached or not.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// New allocates a detached node and returns its id.
func (t *Tree) New(n Node) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, n)
	t.children = append(t.children, nil)
	t.parent = append(t.parent, NoNode)
	return id
}

// Valid reports whether id refers to a node of this tree.
func (t *Tree) Valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Node returns a copy of the node's scalar data.
func (t *Tree) Node(id NodeID) Node {
	return t.nodes[id]
}

// Kind returns the kind of a node.
func (t *Tree) Kind(id NodeID) Kind {
	return t.nodes[id].Kind
}

// Parent returns the parent of id, or NoNode for the root and detached nodes.
func (t *Tree) Parent(id NodeID) NodeID {
	return t.parent[id]
}

// Attached reports whether id is reachable from the root.
func (t *Tree) Attached(id NodeID) bool {
	if !t.Valid(id) {
		return false
	}
	for id != t.root {
		id = t.parent[id]
		if id == NoNode {
			return false
		}
	}
	return true
}

// Children returns a copy of the child list of id.
func (t *Tree) Children(id NodeID) []NodeID {
	return append([]NodeID(nil), t.children[id]...)
}

// NumChildren returns the number of children of id.
func (t *Tree) NumChildren(id NodeID) int {
	return len(t.children[id])
}

// Child returns the i-th child of id.
func (t *Tree) Child(id NodeID, i int) NodeID {
	return t.children[id][i]
}

// Append adds child as the last child of parent, detaching it first.
func (t *Tree) Append(parent, child NodeID) {
	t.detach(child)
	t.children[parent] = append(t.children[parent], child)
	t.parent[child] = parent
}

// Insert places child at index i of parent's children, detaching it first.
func (t *Tree) Insert(parent NodeID, i int, child NodeID) {
	t.detach(child)
	list := t.children[parent]
	if i < 0 || i > len(list) {
		i = len(list)
	}
	list = append(list, NoNode)
	copy(list[i+1:], list[i:])
	list[i] = child
	t.children[parent] = list
	t.parent[child] = parent
}

// Remove detaches id from its parent. It reports false when id had no parent.
func (t *Tree) Remove(id NodeID) bool {
	if t.parent[id] == NoNode {
		return false
	}
	t.detach(id)
	return true
}

// Replace puts replacement in the child slot held by old. The old node is
// left detached. It reports false when old had no parent.
func (t *Tree) Replace(old, replacement NodeID) bool {
	p := t.parent[old]
	if p == NoNode || old == replacement {
		return false
	}
	t.detach(replacement)
	for i, c := range t.children[p] {
		if c == old {
			t.children[p][i] = replacement
			break
		}
	}
	t.parent[replacement] = p
	t.parent[old] = NoNode
	return true
}

// SetChildren replaces the whole child list of parent.
func (t *Tree) SetChildren(parent NodeID, children []NodeID) {
	for _, c := range t.children[parent] {
		t.parent[c] = NoNode
	}
	t.children[parent] = nil
	for _, c := range children {
		t.Append(parent, c)
	}
}

// Rebuild creates a copy of id's scalar data, lets edit modify it, moves
// id's children to the copy and swaps the copy into id's slot. The returned
// node replaces id in the tree; id itself is left detached and childless.
func (t *Tree) Rebuild(id NodeID, edit func(n *Node)) NodeID {
	n := t.nodes[id]
	edit(&n)
	fresh := t.New(n)
	kids := t.children[id]
	t.children[id] = nil
	for _, c := range kids {
		t.parent[c] = fresh
	}
	t.children[fresh] = kids
	if id == t.root {
		t.root = fresh
	} else {
		t.Replace(id, fresh)
	}
	return fresh
}

func (t *Tree) detach(id NodeID) {
	p := t.parent[id]
	if p == NoNode {
		return
	}
	list := t.children[p]
	for i, c := range list {
		if c == id {
			t.children[p] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	t.parent[id] = NoNode
}

// =============================================================================
// Element helpers
// =============================================================================

// OpenTag returns the OpenTag child of an Element.
func (t *Tree) OpenTag(element NodeID) NodeID {
	for _, c := range t.children[element] {
		if t.nodes[c].Kind == KindOpenTag {
			return c
		}
	}
	return NoNode
}

// Attributes returns the Attribute nodes of an Element or OpenTag, in source order.
func (t *Tree) Attributes(id NodeID) []NodeID {
	if t.nodes[id].Kind == KindElement {
		id = t.OpenTag(id)
		if id == NoNode {
			return nil
		}
	}
	var attrs []NodeID
	for _, c := range t.children[id] {
		if t.nodes[c].Kind == KindAttribute {
			attrs = append(attrs, c)
		}
	}
	return attrs
}

// Attribute finds an attribute by case-insensitive name on an Element or OpenTag.
func (t *Tree) Attribute(id NodeID, name string) (NodeID, bool) {
	for _, a := range t.Attributes(id) {
		if strings.EqualFold(t.nodes[a].Name, name) {
			return a, true
		}
	}
	return NoNode, false
}

// AttributeValue returns the source text of an attribute's value parts,
// without quotes.
func (t *Tree) AttributeValue(attr NodeID) string {
	var b strings.Builder
	for _, c := range t.children[attr] {
		n := t.nodes[c]
		if n.Kind == KindERB {
			b.WriteString(n.Open)
			b.WriteString(n.Content)
			b.WriteString(n.Close)
			continue
		}
		b.WriteString(n.Raw)
	}
	return b.String()
}

// Body returns the children of an Element after its OpenTag.
func (t *Tree) Body(element NodeID) []NodeID {
	var body []NodeID
	for _, c := range t.children[element] {
		if t.nodes[c].Kind != KindOpenTag {
			body = append(body, c)
		}
	}
	return body
}
