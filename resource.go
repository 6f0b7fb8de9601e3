package cosmo

import "strings"

// NodeKind discriminates resource nodes.
type NodeKind uint8

const (
	KindString NodeKind = iota + 1
	KindList
	KindTable
)

func (k NodeKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindTable:
		return "table"
	default:
		return "invalid"
	}
}

// Node is a read-only resource value: a string leaf, a list leaf or a table
// with ordered keys.
type Node struct {
	kind     NodeKind
	str      string
	list     []string
	keys     []string
	children map[string]*Node
}

// StringNode returns a string leaf.
func StringNode(value string) *Node {
	return &Node{kind: KindString, str: value}
}

// ListNode returns a list leaf.
func ListNode(values ...string) *Node {
	return &Node{kind: KindList, list: append([]string(nil), values...)}
}

// TableEntry is a key/value pair used to build tables in order.
type TableEntry struct {
	Key   string
	Value *Node
}

// TableNode returns an interior node. Later duplicates replace earlier values
// but keep the original position.
func TableNode(entries ...TableEntry) *Node {
	n := &Node{kind: KindTable, children: make(map[string]*Node, len(entries))}
	for _, entry := range entries {
		n.set(entry.Key, entry.Value)
	}
	return n
}

func (n *Node) set(key string, value *Node) {
	if value == nil {
		return
	}
	if _, exists := n.children[key]; !exists {
		n.keys = append(n.keys, key)
	}
	n.children[key] = value
}

func (n *Node) Kind() NodeKind {
	if n == nil {
		return 0
	}
	return n.kind
}

func (n *Node) IsLeaf() bool {
	return n != nil && (n.kind == KindString || n.kind == KindList)
}

func (n *Node) IsTable() bool {
	return n != nil && n.kind == KindTable
}

// String returns the leaf value. Lists render their first item.
func (n *Node) String() string {
	if n == nil {
		return ""
	}
	switch n.kind {
	case KindString:
		return n.str
	case KindList:
		if len(n.list) > 0 {
			return n.list[0]
		}
	}
	return ""
}

// Index returns item i of a list leaf.
func (n *Node) Index(i int) (string, bool) {
	if n == nil || n.kind != KindList || i < 0 || i >= len(n.list) {
		return "", false
	}
	return n.list[i], true
}

// Strings returns a copy of a list leaf, or a one item slice for strings.
func (n *Node) Strings() []string {
	if n == nil {
		return nil
	}
	switch n.kind {
	case KindList:
		return append([]string(nil), n.list...)
	case KindString:
		return []string{n.str}
	}
	return nil
}

// Keys returns table keys in their natural order.
func (n *Node) Keys() []string {
	if !n.IsTable() {
		return nil
	}
	return append([]string(nil), n.keys...)
}

// Child returns the direct child stored under key.
func (n *Node) Child(key string) (*Node, bool) {
	if !n.IsTable() {
		return nil, false
	}
	child, ok := n.children[key]
	return child, ok
}

// Len reports the number of children, list items or string bytes.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	switch n.kind {
	case KindString:
		return len(n.str)
	case KindList:
		return len(n.list)
	case KindTable:
		return len(n.keys)
	}
	return 0
}

// Empty reports whether the node holds no usable value.
func (n *Node) Empty() bool {
	if n == nil {
		return true
	}
	if n.kind == KindString {
		return strings.TrimSpace(n.str) == ""
	}
	return n.Len() == 0
}

// Walk follows path from n. A leaf met before the end of path stops the walk.
func (n *Node) Walk(path ...string) (*Node, bool) {
	current := n
	for _, key := range path {
		child, ok := current.Child(key)
		if !ok {
			return nil, false
		}
		current = child
	}
	if current == nil {
		return nil, false
	}
	return current, true
}

// merge overlays other on top of n, recursing into tables present in both.
func (n *Node) merge(other *Node) *Node {
	if n == nil {
		return other
	}
	if other == nil {
		return n
	}
	if !n.IsTable() || !other.IsTable() {
		return other
	}

	merged := &Node{kind: KindTable, children: make(map[string]*Node, len(n.keys)+len(other.keys))}
	for _, key := range n.keys {
		merged.set(key, n.children[key])
	}
	for _, key := range other.keys {
		merged.set(key, merged.children[key].merge(other.children[key]))
	}
	return merged
}
