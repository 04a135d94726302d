package charfile

import "github.com/nullsector/assetkit/internal/binreader"

const maxItemPortChildren = 1000

// ItemPort is a node in the recursive attachment tree: a named slot
// that may hold an attached item (identified by GUID) and that owns
// zero or more child slots. Grounded on svarog-chf's itemport.rs.
type ItemPort struct {
	NameHash NameHash
	ItemGUID *binreader.Identifier // nil when the slot holds nothing
	Children []*ItemPort
}

// Parse reads a single item-port node and its full subtree with no
// bound on child count — this is the standalone entry point
// (itemport.rs's ItemPort::parse), distinct from the guarded recursive
// helper used while parsing a whole character file payload.
func Parse(c *binreader.Cursor) (*ItemPort, error) {
	return parseItemPort(c, false)
}

// parseItemPortGuarded is the internal recursive helper used by
// ParseData: it refuses more than maxItemPortChildren children at
// any single node, matching data.rs's read_item_port (the guard belongs
// to the "parse a whole character file" entry point, not to ItemPort as
// a reusable type).
func parseItemPortGuarded(c *binreader.Cursor) (*ItemPort, error) {
	return parseItemPort(c, true)
}

func parseItemPort(c *binreader.Cursor, guarded bool) (*ItemPort, error) {
	hash, err := c.ReadU32()
	if err != nil {
		return nil, err
	}

	guidBytes, err := c.ReadBytes(16)
	if err != nil {
		return nil, err
	}
	var guid binreader.Identifier
	copy(guid[:], guidBytes)

	childCount, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	if guarded && childCount > maxItemPortChildren {
		return nil, &ChildCountExceededError{Count: childCount}
	}

	port := &ItemPort{NameHash: NameHash(hash)}
	if !guid.IsEmpty() {
		g := guid
		port.ItemGUID = &g
	}

	port.Children = make([]*ItemPort, 0, childCount)
	for i := uint32(0); i < childCount; i++ {
		child, err := parseItemPort(c, guarded)
		if err != nil {
			return nil, err
		}
		port.Children = append(port.Children, child)
	}
	return port, nil
}

func (p *ItemPort) appendTo(out []byte) []byte {
	var head [20]byte
	head[0] = byte(p.NameHash)
	head[1] = byte(p.NameHash >> 8)
	head[2] = byte(p.NameHash >> 16)
	head[3] = byte(p.NameHash >> 24)
	if p.ItemGUID != nil {
		copy(head[4:20], p.ItemGUID[:])
	}
	out = append(out, head[:]...)
	var countBuf [4]byte
	putU32(countBuf[:], uint32(len(p.Children)))
	out = append(out, countBuf[:]...)
	for _, child := range p.Children {
		out = child.appendTo(out)
	}
	return out
}

// Count returns 1 plus the count of every descendant.
func (p *ItemPort) Count() int {
	n := 1
	for _, child := range p.Children {
		n += child.Count()
	}
	return n
}

// Depth returns 1 for a leaf, or 1 plus the deepest child's depth.
func (p *ItemPort) Depth() int {
	max := 0
	for _, child := range p.Children {
		if d := child.Depth(); d > max {
			max = d
		}
	}
	return 1 + max
}

// FindChild returns the first direct child satisfying pred, or nil.
func (p *ItemPort) FindChild(pred func(*ItemPort) bool) *ItemPort {
	for _, child := range p.Children {
		if pred(child) {
			return child
		}
	}
	return nil
}

// FindRecursive searches the whole subtree (pre-order, p included) for
// the first node satisfying pred.
func (p *ItemPort) FindRecursive(pred func(*ItemPort) bool) *ItemPort {
	for _, node := range p.Iter() {
		if pred(node) {
			return node
		}
	}
	return nil
}

// Iter returns every node in the subtree in pre-order (p first), using
// an explicit stack rather than recursion so arbitrarily deep trees
// don't blow the Go stack.
func (p *ItemPort) Iter() []*ItemPort {
	var result []*ItemPort
	stack := []*ItemPort{p}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		result = append(result, n)
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return result
}
