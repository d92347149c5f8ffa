package svgtree

// Node is an element of the render tree,
// either a *Group or a *Shape.
type Node interface {
	// NodeID returns the value of the id attribute
	// of the source element, or the empty string.
	NodeID() string
}

// Group gathers child nodes parsed from a g (or the top level svg)
// element. It carries no style on its own: inherited styles and
// transforms are folded into the shapes at parse time, so that any
// node may be painted standalone.
type Group struct {
	ID       string
	Children []Node
}

func (g *Group) NodeID() string { return g.ID }

// Shape binds a style to a path. The style holds the absolute
// transform and the effective (ancestor multiplied) opacities
// of the node.
type Shape struct {
	ID    string
	Path  Path
	Style PathStyle
}

func (s *Shape) NodeID() string { return s.ID }

// NodeByID looks up a node by its id attribute, walking the
// tree depth first in document order. It returns nil when no
// node matches. Ids are not required to be unique: the first
// match wins.
func (t *Tree) NodeByID(id string) Node {
	if id == "" || t.Root == nil {
		return nil
	}
	return findNode(t.Root, id)
}

func findNode(n Node, id string) Node {
	if n.NodeID() == id {
		return n
	}
	if g, ok := n.(*Group); ok {
		for _, child := range g.Children {
			if found := findNode(child, id); found != nil {
				return found
			}
		}
	}
	return nil
}
