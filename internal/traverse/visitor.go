package traverse

// Visitor marks names reachable from the roots it is asked to visit. Marks
// accumulate across Visit calls, which is what lets a single Visitor answer
// "was this already covered by an earlier root of the batch?".
//
// A Visitor is not safe for concurrent use. Create one per batch.
type Visitor struct {
	adj Adjacency
	// marked maps a visited name to the root whose Visit call reached it first.
	marked map[string]string
}

// NewVisitor returns a Visitor walking adj.
func NewVisitor(adj Adjacency) *Visitor {
	return &Visitor{
		adj:    adj,
		marked: make(map[string]string),
	}
}

// Visit marks root and everything reachable from it. Names already marked
// are not descended into again.
func (v *Visitor) Visit(root string) {
	v.visit(root, root)
}

func (v *Visitor) visit(name, root string) {
	if _, seen := v.marked[name]; seen {
		return
	}
	v.marked[name] = root
	for _, next := range v.adj[name] {
		v.visit(next, root)
	}
}

// WasVisited reports whether name has been marked by any Visit call.
func (v *Visitor) WasVisited(name string) bool {
	_, ok := v.marked[name]
	return ok
}

// MarkedBy returns the root of the Visit call that first marked name.
func (v *Visitor) MarkedBy(name string) (string, bool) {
	root, ok := v.marked[name]
	return root, ok
}

// Len returns the number of marked names.
func (v *Visitor) Len() int {
	return len(v.marked)
}
