package traverse

// TopoSort returns every name reachable from a's keys in an order where each
// name appears after all of its neighbours in a. With forward adjacency that
// is a legal build order: dependencies first.
//
// Keys are walked in sorted order so the result is deterministic. Names that
// only ever appear as neighbours are included once some key reaches them.
func TopoSort(a Adjacency) []string {
	visited := make(map[string]struct{}, len(a))
	order := make([]string, 0, len(a))

	var visit func(name string)
	visit = func(name string) {
		if _, seen := visited[name]; seen {
			return
		}
		visited[name] = struct{}{}
		for _, dep := range a[name] {
			visit(dep)
		}
		order = append(order, name)
	}

	for _, name := range a.Keys() {
		visit(name)
	}
	return order
}
