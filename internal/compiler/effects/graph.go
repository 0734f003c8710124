package effects

// tarjanSCCs returns the strongly connected components of the local call
// graph (edges: caller -> callee, restricted to callees present in
// funcs) in the order Tarjan completes them — which is exactly the order
// this package needs: every callee's component is finished before its
// caller's, so a single forward pass over the result already propagates
// bottom-up.
func tarjanSCCs(funcs map[string]bool, edges map[string][]string) [][]string {
	t := &tarjan{
		index:   map[string]int{},
		lowlink: map[string]int{},
		onStack: map[string]bool{},
		edges:   edges,
	}
	for name := range funcs {
		if _, seen := t.index[name]; !seen {
			t.strongconnect(name)
		}
	}
	return t.result
}

type tarjan struct {
	counter int
	index   map[string]int
	lowlink map[string]int
	onStack map[string]bool
	stack   []string
	edges   map[string][]string
	result  [][]string
}

func (t *tarjan) strongconnect(v string) {
	t.index[v] = t.counter
	t.lowlink[v] = t.counter
	t.counter++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, w := range t.edges[v] {
		if _, seen := t.index[w]; !seen {
			t.strongconnect(w)
			if t.lowlink[w] < t.lowlink[v] {
				t.lowlink[v] = t.lowlink[w]
			}
		} else if t.onStack[w] {
			if t.index[w] < t.lowlink[v] {
				t.lowlink[v] = t.index[w]
			}
		}
	}

	if t.lowlink[v] == t.index[v] {
		var component []string
		for {
			n := len(t.stack) - 1
			w := t.stack[n]
			t.stack = t.stack[:n]
			t.onStack[w] = false
			component = append(component, w)
			if w == v {
				break
			}
		}
		t.result = append(t.result, component)
	}
}
