package eulertour

import "github.com/Thomas1664/go-taxonomy/taxon"

// Tour holds the Euler tour as three parallel arrays: the visit
// sequence, the depth sequence, and the first-occurrence table.
type Tour struct {
	Visit []int // internal index visited at step i
	Depth []int // depth of Visit[i]
	First []int // First[v] = smallest i with Visit[i] == v
}

type frame struct {
	node     int
	level    int
	childIdx int
}

// Build performs the depth-first traversal this type's data model
// represents, starting at store's root, producing a tour of length
// exactly 2*store.Len().
func Build(store *taxon.Store) *Tour {
	n := store.Len()
	children := childrenOf(store)

	t := &Tour{
		Visit: make([]int, 0, 2*n),
		Depth: make([]int, 0, 2*n),
		First: make([]int, n),
	}
	for i := range t.First {
		t.First[i] = -1
	}

	root := store.RootInternalIndex()
	t.enter(root, 0)

	stack := []frame{{node: root, level: 0}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		kids := children[top.node]
		if top.childIdx < len(kids) {
			child := kids[top.childIdx]
			top.childIdx++
			level := top.level + 1
			t.enter(child, level)
			stack = append(stack, frame{node: child, level: level})
			continue
		}

		parent := store.Record(top.node).ParentInternalIndex
		t.Visit = append(t.Visit, parent)
		t.Depth = append(t.Depth, top.level-1)
		stack = stack[:len(stack)-1]
	}

	return t
}

// enter records the one tour entry produced on first descending into v.
func (t *Tour) enter(v, level int) {
	t.Visit = append(t.Visit, v)
	t.Depth = append(t.Depth, level)
	if t.First[v] == -1 {
		t.First[v] = len(t.Visit) - 1
	}
}

// childrenOf groups every non-root record under its parent's internal
// index, in Store insertion order, so traversal visits children in the
// order they appeared in the nodes dump.
func childrenOf(store *taxon.Store) [][]int {
	children := make([][]int, store.Len())
	store.Each(func(r taxon.Record) {
		if r.IsRoot() {
			return
		}
		children[r.ParentInternalIndex] = append(children[r.ParentInternalIndex], r.InternalIndex)
	})
	return children
}
