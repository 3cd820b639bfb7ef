package search

import "github.com/zimka1/grid-path-visualizer/grid"

// entry is one open-set push. A position may have several live entries;
// older ones are stale and get processed like any other pop.
type entry struct {
	pos      grid.Pos
	priority int
	seq      uint64 // Push order, breaks priority ties
}

// openSet is a container/heap min-heap ordered by (priority, seq)
type openSet []entry

func (q openSet) Len() int { return len(q) }

func (q openSet) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority < q[j].priority
	}
	return q[i].seq < q[j].seq
}

func (q openSet) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *openSet) Push(x any) {
	*q = append(*q, x.(entry))
}

func (q *openSet) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	*q = old[:n-1]
	return e
}
