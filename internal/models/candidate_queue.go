package models

import "container/heap"

// NamePair is an unranked alternate name as scraped: the name and the label
// the source catalog shows next to it ("USA", "tytuł oryginalny", ...).
type NamePair struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// AlternateName is a ranked name variant used to query the search catalog.
type AlternateName struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Rank  int    `json:"rank"`
}

type queueItem struct {
	AlternateName
	seq int
}

type nameHeap []queueItem

func (h nameHeap) Len() int { return len(h) }

func (h nameHeap) Less(i, j int) bool {
	if h[i].Rank != h[j].Rank {
		return h[i].Rank > h[j].Rank
	}
	return h[i].seq < h[j].seq
}

func (h nameHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nameHeap) Push(x any) { *h = append(*h, x.(queueItem)) }

func (h *nameHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// CandidateQueue is a max-priority queue of alternate names keyed by rank.
// Equal ranks pop in insertion order. Not safe for concurrent use; a queue
// is owned by whichever goroutine resolves its record.
type CandidateQueue struct {
	items nameHeap
	next  int
}

// NewCandidateQueue returns an empty queue.
func NewCandidateQueue() *CandidateQueue {
	return &CandidateQueue{}
}

// Push adds a ranked name.
func (q *CandidateQueue) Push(name AlternateName) {
	heap.Push(&q.items, queueItem{AlternateName: name, seq: q.next})
	q.next++
}

// Pop removes and returns the highest-ranked remaining name.
func (q *CandidateQueue) Pop() (AlternateName, bool) {
	if q == nil || len(q.items) == 0 {
		return AlternateName{}, false
	}
	item := heap.Pop(&q.items).(queueItem)
	return item.AlternateName, true
}

// Len returns the number of names left.
func (q *CandidateQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Snapshot returns the remaining names in pop order without consuming them.
func (q *CandidateQueue) Snapshot() []AlternateName {
	if q == nil {
		return nil
	}
	clone := make(nameHeap, len(q.items))
	copy(clone, q.items)
	out := make([]AlternateName, 0, len(clone))
	for clone.Len() > 0 {
		out = append(out, heap.Pop(&clone).(queueItem).AlternateName)
	}
	return out
}
