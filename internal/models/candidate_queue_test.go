// Tests for candidate_queue.go: rank ordering and FIFO tie-break.
package models

import "testing"

func TestCandidateQueue_PopsNonIncreasing(t *testing.T) {
	t.Parallel()
	q := NewCandidateQueue()
	for i, rank := range []int{0, 7, 10, 5, 9, 0, 8, 6} {
		q.Push(AlternateName{Name: string(rune('a' + i)), Rank: rank})
	}

	last := 11
	count := 0
	for {
		name, ok := q.Pop()
		if !ok {
			break
		}
		if name.Rank > last {
			t.Fatalf("pop %d returned rank %d after rank %d", count, name.Rank, last)
		}
		last = name.Rank
		count++
	}
	if count != 8 {
		t.Errorf("popped %d names, want 8", count)
	}
}

func TestCandidateQueue_FIFOTieBreak(t *testing.T) {
	t.Parallel()
	q := NewCandidateQueue()
	q.Push(AlternateName{Name: "first", Rank: 6})
	q.Push(AlternateName{Name: "top", Rank: 9})
	q.Push(AlternateName{Name: "second", Rank: 6})
	q.Push(AlternateName{Name: "third", Rank: 6})

	want := []string{"top", "first", "second", "third"}
	for i, w := range want {
		got, ok := q.Pop()
		if !ok {
			t.Fatalf("pop %d: queue empty", i)
		}
		if got.Name != w {
			t.Errorf("pop %d = %q, want %q", i, got.Name, w)
		}
	}
}

func TestCandidateQueue_Empty(t *testing.T) {
	t.Parallel()
	var nilQueue *CandidateQueue
	if _, ok := nilQueue.Pop(); ok {
		t.Error("Pop on nil queue returned ok")
	}
	if nilQueue.Len() != 0 {
		t.Error("Len on nil queue should be 0")
	}

	q := NewCandidateQueue()
	if _, ok := q.Pop(); ok {
		t.Error("Pop on empty queue returned ok")
	}
}

func TestCandidateQueue_SnapshotDoesNotConsume(t *testing.T) {
	t.Parallel()
	q := NewCandidateQueue()
	q.Push(AlternateName{Name: "b", Rank: 5})
	q.Push(AlternateName{Name: "a", Rank: 10})

	snap := q.Snapshot()
	if len(snap) != 2 || snap[0].Name != "a" || snap[1].Name != "b" {
		t.Fatalf("Snapshot() = %+v", snap)
	}
	if q.Len() != 2 {
		t.Errorf("Len() after Snapshot = %d, want 2", q.Len())
	}
}
