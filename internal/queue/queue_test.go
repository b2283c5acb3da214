package queue

import (
	"sync"
	"testing"
)

func TestPushDrainFIFO(t *testing.T) {
	var q Ring[int]
	for i := 0; i < 10; i++ {
		if !q.Push(i) {
			t.Fatalf("push %d rejected on a near-empty ring", i)
		}
	}
	if q.Len() != 10 {
		t.Fatalf("Len = %d, want 10", q.Len())
	}

	var got []int
	n := q.Drain(func(v int) { got = append(got, v) })
	if n != 10 {
		t.Fatalf("Drain processed %d, want 10", n)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("item %d = %d, out of order", i, v)
		}
	}
	if q.Len() != 0 {
		t.Errorf("Len = %d after full drain", q.Len())
	}
}

func TestCapacity(t *testing.T) {
	var q Ring[int]
	for i := 0; i < Capacity; i++ {
		if !q.Push(i) {
			t.Fatalf("push %d rejected before capacity", i)
		}
	}
	if q.Push(999) {
		t.Fatalf("push beyond capacity accepted")
	}

	// Draining restores the full capacity, across cursor wraparound.
	if n := q.Drain(func(int) {}); n != Capacity {
		t.Fatalf("Drain processed %d, want %d", n, Capacity)
	}
	for i := 0; i < Capacity; i++ {
		if !q.Push(i) {
			t.Fatalf("push %d rejected after drain", i)
		}
	}
	if q.Push(999) {
		t.Errorf("push beyond capacity accepted after refill")
	}
}

func TestDrainOneGeneration(t *testing.T) {
	var q Ring[int]
	q.Push(1)
	q.Push(2)

	var seen []int
	n := q.Drain(func(v int) {
		seen = append(seen, v)
		// Pushed mid-drain: must wait for the next generation.
		q.Push(v + 10)
	})
	if n != 2 {
		t.Fatalf("first drain processed %d, want 2", n)
	}
	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Fatalf("first drain saw %v", seen)
	}

	seen = nil
	n = q.Drain(func(v int) { seen = append(seen, v) })
	if n != 2 {
		t.Fatalf("second drain processed %d, want 2", n)
	}
	if len(seen) != 2 || seen[0] != 11 || seen[1] != 12 {
		t.Fatalf("second drain saw %v", seen)
	}
}

func TestConcurrentPush(t *testing.T) {
	var q Ring[int]
	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for p := 0; p < 8; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 64; i++ {
				if q.Push(i) {
					mu.Lock()
					accepted++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	// 512 attempts against 256 slots: exactly Capacity land.
	if accepted != Capacity {
		t.Fatalf("accepted %d pushes, want %d", accepted, Capacity)
	}
	if n := q.Drain(func(int) {}); n != Capacity {
		t.Fatalf("drained %d, want %d", n, Capacity)
	}
}
