// Package timer runs one-shot deferred callbacks on a simulated clock.
//
// A Queue never spawns goroutines: callbacks run synchronously inside
// Advance, on whichever goroutine drives the simulation.
package timer

import "container/heap"

// epsilon absorbs float drift from accumulating fixed time steps.
const epsilon = 1e-9

// Handle refers to one scheduled callback.
type Handle struct {
	due      float64
	seq      uint64
	fn       func()
	index    int
	canceled bool
	fired    bool
}

// Pending reports whether the callback is still waiting to fire.
func (h *Handle) Pending() bool {
	return h != nil && !h.canceled && !h.fired
}

// Cancel stops a pending callback. It reports whether anything was canceled.
func (h *Handle) Cancel() bool {
	if !h.Pending() {
		return false
	}
	h.canceled = true
	h.fn = nil
	return true
}

// Queue is a min-heap of handles ordered by due time, then by schedule order.
type Queue struct {
	now   float64
	seq   uint64
	tasks taskHeap
}

func NewQueue() *Queue {
	return &Queue{}
}

// Now returns the simulated time in seconds.
func (q *Queue) Now() float64 {
	if q == nil {
		return 0
	}
	return q.now
}

// After schedules fn to run once, delay seconds from now.
func (q *Queue) After(delay float64, fn func()) *Handle {
	if q == nil || fn == nil {
		return nil
	}
	if delay < 0 {
		delay = 0
	}
	q.seq++
	h := &Handle{due: q.now + delay, seq: q.seq, fn: fn}
	heap.Push(&q.tasks, h)
	return h
}

// Advance moves the clock forward by dt and fires every callback that is due.
// Callbacks scheduled from inside a callback fire in the same call only if
// they are already due.
func (q *Queue) Advance(dt float64) int {
	if q == nil {
		return 0
	}
	if dt > 0 {
		q.now += dt
	}
	fired := 0
	for q.tasks.Len() > 0 {
		next := q.tasks[0]
		if next.canceled {
			heap.Pop(&q.tasks)
			continue
		}
		if next.due > q.now+epsilon {
			break
		}
		heap.Pop(&q.tasks)
		fn := next.fn
		next.fired = true
		next.fn = nil
		fn()
		fired++
	}
	return fired
}

// Len returns the number of callbacks still pending.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	n := 0
	for _, h := range q.tasks {
		if h.Pending() {
			n++
		}
	}
	return n
}

type taskHeap []*Handle

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	if h[i].due == h[j].due {
		return h[i].seq < h[j].seq
	}
	return h[i].due < h[j].due
}

func (h taskHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *taskHeap) Push(x any) {
	t := x.(*Handle)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
