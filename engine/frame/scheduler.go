// Package frame schedules callbacks to run on the next display refresh.
//
// A host owns one Scheduler and calls Flush once per refresh. Callbacks requested while a
// flush is running wait for the following refresh, so a self-rescheduling callback runs
// exactly once per refresh. While the scheduler is hidden, Flush runs nothing and pending
// callbacks are kept; the first Flush after becoming visible runs them once.
package frame

import "sync"

// ID identifies a requested callback. The zero ID is never issued.
type ID uint64

type entry struct {
	id ID
	fn func()
}

// schedulerImpl is the implementation of the Scheduler interface.
type schedulerImpl struct {
	mu      *sync.Mutex
	nextID  ID
	queue   []entry
	visible bool
}

// Scheduler queues callbacks for the next display refresh.
type Scheduler interface {
	// Request queues fn for the next Flush.
	//
	// Parameters:
	//   - fn: the callback
	//
	// Returns:
	//   - ID: handle for Cancel
	Request(fn func()) ID

	// Cancel removes a queued callback. Unknown or already-run IDs are ignored.
	//
	// Parameters:
	//   - id: the handle returned by Request
	Cancel(id ID)

	// Flush runs every callback queued before the call, in request order, unless hidden.
	//
	// Returns:
	//   - int: the number of callbacks run
	Flush() int

	// SetVisible marks the display surface visible or hidden.
	//
	// Parameters:
	//   - visible: the new visibility
	SetVisible(visible bool)

	// Visible reports whether Flush will run callbacks.
	//
	// Returns:
	//   - bool: true if visible
	Visible() bool

	// Pending returns the number of queued callbacks.
	//
	// Returns:
	//   - int: queued callbacks
	Pending() int
}

var _ Scheduler = &schedulerImpl{}

// NewScheduler creates a visible Scheduler with an empty queue.
//
// Returns:
//   - Scheduler: the new scheduler
func NewScheduler() Scheduler {
	return &schedulerImpl{
		mu:      &sync.Mutex{},
		visible: true,
	}
}

func (s *schedulerImpl) Request(fn func()) ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.queue = append(s.queue, entry{id: s.nextID, fn: fn})
	return s.nextID
}

func (s *schedulerImpl) Cancel(id ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.queue {
		if e.id == id {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			return
		}
	}
}

func (s *schedulerImpl) Flush() int {
	s.mu.Lock()
	if !s.visible || len(s.queue) == 0 {
		s.mu.Unlock()
		return 0
	}
	batch := s.queue
	s.queue = nil
	s.mu.Unlock()

	for _, e := range batch {
		if e.fn != nil {
			e.fn()
		}
	}
	return len(batch)
}

func (s *schedulerImpl) SetVisible(visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = visible
}

func (s *schedulerImpl) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

func (s *schedulerImpl) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}
