package js

import (
	"math"
	"sync"
	"time"

	"github.com/emirpasic/gods/queues/priorityqueue"
)

// Task is a deferred callback handed to a Scheduler.
type Task func()

// Scheduler runs tasks after a delay. setTimeout goes through it.
//
// Tasks must be run on the goroutine that owns the engine; schedulers
// only decide when.
type Scheduler interface {
	Schedule(delay time.Duration, task Task)
}

type timer struct {
	due  time.Duration
	seq  uint64
	task Task
}

func byDue(a, b interface{}) int {
	ta, tb := a.(*timer), b.(*timer)
	switch {
	case ta.due < tb.due:
		return -1
	case ta.due > tb.due:
		return 1
	case ta.seq < tb.seq:
		return -1
	case ta.seq > tb.seq:
		return 1
	}
	return 0
}

// TimerQueue is a deterministic scheduler driven by a virtual clock. Tasks
// with equal due times run in the order they were scheduled.
type TimerQueue struct {
	now   time.Duration
	seq   uint64
	queue *priorityqueue.Queue
}

func NewTimerQueue() *TimerQueue {
	return &TimerQueue{queue: priorityqueue.NewWith(byDue)}
}

func (q *TimerQueue) Schedule(delay time.Duration, task Task) {
	if delay < 0 {
		delay = 0
	}
	due := q.now + delay
	if due < q.now {
		due = math.MaxInt64
	}
	q.seq++
	q.queue.Enqueue(&timer{due: due, seq: q.seq, task: task})
}

// Now returns the virtual clock.
func (q *TimerQueue) Now() time.Duration { return q.now }

// Len returns the number of pending tasks.
func (q *TimerQueue) Len() int { return q.queue.Size() }

// RunDue advances the clock to now and runs every task due by then,
// including tasks those tasks schedule. It returns the number run.
func (q *TimerQueue) RunDue(now time.Duration) int {
	ran := 0
	for {
		head, ok := q.queue.Peek()
		if !ok || head.(*timer).due > now {
			break
		}
		q.queue.Dequeue()
		t := head.(*timer)
		if t.due > q.now {
			q.now = t.due
		}
		t.task()
		ran++
	}
	if now > q.now {
		q.now = now
	}
	return ran
}

// Drain runs pending tasks in due order, advancing the clock as it goes,
// until the queue is empty or limit tasks have run. A limit of zero or
// less means no limit.
func (q *TimerQueue) Drain(limit int) int {
	ran := 0
	for limit <= 0 || ran < limit {
		head, ok := q.queue.Dequeue()
		if !ok {
			break
		}
		t := head.(*timer)
		if t.due > q.now {
			q.now = t.due
		}
		t.task()
		ran++
	}
	return ran
}

// ChannelScheduler delivers tasks on a channel once their wall-clock delay
// has elapsed. The host receives from Tasks and runs each task on its own
// goroutine. Only timers that have not fired yet are retained.
type ChannelScheduler struct {
	tasks chan Task

	mu     sync.Mutex
	done   chan struct{}
	seq    uint64
	timers map[uint64]*time.Timer
	closed bool
}

func NewChannelScheduler(buffer int) *ChannelScheduler {
	return &ChannelScheduler{
		tasks:  make(chan Task, buffer),
		done:   make(chan struct{}),
		timers: make(map[uint64]*time.Timer),
	}
}

func (s *ChannelScheduler) Schedule(delay time.Duration, task Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	id := s.seq
	s.seq++
	// The callback cannot take mu until this entry is in the map.
	s.timers[id] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, id)
		s.mu.Unlock()
		select {
		case s.tasks <- task:
		case <-s.done:
		}
	})
}

func (s *ChannelScheduler) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Tasks returns the channel due tasks arrive on.
func (s *ChannelScheduler) Tasks() <-chan Task { return s.tasks }

// Close stops pending timers and releases any delivery in flight. Tasks
// already buffered in the channel are left there.
func (s *ChannelScheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for _, t := range s.timers {
		t.Stop()
	}
	s.timers = nil
	close(s.done)
}

// timerDelay converts a setTimeout delay in milliseconds, saturating at the
// longest representable duration. NaN and negative delays are zero.
func timerDelay(ms float64) time.Duration {
	if ms != ms || ms <= 0 {
		return 0
	}
	ns := ms * float64(time.Millisecond)
	if ns >= math.MaxInt64 {
		return math.MaxInt64
	}
	return time.Duration(ns)
}
