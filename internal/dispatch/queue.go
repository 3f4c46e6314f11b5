package dispatch

import (
	"log"
	"sync"
)

// Queue is a buffered in-memory work queue. Enqueue never blocks the
// caller: when the buffer is full the task is dropped with a log entry
// rather than stalling the request path that produced it.
type Queue struct {
	tasks  chan Task
	logger *log.Logger

	mu     sync.Mutex
	closed bool
}

// NewQueue builds a queue holding up to size pending tasks.
func NewQueue(size int, logger *log.Logger) *Queue {
	if logger == nil {
		logger = log.Default()
	}
	return &Queue{
		tasks:  make(chan Task, size),
		logger: logger,
	}
}

// Enqueue hands a task to the queue without blocking. Tasks enqueued after
// Close are dropped; a delayed retry can land here during shutdown.
func (q *Queue) Enqueue(task Task) {
	if !q.Offer(task) {
		q.logger.Printf("dispatch queue full or closed, dropping task kind=%s", task.Kind())
	}
}

// Offer hands a task to the queue without blocking and reports whether it
// was accepted, for callers that want to log richer context on a drop.
func (q *Queue) Offer(task Task) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	select {
	case q.tasks <- task:
		return true
	default:
		return false
	}
}

// Close stops accepting tasks and lets workers drain the remainder.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.tasks)
}
