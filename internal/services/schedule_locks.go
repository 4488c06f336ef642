package services

import "sync"

// scheduleLocks serializes check-then-reserve sequences per schedule within
// this process. Cross-schedule operations stay fully parallel. The unique
// index on passenger_bookings(schedule_id, seat_number) remains the durable
// guard, so correctness does not depend on running a single instance; this
// lock just turns most same-schedule races into clean availability rejections
// instead of constraint bounces.
type scheduleLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newScheduleLocks() *scheduleLocks {
	return &scheduleLocks{locks: make(map[int64]*sync.Mutex)}
}

// acquire locks the mutex for the schedule and returns it for unlocking.
// Mutexes are never evicted; the map grows with the number of schedules ever
// booked in this process, which is bounded and small.
func (l *scheduleLocks) acquire(scheduleID int64) *sync.Mutex {
	l.mu.Lock()
	m, ok := l.locks[scheduleID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[scheduleID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m
}
