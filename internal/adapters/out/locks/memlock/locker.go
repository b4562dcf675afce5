// Package memlock serializes workflow steps per order inside one process.
package memlock

import (
	"context"
	"sync"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/ports"
)

var _ ports.OrderLocker = &Locker{}

// Locker hands out one channel-based mutex per order id. Entries are removed
// when the last waiter releases.
type Locker struct {
	mu    sync.Mutex
	locks map[kernel.UUID]*entry
}

type entry struct {
	ch      chan struct{}
	waiters int
}

func New() *Locker {
	return &Locker{locks: make(map[kernel.UUID]*entry)}
}

func (l *Locker) Lock(ctx context.Context, orderID kernel.UUID) (ports.ReleaseFunc, error) {
	l.mu.Lock()
	e, ok := l.locks[orderID]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.locks[orderID] = e
	}
	e.waiters++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		l.leave(orderID, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			l.leave(orderID, e)
		})
	}, nil
}

func (l *Locker) leave(orderID kernel.UUID, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.waiters--
	if e.waiters == 0 {
		delete(l.locks, orderID)
	}
}
