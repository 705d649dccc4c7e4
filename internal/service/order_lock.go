package service

import "sync"

// orderLock 按订单号串行化处理，避免同一订单并发写入。
type orderLock struct {
	mu    sync.Mutex
	locks map[string]*orderLockEntry
}

type orderLockEntry struct {
	mu   sync.Mutex
	refs int
}

func newOrderLock() *orderLock {
	return &orderLock{locks: make(map[string]*orderLockEntry)}
}

// Lock 锁定指定订单号，返回解锁函数。
func (l *orderLock) Lock(orderNumber string) func() {
	l.mu.Lock()
	entry, ok := l.locks[orderNumber]
	if !ok {
		entry = &orderLockEntry{}
		l.locks[orderNumber] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs <= 0 {
			delete(l.locks, orderNumber)
		}
		l.mu.Unlock()
	}
}
