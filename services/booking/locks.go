package booking

import "sync"

// serviceLocks hands out one mutex per service id so that the
// conflict-check-then-insert sequence is serialized per service while bookings
// for different services proceed in parallel.
type serviceLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newServiceLocks() *serviceLocks {
	return &serviceLocks{locks: make(map[string]*sync.Mutex)}
}

func (s *serviceLocks) Get(serviceID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[serviceID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[serviceID] = l
	}
	return l
}
