package booking

import (
	"context"
	"sync"
	"time"

	bookingRepo "localbooker/database/repository/booking"
	"localbooker/models"
)

// memBookings is an in-memory ledger used by the engine tests. It mirrors the
// query semantics of the Mongo repository and is safe for concurrent use.
type memBookings struct {
	mu      sync.Mutex
	records map[string]*models.Booking

	// FailUpdateStatus makes UpdateStatus fail for the listed booking ids.
	FailUpdateStatus map[string]error
	// FailListActive makes ListActiveForService fail for the listed services.
	FailListActive map[string]error
}

func newMemBookings() *memBookings {
	return &memBookings{records: make(map[string]*models.Booking)}
}

func (m *memBookings) Insert(ctx context.Context, b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *b
	m.records[b.ID] = &cp
	return nil
}

func (m *memBookings) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.records[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (m *memBookings) FindConflict(ctx context.Context, serviceID string, iv models.Interval, excludeID string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.records {
		if b.ServiceID != serviceID || b.ID == excludeID {
			continue
		}
		if b.Status == models.BookingStatusCancelled {
			continue
		}
		stored := models.Interval{Start: b.CheckIn, End: b.CheckOut}
		if stored.Overlaps(iv) {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memBookings) ListActiveForService(ctx context.Context, serviceID string, asOf time.Time) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.FailListActive[serviceID]; err != nil {
		return nil, err
	}
	var out []models.Booking
	for _, b := range m.records {
		if b.ServiceID != serviceID || b.Status == models.BookingStatusCancelled {
			continue
		}
		if b.CheckOut.Before(asOf) {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (m *memBookings) ListElapsed(ctx context.Context, now time.Time) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.records {
		switch b.Status {
		case models.BookingStatusApproved, models.BookingStatusConfirmed, models.BookingStatusCompleted:
		default:
			continue
		}
		if b.CheckOut.Before(now) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memBookings) UpdateStatus(ctx context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.FailUpdateStatus[id]; err != nil {
		return err
	}
	if b, ok := m.records[id]; ok {
		b.Status = status
	}
	return nil
}

func (m *memBookings) UpdateInterval(ctx context.Context, id string, iv models.Interval) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.records[id]; ok {
		b.CheckIn = iv.Start
		b.CheckOut = iv.End
	}
	return nil
}

func (m *memBookings) GetByPaymentIntent(ctx context.Context, intentID string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.records {
		if b.PaymentIntentID == intentID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memBookings) ListForUser(ctx context.Context, userID string, limit int64) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.records {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memBookings) List(ctx context.Context, q bookingRepo.ListQuery) ([]models.Booking, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.records {
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (m *memBookings) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, id)
	return nil
}

func (m *memBookings) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, id := range ids {
		if _, ok := m.records[id]; ok {
			delete(m.records, id)
			n++
		}
	}
	return n, nil
}

func (m *memBookings) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.records)), nil
}

func (m *memBookings) TotalRevenue(ctx context.Context) (float64, error) { return 0, nil }

func (m *memBookings) MonthlyBookings(ctx context.Context) ([]models.MonthlyCount, error) {
	return nil, nil
}

func (m *memBookings) MonthlyRevenue(ctx context.Context) ([]models.MonthlyAmount, error) {
	return nil, nil
}

func (m *memBookings) RevenueByService(ctx context.Context) ([]models.RevenueSlice, error) {
	return nil, nil
}

func (m *memBookings) Recent(ctx context.Context, limit int64) ([]models.Booking, error) {
	return nil, nil
}

// memServices is an in-memory service catalog for the engine tests.
type memServices struct {
	mu      sync.Mutex
	records map[string]*models.Service
}

func newMemServices(services ...*models.Service) *memServices {
	m := &memServices{records: make(map[string]*models.Service)}
	for _, s := range services {
		cp := *s
		m.records[s.ID] = &cp
	}
	return m
}

func (m *memServices) Create(ctx context.Context, s *models.Service) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.records[s.ID] = &cp
	return nil
}

func (m *memServices) GetByID(ctx context.Context, id string) (*models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.records[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *memServices) List(ctx context.Context) ([]models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Service
	for _, s := range m.records {
		out = append(out, *s)
	}
	return out, nil
}

func (m *memServices) Update(ctx context.Context, id string, name, description string, price float64) (*models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.records[id]
	if !ok {
		return nil, nil
	}
	s.Name = name
	s.Description = description
	s.Price = price
	cp := *s
	return &cp, nil
}

func (m *memServices) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, id)
	return nil
}

func (m *memServices) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.records)), nil
}

func (m *memServices) SetAvailability(ctx context.Context, id string, available bool, bookedUntil *time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.records[id]
	if !ok {
		return false, nil
	}
	changed := s.IsAvailable != available || !equalTimePtr(s.BookedUntil, bookedUntil)
	s.IsAvailable = available
	if bookedUntil == nil {
		s.BookedUntil = nil
	} else {
		t := *bookedUntil
		s.BookedUntil = &t
	}
	return changed, nil
}

func (m *memServices) ListExpiredUnavailable(ctx context.Context, now time.Time) ([]models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Service
	for _, s := range m.records {
		if !s.IsAvailable && s.BookedUntil != nil && s.BookedUntil.Before(now) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// memNotifier records notifications; Fail makes every call return an error.
type memNotifier struct {
	mu       sync.Mutex
	created  []string
	statuses []string
	Fail     error
}

func (n *memNotifier) BookingCreated(ctx context.Context, b *models.Booking) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Fail != nil {
		return n.Fail
	}
	n.created = append(n.created, b.ID)
	return nil
}

func (n *memNotifier) BookingStatusChanged(ctx context.Context, b *models.Booking) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Fail != nil {
		return n.Fail
	}
	n.statuses = append(n.statuses, b.ID+":"+b.Status)
	return nil
}
