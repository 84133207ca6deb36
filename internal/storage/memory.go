package storage

import (
	"context"
	"strings"
	"sync"
	"time"

	"aura/backend/internal/models"

	"github.com/google/uuid"
)

// MemoryStore keeps every record in process memory. It backs local runs
// without PostgreSQL and Redis (STORAGE_DRIVER=memory) and handler tests.
type MemoryStore struct {
	mu           sync.RWMutex
	complaints   []*models.Complaint
	reservations []*models.Reservation
	users        map[string]*models.User
	sessions     map[string]memorySession
	events       chan models.Event
}

type memorySession struct {
	session   models.Session
	expiresAt time.Time
}

// NewMemoryStore returns an empty store. Published events are buffered on
// Events() and dropped when the buffer is full.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]*models.User),
		sessions: make(map[string]memorySession),
		events:   make(chan models.Event, 256),
	}
}

// Events exposes published events.
func (m *MemoryStore) Events() <-chan models.Event {
	return m.events
}

func (m *MemoryStore) CreateComplaint(_ context.Context, c *models.Complaint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Status == "" {
		c.Status = models.ComplaintUnderReview
	}
	now := time.Now()
	c.CreatedAt, c.UpdatedAt = now, now

	stored := *c
	m.complaints = append(m.complaints, &stored)
	return nil
}

func (m *MemoryStore) UpdateComplaint(_ context.Context, id string, patch models.ComplaintPatch) (*models.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.complaints {
		if c.ID == id {
			patch.Apply(c)
			c.UpdatedAt = time.Now()
			out := *c
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) ListComplaints(_ context.Context) ([]models.Complaint, error) {
	return m.filterComplaints(func(*models.Complaint) bool { return true }), nil
}

func (m *MemoryStore) ListComplaintsByUser(_ context.Context, email string) ([]models.Complaint, error) {
	return m.filterComplaints(func(c *models.Complaint) bool { return c.UserEmail == email }), nil
}

func (m *MemoryStore) filterComplaints(keep func(*models.Complaint) bool) []models.Complaint {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Complaint, 0, len(m.complaints))
	for _, c := range m.complaints {
		if keep(c) {
			out = append(out, *c)
		}
	}
	return out
}

func (m *MemoryStore) GetComplaint(_ context.Context, id string) (*models.Complaint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.complaints {
		if c.ID == id {
			out := *c
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) DeleteComplaint(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, c := range m.complaints {
		if c.ID == id {
			m.complaints = append(m.complaints[:i], m.complaints[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) CreateReservation(_ context.Context, r *models.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Status == "" {
		r.Status = models.ReservationPending
	}
	now := time.Now()
	r.CreatedAt, r.UpdatedAt = now, now

	stored := *r
	m.reservations = append(m.reservations, &stored)
	return nil
}

func (m *MemoryStore) UpdateReservationStatus(_ context.Context, id string, status models.ReservationStatus) (*models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.reservations {
		if r.ID == id {
			r.Status = status
			r.UpdatedAt = time.Now()
			out := *r
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) ListReservations(_ context.Context) ([]models.Reservation, error) {
	return m.filterReservations(func(*models.Reservation) bool { return true }), nil
}

func (m *MemoryStore) ListReservationsByUser(_ context.Context, email string) ([]models.Reservation, error) {
	return m.filterReservations(func(r *models.Reservation) bool { return r.RequesterEmail == email }), nil
}

func (m *MemoryStore) filterReservations(keep func(*models.Reservation) bool) []models.Reservation {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Reservation, 0, len(m.reservations))
	for _, r := range m.reservations {
		if keep(r) {
			out = append(out, *r)
		}
	}
	return out
}

func (m *MemoryStore) GetReservation(_ context.Context, id string) (*models.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, r := range m.reservations {
		if r.ID == id {
			out := *r
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(u.Email)
	if _, taken := m.users[key]; taken {
		return ErrDuplicate
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	u.CreatedAt = time.Now()

	stored := *u
	m.users[key] = &stored
	return nil
}

func (m *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	out := *u
	return &out, nil
}

func (m *MemoryStore) PublishEvent(_ context.Context, e models.Event) error {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	select {
	case m.events <- e:
	default:
	}
	return nil
}

func (m *MemoryStore) SaveSession(_ context.Context, s models.Session, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[s.ID] = memorySession{session: s, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (m *MemoryStore) GetSession(_ context.Context, id string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.sessions[id]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, ErrNotFound
	}
	out := entry.session
	return &out, nil
}

func (m *MemoryStore) DeleteSession(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
	return nil
}
