// Package reservation manages property reservation requests and the
// administrator decisions on them.
package reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aura/backend/internal/models"
	"aura/backend/internal/storage"

	"go.uber.org/zap"
)

var (
	// ErrPropertyNotFound is returned when reserving an id missing from the catalog.
	ErrPropertyNotFound = errors.New("property not found")
	// ErrInvalidStatus is returned for a status outside the reservation enum.
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// PropertyLookup resolves a property id to its listing.
type PropertyLookup interface {
	Get(id string) (models.Property, error)
}

// Notifier is told about new reservation requests.
type Notifier interface {
	ReservationRequested(r models.Reservation)
}

// Stats summarizes reservations for the admin dashboard.
type Stats struct {
	Total    int                              `json:"total"`
	ByStatus map[models.ReservationStatus]int `json:"byStatus"`
}

type Service struct {
	Storage    storage.Storage
	properties PropertyLookup
	notifier   Notifier
	log        *zap.SugaredLogger
}

// NewService creates a reservation service. notifier may be nil.
func NewService(s storage.Storage, properties PropertyLookup, notifier Notifier, log *zap.SugaredLogger) *Service {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Service{Storage: s, properties: properties, notifier: notifier, log: log}
}

// Reserve records a pending request by the session user for propertyID.
func (s *Service) Reserve(ctx context.Context, session models.Session, propertyID string) (*models.Reservation, error) {
	p, err := s.properties.Get(strings.TrimSpace(propertyID))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrPropertyNotFound, propertyID)
	}

	r := &models.Reservation{
		PropertyID:     p.ID,
		PropertyName:   p.Name,
		Location:       p.Location,
		Bedrooms:       p.Bedrooms,
		Price:          p.Price,
		RequesterEmail: session.Email,
		RequesterName:  session.DisplayName(),
		RequesterPhone: session.Phone,
		Status:         models.ReservationPending,
	}
	if err := s.Storage.CreateReservation(ctx, r); err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	s.log.Infow("Reservation requested", "reservation_id", r.ID, "property_id", r.PropertyID, "user", r.RequesterEmail)
	s.publish(ctx, models.EventReservationCreated, r)
	if s.notifier != nil {
		s.notifier.ReservationRequested(*r)
	}
	return r, nil
}

func (s *Service) ListMine(ctx context.Context, session models.Session) ([]models.Reservation, error) {
	return s.Storage.ListReservationsByUser(ctx, session.Email)
}

// List returns all reservations, or only those with status when it is non-empty.
func (s *Service) List(ctx context.Context, status models.ReservationStatus) ([]models.Reservation, error) {
	if status != "" && !status.Valid() {
		return nil, ErrInvalidStatus
	}
	all, err := s.Storage.ListReservations(ctx)
	if err != nil || status == "" {
		return all, err
	}

	filtered := make([]models.Reservation, 0, len(all))
	for _, r := range all {
		if r.Status == status {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

func (s *Service) Approve(ctx context.Context, id string) (*models.Reservation, error) {
	return s.SetStatus(ctx, id, models.ReservationApproved)
}

func (s *Service) Reject(ctx context.Context, id string) (*models.Reservation, error) {
	return s.SetStatus(ctx, id, models.ReservationRejected)
}

// Reset returns a decided reservation to pending.
func (s *Service) Reset(ctx context.Context, id string) (*models.Reservation, error) {
	return s.SetStatus(ctx, id, models.ReservationPending)
}

// SetStatus applies any status; transitions are not one-way.
func (s *Service) SetStatus(ctx context.Context, id string, status models.ReservationStatus) (*models.Reservation, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	r, err := s.Storage.UpdateReservationStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.log.Infow("Reservation status changed", "reservation_id", id, "status", status)
	s.publish(ctx, models.EventReservationStatusChanged, r)
	return r, nil
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	all, err := s.Storage.ListReservations(ctx)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{Total: len(all), ByStatus: make(map[models.ReservationStatus]int, len(models.ReservationStatuses))}
	for _, st := range models.ReservationStatuses {
		stats.ByStatus[st] = 0
	}
	for _, r := range all {
		stats.ByStatus[r.Status]++
	}
	return stats, nil
}

func (s *Service) publish(ctx context.Context, kind models.EventKind, r *models.Reservation) {
	event := models.Event{Kind: kind, RecordID: r.ID, Status: string(r.Status), At: time.Now()}
	if err := s.Storage.PublishEvent(ctx, event); err != nil {
		s.log.Warnw("Failed to publish admin event", "kind", kind, "record_id", r.ID, "error", err)
	}
}
