// Package storage persists complaints, reservations and users in PostgreSQL
// and keeps sessions and admin events in Redis.
package storage

import (
	"context"
	"errors"
	"time"

	"aura/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a record id or session id does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique column already holds the value.
	ErrDuplicate = errors.New("record already exists")
)

// Storage is the record store used by the domain services.
type Storage interface {
	CreateComplaint(ctx context.Context, c *models.Complaint) error
	UpdateComplaint(ctx context.Context, id string, patch models.ComplaintPatch) (*models.Complaint, error)
	ListComplaints(ctx context.Context) ([]models.Complaint, error)
	ListComplaintsByUser(ctx context.Context, email string) ([]models.Complaint, error)
	GetComplaint(ctx context.Context, id string) (*models.Complaint, error)
	DeleteComplaint(ctx context.Context, id string) error

	CreateReservation(ctx context.Context, r *models.Reservation) error
	UpdateReservationStatus(ctx context.Context, id string, status models.ReservationStatus) (*models.Reservation, error)
	ListReservations(ctx context.Context) ([]models.Reservation, error)
	ListReservationsByUser(ctx context.Context, email string) ([]models.Reservation, error)
	GetReservation(ctx context.Context, id string) (*models.Reservation, error)

	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	PublishEvent(ctx context.Context, e models.Event) error
}

// SessionStore keeps authenticated sessions.
type SessionStore interface {
	SaveSession(ctx context.Context, s models.Session, ttl time.Duration) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	DeleteSession(ctx context.Context, id string) error
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
	}
}

// Migrate creates or updates the tables for every persisted model.
func (s *Service) Migrate() error {
	return s.DB.AutoMigrate(
		&models.User{},
		&models.Complaint{},
		&models.Reservation{},
	)
}

// translateError maps driver errors onto the package sentinels.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}
