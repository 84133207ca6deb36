package storage

import (
	"context"

	"aura/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateReservation inserts a new reservation. Status defaults to pending.
func (s *Service) CreateReservation(ctx context.Context, r *models.Reservation) error {
	if r.Status == "" {
		r.Status = models.ReservationPending
	}
	return translateError(s.DB.WithContext(ctx).Create(r).Error)
}

// UpdateReservationStatus sets the status of one reservation. Any transition
// is allowed, including back to pending.
func (s *Service) UpdateReservationStatus(ctx context.Context, id string, status models.ReservationStatus) (*models.Reservation, error) {
	var r models.Reservation
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&r).Error; err != nil {
			return err
		}

		r.Status = status
		return tx.Save(&r).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &r, nil
}

func (s *Service) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.DB.WithContext(ctx).Order("created_at asc, id asc").Find(&reservations).Error
	return reservations, translateError(err)
}

func (s *Service) ListReservationsByUser(ctx context.Context, email string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.DB.WithContext(ctx).
		Where("requester_email = ?", email).
		Order("created_at asc, id asc").
		Find(&reservations).Error
	return reservations, translateError(err)
}

func (s *Service) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	var r models.Reservation
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&r).Error; err != nil {
		return nil, translateError(err)
	}
	return &r, nil
}
