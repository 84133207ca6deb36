package storage

import (
	"context"

	"aura/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateComplaint inserts a new complaint. Status defaults to under_review.
func (s *Service) CreateComplaint(ctx context.Context, c *models.Complaint) error {
	if c.Status == "" {
		c.Status = models.ComplaintUnderReview
	}
	return translateError(s.DB.WithContext(ctx).Create(c).Error)
}

// UpdateComplaint applies patch to a single complaint inside a transaction.
// The stored analysis is never touched.
func (s *Service) UpdateComplaint(ctx context.Context, id string, patch models.ComplaintPatch) (*models.Complaint, error) {
	var c models.Complaint
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&c).Error; err != nil {
			return err
		}

		patch.Apply(&c)
		return tx.Save(&c).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

// ListComplaints returns every complaint in insertion order.
func (s *Service) ListComplaints(ctx context.Context) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.DB.WithContext(ctx).Order("created_at asc, id asc").Find(&complaints).Error
	return complaints, translateError(err)
}

// ListComplaintsByUser returns the complaints filed by email in insertion order.
func (s *Service) ListComplaintsByUser(ctx context.Context, email string) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.DB.WithContext(ctx).
		Where("user_email = ?", email).
		Order("created_at asc, id asc").
		Find(&complaints).Error
	return complaints, translateError(err)
}

func (s *Service) GetComplaint(ctx context.Context, id string) (*models.Complaint, error) {
	var c models.Complaint
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

func (s *Service) DeleteComplaint(ctx context.Context, id string) error {
	result := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Complaint{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
