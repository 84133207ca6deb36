package storage

import (
	"context"

	"aura/backend/internal/models"
)

// CreateUser inserts a user; a taken email yields ErrDuplicate.
func (s *Service) CreateUser(ctx context.Context, u *models.User) error {
	return translateError(s.DB.WithContext(ctx).Create(u).Error)
}

func (s *Service) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translateError(err)
	}
	return &u, nil
}
