package users

import (
	"context"

	"ms-events/internal/models"
)

type DBLayer interface {
	CreateUser(ctx context.Context, user *models.User) error
}

type Service struct {
	DB DBLayer
}

func NewService(db DBLayer) *Service {
	return &Service{DB: db}
}

func (s *Service) CreateUser(ctx context.Context, req models.CreateUserRequest) error {
	if req.Name == "" || req.Email == "" {
		return models.ErrMissingFields
	}
	return s.DB.CreateUser(ctx, &models.User{Name: req.Name, Email: req.Email})
}
