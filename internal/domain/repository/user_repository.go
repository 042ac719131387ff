package repository

import (
	"context"

	"piauitickets/internal/domain/entity"
)

type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*entity.User, error)
}
