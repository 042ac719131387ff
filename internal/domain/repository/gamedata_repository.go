package repository

import (
	"context"

	"piauitickets/internal/domain/entity"
)

// GameDataRepository is the document-store contract the gamification
// engine writes through. Updates are shallow merges of top-level fields;
// there is no optimistic-concurrency check, so overlapping partial
// writes resolve last-write-wins at the store.
type GameDataRepository interface {
	Get(ctx context.Context, userID string) (*entity.UserGameData, error)
	Create(ctx context.Context, data *entity.UserGameData) error
	UpdateFields(ctx context.Context, userID string, fields map[string]interface{}) error
	GetTopUsers(ctx context.Context, limit int) ([]entity.UserGameData, error)
}
