package repository

import (
	"context"

	"piauitickets/internal/domain/entity"
)

// EventRepository reads event metadata owned by other parts of the
// system. Read-only here.
type EventRepository interface {
	GetByID(ctx context.Context, eventID string) (*entity.Event, error)
}
