package repository

import (
	"context"

	"piauitickets/internal/domain/entity"
)

// TicketRepository reads a user's purchased-ticket records. Read-only.
type TicketRepository interface {
	ListByUser(ctx context.Context, userID string) ([]entity.PurchasedTicket, error)
}
