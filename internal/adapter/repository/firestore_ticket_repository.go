package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"piauitickets/internal/domain/entity"
	"piauitickets/internal/domain/repository"
)

// firestoreTicketRepository reads users/{userId}/ingressos, the
// purchase records keyed by ticket token.
type firestoreTicketRepository struct {
	client *firestore.Client
}

func NewFirestoreTicketRepository(client *firestore.Client) repository.TicketRepository {
	return &firestoreTicketRepository{
		client: client,
	}
}

func (r *firestoreTicketRepository) ListByUser(ctx context.Context, userID string) ([]entity.PurchasedTicket, error) {
	iter := r.client.Collection("users").Doc(userID).Collection("ingressos").Documents(ctx)
	defer iter.Stop()

	var tickets []entity.PurchasedTicket
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate tickets: %w", err)
		}

		var ticket entity.PurchasedTicket
		if err := doc.DataTo(&ticket); err != nil {
			return nil, fmt.Errorf("failed to decode ticket: %w", err)
		}
		if ticket.Token == "" {
			ticket.Token = doc.Ref.ID
		}
		tickets = append(tickets, ticket)
	}

	return tickets, nil
}
