package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"piauitickets/internal/domain/entity"
	"piauitickets/internal/domain/repository"
	apperrors "piauitickets/pkg/errors"
)

type firestoreEventRepository struct {
	client *firestore.Client
}

func NewFirestoreEventRepository(client *firestore.Client) repository.EventRepository {
	return &firestoreEventRepository{
		client: client,
	}
}

func (r *firestoreEventRepository) GetByID(ctx context.Context, eventID string) (*entity.Event, error) {
	doc, err := r.client.Collection("eventos").Doc(eventID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, apperrors.NotFound("event", err)
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	var event entity.Event
	if err := doc.DataTo(&event); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}
	event.ID = doc.Ref.ID

	return &event, nil
}
