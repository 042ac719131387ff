package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"piauitickets/internal/domain/entity"
	"piauitickets/internal/domain/repository"
	apperrors "piauitickets/pkg/errors"
)

// firestoreGameDataRepository stores each user's progression document at
// users/{userId}/gameData/data.
type firestoreGameDataRepository struct {
	client *firestore.Client
}

func NewFirestoreGameDataRepository(client *firestore.Client) repository.GameDataRepository {
	return &firestoreGameDataRepository{
		client: client,
	}
}

func (r *firestoreGameDataRepository) doc(userID string) *firestore.DocumentRef {
	return r.client.Collection("users").Doc(userID).Collection("gameData").Doc("data")
}

func (r *firestoreGameDataRepository) Get(ctx context.Context, userID string) (*entity.UserGameData, error) {
	doc, err := r.doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, apperrors.NotFound("game data", err)
		}
		return nil, fmt.Errorf("failed to get game data: %w", err)
	}

	var data entity.UserGameData
	if err := doc.DataTo(&data); err != nil {
		return nil, fmt.Errorf("failed to decode game data: %w", err)
	}

	return &data, nil
}

func (r *firestoreGameDataRepository) Create(ctx context.Context, data *entity.UserGameData) error {
	data.CreatedAt = time.Now()
	data.UpdatedAt = time.Now()

	_, err := r.doc(data.UserID).Set(ctx, data)
	if err != nil {
		return fmt.Errorf("failed to create game data: %w", err)
	}

	return nil
}

// UpdateFields shallow-merges the given top-level fields into the
// user's document. Last write wins on overlapping fields.
func (r *firestoreGameDataRepository) UpdateFields(ctx context.Context, userID string, fields map[string]interface{}) error {
	if _, ok := fields["updatedAt"]; !ok {
		fields["updatedAt"] = time.Now()
	}

	_, err := r.doc(userID).Set(ctx, fields, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update game data: %w", err)
	}

	return nil
}

func (r *firestoreGameDataRepository) GetTopUsers(ctx context.Context, limit int) ([]entity.UserGameData, error) {
	iter := r.client.CollectionGroup("gameData").Where("xp", ">", 0).OrderBy("xp", firestore.Desc).Limit(limit).Documents(ctx)
	defer iter.Stop()

	var users []entity.UserGameData
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate top users: %w", err)
		}

		var data entity.UserGameData
		if err := doc.DataTo(&data); err != nil {
			return nil, fmt.Errorf("failed to decode game data: %w", err)
		}
		users = append(users, data)
	}

	return users, nil
}
