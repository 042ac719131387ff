package usecase

import (
	"context"
	"sort"

	"piauitickets/internal/domain/entity"
	apperrors "piauitickets/pkg/errors"
)

type fakeGameDataRepo struct {
	records   map[string]*entity.UserGameData
	updates   []map[string]interface{}
	getErr    error
	createErr error
	updateErr error
}

func newFakeGameDataRepo() *fakeGameDataRepo {
	return &fakeGameDataRepo{records: map[string]*entity.UserGameData{}}
}

func (f *fakeGameDataRepo) Get(ctx context.Context, userID string) (*entity.UserGameData, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.records[userID]
	if !ok {
		return nil, apperrors.NotFound("game data", nil)
	}
	return data, nil
}

func (f *fakeGameDataRepo) Create(ctx context.Context, data *entity.UserGameData) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.records[data.UserID] = data
	return nil
}

func (f *fakeGameDataRepo) UpdateFields(ctx context.Context, userID string, fields map[string]interface{}) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, fields)
	return nil
}

func (f *fakeGameDataRepo) GetTopUsers(ctx context.Context, limit int) ([]entity.UserGameData, error) {
	var users []entity.UserGameData
	for _, data := range f.records {
		if data.XP > 0 {
			users = append(users, *data)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].XP > users[j].XP })
	if len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

type fakeUserRepo struct {
	user *entity.User
	err  error
}

func (f *fakeUserRepo) GetByID(ctx context.Context, userID string) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

type fakeEventRepo struct {
	events map[string]*entity.Event
	errs   map[string]error
}

func (f *fakeEventRepo) GetByID(ctx context.Context, eventID string) (*entity.Event, error) {
	if err, ok := f.errs[eventID]; ok {
		return nil, err
	}
	event, ok := f.events[eventID]
	if !ok {
		return nil, apperrors.NotFound("event", nil)
	}
	return event, nil
}

type fakeTicketRepo struct {
	tickets []entity.PurchasedTicket
	err     error
}

func (f *fakeTicketRepo) ListByUser(ctx context.Context, userID string) ([]entity.PurchasedTicket, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tickets, nil
}

type fakeLocalStorage struct {
	items  map[string]string
	getErr error
	setErr error
	hasErr error
}

func newFakeLocalStorage() *fakeLocalStorage {
	return &fakeLocalStorage{items: map[string]string{}}
}

func (f *fakeLocalStorage) GetItem(key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.items[key], nil
}

func (f *fakeLocalStorage) SetItem(key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.items[key] = value
	return nil
}

func (f *fakeLocalStorage) RemoveItem(key string) error {
	delete(f.items, key)
	return nil
}

func (f *fakeLocalStorage) HasItem(key string) (bool, error) {
	if f.hasErr != nil {
		return false, f.hasErr
	}
	_, ok := f.items[key]
	return ok, nil
}

type fakeSpaceChecker struct {
	freeMB int64
	err    error
}

func (f *fakeSpaceChecker) FreeSpaceMB() (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.freeMB, nil
}
