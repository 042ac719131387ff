package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"piauitickets/internal/domain/entity"
	"piauitickets/internal/domain/repository"
	apperrors "piauitickets/pkg/errors"
	"piauitickets/pkg/logger"
)

// offlineTicketsKey is the single local-storage slot the cache lives in.
const offlineTicketsKey = "ingressos_offline"

// MinFreeSpaceMB is the default hard floor of free local storage
// required before a download may be attempted. MIN_FREE_SPACE_MB
// overrides it.
const MinFreeSpaceMB int64 = 200

// ProgressFunc receives download progress in percent. It reaches 100
// only after the cache write has completed.
type ProgressFunc func(percent int)

// OfflineUseCase produces and serves a local, connectivity-independent
// snapshot of a user's tickets. Downloads replace the whole cache in a
// single write; the viewer reads exclusively from the snapshot.
type OfflineUseCase struct {
	userRepo       repository.UserRepository
	eventRepo      repository.EventRepository
	ticketRepo     repository.TicketRepository
	storage        repository.LocalStorage
	space          repository.SpaceChecker
	minFreeSpaceMB int64
	now            func() time.Time
}

func NewOfflineUseCase(
	userRepo repository.UserRepository,
	eventRepo repository.EventRepository,
	ticketRepo repository.TicketRepository,
	storage repository.LocalStorage,
	space repository.SpaceChecker,
	minFreeSpaceMB int64,
) *OfflineUseCase {
	if minFreeSpaceMB <= 0 {
		minFreeSpaceMB = MinFreeSpaceMB
	}
	return &OfflineUseCase{
		userRepo:       userRepo,
		eventRepo:      eventRepo,
		ticketRepo:     ticketRepo,
		storage:        storage,
		space:          space,
		minFreeSpaceMB: minFreeSpaceMB,
		now:            time.Now,
	}
}

// CheckStorageSpace enforces the free-space precondition. A download
// must not be attempted when it fails.
func (uc *OfflineUseCase) CheckStorageSpace() error {
	freeMB, err := uc.space.FreeSpaceMB()
	if err != nil {
		return apperrors.Internal("failed to query free storage space", err)
	}
	if freeMB < uc.minFreeSpaceMB {
		return apperrors.InsufficientStorage(
			fmt.Sprintf("at least %dMB of free storage is required, %dMB available", uc.minFreeSpaceMB, freeMB))
	}
	return nil
}

// Download snapshots every ticket the user owns for the selected events
// and overwrites the local cache with the result in a single write. Any
// fetch or storage error aborts the whole operation; because the write
// happens once at the end, a failure leaves the previous cache intact.
func (uc *OfflineUseCase) Download(ctx context.Context, userID string, eventIDs []string, progress ProgressFunc) (*entity.DownloadSummary, error) {
	if len(eventIDs) == 0 {
		return nil, apperrors.BadRequest("at least one event must be selected", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user record: %w", err)
	}

	owned, err := uc.ticketRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load purchased tickets: %w", err)
	}

	snapshot := []entity.OfflineTicket{}
	for i, eventID := range eventIDs {
		event, err := uc.eventRepo.GetByID(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("failed to load event %s: %w", eventID, err)
		}

		for _, ticket := range owned {
			if ticket.EventID != eventID {
				continue
			}
			snapshot = append(snapshot, entity.OfflineTicket{
				CPF:       user.CPF,
				FullName:  user.FullName,
				Email:     user.Email,
				EventID:   event.ID,
				EventName: event.Name,
				EventDate: event.Date,
				Venue:     event.Venue,
				Type:      ticket.Type,
				Token:     ticket.Token,
			})
		}

		// Percent is events processed over events selected. The final
		// 100 is withheld until the cache write has completed.
		if progress != nil {
			if percent := (i + 1) * 100 / len(eventIDs); percent < 100 {
				progress(percent)
			}
		}
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize offline tickets: %w", err)
	}

	if err := uc.storage.SetItem(offlineTicketsKey, string(raw)); err != nil {
		return nil, fmt.Errorf("failed to write offline cache: %w", err)
	}

	if progress != nil {
		progress(100)
	}

	summary := &entity.DownloadSummary{
		DownloadID:   uuid.NewString(),
		TotalTickets: len(snapshot),
		Events:       len(eventIDs),
		DownloadDate: uc.now(),
	}

	logger.Info("Offline download complete: user=%s events=%d tickets=%d", userID, summary.Events, summary.TotalTickets)

	return summary, nil
}

// LoadOfflineTickets reads the cached snapshot. A missing or malformed
// cache is treated as empty, never as a fatal error, so the offline
// screen always renders.
func (uc *OfflineUseCase) LoadOfflineTickets() []entity.OfflineTicket {
	raw, err := uc.storage.GetItem(offlineTicketsKey)
	if err != nil {
		logger.Warn("Failed to read offline cache, treating as empty: %v", err)
		return []entity.OfflineTicket{}
	}
	if raw == "" {
		return []entity.OfflineTicket{}
	}

	var tickets []entity.OfflineTicket
	if err := json.Unmarshal([]byte(raw), &tickets); err != nil {
		logger.Warn("Malformed offline cache, treating as empty: %v", err)
		return []entity.OfflineTicket{}
	}
	if tickets == nil {
		tickets = []entity.OfflineTicket{}
	}
	return tickets
}

// HasOfflineTickets reports whether a cached snapshot exists. It never
// fails; any storage error reads as false.
func (uc *OfflineUseCase) HasOfflineTickets() bool {
	ok, err := uc.storage.HasItem(offlineTicketsKey)
	if err != nil {
		logger.Warn("Failed to check offline cache presence: %v", err)
		return false
	}
	return ok
}

// GroupOfflineTickets groups a snapshot by event for display. Pure
// derived view, recomputed on every load. Group order follows the first
// appearance of each event in the snapshot.
func GroupOfflineTickets(tickets []entity.OfflineTicket) []entity.OfflineEventGroup {
	groups := []entity.OfflineEventGroup{}
	index := map[string]int{}

	for _, ticket := range tickets {
		i, ok := index[ticket.EventID]
		if !ok {
			i = len(groups)
			index[ticket.EventID] = i
			groups = append(groups, entity.OfflineEventGroup{
				EventID:   ticket.EventID,
				EventName: ticket.EventName,
				EventDate: ticket.EventDate,
				Venue:     ticket.Venue,
			})
		}
		groups[i].Tickets = append(groups[i].Tickets, ticket)
	}

	return groups
}
