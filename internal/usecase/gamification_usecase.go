package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"piauitickets/internal/domain/entity"
	"piauitickets/internal/domain/repository"
	apperrors "piauitickets/pkg/errors"
	"piauitickets/pkg/logger"
)

const (
	vibeXP           = 10
	eventXP          = 25
	challengeBonusXP = 50

	dailyChallengeTarget = 3
	earlyBirdHour        = 8
)

// Notifier pushes progression events to a connected client. The
// WebSocket manager satisfies it; a nil notifier disables push.
type Notifier interface {
	SendToUser(userID string, message []byte)
}

// GamificationUseCase owns per-user progression state: XP, levels,
// badges, streaks and daily challenges. Every mutating operation reads
// the in-memory record the caller holds, computes the next state and
// issues a partial write to the store. Overlapping calls for the same
// user resolve last-write-wins at the store; callers are expected to
// issue mutations sequentially per user.
type GamificationUseCase struct {
	gameDataRepo repository.GameDataRepository
	notifier     Notifier
	now          func() time.Time
}

func NewGamificationUseCase(gameDataRepo repository.GameDataRepository, notifier Notifier) *GamificationUseCase {
	return &GamificationUseCase{
		gameDataRepo: gameDataRepo,
		notifier:     notifier,
		now:          time.Now,
	}
}

type XPResult struct {
	Data           *entity.UserGameData `json:"data"`
	LeveledUp      bool                 `json:"leveledUp"`
	UnlockedBadges []string             `json:"unlockedBadges"`
}

type VibeResult struct {
	XPResult
	ChallengeCompleted bool `json:"challengeCompleted"`
}

type BadgeProgress struct {
	Current    int     `json:"current"`
	Max        int     `json:"max"`
	Percentage float64 `json:"percentage"`
}

type BadgeStatus struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
	XPReward    int           `json:"xpReward"`
	Unlocked    bool          `json:"unlocked"`
	UnlockedAt  *time.Time    `json:"unlockedAt,omitempty"`
	Progress    BadgeProgress `json:"progress"`
}

type ExtendedStats struct {
	entity.UserStats
	Level               int     `json:"level"`
	XP                  int     `json:"xp"`
	XPToNext            int     `json:"xpToNext"`
	LevelProgress       float64 `json:"levelProgress"`
	CurrentStreak       int     `json:"currentStreak"`
	BadgesUnlocked      int     `json:"badgesUnlocked"`
	TotalBadges         int     `json:"totalBadges"`
	BadgeCompletionRate float64 `json:"badgeCompletionRate"`
}

// LoadUserGameData is fetch-or-create. It never fails to the caller: if
// the store is unreachable it logs and hands back an in-memory default
// so the UI is not blocked by this subsystem. Progression may silently
// not persist in that case, which is the accepted tradeoff.
func (uc *GamificationUseCase) LoadUserGameData(ctx context.Context, userID string) *entity.UserGameData {
	data, err := uc.gameDataRepo.Get(ctx, userID)
	if err != nil {
		if apperrors.Is(err, "NOT_FOUND") {
			data = entity.NewUserGameData(userID, uc.now())
			if cerr := uc.gameDataRepo.Create(ctx, data); cerr != nil {
				logger.Error("Failed to create game data for %s: %v", userID, cerr)
			}
			return data
		}

		logger.Error("Failed to load game data for %s, falling back to defaults: %v", userID, err)
		return entity.NewUserGameData(userID, uc.now())
	}

	data.Migrate()

	if err := uc.UpdateStreakAndLogin(ctx, userID, data); err != nil {
		logger.Warn("Streak update for %s was not persisted: %v", userID, err)
	}

	return data
}

// UpdateStreakAndLogin evaluates the consecutive-day login streak. Same
// day is a no-op; the next day increments, a gap longer than one day
// resets the streak to 1. early_bird is unlocked here, not in the
// generic badge pass, because its condition depends on the wall-clock
// hour of this login event.
func (uc *GamificationUseCase) UpdateStreakAndLogin(ctx context.Context, userID string, data *entity.UserGameData) error {
	now := uc.now()
	today := now.Format(entity.DateLayout)
	if data.LastLoginDate == today {
		return nil
	}

	delta := daysBetween(data.LastLoginDate, today)
	switch {
	case delta == 1:
		data.Streak++
	case delta == 0:
		// Should not occur given the same-day check above.
	default:
		data.Streak = 1
	}

	data.LastLoginDate = today
	if data.Streak > data.Stats.LongestStreak {
		data.Stats.LongestStreak = data.Streak
	}
	data.UpdatedAt = now

	fields := map[string]interface{}{
		"streak":        data.Streak,
		"lastLoginDate": data.LastLoginDate,
		"stats":         data.Stats,
		"updatedAt":     data.UpdatedAt,
	}

	if now.Hour() < earlyBirdHour && !data.HasBadge("early_bird") {
		uc.unlockBadge(data, "early_bird")
		fields["badges"] = data.Badges
		fields["achievements"] = data.Achievements
		uc.notify(userID, "badge_unlocked", map[string]interface{}{"badgeId": "early_bird"})
	}

	if err := uc.gameDataRepo.UpdateFields(ctx, userID, fields); err != nil {
		return fmt.Errorf("failed to persist streak update: %w", err)
	}

	return nil
}

// AddXP grants experience, rederives the level from the curve and runs
// the badge pass against the post-mutation state. The unlocked badge
// ids are returned so the caller can surface the celebration.
func (uc *GamificationUseCase) AddXP(ctx context.Context, userID string, data *entity.UserGameData, amount int, reason string) (*XPResult, error) {
	if amount < 0 {
		return nil, apperrors.BadRequest("xp amount cannot be negative", nil)
	}

	now := uc.now()
	data.XP += amount
	newLevel := LevelFromXP(data.XP)
	leveledUp := newLevel > data.Level
	data.Level = newLevel
	data.XPToNext = XPForNextLevel(newLevel)
	data.Stats.TotalXPEarned += amount
	data.Stats.LastActivityDate = now.Format(time.RFC3339)
	data.UpdatedAt = now

	unlocked := uc.runBadgePass(data)

	fields := map[string]interface{}{
		"xp":        data.XP,
		"level":     data.Level,
		"xpToNext":  data.XPToNext,
		"stats":     data.Stats,
		"updatedAt": data.UpdatedAt,
	}
	if len(unlocked) > 0 {
		fields["badges"] = data.Badges
		fields["achievements"] = data.Achievements
	}

	if err := uc.gameDataRepo.UpdateFields(ctx, userID, fields); err != nil {
		return nil, fmt.Errorf("failed to persist xp update: %w", err)
	}

	logger.Debug("XP granted: user=%s amount=%d reason=%s level=%d", userID, amount, reason, data.Level)

	if leveledUp {
		uc.notify(userID, "level_up", map[string]interface{}{"level": data.Level})
	}
	for _, id := range unlocked {
		uc.notify(userID, "badge_unlocked", map[string]interface{}{"badgeId": id})
	}

	return &XPResult{Data: data, LeveledUp: leveledUp, UnlockedBadges: unlocked}, nil
}

// RegisterVibeEvaluated records a vibe rating for an event. The history
// is keyed by event id, so a retry or re-rating overwrites the prior
// entry instead of duplicating it, while the vibesAvaliadas counter
// still counts every submission.
func (uc *GamificationUseCase) RegisterVibeEvaluated(ctx context.Context, userID string, data *entity.UserGameData, eventID string, nota int) (*VibeResult, error) {
	if eventID == "" {
		return nil, apperrors.BadRequest("event id is required", nil)
	}
	if nota < 1 || nota > 5 {
		return nil, apperrors.BadRequest("nota must be between 1 and 5", nil)
	}

	now := uc.now()
	data.VibesHistory[eventID] = entity.VibeRecord{
		Nota:      nota,
		Timestamp: now.UnixMilli(),
	}
	data.VibesRated++

	today := now.Format(entity.DateLayout)
	challenge := data.DailyChallenges[today]
	challenge.VibesRatedToday++
	challengeCompleted := false
	if !challenge.Completed && challenge.VibesRatedToday >= dailyChallengeTarget {
		challenge.Completed = true
		challengeCompleted = true
	}
	data.DailyChallenges[today] = challenge

	data.Stats.AverageVibeRating = averageVibeRating(data)

	xp := vibeXP
	if challengeCompleted {
		xp += challengeBonusXP
	}

	result, err := uc.AddXP(ctx, userID, data, xp, "vibe_avaliada")
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"vibesHistory":    data.VibesHistory,
		"vibesAvaliadas":  data.VibesRated,
		"dailyChallenges": data.DailyChallenges,
		"stats":           data.Stats,
		"updatedAt":       data.UpdatedAt,
	}
	if err := uc.gameDataRepo.UpdateFields(ctx, userID, fields); err != nil {
		return nil, fmt.Errorf("failed to persist vibe evaluation: %w", err)
	}

	if challengeCompleted {
		uc.notify(userID, "daily_challenge_completed", map[string]interface{}{"date": today})
	}

	return &VibeResult{XPResult: *result, ChallengeCompleted: challengeCompleted}, nil
}

// RegisterEventParticipation credits attendance for an event exactly
// once. Calling it again with the same event id is a no-op, so retries
// and repeated screen visits cannot double-credit.
func (uc *GamificationUseCase) RegisterEventParticipation(ctx context.Context, userID string, data *entity.UserGameData, eventID string) (*XPResult, error) {
	if eventID == "" {
		return nil, apperrors.BadRequest("event id is required", nil)
	}

	if data.HasAttendedEvent(eventID) {
		return &XPResult{Data: data, UnlockedBadges: []string{}}, nil
	}

	now := uc.now()
	data.EventsHistory = append(data.EventsHistory, eventID)
	data.EventsAttended++

	today := now.Format(entity.DateLayout)
	challenge := data.DailyChallenges[today]
	challenge.EventsVisitedToday++
	data.DailyChallenges[today] = challenge

	if data.Stats.FirstEventDate == "" {
		data.Stats.FirstEventDate = today
	}

	result, err := uc.AddXP(ctx, userID, data, eventXP, "evento_participado")
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"eventosHistory":      data.EventsHistory,
		"eventosParticipados": data.EventsAttended,
		"dailyChallenges":     data.DailyChallenges,
		"stats":               data.Stats,
		"updatedAt":           data.UpdatedAt,
	}
	if err := uc.gameDataRepo.UpdateFields(ctx, userID, fields); err != nil {
		return nil, fmt.Errorf("failed to persist event participation: %w", err)
	}

	return result, nil
}

// GetBadgeProgress is a pure derived view for progress bars. Unknown
// badge ids report ok=false.
func (uc *GamificationUseCase) GetBadgeProgress(badgeID string, data *entity.UserGameData) (BadgeProgress, bool) {
	def, ok := entity.BadgeByID(badgeID)
	if !ok {
		return BadgeProgress{}, false
	}

	current := 0
	if def.Current != nil {
		current = def.Current(data)
	}
	if data.HasBadge(badgeID) {
		current = def.Threshold
	}
	if current > def.Threshold {
		current = def.Threshold
	}

	progress := BadgeProgress{Current: current, Max: def.Threshold}
	if def.Threshold > 0 {
		progress.Percentage = math.Round(float64(current)/float64(def.Threshold)*10000) / 100
	}
	return progress, true
}

// ListBadges returns the catalog annotated with the user's unlock state
// and progress, for the badge screen.
func (uc *GamificationUseCase) ListBadges(data *entity.UserGameData) []BadgeStatus {
	statuses := make([]BadgeStatus, 0, len(entity.BadgeCatalog))
	for _, def := range entity.BadgeCatalog {
		status := BadgeStatus{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Icon:        def.Icon,
			XPReward:    def.XPReward,
			Unlocked:    data.HasBadge(def.ID),
		}
		if record, ok := data.Achievements[def.ID]; ok {
			unlockedAt := record.UnlockedAt
			status.UnlockedAt = &unlockedAt
		}
		status.Progress, _ = uc.GetBadgeProgress(def.ID, data)
		statuses = append(statuses, status)
	}
	return statuses
}

// GetUserStats is a pure derived rollup for the profile screen.
func (uc *GamificationUseCase) GetUserStats(data *entity.UserGameData) ExtendedStats {
	total := len(entity.BadgeCatalog)
	unlocked := len(data.Badges)

	stats := ExtendedStats{
		UserStats:      data.Stats,
		Level:          data.Level,
		XP:             data.XP,
		XPToNext:       data.XPToNext,
		LevelProgress:  LevelProgress(data.XP),
		CurrentStreak:  data.Streak,
		BadgesUnlocked: unlocked,
		TotalBadges:    total,
	}
	if total > 0 {
		stats.BadgeCompletionRate = math.Round(float64(unlocked)/float64(total)*10000) / 100
	}
	return stats
}

// GetLeaderboard returns the top users ordered by lifetime XP.
func (uc *GamificationUseCase) GetLeaderboard(ctx context.Context, limit int) ([]entity.UserGameData, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return uc.gameDataRepo.GetTopUsers(ctx, limit)
}

// runBadgePass unlocks every catalog badge whose condition holds for
// the post-mutation state. Manual badges are handled at their own call
// sites. Reward XP is not re-applied here; it is display-only.
func (uc *GamificationUseCase) runBadgePass(data *entity.UserGameData) []string {
	unlocked := []string{}
	for _, def := range entity.BadgeCatalog {
		if def.Manual || def.Condition == nil || data.HasBadge(def.ID) {
			continue
		}
		if def.Condition(data) {
			uc.unlockBadge(data, def.ID)
			unlocked = append(unlocked, def.ID)
		}
	}
	return unlocked
}

func (uc *GamificationUseCase) unlockBadge(data *entity.UserGameData, badgeID string) {
	if data.HasBadge(badgeID) {
		return
	}
	def, _ := entity.BadgeByID(badgeID)
	data.Badges = append(data.Badges, badgeID)
	data.Achievements[badgeID] = entity.AchievementRecord{
		UnlockedAt:  uc.now(),
		Progress:    def.Threshold,
		MaxProgress: def.Threshold,
	}
	logger.Info("Badge unlocked: user=%s badge=%s", data.UserID, badgeID)
}

func (uc *GamificationUseCase) notify(userID, eventType string, payload map[string]interface{}) {
	if uc.notifier == nil {
		return
	}
	message := map[string]interface{}{"type": eventType}
	for k, v := range payload {
		message[k] = v
	}
	raw, err := json.Marshal(message)
	if err != nil {
		return
	}
	uc.notifier.SendToUser(userID, raw)
}

func averageVibeRating(data *entity.UserGameData) float64 {
	if len(data.VibesHistory) == 0 {
		return 0
	}
	sum := 0
	for _, v := range data.VibesHistory {
		sum += v.Nota
	}
	avg := float64(sum) / float64(len(data.VibesHistory))
	return math.Round(avg*100) / 100
}

// daysBetween computes whole calendar days from one YYYY-MM-DD date to
// another. Both dates are anchored at UTC midnight so the interval is an
// exact multiple of 24h regardless of DST in the device zone. An
// unparseable previous date counts as a gap.
func daysBetween(from, to string) int {
	fromDay, err := time.Parse(entity.DateLayout, from)
	if err != nil {
		return 2
	}
	toDay, err := time.Parse(entity.DateLayout, to)
	if err != nil {
		return 2
	}
	return int(toDay.Sub(fromDay).Hours() / 24)
}
