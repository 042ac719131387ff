package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"piauitickets/internal/domain/entity"
)

func testEngine(repo *fakeGameDataRepo, at time.Time) *GamificationUseCase {
	uc := NewGamificationUseCase(repo, nil)
	uc.now = func() time.Time { return at }
	return uc
}

func noonOn(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.Local)
}

func TestLoadCreatesDefaultRecord(t *testing.T) {
	repo := newFakeGameDataRepo()
	uc := testEngine(repo, noonOn(2026, time.March, 10))

	data := uc.LoadUserGameData(context.Background(), "12345678900")

	require.NotNil(t, data)
	assert.Equal(t, 1, data.Level)
	assert.Equal(t, 0, data.XP)
	assert.Equal(t, 0, data.VibesRated)
	assert.Equal(t, 0, data.EventsAttended)
	assert.Empty(t, data.Badges)
	assert.Contains(t, repo.records, "12345678900")
}

func TestLoadFallsBackOnStoreError(t *testing.T) {
	repo := newFakeGameDataRepo()
	repo.getErr = errors.New("store unreachable")
	uc := testEngine(repo, noonOn(2026, time.March, 10))

	data := uc.LoadUserGameData(context.Background(), "12345678900")

	require.NotNil(t, data)
	assert.Equal(t, 1, data.Level)
	assert.Equal(t, 0, data.XP)
}

func TestLoadMigratesLegacyRecord(t *testing.T) {
	repo := newFakeGameDataRepo()
	at := noonOn(2026, time.March, 10)
	repo.records["u1"] = &entity.UserGameData{
		UserID:        "u1",
		XP:            50,
		Level:         1,
		XPToNext:      100,
		LastLoginDate: at.Format(entity.DateLayout),
	}
	uc := testEngine(repo, at)

	data := uc.LoadUserGameData(context.Background(), "u1")

	assert.NotNil(t, data.VibesHistory)
	assert.NotNil(t, data.DailyChallenges)
	assert.NotNil(t, data.Achievements)
	assert.NotNil(t, data.Badges)
	assert.NotNil(t, data.EventsHistory)
}

func TestAddXPNeverDecreases(t *testing.T) {
	repo := newFakeGameDataRepo()
	at := noonOn(2026, time.March, 10)
	uc := testEngine(repo, at)
	data := entity.NewUserGameData("u1", at)

	prev := data.XP
	for _, amount := range []int{10, 0, 25, 110, 5, 0, 300} {
		result, err := uc.AddXP(context.Background(), "u1", data, amount, "test")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.Data.XP, prev)
		assert.Equal(t, LevelFromXP(result.Data.XP), result.Data.Level)
		assert.Equal(t, XPForNextLevel(result.Data.Level), result.Data.XPToNext)
		prev = result.Data.XP
	}
}

func TestAddXPRejectsNegativeAmount(t *testing.T) {
	repo := newFakeGameDataRepo()
	at := noonOn(2026, time.March, 10)
	uc := testEngine(repo, at)
	data := entity.NewUserGameData("u1", at)

	_, err := uc.AddXP(context.Background(), "u1", data, -5, "test")
	assert.Error(t, err)
	assert.Equal(t, 0, data.XP)
}

func TestAddXPLevelUp(t *testing.T) {
	repo := newFakeGameDataRepo()
	at := noonOn(2026, time.March, 10)
	uc := testEngine(repo, at)
	data := entity.NewUserGameData("u1", at)

	result, err := uc.AddXP(context.Background(), "u1", data, 100, "test")
	require.NoError(t, err)
	assert.True(t, result.LeveledUp)
	assert.Equal(t, 2, result.Data.Level)
	assert.Equal(t, 120, result.Data.XPToNext)
}

func TestAddXPSurfacesPersistError(t *testing.T) {
	repo := newFakeGameDataRepo()
	repo.updateErr = errors.New("write failed")
	at := noonOn(2026, time.March, 10)
	uc := testEngine(repo, at)
	data := entity.NewUserGameData("u1", at)

	_, err := uc.AddXP(context.Background(), "u1", data, 10, "test")
	assert.Error(t, err)
}

func TestEventParticipationIsIdempotent(t *testing.T) {
	repo := newFakeGameDataRepo()
	at := noonOn(2026, time.March, 10)
	uc := testEngine(repo, at)
	data := entity.NewUserGameData("u1", at)

	first, err := uc.RegisterEventParticipation(context.Background(), "u1", data, "ev1")
	require.NoError(t, err)
	assert.Equal(t, 1, first.Data.EventsAttended)
	assert.Equal(t, 25, first.Data.XP)
	assert.Contains(t, first.Data.Badges, "first_event")

	second, err := uc.RegisterEventParticipation(context.Background(), "u1", data, "ev1")
	require.NoError(t, err)
	assert.Equal(t, 1, second.Data.EventsAttended)
	assert.Equal(t, []string{"ev1"}, second.Data.EventsHistory)
	assert.Equal(t, 25, second.Data.XP)
	assert.False(t, second.LeveledUp)
	assert.Empty(t, second.UnlockedBadges)
}

func TestEventParticipationSetsFirstEventDate(t *testing.T) {
	repo := newFakeGameDataRepo()
	at := noonOn(2026, time.March, 10)
	uc := testEngine(repo, at)
	data := entity.NewUserGameData("u1", at)

	_, err := uc.RegisterEventParticipation(context.Background(), "u1", data, "ev1")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10", data.Stats.FirstEventDate)

	_, err = uc.RegisterEventParticipation(context.Background(), "u1", data, "ev2")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10", data.Stats.FirstEventDate)
}

func TestVibeReRatingKeepsSingleHistoryEntry(t *testing.T) {
	repo := newFakeGameDataRepo()
	at := noonOn(2026, time.March, 10)
	uc := testEngine(repo, at)
	data := entity.NewUserGameData("u1", at)

	_, err := uc.RegisterVibeEvaluated(context.Background(), "u1", data, "ev1", 3)
	require.NoError(t, err)
	_, err = uc.RegisterVibeEvaluated(context.Background(), "u1", data, "ev1", 5)
	require.NoError(t, err)

	// One history slot per event, but the counter counts every call.
	require.Len(t, data.VibesHistory, 1)
	assert.Equal(t, 5, data.VibesHistory["ev1"].Nota)
	assert.Equal(t, 2, data.VibesRated)
}

func TestVibeRejectsOutOfRangeNota(t *testing.T) {
	repo := newFakeGameDataRepo()
	at := noonOn(2026, time.March, 10)
	uc := testEngine(repo, at)
	data := entity.NewUserGameData("u1", at)

	for _, nota := range []int{0, 6, -1} {
		_, err := uc.RegisterVibeEvaluated(context.Background(), "u1", data, "ev1", nota)
		assert.Error(t, err, "nota %d", nota)
	}
	assert.Empty(t, data.VibesHistory)
}

func TestAverageVibeRatingRounded(t *testing.T) {
	repo := newFakeGameDataRepo()
	at := noonOn(2026, time.March, 10)
	uc := testEngine(repo, at)
	data := entity.NewUserGameData("u1", at)

	_, err := uc.RegisterVibeEvaluated(context.Background(), "u1", data, "ev1", 5)
	require.NoError(t, err)
	_, err = uc.RegisterVibeEvaluated(context.Background(), "u1", data, "ev2", 4)
	require.NoError(t, err)
	assert.Equal(t, 4.5, data.Stats.AverageVibeRating)

	_, err = uc.RegisterVibeEvaluated(context.Background(), "u1", data, "ev3", 4)
	require.NoError(t, err)
	assert.Equal(t, 4.33, data.Stats.AverageVibeRating)
}

func TestDailyChallengeCompletesOnce(t *testing.T) {
	repo := newFakeGameDataRepo()
	at := noonOn(2026, time.March, 10)
	uc := testEngine(repo, at)
	data := entity.NewUserGameData("u1", at)

	first, err := uc.RegisterVibeEvaluated(context.Background(), "u1", data, "ev1", 5)
	require.NoError(t, err)
	assert.False(t, first.ChallengeCompleted)

	second, err := uc.RegisterVibeEvaluated(context.Background(), "u1", data, "ev2", 5)
	require.NoError(t, err)
	assert.False(t, second.ChallengeCompleted)

	third, err := uc.RegisterVibeEvaluated(context.Background(), "u1", data, "ev3", 5)
	require.NoError(t, err)
	assert.True(t, third.ChallengeCompleted)

	fourth, err := uc.RegisterVibeEvaluated(context.Background(), "u1", data, "ev4", 5)
	require.NoError(t, err)
	assert.False(t, fourth.ChallengeCompleted)

	today := at.Format(entity.DateLayout)
	assert.True(t, data.DailyChallenges[today].Completed)
	assert.Equal(t, 4, data.DailyChallenges[today].VibesRatedToday)
}

func TestBadgeUnlockIsMonotonicAndDeduplicated(t *testing.T) {
	repo := newFakeGameDataRepo()
	at := noonOn(2026, time.March, 10)
	uc := testEngine(repo, at)
	data := entity.NewUserGameData("u1", at)

	for i := 0; i < 12; i++ {
		_, err := uc.RegisterVibeEvaluated(context.Background(), "u1", data, "ev"+string(rune('a'+i)), 5)
		require.NoError(t, err)
	}

	assert.Contains(t, data.Badges, "first_vibe")
	assert.Contains(t, data.Badges, "vibe_master")

	seen := map[string]int{}
	for _, id := range data.Badges {
		seen[id]++
	}
	for id, count := range seen {
		assert.Equal(t, 1, count, "badge %s duplicated", id)
	}

	// Every unlocked badge carries an audit record.
	for _, id := range data.Badges {
		_, ok := data.Achievements[id]
		assert.True(t, ok, "badge %s has no achievement record", id)
	}
}

func TestStreakIncrementsOnConsecutiveDay(t *testing.T) {
	repo := newFakeGameDataRepo()
	at := noonOn(2026, time.March, 10)
	uc := testEngine(repo, at)

	data := entity.NewUserGameData("u1", at.AddDate(0, 0, -1))
	data.Streak = 3
	data.Stats.LongestStreak = 3

	require.NoError(t, uc.UpdateStreakAndLogin(context.Background(), "u1", data))
	assert.Equal(t, 4, data.Streak)
	assert.Equal(t, 4, data.Stats.LongestStreak)
	assert.Equal(t, "2026-03-10", data.LastLoginDate)
}

func TestStreakResetsAfterGap(t *testing.T) {
	repo := newFakeGameDataRepo()
	at := noonOn(2026, time.March, 10)
	uc := testEngine(repo, at)

	data := entity.NewUserGameData("u1", at.AddDate(0, 0, -5))
	data.Streak = 9
	data.Stats.LongestStreak = 9

	require.NoError(t, uc.UpdateStreakAndLogin(context.Background(), "u1", data))
	assert.Equal(t, 1, data.Streak)
	assert.Equal(t, 9, data.Stats.LongestStreak)
}

func TestStreakSameDayIsNoOp(t *testing.T) {
	repo := newFakeGameDataRepo()
	at := noonOn(2026, time.March, 10)
	uc := testEngine(repo, at)

	data := entity.NewUserGameData("u1", at)
	data.Streak = 2

	require.NoError(t, uc.UpdateStreakAndLogin(context.Background(), "u1", data))
	assert.Equal(t, 2, data.Streak)
	assert.Empty(t, repo.updates)
}

func TestDaysBetweenSpansDSTTransition(t *testing.T) {
	// US spring-forward was on 2025-03-09; the wall-clock interval from
	// the 8th to the 10th is 47h in a DST zone, still 2 calendar days.
	assert.Equal(t, 2, daysBetween("2025-03-08", "2025-03-10"))
	assert.Equal(t, 1, daysBetween("2025-03-08", "2025-03-09"))
	assert.Equal(t, 1, daysBetween("2025-03-09", "2025-03-10"))
	assert.Equal(t, 0, daysBetween("2025-03-09", "2025-03-09"))
}

func TestStreakResetsAcrossDSTGap(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	repo := newFakeGameDataRepo()
	at := time.Date(2025, time.March, 10, 12, 0, 0, 0, loc)
	uc := testEngine(repo, at)

	data := entity.NewUserGameData("u1", time.Date(2025, time.March, 8, 12, 0, 0, 0, loc))
	data.Streak = 6
	data.Stats.LongestStreak = 6

	require.NoError(t, uc.UpdateStreakAndLogin(context.Background(), "u1", data))
	assert.Equal(t, 1, data.Streak)
	assert.Equal(t, "2025-03-10", data.LastLoginDate)
}

func TestStreakIncrementsAcrossDSTDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	repo := newFakeGameDataRepo()
	at := time.Date(2025, time.March, 9, 12, 0, 0, 0, loc)
	uc := testEngine(repo, at)

	data := entity.NewUserGameData("u1", time.Date(2025, time.March, 8, 12, 0, 0, 0, loc))
	data.Streak = 6
	data.Stats.LongestStreak = 6

	require.NoError(t, uc.UpdateStreakAndLogin(context.Background(), "u1", data))
	assert.Equal(t, 7, data.Streak)
	assert.Equal(t, 7, data.Stats.LongestStreak)
}

func TestEarlyBirdUnlockedBeforeEight(t *testing.T) {
	repo := newFakeGameDataRepo()
	at := time.Date(2026, time.March, 10, 7, 30, 0, 0, time.Local)
	uc := testEngine(repo, at)

	data := entity.NewUserGameData("u1", at.AddDate(0, 0, -1))

	require.NoError(t, uc.UpdateStreakAndLogin(context.Background(), "u1", data))
	assert.Contains(t, data.Badges, "early_bird")
	_, ok := data.Achievements["early_bird"]
	assert.True(t, ok)
}

func TestEarlyBirdNotUnlockedAtNoon(t *testing.T) {
	repo := newFakeGameDataRepo()
	at := noonOn(2026, time.March, 10)
	uc := testEngine(repo, at)

	data := entity.NewUserGameData("u1", at.AddDate(0, 0, -1))

	require.NoError(t, uc.UpdateStreakAndLogin(context.Background(), "u1", data))
	assert.NotContains(t, data.Badges, "early_bird")
}

func TestGetBadgeProgress(t *testing.T) {
	repo := newFakeGameDataRepo()
	at := noonOn(2026, time.March, 10)
	uc := testEngine(repo, at)
	data := entity.NewUserGameData("u1", at)
	data.VibesRated = 4

	progress, ok := uc.GetBadgeProgress("vibe_master", data)
	require.True(t, ok)
	assert.Equal(t, 4, progress.Current)
	assert.Equal(t, 10, progress.Max)
	assert.Equal(t, 40.0, progress.Percentage)

	data.VibesRated = 25
	progress, ok = uc.GetBadgeProgress("vibe_master", data)
	require.True(t, ok)
	assert.Equal(t, 10, progress.Current)
	assert.Equal(t, 100.0, progress.Percentage)

	_, ok = uc.GetBadgeProgress("no_such_badge", data)
	assert.False(t, ok)
}

func TestGetUserStats(t *testing.T) {
	repo := newFakeGameDataRepo()
	at := noonOn(2026, time.March, 10)
	uc := testEngine(repo, at)
	data := entity.NewUserGameData("u1", at)
	data.XP = 150
	data.Level = LevelFromXP(150)
	data.Badges = []string{"first_vibe", "first_event"}

	stats := uc.GetUserStats(data)
	assert.Equal(t, 2, stats.Level)
	assert.Equal(t, 2, stats.BadgesUnlocked)
	assert.Equal(t, len(entity.BadgeCatalog), stats.TotalBadges)
	assert.Greater(t, stats.BadgeCompletionRate, 0.0)
	assert.GreaterOrEqual(t, stats.LevelProgress, 0.0)
	assert.Less(t, stats.LevelProgress, 1.0)
}

func TestNewUserThreeVibesScenario(t *testing.T) {
	repo := newFakeGameDataRepo()
	at := noonOn(2026, time.March, 10)
	uc := testEngine(repo, at)

	data := uc.LoadUserGameData(context.Background(), "u1")
	require.Equal(t, 0, data.XP)
	require.Equal(t, 1, data.Level)

	var last *VibeResult
	for _, eventID := range []string{"ev1", "ev2", "ev3"} {
		result, err := uc.RegisterVibeEvaluated(context.Background(), "u1", data, eventID, 5)
		require.NoError(t, err)
		last = result
	}

	assert.Equal(t, 3, data.VibesRated)
	assert.Contains(t, data.Badges, "first_vibe")
	assert.True(t, last.ChallengeCompleted)

	today := at.Format(entity.DateLayout)
	assert.True(t, data.DailyChallenges[today].Completed)

	// 10 + 10 + (10 + 50) from the completed daily challenge.
	assert.Equal(t, 80, data.XP)
	assert.Equal(t, LevelFromXP(80), data.Level)
}
