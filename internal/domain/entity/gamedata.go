package entity

import (
	"time"
)

// DateLayout is the day-granularity date format used for streaks and
// daily challenge keys.
const DateLayout = "2006-01-02"

// UserGameData is the per-user progression document stored at
// users/{userId}/gameData. Field names match the schema the mobile app
// already reads and writes, so the Portuguese keys are kept on the wire.
type UserGameData struct {
	UserID          string                       `firestore:"userId" json:"userId"`
	Level           int                          `firestore:"level" json:"level"`
	XP              int                          `firestore:"xp" json:"xp"`
	XPToNext        int                          `firestore:"xpToNext" json:"xpToNext"`
	EventsAttended  int                          `firestore:"eventosParticipados" json:"eventosParticipados"`
	VibesRated      int                          `firestore:"vibesAvaliadas" json:"vibesAvaliadas"`
	Badges          []string                     `firestore:"badges" json:"badges"`
	Streak          int                          `firestore:"streak" json:"streak"`
	LastLoginDate   string                       `firestore:"lastLoginDate" json:"lastLoginDate"`
	VibesHistory    map[string]VibeRecord        `firestore:"vibesHistory" json:"vibesHistory"`
	EventsHistory   []string                     `firestore:"eventosHistory" json:"eventosHistory"`
	DailyChallenges map[string]DailyChallenge    `firestore:"dailyChallenges" json:"dailyChallenges"`
	Achievements    map[string]AchievementRecord `firestore:"achievements" json:"achievements"`
	Stats           UserStats                    `firestore:"stats" json:"stats"`
	CreatedAt       time.Time                    `firestore:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time                    `firestore:"updatedAt" json:"updatedAt"`
}

// VibeRecord is one rating for one event. Keyed by event id in
// VibesHistory, so a user can never hold two ratings for the same event.
type VibeRecord struct {
	Nota      int   `firestore:"nota" json:"nota"`
	Timestamp int64 `firestore:"timestamp" json:"timestamp"`
}

type DailyChallenge struct {
	VibesRatedToday    int  `firestore:"vibesAvaliadasHoje" json:"vibesAvaliadasHoje"`
	EventsVisitedToday int  `firestore:"eventosVisitadosHoje" json:"eventosVisitadosHoje"`
	Completed          bool `firestore:"completed" json:"completed"`
}

// AchievementRecord is the audit entry paired with every id in Badges.
type AchievementRecord struct {
	UnlockedAt  time.Time `firestore:"unlockedAt" json:"unlockedAt"`
	Progress    int       `firestore:"progress,omitempty" json:"progress,omitempty"`
	MaxProgress int       `firestore:"maxProgress,omitempty" json:"maxProgress,omitempty"`
}

type UserStats struct {
	TotalXPEarned     int     `firestore:"totalXpEarned" json:"totalXpEarned"`
	LongestStreak     int     `firestore:"longestStreak" json:"longestStreak"`
	FavoriteEventType string  `firestore:"favoriteEventType,omitempty" json:"favoriteEventType,omitempty"`
	AverageVibeRating float64 `firestore:"averageVibeRating" json:"averageVibeRating"`
	FirstEventDate    string  `firestore:"firstEventDate,omitempty" json:"firstEventDate,omitempty"`
	LastActivityDate  string  `firestore:"lastActivityDate,omitempty" json:"lastActivityDate,omitempty"`
}

// NewUserGameData returns the default record written on first read.
func NewUserGameData(userID string, now time.Time) *UserGameData {
	return &UserGameData{
		UserID:          userID,
		Level:           1,
		XP:              0,
		XPToNext:        100,
		EventsAttended:  0,
		VibesRated:      0,
		Badges:          []string{},
		Streak:          1,
		LastLoginDate:   now.Format(DateLayout),
		VibesHistory:    map[string]VibeRecord{},
		EventsHistory:   []string{},
		DailyChallenges: map[string]DailyChallenge{},
		Achievements:    map[string]AchievementRecord{},
		Stats: UserStats{
			LongestStreak: 1,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Migrate fills fields that older records wrote without, so documents
// created by earlier app versions read forward-compatibly.
func (d *UserGameData) Migrate() {
	if d.Level < 1 {
		d.Level = 1
	}
	if d.XPToNext <= 0 {
		d.XPToNext = 100
	}
	if d.Badges == nil {
		d.Badges = []string{}
	}
	if d.VibesHistory == nil {
		d.VibesHistory = map[string]VibeRecord{}
	}
	if d.EventsHistory == nil {
		d.EventsHistory = []string{}
	}
	if d.DailyChallenges == nil {
		d.DailyChallenges = map[string]DailyChallenge{}
	}
	if d.Achievements == nil {
		d.Achievements = map[string]AchievementRecord{}
	}
}

func (d *UserGameData) HasBadge(id string) bool {
	for _, b := range d.Badges {
		if b == id {
			return true
		}
	}
	return false
}

// HighVibeCount counts ratings with nota >= min.
func (d *UserGameData) HighVibeCount(min int) int {
	count := 0
	for _, v := range d.VibesHistory {
		if v.Nota >= min {
			count++
		}
	}
	return count
}

// DistinctNotaCount counts how many distinct nota values appear in the
// rating history.
func (d *UserGameData) DistinctNotaCount() int {
	seen := map[int]bool{}
	for _, v := range d.VibesHistory {
		seen[v.Nota] = true
	}
	return len(seen)
}

// HasAttendedEvent reports whether the event was already credited.
func (d *UserGameData) HasAttendedEvent(eventID string) bool {
	for _, id := range d.EventsHistory {
		if id == eventID {
			return true
		}
	}
	return false
}
