// Package progress implements the gamified tracking: readiness score and its
// chart history, badges, the points leaderboard, and the daily streak. All
// state lives in the shared store, one key each, and every read tolerates
// absent or corrupt blobs by falling back to its documented default.
package progress

import (
	"context"
	"sort"
	"time"

	"github.com/Pottaprashanth/Interview-preparation-hub/internal/domain"
	"github.com/Pottaprashanth/Interview-preparation-hub/internal/storage"
)

const (
	keyReadiness        = "readiness"
	keyReadinessHistory = "readinessHistory"
	keyBadges           = "badges"
	keyLeaderboard      = "leaderboard"
	keyStreak           = "streak"
)

const (
	defaultReadiness    = 50
	maxReadinessPoints  = 30
	pointsPerActivity   = 10
	leaderboardTopLimit = 10
)

// Badge names awarded by the hub's flows.
const (
	BadgeFirstMock      = "First Mock Attempt"
	BadgeFinisher       = "Finisher"
	BadgeDiligentLogger = "Diligent Logger"
	BadgeStreak3        = "3-Day Streak"
	BadgeStreak7        = "7-Day Streak"
)

// DefaultUser is the single local profile the hub tracks points for.
const DefaultUser = "You"

type Service struct {
	store storage.Store
}

func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// Readiness returns the current 0-100 score, defaulting to 50.
func (s *Service) Readiness(ctx context.Context) int {
	return s.clamp(storage.Get(ctx, s.store, keyReadiness, defaultReadiness))
}

// AdjustReadiness shifts the score by delta, clamped to 0-100, and appends a
// sample to the chart history (oldest-first, capped at 30).
func (s *Service) AdjustReadiness(ctx context.Context, delta int, now time.Time) (int, error) {
	score := s.clamp(s.Readiness(ctx) + delta)
	if err := storage.Set(ctx, s.store, keyReadiness, score); err != nil {
		return score, err
	}
	points := append(s.ReadinessHistory(ctx), domain.ReadinessPoint{At: now, Score: score})
	if len(points) > maxReadinessPoints {
		points = points[len(points)-maxReadinessPoints:]
	}
	return score, storage.Set(ctx, s.store, keyReadinessHistory, points)
}

// ReadinessHistory returns the chart samples, oldest first.
func (s *Service) ReadinessHistory(ctx context.Context) []domain.ReadinessPoint {
	return storage.Get(ctx, s.store, keyReadinessHistory, []domain.ReadinessPoint{})
}

func (s *Service) clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// AwardBadge adds a badge to the earned set. Returns true when the badge is
// new; awarding an already-held badge changes nothing.
func (s *Service) AwardBadge(ctx context.Context, name string) (bool, error) {
	badges := s.Badges(ctx)
	for _, b := range badges {
		if b == name {
			return false, nil
		}
	}
	return true, storage.Set(ctx, s.store, keyBadges, append(badges, name))
}

// Badges returns the earned badge set in award order.
func (s *Service) Badges(ctx context.Context) []string {
	return storage.Get(ctx, s.store, keyBadges, []string{})
}

// AddPoints credits a user on the leaderboard.
func (s *Service) AddPoints(ctx context.Context, user string, points int) error {
	board := storage.Get(ctx, s.store, keyLeaderboard, map[string]int{})
	board[user] += points
	return storage.Set(ctx, s.store, keyLeaderboard, board)
}

// Leaderboard returns the top entries, points descending, name ascending on
// ties.
func (s *Service) Leaderboard(ctx context.Context) []domain.LeaderboardEntry {
	board := storage.Get(ctx, s.store, keyLeaderboard, map[string]int{})
	entries := make([]domain.LeaderboardEntry, 0, len(board))
	for user, points := range board {
		entries = append(entries, domain.LeaderboardEntry{User: user, Points: points})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].User < entries[j].User
	})
	if len(entries) > leaderboardTopLimit {
		entries = entries[:leaderboardTopLimit]
	}
	return entries
}

// Streak returns the current check-in streak.
func (s *Service) Streak(ctx context.Context) domain.Streak {
	return storage.Get(ctx, s.store, keyStreak, domain.Streak{})
}

// CheckIn records today's check-in. A repeat on the same UTC day is a no-op
// (checkedIn=false). Consecutive days grow the count, a gap resets it to 1;
// milestone badges land at 3 and 7 days and each check-in earns points.
func (s *Service) CheckIn(ctx context.Context, now time.Time) (streak domain.Streak, checkedIn bool, err error) {
	today := dayKey(now)
	streak = s.Streak(ctx)
	if streak.Last == today {
		return streak, false, nil
	}
	if streak.Last == dayKey(now.AddDate(0, 0, -1)) {
		streak.Count++
	} else {
		streak.Count = 1
	}
	streak.Last = today
	if err := storage.Set(ctx, s.store, keyStreak, streak); err != nil {
		return streak, false, err
	}
	if err := s.AddPoints(ctx, DefaultUser, pointsPerActivity); err != nil {
		return streak, true, err
	}
	if streak.Count == 3 {
		if _, err := s.AwardBadge(ctx, BadgeStreak3); err != nil {
			return streak, true, err
		}
	}
	if streak.Count == 7 {
		if _, err := s.AwardBadge(ctx, BadgeStreak7); err != nil {
			return streak, true, err
		}
	}
	return streak, true, nil
}

// dayKey is the UTC calendar date, matching how check-ins group days.
func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
