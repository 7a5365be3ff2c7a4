package progress

import (
	"context"
	"testing"
	"time"

	"github.com/Pottaprashanth/Interview-preparation-hub/internal/infra/memory"
)

var day = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

func TestReadinessDefaultsAndClamps(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewKV())

	if got := svc.Readiness(ctx); got != 50 {
		t.Fatalf("expected default 50, got %d", got)
	}

	score, err := svc.AdjustReadiness(ctx, 60, day)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if score != 100 {
		t.Fatalf("expected clamp to 100, got %d", score)
	}

	score, err = svc.AdjustReadiness(ctx, -250, day)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if score != 0 {
		t.Fatalf("expected clamp to 0, got %d", score)
	}
}

func TestReadinessHistoryCapped(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewKV())

	for i := 0; i < 35; i++ {
		if _, err := svc.AdjustReadiness(ctx, 1, day.Add(time.Duration(i)*time.Hour)); err != nil {
			t.Fatalf("adjust %d: %v", i, err)
		}
	}

	points := svc.ReadinessHistory(ctx)
	if len(points) != 30 {
		t.Fatalf("expected 30 samples, got %d", len(points))
	}
	// oldest-first: the last sample is the most recent adjustment
	if !points[len(points)-1].At.After(points[0].At) {
		t.Fatalf("expected oldest-first ordering")
	}
}

func TestAwardBadgeDeduplicates(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewKV())

	fresh, err := svc.AwardBadge(ctx, BadgeFirstMock)
	if err != nil || !fresh {
		t.Fatalf("expected new badge, fresh=%v err=%v", fresh, err)
	}
	fresh, err = svc.AwardBadge(ctx, BadgeFirstMock)
	if err != nil || fresh {
		t.Fatalf("expected duplicate award to be a no-op, fresh=%v err=%v", fresh, err)
	}
	if badges := svc.Badges(ctx); len(badges) != 1 {
		t.Fatalf("expected 1 badge, got %v", badges)
	}
}

func TestLeaderboardSorted(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewKV())

	for user, pts := range map[string]int{"Alice": 30, "Bob": 10, "Cara": 30} {
		if err := svc.AddPoints(ctx, user, pts); err != nil {
			t.Fatalf("add points: %v", err)
		}
	}

	entries := svc.Leaderboard(ctx)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].User != "Alice" || entries[1].User != "Cara" || entries[2].User != "Bob" {
		t.Fatalf("unexpected order %+v", entries)
	}
}

func TestCheckInStreak(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewKV())

	streak, checkedIn, err := svc.CheckIn(ctx, day)
	if err != nil || !checkedIn || streak.Count != 1 {
		t.Fatalf("first check-in: %+v checkedIn=%v err=%v", streak, checkedIn, err)
	}

	// same day again: no-op
	streak, checkedIn, err = svc.CheckIn(ctx, day.Add(2*time.Hour))
	if err != nil || checkedIn || streak.Count != 1 {
		t.Fatalf("repeat check-in: %+v checkedIn=%v err=%v", streak, checkedIn, err)
	}

	// next day grows the streak
	streak, _, err = svc.CheckIn(ctx, day.AddDate(0, 0, 1))
	if err != nil || streak.Count != 2 {
		t.Fatalf("second day: %+v err=%v", streak, err)
	}

	// a gap resets to 1
	streak, _, err = svc.CheckIn(ctx, day.AddDate(0, 0, 5))
	if err != nil || streak.Count != 1 {
		t.Fatalf("after gap: %+v err=%v", streak, err)
	}
}

func TestCheckInMilestoneBadges(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewKV())

	for i := 0; i < 7; i++ {
		if _, _, err := svc.CheckIn(ctx, day.AddDate(0, 0, i)); err != nil {
			t.Fatalf("check-in %d: %v", i, err)
		}
	}

	badges := svc.Badges(ctx)
	if !contains(badges, BadgeStreak3) || !contains(badges, BadgeStreak7) {
		t.Fatalf("expected streak badges, got %v", badges)
	}

	entries := svc.Leaderboard(ctx)
	if len(entries) != 1 || entries[0].User != DefaultUser || entries[0].Points != 70 {
		t.Fatalf("expected 70 points for %s, got %+v", DefaultUser, entries)
	}
}

func TestCorruptStateFallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKV()
	for _, key := range []string{"readiness", "badges", "leaderboard", "streak", "readinessHistory"} {
		if err := kv.Set(ctx, key, []byte("#corrupt#")); err != nil {
			t.Fatalf("seed %s: %v", key, err)
		}
	}

	svc := NewService(kv)
	if got := svc.Readiness(ctx); got != 50 {
		t.Fatalf("readiness: expected default, got %d", got)
	}
	if got := svc.Badges(ctx); len(got) != 0 {
		t.Fatalf("badges: expected empty, got %v", got)
	}
	if got := svc.Leaderboard(ctx); len(got) != 0 {
		t.Fatalf("leaderboard: expected empty, got %v", got)
	}
	if got := svc.Streak(ctx); got.Count != 0 {
		t.Fatalf("streak: expected zero, got %+v", got)
	}
	if got := svc.ReadinessHistory(ctx); len(got) != 0 {
		t.Fatalf("history: expected empty, got %v", got)
	}
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
