package rewards

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/talenthub/internal/store"
)

// Award is what a recorded attempt earned.
type Award struct {
	Attempt   store.AttemptRecord
	Points    int
	Profile   store.Profile
	NewBadges []Badge
}

// Service journals attempts and keeps points, streaks and badges current.
type Service struct {
	journal  store.Journal
	attempts store.AttemptRepo
	rewards  store.RewardRepo
	log      *zap.Logger
	now      func() time.Time
}

// NewService creates a Service over journal. A nil logger discards log
// output.
func NewService(journal store.Journal, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		journal:  journal,
		attempts: journal.AttemptRepo(),
		rewards:  journal.RewardRepo(),
		log:      log,
		now:      time.Now,
	}
}

// RecordAttempt journals a completed attempt and applies its rewards in one
// transaction. When rec.Points is zero it is computed from the correct
// answers.
func (s *Service) RecordAttempt(ctx context.Context, rec store.AttemptRecord) (*Award, error) {
	if rec.CompletedAt.IsZero() {
		rec.CompletedAt = s.now()
	}
	if rec.Points == 0 {
		rec.Points = AttemptPoints(rec.Correct)
	}

	var award *Award
	err := s.journal.InTx(ctx, func(attempts store.AttemptRepo, rewards store.RewardRepo) error {
		var err error
		award, err = apply(ctx, attempts, rewards, rec)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("record attempt: %w", err)
	}

	s.log.Info("attempt recorded",
		zap.String("attempt", award.Attempt.LocalID),
		zap.String("player", rec.Player),
		zap.Int("points", award.Points),
		zap.Int("streak", award.Profile.CurrentStreak),
		zap.Int("new_badges", len(award.NewBadges)),
	)
	return award, nil
}

// RecordPractice journals a practice run. It is rewarded with practice
// points for the difficulty instead of the flat per-answer rate.
func (s *Service) RecordPractice(ctx context.Context, rec store.AttemptRecord, d Difficulty) (*Award, error) {
	rec.Points = PracticePoints(Session{
		Total:     rec.Total,
		Correct:   rec.Correct,
		Accuracy:  rec.Accuracy,
		TimeTaken: rec.TimeTaken,
	}, d)
	return s.RecordAttempt(ctx, rec)
}

// apply saves rec and the points, profile and badges it earns.
func apply(ctx context.Context, attempts store.AttemptRepo, rewards store.RewardRepo, rec store.AttemptRecord) (*Award, error) {
	if err := attempts.Save(ctx, &rec); err != nil {
		return nil, err
	}

	if rec.Points > 0 {
		err := rewards.AppendPoints(ctx, store.RewardEvent{
			Timestamp: rec.CompletedAt,
			Player:    rec.Player,
			Points:    rec.Points,
			AttemptID: rec.LocalID,
			Reason:    fmt.Sprintf("%d correct in %s", rec.Correct, rec.PaperTitle),
		})
		if err != nil {
			return nil, err
		}
	}

	profile, err := rewards.Profile(ctx, rec.Player)
	if err != nil {
		return nil, err
	}
	streak := NextStreak(Streak{
		Current:    profile.CurrentStreak,
		Longest:    profile.LongestStreak,
		LastActive: profile.LastActive,
	}, rec.CompletedAt)
	profile.TotalPoints += rec.Points
	profile.CurrentStreak = streak.Current
	profile.LongestStreak = streak.Longest
	profile.LastActive = streak.LastActive
	if err := rewards.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}

	award := &Award{Attempt: rec, Points: rec.Points, Profile: profile}
	session := Session{Total: rec.Total, Correct: rec.Correct, Accuracy: rec.Accuracy, TimeTaken: rec.TimeTaken}
	for _, b := range EvaluateBadges(session, streak.Current) {
		ok, err := rewards.AwardBadge(ctx, store.RewardEvent{
			Timestamp: rec.CompletedAt,
			Player:    rec.Player,
			Badge:     string(b),
			AttemptID: rec.LocalID,
			Reason:    b.DisplayName(),
		})
		if err != nil {
			return nil, err
		}
		if ok {
			award.NewBadges = append(award.NewBadges, b)
		}
	}
	return award, nil
}

// Profile returns the player's running totals.
func (s *Service) Profile(ctx context.Context, player string) (store.Profile, error) {
	return s.rewards.Profile(ctx, player)
}

// Badges returns the badges a player holds, in the order they were earned.
func (s *Service) Badges(ctx context.Context, player string) ([]Badge, error) {
	events, err := s.rewards.Badges(ctx, player)
	if err != nil {
		return nil, err
	}
	out := make([]Badge, 0, len(events))
	for _, ev := range events {
		out = append(out, Badge(ev.Badge))
	}
	return out, nil
}

// Leaderboard ranks players by the points earned since Monday.
func (s *Service) Leaderboard(ctx context.Context) ([]Entry, error) {
	points, err := s.rewards.PointsSince(ctx, WeekStart(s.now()))
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	return Rank(points), nil
}

// WeekLedger returns the player's reward events since Monday, oldest
// first.
func (s *Service) WeekLedger(ctx context.Context, player string) ([]store.RewardEvent, error) {
	events, err := s.rewards.QueryEvents(ctx, player, store.QueryOpts{From: WeekStart(s.now())})
	if err != nil {
		return nil, fmt.Errorf("week ledger: %w", err)
	}
	return events, nil
}

// History returns a player's most recent attempts, newest first. A
// non-positive limit returns them all.
func (s *Service) History(ctx context.Context, player string, limit int) ([]store.AttemptRecord, error) {
	recs, err := s.attempts.List(ctx, player, store.QueryOpts{Limit: max(limit, 0)})
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return recs, nil
}

// Stats aggregates every attempt the player has journaled.
func (s *Service) Stats(ctx context.Context, player string) (store.AttemptStats, error) {
	st, err := s.attempts.Stats(ctx, player)
	if err != nil {
		return store.AttemptStats{}, fmt.Errorf("stats: %w", err)
	}
	return st, nil
}
