package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

var rewardColumns = []string{
	"id", "sequence", "timestamp", "player", "kind", "points", "badge", "attempt_id", "reason",
}

type rewardRepo struct {
	db  querier
	seq *sequenceCounter
}

func (r *rewardRepo) AppendPoints(ctx context.Context, ev RewardEvent) error {
	ev.Kind = RewardPoints
	ev.Badge = ""
	return r.append(ctx, &ev)
}

func (r *rewardRepo) AwardBadge(ctx context.Context, ev RewardEvent) (bool, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(entsql.Count("*")).
		From(entsql.Table(tableRewardEvents)).
		Where(entsql.And(
			entsql.EQ("player", ev.Player),
			entsql.EQ("kind", RewardBadge),
			entsql.EQ("badge", ev.Badge),
		)).
		Query()
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("check badge: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	ev.Kind = RewardBadge
	ev.Points = 0
	if err := r.append(ctx, &ev); err != nil {
		return false, err
	}
	return true, nil
}

func (r *rewardRepo) append(ctx context.Context, ev *RewardEvent) error {
	seq, err := r.seq.Next(ctx, r.db)
	if err != nil {
		return err
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableRewardEvents).
		Columns(rewardColumns[1:]...).
		Values(seq, ev.Timestamp.UnixMilli(), ev.Player, ev.Kind, ev.Points, ev.Badge, ev.AttemptID, ev.Reason).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append %s event: %w", ev.Kind, err)
	}
	ev.Sequence = seq
	return nil
}

func (r *rewardRepo) Badges(ctx context.Context, player string) ([]RewardEvent, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(rewardColumns...).
		From(entsql.Table(tableRewardEvents)).
		Where(entsql.And(entsql.EQ("player", player), entsql.EQ("kind", RewardBadge))).
		OrderBy("sequence")
	return r.query(ctx, sel)
}

func (r *rewardRepo) QueryEvents(ctx context.Context, player string, opts QueryOpts) ([]RewardEvent, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(rewardColumns...).
		From(entsql.Table(tableRewardEvents)).
		Where(entsql.EQ("player", player))
	applyOpts(sel, "timestamp", opts)
	sel.OrderBy("sequence")
	return r.query(ctx, sel)
}

func (r *rewardRepo) query(ctx context.Context, sel *entsql.Selector) ([]RewardEvent, error) {
	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reward events: %w", err)
	}
	defer rows.Close()

	var out []RewardEvent
	for rows.Next() {
		var (
			ev RewardEvent
			ts int64
		)
		if err := rows.Scan(&ev.ID, &ev.Sequence, &ts, &ev.Player, &ev.Kind, &ev.Points, &ev.Badge, &ev.AttemptID, &ev.Reason); err != nil {
			return nil, fmt.Errorf("scan reward event: %w", err)
		}
		ev.Timestamp = time.UnixMilli(ts)
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (r *rewardRepo) PointsSince(ctx context.Context, since time.Time) (map[string]int, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("player", entsql.Sum("points")).
		From(entsql.Table(tableRewardEvents)).
		Where(entsql.And(
			entsql.EQ("kind", RewardPoints),
			entsql.GTE("timestamp", since.UnixMilli()),
		)).
		GroupBy("player").
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("points since: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			player string
			pts    int
		)
		if err := rows.Scan(&player, &pts); err != nil {
			return nil, fmt.Errorf("scan points: %w", err)
		}
		out[player] = pts
	}
	return out, rows.Err()
}

func (r *rewardRepo) Profile(ctx context.Context, player string) (Profile, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("player", "total_points", "current_streak", "longest_streak", "last_active").
		From(entsql.Table(tableProfiles)).
		Where(entsql.EQ("player", player)).
		Query()
	var (
		p    Profile
		last int64
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&p.Player, &p.TotalPoints, &p.CurrentStreak, &p.LongestStreak, &last)
	if err == sql.ErrNoRows {
		return Profile{Player: player}, nil
	}
	if err != nil {
		return Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if last > 0 {
		p.LastActive = time.UnixMilli(last)
	}
	return p, nil
}

func (r *rewardRepo) SaveProfile(ctx context.Context, p Profile) error {
	var last int64
	if !p.LastActive.IsZero() {
		last = p.LastActive.UnixMilli()
	}
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableProfiles).
		Columns("player", "total_points", "current_streak", "longest_streak", "last_active").
		Values(p.Player, p.TotalPoints, p.CurrentStreak, p.LongestStreak, last).
		OnConflict(entsql.ConflictColumns("player"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
