package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

var attemptColumns = []string{
	"id", "local_id", "remote_id", "sequence", "player", "paper_title", "paper_level", "seed",
	"total_questions", "correct_answers", "wrong_answers", "accuracy", "score", "points_earned",
	"time_taken_ms", "paper_config", "completed_at",
}

type attemptRepo struct {
	db  querier
	seq *sequenceCounter
}

func (r *attemptRepo) Save(ctx context.Context, rec *AttemptRecord) error {
	seq, err := r.seq.Next(ctx, r.db)
	if err != nil {
		return err
	}
	if rec.LocalID == "" {
		rec.LocalID = uuid.NewString()
	}
	if rec.CompletedAt.IsZero() {
		rec.CompletedAt = time.Now()
	}
	var remote any
	if rec.RemoteID != nil {
		remote = *rec.RemoteID
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableAttempts).
		Columns(attemptColumns[1:]...).
		Values(
			rec.LocalID, remote, seq, rec.Player, rec.PaperTitle, rec.PaperLevel, rec.Seed,
			rec.Total, rec.Correct, rec.Wrong, rec.Accuracy, rec.Score, rec.Points,
			rec.TimeTaken.Milliseconds(), rec.PaperConfig, rec.CompletedAt.UnixMilli(),
		).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	rec.ID = int(id)
	rec.Sequence = seq
	return nil
}

func (r *attemptRepo) Get(ctx context.Context, localID string) (*AttemptRecord, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(attemptColumns...).
		From(entsql.Table(tableAttempts)).
		Where(entsql.EQ("local_id", localID)).
		Query()
	rec, err := scanAttempt(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("attempt %s: %w", localID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get attempt: %w", err)
	}
	return rec, nil
}

func (r *attemptRepo) List(ctx context.Context, player string, opts QueryOpts) ([]AttemptRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(attemptColumns...).
		From(entsql.Table(tableAttempts)).
		Where(entsql.EQ("player", player))
	applyOpts(sel, "completed_at", opts)
	sel.OrderBy(entsql.Desc("sequence"))

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var out []AttemptRecord
	for rows.Next() {
		rec, err := scanAttempt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (r *attemptRepo) Stats(ctx context.Context, player string) (AttemptStats, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(
			entsql.Count("*"),
			entsql.Sum("total_questions"),
			entsql.Sum("correct_answers"),
			entsql.Sum("points_earned"),
			entsql.Max("score"),
			entsql.Avg("accuracy"),
			entsql.Sum("time_taken_ms"),
		).
		From(entsql.Table(tableAttempts)).
		Where(entsql.EQ("player", player)).
		Query()

	var (
		st                                   AttemptStats
		questions, correct, points, best, ms sql.NullInt64
		acc                                  sql.NullFloat64
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&st.Attempts, &questions, &correct, &points, &best, &acc, &ms)
	if err != nil {
		return AttemptStats{}, fmt.Errorf("attempt stats: %w", err)
	}
	st.Questions = int(questions.Int64)
	st.Correct = int(correct.Int64)
	st.Points = int(points.Int64)
	st.BestScore = int(best.Int64)
	st.AvgAccuracy = acc.Float64
	st.TotalTime = time.Duration(ms.Int64) * time.Millisecond
	return st, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAttempt(row rowScanner) (*AttemptRecord, error) {
	var (
		rec        AttemptRecord
		remote     sql.NullInt64
		ms, doneAt int64
	)
	err := row.Scan(
		&rec.ID, &rec.LocalID, &remote, &rec.Sequence, &rec.Player, &rec.PaperTitle, &rec.PaperLevel, &rec.Seed,
		&rec.Total, &rec.Correct, &rec.Wrong, &rec.Accuracy, &rec.Score, &rec.Points,
		&ms, &rec.PaperConfig, &doneAt,
	)
	if err != nil {
		return nil, err
	}
	if remote.Valid {
		id := remote.Int64
		rec.RemoteID = &id
	}
	rec.TimeTaken = time.Duration(ms) * time.Millisecond
	rec.CompletedAt = time.UnixMilli(doneAt)
	return &rec, nil
}

// applyOpts adds the QueryOpts filters to sel. tsCol is the column holding
// the unix-millisecond timestamp.
func applyOpts(sel *entsql.Selector, tsCol string, opts QueryOpts) {
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE(tsCol, opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE(tsCol, opts.To.UnixMilli()))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}
