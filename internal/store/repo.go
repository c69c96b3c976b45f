package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// QueryOpts configures journal queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// AttemptRecord is one completed paper attempt.
type AttemptRecord struct {
	ID          int
	LocalID     string
	RemoteID    *int64 // attempt id on the service, nil when scored offline
	Sequence    int64
	Player      string
	PaperTitle  string
	PaperLevel  string
	Seed        int64
	Total       int
	Correct     int
	Wrong       int
	Accuracy    float64
	Score       int
	Points      int
	TimeTaken   time.Duration
	PaperConfig string // YAML of the paper that was attempted
	CompletedAt time.Time
}

// AttemptStats aggregates a player's attempts.
type AttemptStats struct {
	Attempts    int
	Questions   int
	Correct     int
	Points      int
	BestScore   int
	AvgAccuracy float64
	TotalTime   time.Duration
}

// AttemptRepo journals completed attempts.
type AttemptRepo interface {
	// Save appends a new attempt. A missing LocalID is generated; ID and
	// Sequence are assigned on return.
	Save(ctx context.Context, rec *AttemptRecord) error

	// Get returns the attempt with the given local id or ErrNotFound.
	Get(ctx context.Context, localID string) (*AttemptRecord, error)

	// List returns a player's attempts, newest first.
	List(ctx context.Context, player string, opts QueryOpts) ([]AttemptRecord, error)

	// Stats aggregates all of a player's attempts.
	Stats(ctx context.Context, player string) (AttemptStats, error)
}

// Reward event kinds.
const (
	RewardPoints = "points"
	RewardBadge  = "badge"
)

// RewardEvent is one entry of the rewards ledger.
type RewardEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Player    string
	Kind      string
	Points    int
	Badge     string
	AttemptID string
	Reason    string
}

// Profile is the running per-player reward state.
type Profile struct {
	Player        string
	TotalPoints   int
	CurrentStreak int
	LongestStreak int
	LastActive    time.Time // zero when the player has never been active
}

// RewardRepo keeps the rewards ledger and player profiles.
type RewardRepo interface {
	// AppendPoints records points earned by a player.
	AppendPoints(ctx context.Context, ev RewardEvent) error

	// AwardBadge records a badge unless the player already has it. It
	// reports whether the badge was newly awarded.
	AwardBadge(ctx context.Context, ev RewardEvent) (bool, error)

	// Badges returns the badges a player holds, oldest first.
	Badges(ctx context.Context, player string) ([]RewardEvent, error)

	// PointsSince sums the points of every player earned at or after since.
	PointsSince(ctx context.Context, since time.Time) (map[string]int, error)

	// QueryEvents returns a player's ledger entries, oldest first.
	QueryEvents(ctx context.Context, player string, opts QueryOpts) ([]RewardEvent, error)

	// Profile returns the player's profile, or a zero profile for new players.
	Profile(ctx context.Context, player string) (Profile, error)

	// SaveProfile inserts or replaces a profile.
	SaveProfile(ctx context.Context, p Profile) error
}

// Journal hands out repositories, either on their own or bound to one
// transaction.
type Journal interface {
	AttemptRepo() AttemptRepo
	RewardRepo() RewardRepo

	// InTx runs fn with repositories that share one transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(AttemptRepo, RewardRepo) error) error
}
