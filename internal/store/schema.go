package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names of the local journal.
const (
	tableAttempts     = "paper_attempts"
	tableRewardEvents = "reward_events"
	tableProfiles     = "profiles"
)

var (
	// AttemptsColumns holds the columns for the "paper_attempts" table.
	AttemptsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "local_id", Type: field.TypeString, Unique: true},
		{Name: "remote_id", Type: field.TypeInt64, Nullable: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "player", Type: field.TypeString, Default: ""},
		{Name: "paper_title", Type: field.TypeString},
		{Name: "paper_level", Type: field.TypeString},
		{Name: "seed", Type: field.TypeInt64, Default: 0},
		{Name: "total_questions", Type: field.TypeInt},
		{Name: "correct_answers", Type: field.TypeInt},
		{Name: "wrong_answers", Type: field.TypeInt},
		{Name: "accuracy", Type: field.TypeFloat64},
		{Name: "score", Type: field.TypeInt},
		{Name: "points_earned", Type: field.TypeInt},
		{Name: "time_taken_ms", Type: field.TypeInt64},
		{Name: "paper_config", Type: field.TypeString, Size: 1 << 20, Default: ""},
		{Name: "completed_at", Type: field.TypeInt64},
	}
	// AttemptsTable holds the schema information for the "paper_attempts" table.
	AttemptsTable = &schema.Table{
		Name:       tableAttempts,
		Columns:    AttemptsColumns,
		PrimaryKey: []*schema.Column{AttemptsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "paperattempt_player_completed_at", Columns: []*schema.Column{AttemptsColumns[4], AttemptsColumns[16]}},
		},
	}

	// RewardEventsColumns holds the columns for the "reward_events" table.
	RewardEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "player", Type: field.TypeString, Default: ""},
		{Name: "kind", Type: field.TypeString},
		{Name: "points", Type: field.TypeInt, Default: 0},
		{Name: "badge", Type: field.TypeString, Default: ""},
		{Name: "attempt_id", Type: field.TypeString, Default: ""},
		{Name: "reason", Type: field.TypeString, Default: ""},
	}
	// RewardEventsTable holds the schema information for the "reward_events" table.
	RewardEventsTable = &schema.Table{
		Name:       tableRewardEvents,
		Columns:    RewardEventsColumns,
		PrimaryKey: []*schema.Column{RewardEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "rewardevent_player_kind_timestamp", Columns: []*schema.Column{RewardEventsColumns[3], RewardEventsColumns[4], RewardEventsColumns[2]}},
		},
	}

	// ProfilesColumns holds the columns for the "profiles" table.
	ProfilesColumns = []*schema.Column{
		{Name: "player", Type: field.TypeString},
		{Name: "total_points", Type: field.TypeInt, Default: 0},
		{Name: "current_streak", Type: field.TypeInt, Default: 0},
		{Name: "longest_streak", Type: field.TypeInt, Default: 0},
		{Name: "last_active", Type: field.TypeInt64, Default: 0},
	}
	// ProfilesTable holds the schema information for the "profiles" table.
	ProfilesTable = &schema.Table{
		Name:       tableProfiles,
		Columns:    ProfilesColumns,
		PrimaryKey: []*schema.Column{ProfilesColumns[0]},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		AttemptsTable,
		RewardEventsTable,
		ProfilesTable,
	}
)
