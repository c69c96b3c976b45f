package rewards

// Badge identifies a one-time achievement.
type Badge string

const (
	BadgeAccuracyKing Badge = "accuracy_king"
	BadgeSpeedStar    Badge = "speed_star"
	BadgePerfectScore Badge = "perfect_score"
	BadgeStreak7      Badge = "streak_7"
	BadgeStreak30     Badge = "streak_30"
)

// AllBadges returns all badges in display order.
func AllBadges() []Badge {
	return []Badge{BadgeAccuracyKing, BadgeSpeedStar, BadgePerfectScore, BadgeStreak7, BadgeStreak30}
}

// DisplayName returns a human-readable label for the badge.
func (b Badge) DisplayName() string {
	switch b {
	case BadgeAccuracyKing:
		return "Accuracy King"
	case BadgeSpeedStar:
		return "Speed Star"
	case BadgePerfectScore:
		return "Perfect Score"
	case BadgeStreak7:
		return "7-Day Streak"
	case BadgeStreak30:
		return "30-Day Streak"
	default:
		return string(b)
	}
}

// Icon returns the display icon for the badge.
func (b Badge) Icon() string {
	switch b {
	case BadgeAccuracyKing:
		return "👑"
	case BadgeSpeedStar:
		return "⚡"
	case BadgePerfectScore:
		return "💯"
	case BadgeStreak7, BadgeStreak30:
		return "🔥"
	default:
		return "✦"
	}
}
