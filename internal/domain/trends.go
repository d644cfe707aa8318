package domain

import (
	"time"

	"github.com/google/uuid"
)

// TrendsDashboard is the precomputed wellness metrics document shown on
// the trends screen. It is stored as one JSONB document per user and is
// placeholder data in this design, not the output of an analytics
// pipeline.
type TrendsDashboard struct {
	UserID          uuid.UUID        `json:"user_id"`
	DailySnapshot   DailySnapshot    `json:"daily_snapshot"`
	MoodSummary     MoodSummary      `json:"mood_summary"`
	Streaks         Streaks          `json:"streaks"`
	TopTags         []string         `json:"top_tags"`
	SentimentArc    SentimentArc     `json:"sentiment_arc"`
	JournalingTrend JournalingTrend  `json:"journaling_trends"`
	WellnessJourney WellnessJourney  `json:"wellness_journey"`
	CommunityTrends CommunityTrends  `json:"community_trends"`
	Leaderboard     []LeaderboardRow `json:"leaderboard"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

type DailySnapshot struct {
	JournalsLogged    int    `json:"journals_logged"`
	JourneysCompleted int    `json:"journeys_completed"`
	AvgHeartRate      int    `json:"avg_heart_rate"`
	StressLevel       string `json:"stress_level"`
}

type MoodPoint struct {
	Time  string `json:"time"`
	Mood  string `json:"mood"`
	Color string `json:"color"`
}

type MoodSummary struct {
	TodayMood string      `json:"today_mood"`
	Emoji     string      `json:"emoji"`
	Timeline  []MoodPoint `json:"timeline"`
	Note      string      `json:"note"`
}

type CalendarDay struct {
	Date   time.Time `json:"date"`
	Logged bool      `json:"logged"`
}

type Streaks struct {
	CurrentStreak int           `json:"current_streak"`
	LongestStreak int           `json:"longest_streak"`
	Calendar      []CalendarDay `json:"calendar"`
}

type DayScore struct {
	Date  time.Time `json:"date"`
	Score float64   `json:"score"`
}

type SentimentArc struct {
	Range string     `json:"range"`
	Days  []DayScore `json:"days"`
	Note  string     `json:"note"`
}

type JournalingTrend struct {
	DaysJournaling    int      `json:"days_journaling"`
	ToneChangePercent int      `json:"tone_change_percent"`
	TopTags           []string `json:"top_tags"`
}

type PieSlice struct {
	Label   string  `json:"label"`
	Percent float64 `json:"percent"`
}

type JourneyDay struct {
	Date      time.Time `json:"date"`
	Completed int       `json:"completed"`
	Skipped   int       `json:"skipped"`
}

type WellnessJourney struct {
	Pie      []PieSlice   `json:"pie"`
	Timeline []JourneyDay `json:"timeline"`
}

type CommunityTrends struct {
	SupportReactions   int    `json:"support_reactions"`
	MostEngagedJournal string `json:"most_engaged_journal"`
	MostEngagedJourney string `json:"most_engaged_journey"`
}

type LeaderboardRow struct {
	Name      string `json:"name"`
	Points    int    `json:"points"`
	Rank      int    `json:"rank"`
	AvatarURL string `json:"avatar_url"`
}
