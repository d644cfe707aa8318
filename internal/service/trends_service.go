package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/muudhq/muud-backend/internal/cache"
	"github.com/muudhq/muud-backend/internal/domain"
	"github.com/muudhq/muud-backend/internal/repository"
)

// TrendsService serves the precomputed wellness dashboard. Reads go
// through a cache-aside layer; the dashboard is seeded with placeholder
// defaults on first read, matching what the trends screen renders today.
type TrendsService struct {
	trends repository.TrendsRepository
	cache  *cache.Cache
	logger *zap.SugaredLogger
}

func NewTrendsService(trends repository.TrendsRepository, c *cache.Cache, logger *zap.SugaredLogger) *TrendsService {
	return &TrendsService{trends: trends, cache: c, logger: logger}
}

func (s *TrendsService) Get(ctx context.Context, userID uuid.UUID) (*domain.TrendsDashboard, error) {
	key := cacheKey(userID)

	var cached domain.TrendsDashboard
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		s.logger.Warnw("trends cache read failed", "error", err)
	} else if hit {
		return &cached, nil
	}

	dashboard, err := s.trends.GetByUser(ctx, userID)
	if err != nil {
		return nil, storeErr("loading dashboard", err)
	}
	if dashboard == nil {
		dashboard = defaultDashboard(userID)
		if err := s.trends.Upsert(ctx, dashboard); err != nil {
			return nil, storeErr("seeding dashboard", err)
		}
	}

	if err := s.cache.Set(ctx, key, dashboard); err != nil {
		s.logger.Warnw("trends cache write failed", "error", err)
	}
	return dashboard, nil
}

// DashboardUpdate carries the sections a PATCH may replace; nil sections
// are left untouched.
type DashboardUpdate struct {
	DailySnapshot   *domain.DailySnapshot    `json:"daily_snapshot"`
	MoodSummary     *domain.MoodSummary      `json:"mood_summary"`
	Streaks         *domain.Streaks          `json:"streaks"`
	TopTags         *[]string                `json:"top_tags"`
	SentimentArc    *domain.SentimentArc     `json:"sentiment_arc"`
	JournalingTrend *domain.JournalingTrend  `json:"journaling_trends"`
	WellnessJourney *domain.WellnessJourney  `json:"wellness_journey"`
	CommunityTrends *domain.CommunityTrends  `json:"community_trends"`
	Leaderboard     *[]domain.LeaderboardRow `json:"leaderboard"`
}

func (s *TrendsService) Update(ctx context.Context, userID uuid.UUID, update DashboardUpdate) (*domain.TrendsDashboard, error) {
	dashboard, err := s.trends.GetByUser(ctx, userID)
	if err != nil {
		return nil, storeErr("loading dashboard", err)
	}
	if dashboard == nil {
		dashboard = defaultDashboard(userID)
	}

	if update.DailySnapshot != nil {
		dashboard.DailySnapshot = *update.DailySnapshot
	}
	if update.MoodSummary != nil {
		dashboard.MoodSummary = *update.MoodSummary
	}
	if update.Streaks != nil {
		dashboard.Streaks = *update.Streaks
	}
	if update.TopTags != nil {
		dashboard.TopTags = *update.TopTags
	}
	if update.SentimentArc != nil {
		dashboard.SentimentArc = *update.SentimentArc
	}
	if update.JournalingTrend != nil {
		dashboard.JournalingTrend = *update.JournalingTrend
	}
	if update.WellnessJourney != nil {
		dashboard.WellnessJourney = *update.WellnessJourney
	}
	if update.CommunityTrends != nil {
		dashboard.CommunityTrends = *update.CommunityTrends
	}
	if update.Leaderboard != nil {
		dashboard.Leaderboard = *update.Leaderboard
	}
	dashboard.UpdatedAt = time.Now()

	if err := s.trends.Upsert(ctx, dashboard); err != nil {
		return nil, storeErr("saving dashboard", err)
	}

	if err := s.cache.Delete(ctx, cacheKey(userID)); err != nil {
		s.logger.Warnw("trends cache invalidation failed", "error", err)
	}
	return dashboard, nil
}

func cacheKey(userID uuid.UUID) string {
	return "trends:" + userID.String()
}

// defaultDashboard mirrors the placeholder content the mobile dashboard
// ships with before any real metrics exist.
func defaultDashboard(userID uuid.UUID) *domain.TrendsDashboard {
	now := time.Now()
	day := 24 * time.Hour

	return &domain.TrendsDashboard{
		UserID: userID,
		DailySnapshot: domain.DailySnapshot{
			JournalsLogged:    30,
			JourneysCompleted: 24,
			AvgHeartRate:      72,
			StressLevel:       "Moderate",
		},
		MoodSummary: domain.MoodSummary{
			TodayMood: "Happy",
			Emoji:     "😊",
			Timeline: []domain.MoodPoint{
				{Time: "9 AM", Mood: "Calm", Color: "#A5D6A7"},
				{Time: "12 PM", Mood: "Focused", Color: "#FFECB3"},
				{Time: "6 PM", Mood: "Happy", Color: "#FFD54F"},
			},
			Note: "Your MUUD was positive overall this week.",
		},
		Streaks: domain.Streaks{
			CurrentStreak: 5,
			LongestStreak: 7,
			Calendar:      []domain.CalendarDay{{Date: now, Logged: true}},
		},
		TopTags: []string{"#happy", "#grateful", "#hopeful", "#overwhelmed"},
		SentimentArc: domain.SentimentArc{
			Range: "last_7_days",
			Days: []domain.DayScore{
				{Date: now.Add(-6 * day), Score: 0.2},
				{Date: now.Add(-5 * day), Score: 0.4},
				{Date: now.Add(-4 * day), Score: 0.7},
				{Date: now.Add(-3 * day), Score: 0.8},
				{Date: now.Add(-2 * day), Score: 0.5},
				{Date: now.Add(-1 * day), Score: 0.6},
				{Date: now, Score: 0.9},
			},
			Note: "You've been trending more positive last week 🌟",
		},
		JournalingTrend: domain.JournalingTrend{
			DaysJournaling:    10,
			ToneChangePercent: 20,
			TopTags:           []string{"#grateful", "#hopeful", "#calm"},
		},
		WellnessJourney: domain.WellnessJourney{
			Pie: []domain.PieSlice{
				{Label: "Mindfulness", Percent: 60},
				{Label: "Journaling", Percent: 30},
				{Label: "Fitness", Percent: 10},
			},
			Timeline: []domain.JourneyDay{
				{Date: now.Add(-3 * day), Completed: 2, Skipped: 1},
				{Date: now.Add(-2 * day), Completed: 3, Skipped: 0},
			},
		},
		CommunityTrends: domain.CommunityTrends{
			SupportReactions:   8,
			MostEngagedJournal: "Sunday Reflection",
			MostEngagedJourney: "7-Day Calm Challenge",
		},
		Leaderboard: []domain.LeaderboardRow{
			{Name: "Bryan Wolf", Points: 43, Rank: 1},
			{Name: "Meghan Jes...", Points: 40, Rank: 2},
			{Name: "Alex Turner", Points: 38, Rank: 3},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
