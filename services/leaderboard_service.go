// File: /services/leaderboard_service.go
package services

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"xclub-api/cache"
	"xclub-api/lifecycle"
	"xclub-api/models"
)

// LeaderboardService owns all ranking and completion arithmetic. Clients
// render its output as-is; none of this is recomputed on the frontend.
type LeaderboardService struct {
	db    *gorm.DB
	cache *cache.LeaderboardCache
}

func NewLeaderboardService(db *gorm.DB, lbCache *cache.LeaderboardCache) *LeaderboardService {
	return &LeaderboardService{db: db, cache: lbCache}
}

// ChallengeDashboard bundles everything the challenge detail page needs in
// one response.
type ChallengeDashboard struct {
	Leaderboard     []models.LeaderboardEntry     `json:"leaderboard"`
	TeamLeaderboard []models.TeamLeaderboardEntry `json:"team_leaderboard,omitempty"`
	CompletionStats models.CompletionStats        `json:"completion_stats"`
}

// IndividualLeaderboard returns the ranked individual board for a challenge.
// An empty board is a valid result, never an error.
func (s *LeaderboardService) IndividualLeaderboard(ctx context.Context, ch *models.Challenge) ([]models.LeaderboardEntry, error) {
	if entries, ok := s.cache.GetIndividual(ctx, ch.ID); ok {
		return entries, nil
	}

	var participants []models.ChallengeParticipant
	err := s.db.WithContext(ctx).Preload("User").
		Where("challenge_id = ?", ch.ID).
		Where("user_id IS NOT NULL").
		Where("status IN ?", []models.ParticipantStatus{models.ParticipantStatusActive, models.ParticipantStatusCompleted}).
		Find(&participants).Error
	if err != nil {
		return nil, err
	}

	entries := BuildIndividualEntries(participants, ch.TargetValue)
	s.cache.SetIndividual(ctx, ch.ID, entries)
	return entries, nil
}

// TeamLeaderboard returns the ranked team board for a team challenge.
func (s *LeaderboardService) TeamLeaderboard(ctx context.Context, ch *models.Challenge) ([]models.TeamLeaderboardEntry, error) {
	if entries, ok := s.cache.GetTeam(ctx, ch.ID); ok {
		return entries, nil
	}

	var teams []models.ChallengeTeam
	if err := s.db.WithContext(ctx).Where("challenge_id = ?", ch.ID).Find(&teams).Error; err != nil {
		return nil, err
	}

	var participants []models.ChallengeParticipant
	err := s.db.WithContext(ctx).
		Where("challenge_id = ?", ch.ID).
		Where("team_id IS NOT NULL").
		Where("status IN ?", []models.ParticipantStatus{models.ParticipantStatusActive, models.ParticipantStatusCompleted}).
		Find(&participants).Error
	if err != nil {
		return nil, err
	}

	entries := BuildTeamEntries(teams, participants, ch.MaxIndividualContribution, ch.TargetValue)
	s.cache.SetTeam(ctx, ch.ID, entries)
	return entries, nil
}

// CompletionStats aggregates participant counts and completion times.
func (s *LeaderboardService) CompletionStats(ctx context.Context, ch *models.Challenge) (models.CompletionStats, error) {
	var participants []models.ChallengeParticipant
	err := s.db.WithContext(ctx).Where("challenge_id = ?", ch.ID).Find(&participants).Error
	if err != nil {
		return models.CompletionStats{}, err
	}
	return ComputeCompletionStats(participants), nil
}

// Dashboard assembles leaderboard, team leaderboard and completion stats in
// parallel. The team board is skipped for individual challenges.
func (s *LeaderboardService) Dashboard(ctx context.Context, ch *models.Challenge) (*ChallengeDashboard, error) {
	dashboard := &ChallengeDashboard{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		entries, err := s.IndividualLeaderboard(gctx, ch)
		if err != nil {
			return err
		}
		dashboard.Leaderboard = entries
		return nil
	})
	if ch.Category == models.ChallengeCategoryTeam {
		g.Go(func() error {
			entries, err := s.TeamLeaderboard(gctx, ch)
			if err != nil {
				return err
			}
			dashboard.TeamLeaderboard = entries
			return nil
		})
	}
	g.Go(func() error {
		stats, err := s.CompletionStats(gctx, ch)
		if err != nil {
			return err
		}
		dashboard.CompletionStats = stats
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dashboard, nil
}

// Invalidate drops cached boards after a write that changes standings.
func (s *LeaderboardService) Invalidate(ctx context.Context, challengeID string) {
	s.cache.Invalidate(ctx, challengeID)
}

// BuildIndividualEntries ranks participants by total value, descending.
// Ties are broken by the earlier last activity: whoever reached the total
// first ranks higher. Participants without any activity sort last among
// equals. Always returns a non-nil slice.
func BuildIndividualEntries(participants []models.ChallengeParticipant, targetValue float64) []models.LeaderboardEntry {
	sorted := make([]models.ChallengeParticipant, len(participants))
	copy(sorted, participants)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].TotalValue != sorted[j].TotalValue {
			return sorted[i].TotalValue > sorted[j].TotalValue
		}
		return earlierActivity(sorted[i].LastActivityAt, sorted[j].LastActivityAt)
	})

	entries := make([]models.LeaderboardEntry, 0, len(sorted))
	for i, p := range sorted {
		entry := models.LeaderboardEntry{
			Rank:         i + 1,
			Progress:     lifecycle.ProgressPercent(p.TotalValue, targetValue),
			TotalValue:   p.TotalValue,
			LastActivity: p.LastActivityAt,
		}
		if p.UserID != nil {
			entry.UserID = *p.UserID
		}
		if p.User != nil {
			entry.Name = p.User.Name
			entry.Avatar = p.User.Avatar
		}
		entries = append(entries, entry)
	}
	return entries
}

// earlierActivity orders two optional activity times: an earlier time wins,
// a missing time loses.
func earlierActivity(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.Before(*b)
}

// BuildTeamEntries computes capped team totals and ranks them. When
// maxContributionPercent is set, one member may contribute at most that
// percentage of the challenge target to the team total, so a single strong
// member cannot carry the whole team.
func BuildTeamEntries(teams []models.ChallengeTeam, participants []models.ChallengeParticipant, maxContributionPercent, targetValue float64) []models.TeamLeaderboardEntry {
	totals := make(map[uint]float64, len(teams))
	counts := make(map[uint]int, len(teams))
	lastByTeam := make(map[uint]*time.Time, len(teams))

	for _, p := range participants {
		if p.TeamID == nil {
			continue
		}
		contribution := p.TotalValue
		if maxContributionPercent > 0 && targetValue > 0 {
			ceiling := maxContributionPercent / 100 * targetValue
			if contribution > ceiling {
				contribution = ceiling
			}
		}
		totals[*p.TeamID] += contribution
		counts[*p.TeamID]++
		// A team "reached" its total at its most recent member activity;
		// the earlier of those wins ties between teams.
		if p.LastActivityAt != nil {
			if last, ok := lastByTeam[*p.TeamID]; !ok || p.LastActivityAt.After(*last) {
				lastByTeam[*p.TeamID] = p.LastActivityAt
			}
		}
	}

	entries := make([]models.TeamLeaderboardEntry, 0, len(teams))
	for _, team := range teams {
		memberCount := counts[team.ID]
		total := totals[team.ID]
		average := 0.0
		if memberCount > 0 {
			average = total / float64(memberCount)
		}
		entries = append(entries, models.TeamLeaderboardEntry{
			TeamID:          team.ID,
			Team:            team.Name,
			MemberCount:     memberCount,
			TotalDistance:   total,
			AverageDistance: average,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalDistance != entries[j].TotalDistance {
			return entries[i].TotalDistance > entries[j].TotalDistance
		}
		return earlierActivity(lastByTeam[entries[i].TeamID], lastByTeam[entries[j].TeamID])
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// ComputeCompletionStats derives the completion aggregate from raw
// participant rows. Completion times are hours between joining and
// completing.
func ComputeCompletionStats(participants []models.ChallengeParticipant) models.CompletionStats {
	stats := models.CompletionStats{TotalParticipants: len(participants)}

	var durations []float64
	for _, p := range participants {
		switch p.Status {
		case models.ParticipantStatusPending:
			stats.PendingParticipants++
		case models.ParticipantStatusActive:
			stats.ActiveParticipants++
		case models.ParticipantStatusCompleted:
			stats.CompletedParticipants++
			if p.CompletedAt != nil {
				durations = append(durations, p.CompletedAt.Sub(p.JoinedAt).Hours())
			}
		}
	}

	if stats.TotalParticipants > 0 {
		stats.CompletionRate = float64(stats.CompletedParticipants) / float64(stats.TotalParticipants) * 100
	}

	if len(durations) > 0 {
		sum := 0.0
		fastest := durations[0]
		slowest := durations[0]
		for _, d := range durations {
			sum += d
			if d < fastest {
				fastest = d
			}
			if d > slowest {
				slowest = d
			}
		}
		average := sum / float64(len(durations))
		stats.AverageCompletionTime = &average
		stats.FastestCompletion = &fastest
		stats.SlowestCompletion = &slowest
	}

	return stats
}
