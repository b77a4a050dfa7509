package services

import (
	"testing"
	"time"

	"xclub-api/models"
)

func strPtr(s string) *string   { return &s }
func uintPtr(u uint) *uint      { return &u }
func timePtr(t time.Time) *time.Time { return &t }

func TestBuildIndividualEntriesRanking(t *testing.T) {
	early := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	late := time.Date(2025, 6, 12, 8, 0, 0, 0, time.UTC)

	participants := []models.ChallengeParticipant{
		{UserID: strPtr("u-slow"), TotalValue: 40, LastActivityAt: timePtr(late)},
		{UserID: strPtr("u-top"), TotalValue: 90, LastActivityAt: timePtr(late)},
		{UserID: strPtr("u-tie-late"), TotalValue: 60, LastActivityAt: timePtr(late)},
		{UserID: strPtr("u-tie-early"), TotalValue: 60, LastActivityAt: timePtr(early)},
	}

	entries := BuildIndividualEntries(participants, 100)
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}

	wantOrder := []string{"u-top", "u-tie-early", "u-tie-late", "u-slow"}
	for i, want := range wantOrder {
		if entries[i].UserID != want {
			t.Errorf("rank %d: got %q, want %q", i+1, entries[i].UserID, want)
		}
		if entries[i].Rank != i+1 {
			t.Errorf("entry %d has rank %d", i, entries[i].Rank)
		}
	}

	// Progress is a clamped percentage of the target
	if entries[0].Progress != 90 {
		t.Errorf("top progress = %d, want 90", entries[0].Progress)
	}
}

func TestBuildIndividualEntriesOvershootClamps(t *testing.T) {
	participants := []models.ChallengeParticipant{
		{UserID: strPtr("u1"), TotalValue: 250},
	}
	entries := BuildIndividualEntries(participants, 100)
	if entries[0].Progress != 100 {
		t.Errorf("progress = %d, want 100 after clamp", entries[0].Progress)
	}
}

func TestBuildIndividualEntriesEmptyIsNotError(t *testing.T) {
	entries := BuildIndividualEntries(nil, 100)
	if entries == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

func TestBuildIndividualEntriesMissingActivityLosesTie(t *testing.T) {
	at := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	participants := []models.ChallengeParticipant{
		{UserID: strPtr("u-none"), TotalValue: 50},
		{UserID: strPtr("u-some"), TotalValue: 50, LastActivityAt: timePtr(at)},
	}
	entries := BuildIndividualEntries(participants, 100)
	if entries[0].UserID != "u-some" {
		t.Errorf("participant with recorded activity should win the tie, got %q first", entries[0].UserID)
	}
}

func TestBuildTeamEntries(t *testing.T) {
	teams := []models.ChallengeTeam{
		{ID: 1, Name: "Sunrise Runners"},
		{ID: 2, Name: "Night Owls"},
	}
	participants := []models.ChallengeParticipant{
		{TeamID: uintPtr(1), TotalValue: 30},
		{TeamID: uintPtr(1), TotalValue: 50},
		{TeamID: uintPtr(2), TotalValue: 60},
		{TeamID: uintPtr(2), TotalValue: 10},
	}

	entries := BuildTeamEntries(teams, participants, 0, 100)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Team != "Sunrise Runners" || entries[0].TotalDistance != 80 {
		t.Errorf("rank 1 = %q with %v, want Sunrise Runners with 80", entries[0].Team, entries[0].TotalDistance)
	}
	if entries[0].AverageDistance != 40 {
		t.Errorf("average = %v, want total/members = 40", entries[0].AverageDistance)
	}
	if entries[1].Rank != 2 {
		t.Errorf("second entry rank = %d, want 2", entries[1].Rank)
	}
}

func TestBuildTeamEntriesContributionCap(t *testing.T) {
	teams := []models.ChallengeTeam{{ID: 1, Name: "Carried"}}
	participants := []models.ChallengeParticipant{
		{TeamID: uintPtr(1), TotalValue: 500}, // way past the cap
		{TeamID: uintPtr(1), TotalValue: 20},
	}

	// Cap: one member contributes at most 40% of the 100 target
	entries := BuildTeamEntries(teams, participants, 40, 100)
	if entries[0].TotalDistance != 60 { // 40 capped + 20
		t.Errorf("capped total = %v, want 60", entries[0].TotalDistance)
	}
}

func TestBuildTeamEntriesEmptyTeam(t *testing.T) {
	teams := []models.ChallengeTeam{{ID: 1, Name: "Ghosts"}}
	entries := BuildTeamEntries(teams, nil, 0, 100)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].TotalDistance != 0 || entries[0].AverageDistance != 0 {
		t.Errorf("empty team should have zero totals, got %+v", entries[0])
	}
}

func TestComputeCompletionStats(t *testing.T) {
	joined := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	participants := []models.ChallengeParticipant{
		{Status: models.ParticipantStatusPending, JoinedAt: joined},
		{Status: models.ParticipantStatusActive, JoinedAt: joined},
		{Status: models.ParticipantStatusActive, JoinedAt: joined},
		{Status: models.ParticipantStatusCompleted, JoinedAt: joined, CompletedAt: timePtr(joined.Add(24 * time.Hour))},
		{Status: models.ParticipantStatusCompleted, JoinedAt: joined, CompletedAt: timePtr(joined.Add(72 * time.Hour))},
	}

	stats := ComputeCompletionStats(participants)
	if stats.TotalParticipants != 5 {
		t.Errorf("total = %d, want 5", stats.TotalParticipants)
	}
	if stats.PendingParticipants != 1 || stats.ActiveParticipants != 2 || stats.CompletedParticipants != 2 {
		t.Errorf("counts = %d/%d/%d, want 1/2/2",
			stats.PendingParticipants, stats.ActiveParticipants, stats.CompletedParticipants)
	}
	if stats.CompletionRate != 40 {
		t.Errorf("completion rate = %v, want 40", stats.CompletionRate)
	}
	if stats.AverageCompletionTime == nil || *stats.AverageCompletionTime != 48 {
		t.Errorf("average completion = %v, want 48 hours", stats.AverageCompletionTime)
	}
	if stats.FastestCompletion == nil || *stats.FastestCompletion != 24 {
		t.Errorf("fastest = %v, want 24", stats.FastestCompletion)
	}
	if stats.SlowestCompletion == nil || *stats.SlowestCompletion != 72 {
		t.Errorf("slowest = %v, want 72", stats.SlowestCompletion)
	}
}

func TestComputeCompletionStatsEmpty(t *testing.T) {
	stats := ComputeCompletionStats(nil)
	if stats.TotalParticipants != 0 || stats.CompletionRate != 0 {
		t.Errorf("empty stats should be zero, got %+v", stats)
	}
	if stats.AverageCompletionTime != nil {
		t.Error("average completion should be nil with no completions")
	}
}
