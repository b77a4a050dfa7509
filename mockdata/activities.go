// File: /mockdata/activities.go
package mockdata

import (
	"sort"
	"strings"
	"time"

	"xclub-api/models"
	"xclub-api/repositories"
)

// Activities are the static records served when the database is unavailable.
// The fallback response must stay bit-compatible with the real envelope, so
// the list handler works identically in both modes.
var Activities = []models.Activity{
	{
		ID:              "mock-act-001",
		UserID:          "mock-user",
		Name:            "Morning Run - West Lake",
		Type:            models.ActivityTypeRun,
		Status:          models.ActivityStatusSynced,
		Source:          models.ActivitySourceStrava,
		DistanceKm:      8.4,
		DurationSeconds: 2760,
		StartedAt:       time.Date(2025, 6, 1, 5, 30, 0, 0, time.UTC),
	},
	{
		ID:              "mock-act-002",
		UserID:          "mock-user",
		Name:            "Evening Ride",
		Type:            models.ActivityTypeRide,
		Status:          models.ActivityStatusSynced,
		Source:          models.ActivitySourceGarmin,
		DistanceKm:      32.1,
		DurationSeconds: 5400,
		StartedAt:       time.Date(2025, 6, 2, 17, 15, 0, 0, time.UTC),
	},
	{
		ID:              "mock-act-003",
		UserID:          "mock-user",
		Name:            "Recovery Walk",
		Type:            models.ActivityTypeWalk,
		Status:          models.ActivityStatusSynced,
		Source:          models.ActivitySourceManual,
		DistanceKm:      3.2,
		DurationSeconds: 2400,
		StartedAt:       time.Date(2025, 6, 3, 19, 0, 0, 0, time.UTC),
	},
	{
		ID:              "mock-act-004",
		UserID:          "mock-user",
		Name:            "Interval Run - Track",
		Type:            models.ActivityTypeRun,
		Status:          models.ActivityStatusPending,
		Source:          models.ActivitySourceStrava,
		DistanceKm:      6.0,
		DurationSeconds: 1980,
		StartedAt:       time.Date(2025, 6, 4, 5, 45, 0, 0, time.UTC),
	},
	{
		ID:              "mock-act-005",
		UserID:          "mock-user",
		Name:            "Long Ride - Coastal Road",
		Type:            models.ActivityTypeRide,
		Status:          models.ActivityStatusSynced,
		Source:          models.ActivitySourceStrava,
		DistanceKm:      76.8,
		DurationSeconds: 11700,
		StartedAt:       time.Date(2025, 6, 7, 6, 0, 0, 0, time.UTC),
	},
	{
		ID:              "mock-act-006",
		UserID:          "mock-user",
		Name:            "Pool Swim",
		Type:            models.ActivityTypeSwim,
		Status:          models.ActivityStatusFailed,
		Source:          models.ActivitySourceManual,
		DistanceKm:      1.5,
		DurationSeconds: 2100,
		StartedAt:       time.Date(2025, 6, 8, 7, 0, 0, 0, time.UTC),
	},
	{
		ID:              "mock-act-007",
		UserID:          "mock-user",
		Name:            "Night Run - City Loop",
		Type:            models.ActivityTypeRun,
		Status:          models.ActivityStatusSynced,
		Source:          models.ActivitySourceGarmin,
		DistanceKm:      10.2,
		DurationSeconds: 3300,
		StartedAt:       time.Date(2025, 6, 10, 20, 30, 0, 0, time.UTC),
	},
	{
		ID:              "mock-act-008",
		UserID:          "mock-user",
		Name:            "Hill Repeats",
		Type:            models.ActivityTypeRide,
		Status:          models.ActivityStatusSynced,
		Source:          models.ActivitySourceManual,
		DistanceKm:      24.6,
		DurationSeconds: 4500,
		StartedAt:       time.Date(2025, 6, 12, 6, 15, 0, 0, time.UTC),
	},
}

// ListActivities filters and paginates the static records into the same
// envelope the database-backed path returns.
func ListActivities(filters repositories.ActivityFilters) models.ActivityListResponse {
	filters.Normalize()

	filtered := make([]models.Activity, 0, len(Activities))
	for _, a := range Activities {
		if filters.Search != "" && !strings.Contains(strings.ToLower(a.Name), strings.ToLower(filters.Search)) {
			continue
		}
		if filters.Type != "" && string(a.Type) != filters.Type {
			continue
		}
		if filters.Status != "" && string(a.Status) != filters.Status {
			continue
		}
		if filters.Source != "" && string(a.Source) != filters.Source {
			continue
		}
		filtered = append(filtered, a)
	}

	// Newest first, same ordering as the database path
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].StartedAt.After(filtered[j].StartedAt)
	})

	total := int64(len(filtered))
	totalPages := int((total + int64(filters.Limit) - 1) / int64(filters.Limit))

	start := (filters.Page - 1) * filters.Limit
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + filters.Limit
	if end > len(filtered) {
		end = len(filtered)
	}

	return models.ActivityListResponse{
		Data:       filtered[start:end],
		Total:      total,
		Page:       filters.Page,
		Limit:      filters.Limit,
		TotalPages: totalPages,
	}
}
