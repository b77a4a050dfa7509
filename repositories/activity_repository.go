package repositories

import (
	"time"

	"gorm.io/gorm"
	"xclub-api/models"
)

// ActivityFilters are the supported activity list filters. Zero values mean
// "no filter"; Page/Limit are normalized by the repository.
type ActivityFilters struct {
	Search string
	Type   string
	Status string
	Source string
	Page   int
	Limit  int
}

// Normalize clamps pagination to sane bounds.
func (f *ActivityFilters) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 50 {
		f.Limit = 10
	}
}

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// List returns a page of activities for a user plus the total matching count.
func (r *ActivityRepository) List(userID string, filters ActivityFilters) ([]models.Activity, int64, error) {
	filters.Normalize()

	query := r.db.Model(&models.Activity{}).Where("user_id = ?", userID)
	if filters.Search != "" {
		query = query.Where("name LIKE ?", "%"+filters.Search+"%")
	}
	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Source != "" {
		query = query.Where("source = ?", filters.Source)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var activities []models.Activity
	offset := (filters.Page - 1) * filters.Limit
	if err := query.Order("started_at DESC").Offset(offset).Limit(filters.Limit).Find(&activities).Error; err != nil {
		return nil, 0, err
	}

	return activities, total, nil
}

// Create stores a new activity.
func (r *ActivityRepository) Create(activity *models.Activity) error {
	return r.db.Create(activity).Error
}

// TotalForWindow sums a user's synced distance inside a challenge window,
// skipping tracklogs below the minimum distance. Returns the sum and the
// most recent activity time contributing to it.
func (r *ActivityRepository) TotalForWindow(userID string, start, end time.Time, minDistance float64) (float64, *time.Time, error) {
	var activities []models.Activity
	err := r.db.Where("user_id = ?", userID).
		Where("status = ?", models.ActivityStatusSynced).
		Where("started_at >= ? AND started_at <= ?", start, end).
		Where("distance_km >= ?", minDistance).
		Order("started_at ASC").
		Find(&activities).Error
	if err != nil {
		return 0, nil, err
	}

	var total float64
	var last *time.Time
	for i := range activities {
		total += activities[i].DistanceKm
		last = &activities[i].StartedAt
	}
	return total, last, nil
}
