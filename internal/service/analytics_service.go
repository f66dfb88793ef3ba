package service

import (
	"errors"
	"time"

	"github.com/collegescope/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AnalyticsService tracks page views and unique visitors per upstream
// entity. Recording is best-effort; callers never fail a render because a
// counter could not be written.
type AnalyticsService struct {
	db *gorm.DB
}

// NewAnalyticsService returns an analytics service over the given handle.
func NewAnalyticsService(gdb *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: gdb}
}

// RecordView counts one view of an entity by a visitor and returns the
// updated statistics. A visitor counts toward unique visitors only on
// their first ever view of that entity.
func (s *AnalyticsService) RecordView(kind db.EntityKind, entityID uint, visitorID string, now time.Time) (*db.EntityStatistic, error) {
	if visitorID == "" || entityID == 0 {
		return nil, errors.New("invalid visitor or entity id")
	}

	var stats db.EntityStatistic

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		visit := db.EntityVisit{
			EntityKind:   kind,
			EntityID:     entityID,
			VisitorID:    visitorID,
			LastViewedAt: now,
		}
		insert := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entity_kind"}, {Name: "entity_id"}, {Name: "visitor_id"}},
			DoNothing: true,
		}).Create(&visit)
		if insert.Error != nil {
			return insert.Error
		}

		isNewVisitor := insert.RowsAffected == 1
		if !isNewVisitor {
			if err := tx.Model(&db.EntityVisit{}).
				Where("entity_kind = ? AND entity_id = ? AND visitor_id = ?", kind, entityID, visitorID).
				Update("last_viewed_at", now).Error; err != nil {
				return err
			}
		}

		statsResult := tx.Where("entity_kind = ? AND entity_id = ?", kind, entityID).First(&stats)
		switch {
		case errors.Is(statsResult.Error, gorm.ErrRecordNotFound):
			stats = db.EntityStatistic{EntityKind: kind, EntityID: entityID}
			if err := tx.Create(&stats).Error; err != nil {
				return err
			}
		case statsResult.Error != nil:
			return statsResult.Error
		}

		stats.PageViews++
		if isNewVisitor {
			stats.UniqueVisitors++
		}
		stats.LastViewedAt = now

		return tx.Save(&stats).Error
	}); err != nil {
		return nil, err
	}

	return &stats, nil
}

// TopEntityStat is one row of the popular rail.
type TopEntityStat struct {
	EntityID       uint
	PageViews      uint64
	UniqueVisitors uint64
}

// TopEntities returns the most viewed entities of a kind, by page views.
func (s *AnalyticsService) TopEntities(kind db.EntityKind, limit int) ([]TopEntityStat, error) {
	if limit <= 0 {
		limit = 5
	}

	var top []TopEntityStat
	if err := s.db.Model(&db.EntityStatistic{}).
		Select("entity_id, page_views, unique_visitors").
		Where("entity_kind = ?", kind).
		Order("page_views DESC").
		Limit(limit).
		Scan(&top).Error; err != nil {
		return nil, err
	}
	return top, nil
}

// StatsFor returns the statistics row for one entity, or nil when the
// entity has never been viewed.
func (s *AnalyticsService) StatsFor(kind db.EntityKind, entityID uint) (*db.EntityStatistic, error) {
	var stats db.EntityStatistic
	err := s.db.Where("entity_kind = ? AND entity_id = ?", kind, entityID).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
