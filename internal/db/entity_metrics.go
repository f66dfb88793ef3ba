package db

import "time"

// EntityKind distinguishes which catalog an analytics row belongs to.
type EntityKind string

const (
	KindCollege EntityKind = "college"
	KindExam    EntityKind = "exam"
	KindArticle EntityKind = "article"
	KindNews    EntityKind = "news"
)

// EntityStatistic aggregates views per upstream entity.
type EntityStatistic struct {
	ID             uint       `gorm:"primaryKey"`
	EntityKind     EntityKind `gorm:"size:16;uniqueIndex:idx_entity_stat,priority:1"`
	EntityID       uint       `gorm:"uniqueIndex:idx_entity_stat,priority:2"`
	PageViews      uint64     `gorm:"default:0"`
	UniqueVisitors uint64     `gorm:"default:0"`
	LastViewedAt   time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName pins the table name so automatic pluralization never drifts.
func (EntityStatistic) TableName() string {
	return "entity_statistics"
}

// EntityVisit records which visitor saw which entity, for UV dedup.
type EntityVisit struct {
	ID           uint       `gorm:"primaryKey"`
	EntityKind   EntityKind `gorm:"size:16;uniqueIndex:idx_entity_visit,priority:1"`
	EntityID     uint       `gorm:"uniqueIndex:idx_entity_visit,priority:2"`
	VisitorID    string     `gorm:"size:64;uniqueIndex:idx_entity_visit,priority:3"`
	LastViewedAt time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName pins the table name.
func (EntityVisit) TableName() string {
	return "entity_visits"
}
