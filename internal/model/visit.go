package model

import "time"

// Visit 访问记录（每次访问一条，不做写入端去重）
type Visit struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	VisitorID   int64     `gorm:"index:idx_visit_visitor;not null"`
	TargetID    int64     `gorm:"index:idx_visit_target_time;not null"`
	VisitedTime time.Time `gorm:"index:idx_visit_target_time;not null"`
}

func (Visit) TableName() string { return "visits" }
