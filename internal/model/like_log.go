package model

import "time"

// LikeLog 点赞流水，append-only，仅供审计/分析
type LikeLog struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	LikerID     int64     `gorm:"index:idx_likelog_liker;not null"`
	TargetID    int64     `gorm:"not null"`
	Status      int16     `gorm:"type:smallint;not null"`
	CreatedTime time.Time `gorm:"not null"`
}

func (LikeLog) TableName() string { return "like_logs" }
