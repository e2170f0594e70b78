package model

import "time"

// Like 点赞关系（A 赞 B）
// 复合唯一键保证同一 (liker, target) 至多一行，状态原地翻转。
// idx_like_pair = (liker_id, target_id)
type Like struct {
	ID        int64      `gorm:"primaryKey;autoIncrement"`
	LikerID   int64      `gorm:"index:idx_like_pair,unique;not null"`
	TargetID  int64      `gorm:"index:idx_like_pair,unique;not null"`
	Status    LikeStatus `gorm:"type:smallint;not null;default:0"`
	LikedTime time.Time  `gorm:"not null"`
	UpdatedAt time.Time
}

func (Like) TableName() string { return "likes" }
