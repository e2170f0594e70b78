package model

import "time"

// User 用户主档
type User struct {
	ID                 int64              `json:"id" gorm:"primaryKey;autoIncrement"`
	Name               string             `json:"name" gorm:"type:varchar(64);not null"`
	Job                string             `json:"job" gorm:"type:varchar(64)"`
	Gender             Gender             `json:"gender" gorm:"type:smallint;not null;default:0"`
	Birthday           time.Time          `json:"birthday"`
	LocationID         int32              `json:"location_id"`
	AccountStatus      UserStatus         `json:"account_status" gorm:"type:smallint;index;not null;default:0"`
	RelationshipStatus RelationshipStatus `json:"relationship_status" gorm:"type:smallint;not null;default:0"`
	ProfilePictureID   int64              `json:"profile_picture_id"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// Age 按生日推算年龄；生日缺失或在未来返回 (0, false)
func (u *User) Age(now time.Time) (int, bool) {
	if u.Birthday.IsZero() || u.Birthday.After(now) {
		return 0, false
	}
	years := now.Year() - u.Birthday.Year()
	if now.YearDay() < u.Birthday.YearDay() {
		years--
	}
	return years, true
}
