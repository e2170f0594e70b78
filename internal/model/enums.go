package model

import "fmt"

// 枚举统一用 int16 编码落库，静态表做 code<->name 双向映射。

// Gender 性别
type Gender int16

const (
	GenderWoman Gender = 0
	GenderMan   Gender = 1
)

var genderNames = map[Gender]string{
	GenderWoman: "WOMAN",
	GenderMan:   "MAN",
}

func (g Gender) String() string {
	if s, ok := genderNames[g]; ok {
		return s
	}
	return fmt.Sprintf("Gender(%d)", int16(g))
}

func GenderFromCode(code int16) (Gender, error) {
	g := Gender(code)
	if _, ok := genderNames[g]; !ok {
		return 0, fmt.Errorf("invalid gender code: %d", code)
	}
	return g, nil
}

// LikeStatus 点赞状态，LIKED 与 CANCELED 之间往复切换
type LikeStatus int16

const (
	LikeStatusLiked    LikeStatus = 0
	LikeStatusCanceled LikeStatus = 1
)

var likeStatusNames = map[LikeStatus]string{
	LikeStatusLiked:    "LIKED",
	LikeStatusCanceled: "CANCELED",
}

func (s LikeStatus) String() string {
	if n, ok := likeStatusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("LikeStatus(%d)", int16(s))
}

func LikeStatusFromCode(code int16) (LikeStatus, error) {
	s := LikeStatus(code)
	if _, ok := likeStatusNames[s]; !ok {
		return 0, fmt.Errorf("invalid like status code: %d", code)
	}
	return s, nil
}

// UserStatus 账号状态
type UserStatus int16

const (
	UserStatusNormal  UserStatus = 0
	UserStatusFraud   UserStatus = 1
	UserStatusDeleted UserStatus = 2
)

var userStatusNames = map[UserStatus]string{
	UserStatusNormal:  "NORMAL",
	UserStatusFraud:   "FRAUD",
	UserStatusDeleted: "DELETED",
}

func (s UserStatus) String() string {
	if n, ok := userStatusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("UserStatus(%d)", int16(s))
}

func UserStatusFromCode(code int16) (UserStatus, error) {
	s := UserStatus(code)
	if _, ok := userStatusNames[s]; !ok {
		return 0, fmt.Errorf("invalid user status code: %d", code)
	}
	return s, nil
}

// RelationshipStatus 情感状态
type RelationshipStatus int16

const (
	RelationshipSingle RelationshipStatus = 0
	RelationshipTaken  RelationshipStatus = 1
)

var relationshipNames = map[RelationshipStatus]string{
	RelationshipSingle: "SINGLE",
	RelationshipTaken:  "TAKEN",
}

func (s RelationshipStatus) String() string {
	if n, ok := relationshipNames[s]; ok {
		return n
	}
	return fmt.Sprintf("RelationshipStatus(%d)", int16(s))
}

func RelationshipStatusFromCode(code int16) (RelationshipStatus, error) {
	s := RelationshipStatus(code)
	if _, ok := relationshipNames[s]; !ok {
		return 0, fmt.Errorf("invalid relationship status code: %d", code)
	}
	return s, nil
}
