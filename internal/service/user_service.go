package service

import (
	"context"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/d60-Lab/social-interaction/internal/model"
	"github.com/d60-Lab/social-interaction/internal/repository"
)

const dayLayout = "2006-01-02"

// VisitRequest 访问请求
type VisitRequest struct {
	VisitorID int64 `json:"visitor_id" binding:"required" validate:"required"`
	TargetID  int64 `json:"target_id" binding:"required" validate:"required"`
}

// LikeRequest 点赞请求（重复提交即在赞/取消之间切换）
type LikeRequest struct {
	LikerID  int64 `json:"liker_id" binding:"required" validate:"required"`
	TargetID int64 `json:"target_id" binding:"required" validate:"required"`
}

// VisitorDTO 访客列表条目：用户资料 + 该条访问时间
type VisitorDTO struct {
	ID                 int64                    `json:"id"`
	Name               string                   `json:"name"`
	Job                string                   `json:"job,omitempty"`
	Gender             model.Gender             `json:"gender"`
	Age                *int                     `json:"age,omitempty"`
	LocationID         int32                    `json:"location_id"`
	RelationshipStatus model.RelationshipStatus `json:"relationship_status"`
	ProfilePictureID   int64                    `json:"profile_picture_id,omitempty"`
	VisitedTime        time.Time                `json:"visited_time"`
}

// UserService 访问/点赞记录与访客聚合
type UserService interface {
	RecordVisit(ctx context.Context, req *VisitRequest) error
	RecordLike(ctx context.Context, req *LikeRequest) error
	GetLastMonthVisitors(ctx context.Context, userID int64) ([]*VisitorDTO, error)
}

type userService struct {
	userRepo    repository.UserRepository
	visitRepo   repository.VisitRepository
	likeRepo    repository.LikeRepository
	audit       AuditSink
	risk        RiskService
	maxVisitors int
	validate    *validator.Validate
}

func NewUserService(
	userRepo repository.UserRepository,
	visitRepo repository.VisitRepository,
	likeRepo repository.LikeRepository,
	audit AuditSink,
	risk RiskService,
	maxVisitors int,
) UserService {
	if maxVisitors <= 0 {
		maxVisitors = 10
	}
	return &userService{
		userRepo:    userRepo,
		visitRepo:   visitRepo,
		likeRepo:    likeRepo,
		audit:       audit,
		risk:        risk,
		maxVisitors: maxVisitors,
		validate:    validator.New(),
	}
}

// RecordVisit 落一条访问记录并做风控检查。
// 自访直接忽略：不落库、不计数。
func (s *userService) RecordVisit(ctx context.Context, req *VisitRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return err
	}
	if req.VisitorID == req.TargetID {
		return nil
	}

	if err := s.visitRepo.Create(ctx, req.VisitorID, req.TargetID, time.Now()); err != nil {
		return err
	}
	// 风控失败不回滚已提交的访问记录
	return s.checkSensitiveBehavior(ctx, req.VisitorID)
}

// RecordLike 点赞切换：已有记录翻转为 CANCELED，否则新建 LIKED。
// 只有新建路径计入风控；两条路径都追加流水。
// 同一对 (liker, target) 的并发首赞由 likes 表的唯一索引兜底。
func (s *userService) RecordLike(ctx context.Context, req *LikeRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return err
	}

	like, err := s.likeRepo.FindByPair(ctx, req.LikerID, req.TargetID)
	if err != nil {
		return err
	}

	if like != nil {
		like.Status = model.LikeStatusCanceled
		if err := s.likeRepo.UpdateStatus(ctx, like); err != nil {
			return err
		}
	} else {
		like = &model.Like{
			LikerID:   req.LikerID,
			TargetID:  req.TargetID,
			Status:    model.LikeStatusLiked,
			LikedTime: time.Now(),
		}
		if err := s.likeRepo.Create(ctx, like); err != nil {
			return err
		}
		if err := s.checkSensitiveBehavior(ctx, req.LikerID); err != nil {
			return err
		}
	}

	return s.audit.Append(ctx, &model.LikeLog{
		LikerID:     like.LikerID,
		TargetID:    like.TargetID,
		Status:      int16(like.Status),
		CreatedTime: time.Now(),
	})
}

func (s *userService) checkSensitiveBehavior(ctx context.Context, userID int64) error {
	hit, err := s.risk.CheckSensitiveBehavior(ctx, userID)
	if err != nil {
		return err
	}
	if hit {
		return s.userRepo.UpdateStatus(ctx, userID, model.UserStatusFraud)
	}
	return nil
}

type visitorDayKey struct {
	visitorID int64
	day       string
}

// GetLastMonthVisitors 近一个月访客列表：
// 同一访客同一天只保留最晚一次访问，整体按访问时间倒序取前 maxVisitors，
// 再批量补全用户资料；资料查不到（欺诈/注销被过滤）的条目静默丢弃。
func (s *userService) GetLastMonthVisitors(ctx context.Context, userID int64) ([]*VisitorDTO, error) {
	monthAgo := time.Now().AddDate(0, -1, 0)

	visits, err := s.visitRepo.ListRecentByTarget(ctx, userID, monthAgo)
	if err != nil {
		return nil, err
	}

	latestPerDay := make(map[visitorDayKey]*model.Visit, len(visits))
	for _, v := range visits {
		if v == nil || v.VisitorID == 0 || v.VisitedTime.IsZero() {
			continue
		}
		k := visitorDayKey{visitorID: v.VisitorID, day: v.VisitedTime.Format(dayLayout)}
		if cur, ok := latestPerDay[k]; !ok || v.VisitedTime.After(cur.VisitedTime) {
			latestPerDay[k] = v
		}
	}
	if len(latestPerDay) == 0 {
		return []*VisitorDTO{}, nil
	}

	top := make([]*model.Visit, 0, len(latestPerDay))
	for _, v := range latestPerDay {
		top = append(top, v)
	}
	sort.Slice(top, func(i, j int) bool {
		return top[i].VisitedTime.After(top[j].VisitedTime)
	})
	if len(top) > s.maxVisitors {
		top = top[:s.maxVisitors]
	}

	seen := make(map[int64]struct{}, len(top))
	ids := make([]int64, 0, len(top))
	for _, v := range top {
		if _, ok := seen[v.VisitorID]; ok {
			continue
		}
		seen[v.VisitorID] = struct{}{}
		ids = append(ids, v.VisitorID)
	}

	users, err := s.userRepo.FindActiveByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	userMap := make(map[int64]*model.User, len(users))
	for _, u := range users {
		userMap[u.ID] = u
	}

	now := time.Now()
	result := make([]*VisitorDTO, 0, len(top))
	for _, v := range top {
		u, ok := userMap[v.VisitorID]
		if !ok {
			continue
		}
		dto := &VisitorDTO{
			ID:                 u.ID,
			Name:               u.Name,
			Job:                u.Job,
			Gender:             u.Gender,
			LocationID:         u.LocationID,
			RelationshipStatus: u.RelationshipStatus,
			ProfilePictureID:   u.ProfilePictureID,
			VisitedTime:        v.VisitedTime,
		}
		if age, ok := u.Age(now); ok {
			dto.Age = &age
		}
		result = append(result, dto)
	}
	return result, nil
}
