package cacheperf

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-interaction/internal/model"
)

// VisitorSnapshot contains the minimal profile fields the visitors page renders.
type VisitorSnapshot struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Job         string    `json:"job"`
	Gender      int16     `json:"gender"`
	VisitedTime time.Time `json:"visited_time"`
}

// VisitorPageService compares read strategies for the hot visitors page:
// a direct join against the primary store vs. profile snapshots in Redis.
type VisitorPageService struct {
	db    *gorm.DB
	cache *redis.Client
	ttl   time.Duration

	pageQueries  atomic.Int64
	userBulkLoad atomic.Int64
}

func NewVisitorPageService(db *gorm.DB, cache *redis.Client, ttl time.Duration) *VisitorPageService {
	return &VisitorPageService{db: db, cache: cache, ttl: ttl}
}

// FetchVisitorsNoCache resolves the page entirely from the primary store.
func (s *VisitorPageService) FetchVisitorsNoCache(ctx context.Context, targetID int64, since time.Time, limit int) ([]VisitorSnapshot, error) {
	s.pageQueries.Add(1)

	var rows []VisitorSnapshot
	err := s.db.WithContext(ctx).
		Table("visits").
		Select("users.id", "users.name", "users.job", "users.gender", "visits.visited_time").
		Joins("JOIN users ON visits.visitor_id = users.id").
		Where("visits.target_id = ? AND visits.visited_time >= ?", targetID, since).
		Order("visits.visited_time DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FetchVisitorsSnapshotCache loads the visit rows from the primary store but
// resolves visitor profiles through per-user Redis snapshots (MGet, pipeline
// backfill on miss). The visit list itself is never cached: it changes on
// every visit, while profiles are near-static.
func (s *VisitorPageService) FetchVisitorsSnapshotCache(ctx context.Context, targetID int64, since time.Time, limit int) ([]VisitorSnapshot, error) {
	s.pageQueries.Add(1)

	type visitRow struct {
		VisitorID   int64
		VisitedTime time.Time
	}
	var visits []visitRow
	err := s.db.WithContext(ctx).
		Table("visits").
		Select("visitor_id", "visited_time").
		Where("target_id = ? AND visited_time >= ?", targetID, since).
		Order("visited_time DESC").
		Limit(limit).
		Scan(&visits).Error
	if err != nil {
		return nil, err
	}
	if len(visits) == 0 {
		return []VisitorSnapshot{}, nil
	}

	keys := make([]string, len(visits))
	for i, v := range visits {
		keys[i] = snapshotKey(v.VisitorID)
	}

	cached := make(map[int64]VisitorSnapshot, len(visits))
	if vals, err := s.cache.MGet(ctx, keys...).Result(); err == nil {
		for i, val := range vals {
			str, ok := val.(string)
			if !ok {
				continue
			}
			var snap VisitorSnapshot
			if uErr := json.Unmarshal([]byte(str), &snap); uErr == nil {
				cached[visits[i].VisitorID] = snap
			}
		}
	}

	missing := make([]int64, 0, len(visits))
	seen := make(map[int64]struct{}, len(visits))
	for _, v := range visits {
		if _, ok := cached[v.VisitorID]; ok {
			continue
		}
		if _, dup := seen[v.VisitorID]; dup {
			continue
		}
		seen[v.VisitorID] = struct{}{}
		missing = append(missing, v.VisitorID)
	}

	if len(missing) > 0 {
		s.userBulkLoad.Add(1)

		var users []model.User
		if err := s.db.WithContext(ctx).Where("id IN ?", missing).Find(&users).Error; err != nil {
			return nil, err
		}
		pipe := s.cache.Pipeline()
		for _, u := range users {
			snap := VisitorSnapshot{ID: u.ID, Name: u.Name, Job: u.Job, Gender: int16(u.Gender)}
			cached[u.ID] = snap
			if payload, err := json.Marshal(snap); err == nil {
				pipe.Set(ctx, snapshotKey(u.ID), payload, s.ttl)
			}
		}
		_, _ = pipe.Exec(ctx)
	}

	result := make([]VisitorSnapshot, 0, len(visits))
	for _, v := range visits {
		snap, ok := cached[v.VisitorID]
		if !ok {
			continue
		}
		snap.VisitedTime = v.VisitedTime
		result = append(result, snap)
	}
	return result, nil
}

func snapshotKey(userID int64) string {
	return fmt.Sprintf("visitor:snapshot:%d", userID)
}

// ResetCounters clears recorded db call counters.
func (s *VisitorPageService) ResetCounters() {
	s.pageQueries.Store(0)
	s.userBulkLoad.Store(0)
}

// Counters reports how many underlying DB loads were executed.
func (s *VisitorPageService) Counters() VisitorDBCounters {
	return VisitorDBCounters{
		PageQueries:  s.pageQueries.Load(),
		UserBulkLoad: s.userBulkLoad.Load(),
	}
}

// VisitorDBCounters summarises DB hits during a run.
type VisitorDBCounters struct {
	PageQueries  int64
	UserBulkLoad int64
}
