package service

import (
	"GoodNight/internal/model"
	"GoodNight/internal/pkg/consts"
	"GoodNight/internal/repository"
	"context"
	"errors"
	"strconv"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/goccy/go-json"
	"gorm.io/gorm"
)

// SleepCacheExpiration 历史与排行榜缓存的过期时间
const SleepCacheExpiration = time.Hour

type SleepService interface {
	ClockIn(ctx context.Context, userID uint64, now time.Time) (*model.SleepRecord, error)
	ClockOut(ctx context.Context, userID uint64, now time.Time) ([]*model.SleepRecord, error)
	CloseRecord(ctx context.Context, userID, recordID uint64, now time.Time) (*model.SleepRecord, error)
	GetHistory(ctx context.Context, userID uint64) ([]*model.SleepRecord, error)
	GetFollowingLeaderboard(ctx context.Context, userID uint64, referenceTime time.Time) ([]*model.SleepRecord, error)
}

type sleepServiceImpl struct {
	sleepRepo  repository.SleepRecordRepo
	followRepo repository.FollowRepo
	cache      Cache
	loc        *time.Location
}

func NewSleepService(sleepRepo repository.SleepRecordRepo, followRepo repository.FollowRepo, cache Cache, loc *time.Location) SleepService {
	return &sleepServiceImpl{
		sleepRepo:  sleepRepo,
		followRepo: followRepo,
		cache:      cache,
		loc:        loc,
	}
}

// ClockIn 无条件创建一条新的未结束记录，已有未结束记录不受影响，
// 结束记录只通过 ClockOut 显式完成。
func (s *sleepServiceImpl) ClockIn(ctx context.Context, userID uint64, now time.Time) (*model.SleepRecord, error) {
	if now.IsZero() {
		return nil, ErrClockInRequired
	}

	record := &model.SleepRecord{
		UserID:      userID,
		ClockInTime: now,
	}
	if err := s.sleepRepo.Create(ctx, record); err != nil {
		return nil, s.mapStoreError(err)
	}

	_ = s.cache.Delete(ctx, historyCacheKey(userID))
	return record, nil
}

// ClockOut 用同一个起床时间结束用户全部未结束的记录，每条单独计算时长。
// 没有未结束记录时静默成功。返回用户最新的完整记录列表，新的在前。
func (s *sleepServiceImpl) ClockOut(ctx context.Context, userID uint64, now time.Time) ([]*model.SleepRecord, error) {
	if now.IsZero() {
		return nil, ErrParamInvalid
	}

	closed, err := s.sleepRepo.CloseAllOpen(ctx, userID, now)
	if err != nil {
		return nil, s.mapStoreError(err)
	}

	_ = s.cache.Delete(ctx, historyCacheKey(userID))
	if closed > 0 {
		_ = s.cache.SAdd(ctx, consts.SleepSummaryDirtyKey, strconv.FormatUint(userID, 10))
	}

	return s.sleepRepo.ListByUserID(ctx, userID)
}

// CloseRecord 结束单条记录，只允许结束本人的记录，重复结束返回已结束错误
func (s *sleepServiceImpl) CloseRecord(ctx context.Context, userID, recordID uint64, now time.Time) (*model.SleepRecord, error) {
	if now.IsZero() {
		return nil, ErrParamInvalid
	}

	record, err := s.sleepRepo.GetByID(ctx, recordID)
	if err != nil {
		return nil, s.mapStoreError(err)
	}
	if record == nil || record.UserID != userID {
		return nil, ErrSleepRecordNotFound
	}

	closedRecord, err := s.sleepRepo.Close(ctx, recordID, now)
	if err != nil {
		return nil, s.mapStoreError(err)
	}

	_ = s.cache.Delete(ctx, historyCacheKey(userID))
	_ = s.cache.SAdd(ctx, consts.SleepSummaryDirtyKey, strconv.FormatUint(userID, 10))
	return closedRecord, nil
}

// GetHistory 获取用户全部睡眠记录，新的在前，读穿缓存一小时
func (s *sleepServiceImpl) GetHistory(ctx context.Context, userID uint64) ([]*model.SleepRecord, error) {
	return s.getRecordsCached(ctx, historyCacheKey(userID), func() ([]*model.SleepRecord, error) {
		return s.sleepRepo.ListByUserID(ctx, userID)
	})
}

// GetFollowingLeaderboard 本周排行榜：用户关注的人在本周内入睡且已结束的记录，
// 时长降序，时长相同按 id 升序。关注为空时直接返回空列表，不查库。
func (s *sleepServiceImpl) GetFollowingLeaderboard(ctx context.Context, userID uint64, referenceTime time.Time) ([]*model.SleepRecord, error) {
	if referenceTime.IsZero() {
		return nil, ErrParamInvalid
	}

	return s.getRecordsCached(ctx, leaderboardCacheKey(userID), func() ([]*model.SleepRecord, error) {
		ids, err := s.followRepo.GetFollowedIDs(ctx, userID)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return []*model.SleepRecord{}, nil
		}

		ref := referenceTime.In(s.loc)
		return s.sleepRepo.ListCompletedForUsers(ctx, ids, beginningOfWeek(ref), endOfWeek(ref))
	})
}

func (s *sleepServiceImpl) getRecordsCached(
	ctx context.Context,
	key string,
	fetchDB func() ([]*model.SleepRecord, error),
) ([]*model.SleepRecord, error) {
	cached, err := s.cache.Get(ctx, key)
	if err == nil && cached != "" {
		var records []*model.SleepRecord
		if err := json.Unmarshal([]byte(cached), &records); err == nil {
			return records, nil
		}
	}

	records, err := fetchDB()
	if err != nil {
		return nil, s.mapStoreError(err)
	}

	if data, err := json.Marshal(records); err == nil {
		_ = s.cache.Set(ctx, key, string(data), SleepCacheExpiration)
	}
	return records, nil
}

// mapStoreError 把存储层错误翻译为业务错误，锁冲突单独上抛让调用方重试
func (s *sleepServiceImpl) mapStoreError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrSleepRecordNotFound
	case errors.Is(err, model.ErrSleepRecordCompleted):
		return ErrSleepRecordClosed
	case errors.Is(err, model.ErrClockOutBeforeClockIn):
		return ErrClockOutBeforeIn
	case isLockConflict(err):
		return ErrConcurrencyConflict
	default:
		return err
	}
}

// MySQL 1205 锁等待超时 / 1213 死锁，两者都可以整体重试
func isLockConflict(err error) bool {
	var mysqlErr *mysqldriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1205 || mysqlErr.Number == 1213
	}
	return false
}

func historyCacheKey(userID uint64) string {
	return consts.UserSleepRecordsKey + strconv.FormatUint(userID, 10)
}

func leaderboardCacheKey(userID uint64) string {
	return consts.FollowingSleepRecordsKey + strconv.FormatUint(userID, 10)
}
