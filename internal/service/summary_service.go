package service

import (
	"GoodNight/internal/model"
	"GoodNight/internal/pkg/consts"
	"GoodNight/internal/repository"
	"context"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

type SummaryService interface {
	SyncUserDailySummary(ctx context.Context, userID uint64, now time.Time) error
	GetSummariesBy7Days(ctx context.Context, userID uint64, now time.Time) ([]*model.UserSleepSummary, error)
	GetSummariesBy30Days(ctx context.Context, userID uint64, now time.Time) ([]*model.UserSleepSummary, error)
}

type summaryServiceImpl struct {
	summaryRepo repository.SleepSummaryRepo
	sleepRepo   repository.SleepRecordRepo
	cache       Cache
	loc         *time.Location
}

func NewSummaryService(summaryRepo repository.SleepSummaryRepo, sleepRepo repository.SleepRecordRepo, cache Cache, loc *time.Location) SummaryService {
	return &summaryServiceImpl{
		summaryRepo: summaryRepo,
		sleepRepo:   sleepRepo,
		cache:       cache,
		loc:         loc,
	}
}

// SyncUserDailySummary 把昨天入睡且已结束的记录汇总成一行日报，幂等：
// 同一天重复执行只会覆盖数值，不会新增行。
func (s *summaryServiceImpl) SyncUserDailySummary(ctx context.Context, userID uint64, now time.Time) error {
	date := midnightOf(now.In(s.loc)).AddDate(0, 0, -1)
	start := date
	end := date.AddDate(0, 0, 1).Add(-time.Nanosecond)

	records, err := s.sleepRepo.ListCompletedForUsers(ctx, []uint64{userID}, start, end)
	if err != nil {
		return err
	}

	var total int64
	for _, record := range records {
		total += record.DurationSeconds
	}

	existing, err := s.summaryRepo.GetSummaryByDate(ctx, userID, date)
	if err != nil {
		return err
	}
	if existing == nil {
		return s.summaryRepo.CreateSummary(ctx, &model.UserSleepSummary{
			UserID:               userID,
			SummaryDate:          date,
			TotalDurationSeconds: total,
			SessionCount:         len(records),
		})
	}

	existing.TotalDurationSeconds = total
	existing.SessionCount = len(records)
	return s.summaryRepo.UpdateSummary(ctx, existing)
}

func (s *summaryServiceImpl) GetSummariesBy7Days(ctx context.Context, userID uint64, now time.Time) ([]*model.UserSleepSummary, error) {
	key := consts.UserSleepSummary7DaysKey + strconv.FormatUint(userID, 10)
	return s.getSummariesCached(ctx, key, userID, now, 7)
}

func (s *summaryServiceImpl) GetSummariesBy30Days(ctx context.Context, userID uint64, now time.Time) ([]*model.UserSleepSummary, error) {
	key := consts.UserSleepSummary30DaysKey + strconv.FormatUint(userID, 10)
	return s.getSummariesCached(ctx, key, userID, now, 30)
}

func (s *summaryServiceImpl) getSummariesCached(
	ctx context.Context,
	key string,
	userID uint64,
	now time.Time,
	days int,
) ([]*model.UserSleepSummary, error) {
	cached, err := s.cache.Get(ctx, key)
	if err == nil && cached != "" {
		var summaries []*model.UserSleepSummary
		if err := json.Unmarshal([]byte(cached), &summaries); err == nil {
			return summaries, nil
		}
	}

	since := midnightOf(now.In(s.loc)).AddDate(0, 0, -(days - 1))
	summaries, err := s.summaryRepo.GetSummariesSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	s.cacheSummaries(ctx, key, now, summaries)
	return summaries, nil
}

func (s *summaryServiceImpl) cacheSummaries(ctx context.Context, key string, now time.Time, summaries []*model.UserSleepSummary) {
	data, err := json.Marshal(summaries)
	if err != nil {
		return
	}

	// 日报数据跨天会变，缓存到午夜前5分钟过期
	local := now.In(s.loc)
	midnight := midnightOf(local).AddDate(0, 0, 1)
	expiration := midnight.Sub(local) - time.Minute*5
	if expiration <= 0 {
		return
	}

	_ = s.cache.Set(ctx, key, string(data), expiration)
}
