package job

import (
	"GoodNight/internal/pkg/consts"
	"GoodNight/internal/pkg/logger"
	"GoodNight/internal/pkg/redis"
	"GoodNight/internal/pkg/util"
	"GoodNight/internal/service"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// SleepSummaryJob 每日把有新起床打卡的用户（脏集合）回填到日报表
type SleepSummaryJob struct {
	summarySvc service.SummaryService
}

func NewSleepSummaryJob(summarySvc service.SummaryService) *SleepSummaryJob {
	return &SleepSummaryJob{summarySvc: summarySvc}
}

func (s *SleepSummaryJob) Run() {
	traceID := "job-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	processingKey := consts.SleepSummaryDirtyKey + ":processing"
	err := redis.Rename(ctx, consts.SleepSummaryDirtyKey, processingKey)
	if err != nil {
		return
	}

	tempSet, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get dirty set error", "err", err)
		return
	}

	userIDs, err := util.StrSliceToUInt64Slice(tempSet)
	if err != nil {
		log.ErrorContext(ctx, "convert set to int slice error", "err", err)
		return
	}

	now := time.Now()
	for _, userID := range userIDs {
		s.syncOne(ctx, userID, now)
	}

	err = redis.DeleteKey(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "delete dirty set error", "err", err)
	}

	log.InfoContext(ctx, "sync sleep summaries success", "users", len(userIDs))
}

func (s *SleepSummaryJob) syncOne(ctx context.Context, userID uint64, now time.Time) {
	lockKey := consts.SleepSummaryDailyLock + strconv.FormatUint(userID, 10)
	lockValue := uuid.NewString()

	lock, err := redis.TryLock(ctx, lockKey, lockValue, time.Minute*5, 3)
	if err != nil {
		log.ErrorContext(ctx, "acquire summary lock error", "user_id", userID, "err", err)
		return
	}
	if !lock {
		return
	}
	defer redis.UnLock(ctx, lockKey, lockValue)

	if err := s.summarySvc.SyncUserDailySummary(ctx, userID, now); err != nil {
		log.ErrorContext(ctx, "sync sleep summary error", "user_id", userID, "err", err)
	}
}
