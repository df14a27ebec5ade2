package service

import (
	"GoodNight/internal/model"
	"GoodNight/internal/pkg/consts"
	"context"
	"testing"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-08-24 是周一，整周为 08-24 00:00 至 08-30 23:59:59.999999999
var (
	testMonday    = time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	testWednesday = time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
)

func newTestSleepService() (SleepService, *fakeSleepRepo, *fakeFollowRepo, *fakeCache) {
	sleepRepo := &fakeSleepRepo{}
	followRepo := &fakeFollowRepo{}
	cache := newFakeCache()
	svc := NewSleepService(sleepRepo, followRepo, cache, time.UTC)
	return svc, sleepRepo, followRepo, cache
}

func TestClockInCreatesOpenRecord(t *testing.T) {
	svc, _, _, _ := newTestSleepService()
	ctx := context.Background()

	record, err := svc.ClockIn(ctx, 1, testMonday.Add(8*time.Hour))
	require.NoError(t, err)

	assert.NotZero(t, record.ID)
	assert.Equal(t, uint64(1), record.UserID)
	assert.Nil(t, record.ClockOutTime)
	assert.Equal(t, int64(0), record.DurationSeconds)
	assert.True(t, record.ClockInTime.Equal(testMonday.Add(8*time.Hour)))
}

func TestClockInZeroTime(t *testing.T) {
	svc, _, _, _ := newTestSleepService()

	_, err := svc.ClockIn(context.Background(), 1, time.Time{})
	assert.ErrorIs(t, err, ErrClockInRequired)
}

func TestClockInAllowsMultipleOpenRecords(t *testing.T) {
	svc, sleepRepo, _, _ := newTestSleepService()
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, 1, testMonday)
	require.NoError(t, err)
	_, err = svc.ClockIn(ctx, 1, testMonday.Add(time.Hour))
	require.NoError(t, err)

	open, err := sleepRepo.FindOpenByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, open, 2)
}

func TestClockOutClosesAllOpenRecords(t *testing.T) {
	svc, _, _, cache := newTestSleepService()
	ctx := context.Background()

	// 08:00 与 09:00 各一次入睡，16:00 统一起床
	clockIn1 := testMonday.Add(8 * time.Hour)
	clockIn2 := testMonday.Add(9 * time.Hour)
	_, err := svc.ClockIn(ctx, 1, clockIn1)
	require.NoError(t, err)
	_, err = svc.ClockIn(ctx, 1, clockIn2)
	require.NoError(t, err)

	records, err := svc.ClockOut(ctx, 1, testMonday.Add(16*time.Hour))
	require.NoError(t, err)
	require.Len(t, records, 2)

	// 新的在前
	assert.Equal(t, int64(25200), records[0].DurationSeconds)
	assert.Equal(t, int64(28800), records[1].DurationSeconds)
	for _, record := range records {
		require.NotNil(t, record.ClockOutTime)
		assert.True(t, record.ClockOutTime.Equal(testMonday.Add(16*time.Hour)))
	}

	// 起床后该用户进入日报脏集合
	assert.Equal(t, []string{"1"}, cache.sets[consts.SleepSummaryDirtyKey])
}

func TestClockOutWithoutOpenRecords(t *testing.T) {
	svc, _, _, cache := newTestSleepService()

	records, err := svc.ClockOut(context.Background(), 1, testMonday)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Empty(t, cache.sets[consts.SleepSummaryDirtyKey])
}

func TestClockOutBeforeClockIn(t *testing.T) {
	svc, _, _, _ := newTestSleepService()
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, 1, testMonday.Add(8*time.Hour))
	require.NoError(t, err)

	_, err = svc.ClockOut(ctx, 1, testMonday.Add(7*time.Hour))
	assert.ErrorIs(t, err, ErrClockOutBeforeIn)
}

func TestCloseRecordOwnership(t *testing.T) {
	svc, _, _, _ := newTestSleepService()
	ctx := context.Background()

	record, err := svc.ClockIn(ctx, 1, testMonday)
	require.NoError(t, err)

	// 别人的记录与不存在的记录表现一致
	_, err = svc.CloseRecord(ctx, 2, record.ID, testMonday.Add(time.Hour))
	assert.ErrorIs(t, err, ErrSleepRecordNotFound)

	_, err = svc.CloseRecord(ctx, 1, 999, testMonday.Add(time.Hour))
	assert.ErrorIs(t, err, ErrSleepRecordNotFound)
}

func TestCloseRecordTwice(t *testing.T) {
	svc, _, _, _ := newTestSleepService()
	ctx := context.Background()

	record, err := svc.ClockIn(ctx, 1, testMonday)
	require.NoError(t, err)

	closed, err := svc.CloseRecord(ctx, 1, record.ID, testMonday.Add(8*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(28800), closed.DurationSeconds)

	_, err = svc.CloseRecord(ctx, 1, record.ID, testMonday.Add(9*time.Hour))
	assert.ErrorIs(t, err, ErrSleepRecordClosed)
}

func TestGetHistoryAfterClockIn(t *testing.T) {
	svc, _, _, _ := newTestSleepService()
	ctx := context.Background()

	// 先把历史缓存预热成空，再打卡，写操作应当清掉缓存
	_, err := svc.GetHistory(ctx, 1)
	require.NoError(t, err)

	record, err := svc.ClockIn(ctx, 1, testMonday)
	require.NoError(t, err)

	records, err := svc.GetHistory(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, record.ID, records[0].ID)
	assert.Nil(t, records[0].ClockOutTime)
}

func TestGetHistoryNewestFirst(t *testing.T) {
	svc, _, _, _ := newTestSleepService()
	ctx := context.Background()

	first, err := svc.ClockIn(ctx, 1, testMonday)
	require.NoError(t, err)
	second, err := svc.ClockIn(ctx, 1, testMonday.Add(time.Hour))
	require.NoError(t, err)

	records, err := svc.GetHistory(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, second.ID, records[0].ID)
	assert.Equal(t, first.ID, records[1].ID)
}

func TestLeaderboardOrdering(t *testing.T) {
	svc, _, followRepo, _ := newTestSleepService()
	ctx := context.Background()

	followRepo.follows = []*model.Follow{
		{FollowerID: 1, FollowedID: 2},
		{FollowerID: 1, FollowedID: 3},
		{FollowerID: 1, FollowedID: 4},
	}

	base := testMonday.Add(time.Hour)
	// 900 秒（id 小）、900 秒（id 大）、300 秒、100 秒
	sleepAndWake(t, svc, 2, base, 900*time.Second)
	sleepAndWake(t, svc, 3, base.Add(time.Hour), 900*time.Second)
	sleepAndWake(t, svc, 4, base.Add(2*time.Hour), 300*time.Second)
	sleepAndWake(t, svc, 2, base.Add(3*time.Hour), 100*time.Second)

	records, err := svc.GetFollowingLeaderboard(ctx, 1, testWednesday)
	require.NoError(t, err)
	require.Len(t, records, 4)

	durations := make([]int64, 0, len(records))
	for _, record := range records {
		durations = append(durations, record.DurationSeconds)
	}
	assert.Equal(t, []int64{900, 900, 300, 100}, durations)
	// 时长相同按 id 升序
	assert.Less(t, records[0].ID, records[1].ID)
	assert.Equal(t, uint64(2), records[0].UserID)
	assert.Equal(t, uint64(3), records[1].UserID)
}

func TestLeaderboardWeekBoundaries(t *testing.T) {
	svc, _, followRepo, _ := newTestSleepService()
	ctx := context.Background()

	followRepo.follows = []*model.Follow{{FollowerID: 1, FollowedID: 2}}

	// 上周日入睡，本周一起床：入睡时间决定归属，不计入本周
	sleepAndWake(t, svc, 2, testMonday.Add(-2*time.Hour), 3*time.Hour)
	// 周日深夜入睡，下周一起床：计入本周
	sundayNight := testMonday.AddDate(0, 0, 6).Add(23 * time.Hour)
	sleepAndWake(t, svc, 2, sundayNight, 8*time.Hour)

	records, err := svc.GetFollowingLeaderboard(ctx, 1, testWednesday)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].ClockInTime.Equal(sundayNight))
}

func TestLeaderboardExcludesOpenAndUnfollowed(t *testing.T) {
	svc, _, followRepo, _ := newTestSleepService()
	ctx := context.Background()

	followRepo.follows = []*model.Follow{{FollowerID: 1, FollowedID: 2}}

	// 被关注但未结束
	_, err := svc.ClockIn(ctx, 2, testMonday.Add(time.Hour))
	require.NoError(t, err)
	// 已结束但未被关注
	sleepAndWake(t, svc, 3, testMonday.Add(time.Hour), 8*time.Hour)
	// 本人的记录也不在自己的榜里
	sleepAndWake(t, svc, 1, testMonday.Add(time.Hour), 8*time.Hour)

	records, err := svc.GetFollowingLeaderboard(ctx, 1, testWednesday)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLeaderboardEmptyFollowSet(t *testing.T) {
	svc, sleepRepo, _, _ := newTestSleepService()

	records, err := svc.GetFollowingLeaderboard(context.Background(), 1, testWednesday)
	require.NoError(t, err)
	assert.Empty(t, records)
	// 关注为空时不应查询睡眠记录
	assert.Zero(t, sleepRepo.listCalls)
}

func TestLeaderboardServedFromCache(t *testing.T) {
	svc, _, followRepo, _ := newTestSleepService()
	ctx := context.Background()

	followRepo.follows = []*model.Follow{{FollowerID: 1, FollowedID: 2}}
	sleepAndWake(t, svc, 2, testMonday.Add(time.Hour), 900*time.Second)

	first, err := svc.GetFollowingLeaderboard(ctx, 1, testWednesday)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// 榜单缓存只靠过期，新完成的记录在缓存期内不可见
	sleepAndWake(t, svc, 2, testMonday.Add(5*time.Hour), 1800*time.Second)

	second, err := svc.GetFollowingLeaderboard(ctx, 1, testWednesday)
	require.NoError(t, err)
	assert.Len(t, second, 1)
}

func TestMapStoreErrorLockConflict(t *testing.T) {
	svc := &sleepServiceImpl{}

	// 1205 锁等待超时 / 1213 死锁都翻译为并发冲突
	deadlock := &mysqldriver.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"}
	assert.ErrorIs(t, svc.mapStoreError(deadlock), ErrConcurrencyConflict)

	lockWait := &mysqldriver.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"}
	assert.ErrorIs(t, svc.mapStoreError(lockWait), ErrConcurrencyConflict)

	// 其他驱动错误原样上抛
	duplicate := &mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry"}
	assert.ErrorIs(t, svc.mapStoreError(duplicate), duplicate)
	assert.NotErrorIs(t, svc.mapStoreError(duplicate), ErrConcurrencyConflict)
}

// sleepAndWake 为指定用户完成一次入睡加起床
func sleepAndWake(t *testing.T, svc SleepService, userID uint64, clockIn time.Time, duration time.Duration) {
	t.Helper()
	_, err := svc.ClockIn(context.Background(), userID, clockIn)
	require.NoError(t, err)
	_, err = svc.ClockOut(context.Background(), userID, clockIn.Add(duration))
	require.NoError(t, err)
}
