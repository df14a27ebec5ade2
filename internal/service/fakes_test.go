package service

import (
	"GoodNight/internal/model"
	"context"
	"sort"
	"time"

	"gorm.io/gorm"
)

// 内存版仓库实现，语义与 repository 包的 MySQL 实现保持一致

type fakeSleepRepo struct {
	records   []*model.SleepRecord
	nextID    uint64
	listCalls int
}

func (f *fakeSleepRepo) Create(_ context.Context, record *model.SleepRecord) error {
	f.nextID++
	record.ID = f.nextID
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt
	f.records = append(f.records, record)
	return nil
}

func (f *fakeSleepRepo) GetByID(_ context.Context, recordID uint64) (*model.SleepRecord, error) {
	for _, r := range f.records {
		if r.ID == recordID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeSleepRepo) FindOpenByUserID(_ context.Context, userID uint64) ([]*model.SleepRecord, error) {
	var open []*model.SleepRecord
	for _, r := range f.records {
		if r.UserID == userID && !r.Completed() {
			open = append(open, r)
		}
	}
	return open, nil
}

func (f *fakeSleepRepo) Close(_ context.Context, recordID uint64, clockOut time.Time) (*model.SleepRecord, error) {
	for _, r := range f.records {
		if r.ID != recordID {
			continue
		}
		if r.Completed() {
			return nil, model.ErrSleepRecordCompleted
		}
		duration, err := model.ComputeDuration(r.ClockInTime, clockOut)
		if err != nil {
			return nil, err
		}
		out := clockOut
		r.ClockOutTime = &out
		r.DurationSeconds = duration
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSleepRepo) CloseAllOpen(_ context.Context, userID uint64, clockOut time.Time) (int64, error) {
	var open []*model.SleepRecord
	for _, r := range f.records {
		if r.UserID == userID && !r.Completed() {
			open = append(open, r)
		}
	}

	// 先全部算完再落盘，任意一条失败整体不生效
	durations := make([]int64, len(open))
	for i, r := range open {
		duration, err := model.ComputeDuration(r.ClockInTime, clockOut)
		if err != nil {
			return 0, err
		}
		durations[i] = duration
	}
	for i, r := range open {
		out := clockOut
		r.ClockOutTime = &out
		r.DurationSeconds = durations[i]
	}
	return int64(len(open)), nil
}

func (f *fakeSleepRepo) ListByUserID(_ context.Context, userID uint64) ([]*model.SleepRecord, error) {
	var records []*model.SleepRecord
	for _, r := range f.records {
		if r.UserID == userID {
			records = append(records, r)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].ID > records[j].ID
	})
	return records, nil
}

func (f *fakeSleepRepo) ListCompletedForUsers(_ context.Context, userIDs []uint64, start, end time.Time) ([]*model.SleepRecord, error) {
	f.listCalls++

	idSet := make(map[uint64]struct{}, len(userIDs))
	for _, id := range userIDs {
		idSet[id] = struct{}{}
	}

	var records []*model.SleepRecord
	for _, r := range f.records {
		if _, ok := idSet[r.UserID]; !ok {
			continue
		}
		if !r.Completed() {
			continue
		}
		if r.ClockInTime.Before(start) || r.ClockInTime.After(end) {
			continue
		}
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].DurationSeconds != records[j].DurationSeconds {
			return records[i].DurationSeconds > records[j].DurationSeconds
		}
		return records[i].ID < records[j].ID
	})
	return records, nil
}

type fakeFollowRepo struct {
	follows []*model.Follow
}

func (f *fakeFollowRepo) GetFollowedIDs(_ context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	for _, follow := range f.follows {
		if follow.FollowerID == userID {
			ids = append(ids, follow.FollowedID)
		}
	}
	return ids, nil
}

func (f *fakeFollowRepo) GetFollow(_ context.Context, followerID, followedID uint64) (*model.Follow, error) {
	for _, follow := range f.follows {
		if follow.FollowerID == followerID && follow.FollowedID == followedID {
			return follow, nil
		}
	}
	return nil, nil
}

func (f *fakeFollowRepo) GetFollowers(_ context.Context, userID uint64, limit, offset int) ([]*model.Follow, error) {
	var rows []*model.Follow
	for _, follow := range f.follows {
		if follow.FollowedID == userID {
			rows = append(rows, follow)
		}
	}
	return paginate(rows, limit, offset), nil
}

func (f *fakeFollowRepo) GetFollowings(_ context.Context, userID uint64, limit, offset int) ([]*model.Follow, error) {
	var rows []*model.Follow
	for _, follow := range f.follows {
		if follow.FollowerID == userID {
			rows = append(rows, follow)
		}
	}
	return paginate(rows, limit, offset), nil
}

func (f *fakeFollowRepo) CreateFollow(_ context.Context, follow *model.Follow) error {
	exist, _ := f.GetFollow(context.Background(), follow.FollowerID, follow.FollowedID)
	if exist != nil {
		return nil
	}
	f.follows = append(f.follows, follow)
	return nil
}

func (f *fakeFollowRepo) DeleteFollow(_ context.Context, followerID, followedID uint64) (int64, error) {
	var kept []*model.Follow
	var deleted int64
	for _, follow := range f.follows {
		if follow.FollowerID == followerID && follow.FollowedID == followedID {
			deleted++
			continue
		}
		kept = append(kept, follow)
	}
	f.follows = kept
	return deleted, nil
}

func paginate(rows []*model.Follow, limit, offset int) []*model.Follow {
	if offset >= len(rows) {
		return nil
	}
	rows = rows[offset:]
	if limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

type fakeUserRepo struct {
	users  map[uint64]*model.User
	nextID uint64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint64]*model.User)}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) error {
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, userID uint64) (*model.User, error) {
	return f.users[userID], nil
}

func (f *fakeUserRepo) DeleteUser(_ context.Context, userID uint64) error {
	delete(f.users, userID)
	return nil
}

type fakeSummaryRepo struct {
	summaries []*model.UserSleepSummary
	nextID    uint64
}

func (f *fakeSummaryRepo) CreateSummary(_ context.Context, summary *model.UserSleepSummary) error {
	f.nextID++
	summary.ID = f.nextID
	f.summaries = append(f.summaries, summary)
	return nil
}

func (f *fakeSummaryRepo) UpdateSummary(_ context.Context, summary *model.UserSleepSummary) error {
	for i, s := range f.summaries {
		if s.ID == summary.ID {
			f.summaries[i] = summary
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeSummaryRepo) GetSummaryByDate(_ context.Context, userID uint64, date time.Time) (*model.UserSleepSummary, error) {
	for _, s := range f.summaries {
		if s.UserID == userID && s.SummaryDate.Equal(date) {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSummaryRepo) GetSummariesSince(_ context.Context, userID uint64, since time.Time) ([]*model.UserSleepSummary, error) {
	var rows []*model.UserSleepSummary
	for _, s := range f.summaries {
		if s.UserID == userID && !s.SummaryDate.Before(since) {
			rows = append(rows, s)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].SummaryDate.After(rows[j].SummaryDate)
	})
	return rows, nil
}

type fakeCache struct {
	values map[string]string
	sets   map[string][]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		values: make(map[string]string),
		sets:   make(map[string][]string),
	}
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	return f.values[key], nil
}

func (f *fakeCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	f.values[key] = value
	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	delete(f.values, key)
	return nil
}

func (f *fakeCache) SAdd(_ context.Context, key string, member string) error {
	f.sets[key] = append(f.sets[key], member)
	return nil
}
