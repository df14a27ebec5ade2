package repository

import (
	"GoodNight/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SleepRecordRepo interface {
	Create(ctx context.Context, record *model.SleepRecord) error
	GetByID(ctx context.Context, recordID uint64) (*model.SleepRecord, error)
	FindOpenByUserID(ctx context.Context, userID uint64) ([]*model.SleepRecord, error)
	Close(ctx context.Context, recordID uint64, clockOut time.Time) (*model.SleepRecord, error)
	CloseAllOpen(ctx context.Context, userID uint64, clockOut time.Time) (int64, error)
	ListByUserID(ctx context.Context, userID uint64) ([]*model.SleepRecord, error)
	ListCompletedForUsers(ctx context.Context, userIDs []uint64, start, end time.Time) ([]*model.SleepRecord, error)
}

type SleepRecordRepoImpl struct {
	db *gorm.DB
}

func NewSleepRecordRepo(db *gorm.DB) SleepRecordRepo {
	return &SleepRecordRepoImpl{db: db}
}

// Create 创建一条未结束的睡眠记录
func (s *SleepRecordRepoImpl) Create(ctx context.Context, record *model.SleepRecord) error {
	return s.db.WithContext(ctx).Create(record).Error
}

// GetByID 按主键获取记录，不存在时返回 (nil, nil)
func (s *SleepRecordRepoImpl) GetByID(ctx context.Context, recordID uint64) (*model.SleepRecord, error) {
	var record model.SleepRecord
	result := s.db.WithContext(ctx).First(&record, recordID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &record, nil
}

// FindOpenByUserID 获取用户所有未结束的记录，顺序不保证
func (s *SleepRecordRepoImpl) FindOpenByUserID(ctx context.Context, userID uint64) ([]*model.SleepRecord, error) {
	var records []*model.SleepRecord
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND clock_out_time IS NULL", userID).
		Find(&records)

	if result.Error != nil {
		return nil, result.Error
	}
	return records, nil
}

// Close 结束一条记录并计算时长。行级锁保证同一条记录不会被并发结束两次；
// 记录不存在返回 gorm.ErrRecordNotFound，已结束返回 model.ErrSleepRecordCompleted。
func (s *SleepRecordRepoImpl) Close(ctx context.Context, recordID uint64, clockOut time.Time) (*model.SleepRecord, error) {
	var record model.SleepRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&record, recordID).Error; err != nil {
			return err
		}
		if record.Completed() {
			return model.ErrSleepRecordCompleted
		}

		duration, err := model.ComputeDuration(record.ClockInTime, clockOut)
		if err != nil {
			return err
		}

		if err := tx.Model(&model.SleepRecord{}).
			Where("id = ?", record.ID).
			Updates(map[string]interface{}{
				"clock_out_time":   clockOut,
				"duration_seconds": duration,
			}).Error; err != nil {
			return err
		}

		record.ClockOutTime = &clockOut
		record.DurationSeconds = duration
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// CloseAllOpen 在一个事务内结束用户全部未结束的记录，使用同一个起床时间，
// 每条记录单独计算时长。全部成功或全部回滚，返回结束的条数。
func (s *SleepRecordRepoImpl) CloseAllOpen(ctx context.Context, userID uint64, clockOut time.Time) (int64, error) {
	var closed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var open []*model.SleepRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND clock_out_time IS NULL", userID).
			Find(&open).Error; err != nil {
			return err
		}

		for _, record := range open {
			duration, err := model.ComputeDuration(record.ClockInTime, clockOut)
			if err != nil {
				return err
			}
			if err := tx.Model(&model.SleepRecord{}).
				Where("id = ?", record.ID).
				Updates(map[string]interface{}{
					"clock_out_time":   clockOut,
					"duration_seconds": duration,
				}).Error; err != nil {
				return err
			}
		}

		closed = int64(len(open))
		return nil
	})
	if err != nil {
		return 0, err
	}
	return closed, nil
}

// ListByUserID 获取用户全部睡眠记录，新的在前
func (s *SleepRecordRepoImpl) ListByUserID(ctx context.Context, userID uint64) ([]*model.SleepRecord, error) {
	var records []*model.SleepRecord
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&records)

	if result.Error != nil {
		return nil, result.Error
	}
	return records, nil
}

// ListCompletedForUsers 获取一组用户在 [start, end] 内入睡且已结束的记录，
// 按时长降序，时长相同按 id 升序保证结果稳定。
func (s *SleepRecordRepoImpl) ListCompletedForUsers(ctx context.Context, userIDs []uint64, start, end time.Time) ([]*model.SleepRecord, error) {
	var records []*model.SleepRecord
	result := s.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Where("clock_in_time BETWEEN ? AND ?", start, end).
		Where("clock_out_time IS NOT NULL").
		Order("duration_seconds desc, id asc").
		Find(&records)

	if result.Error != nil {
		return nil, result.Error
	}
	return records, nil
}
